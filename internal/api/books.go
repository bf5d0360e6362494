package api

import (
	"context"
	"errors"
	"strings"
)

// Title is a book's title with an optional subtitle.
type Title struct {
	Main     string `json:"titel"`
	Subtitle string `json:"untertitel,omitempty"`
}

// Book is a catalog record. JSON tags are the service's schema names.
type Book struct {
	ID        string   `json:"id"`
	Version   int      `json:"version"`
	ISBN      string   `json:"isbn"`
	Rating    *int     `json:"rating"`
	Kind      string   `json:"art"`
	Price     float64  `json:"preis"`
	Available bool     `json:"lieferbar"`
	Date      string   `json:"datum"`
	Homepage  string   `json:"homepage"`
	Keywords  []string `json:"schlagwoerter"`
	Title     Title    `json:"titel"`
	Discount  string   `json:"rabatt"`
}

// BookInput is the payload for creating a record.
type BookInput struct {
	ISBN      string   `json:"isbn,omitempty"`
	Rating    *int     `json:"rating,omitempty"`
	Kind      string   `json:"art,omitempty"`
	Price     float64  `json:"preis"`
	Discount  float64  `json:"rabatt,omitempty"`
	Available bool     `json:"lieferbar"`
	Date      string   `json:"datum,omitempty"`
	Homepage  string   `json:"homepage,omitempty"`
	Keywords  []string `json:"schlagwoerter,omitempty"`
	Title     Title    `json:"titel"`
}

// BookUpdate is the payload for updating a record. Version guards against
// lost updates; the service rejects a stale one.
type BookUpdate struct {
	ID        string   `json:"id"`
	Version   int      `json:"version"`
	ISBN      string   `json:"isbn,omitempty"`
	Rating    *int     `json:"rating,omitempty"`
	Kind      string   `json:"art,omitempty"`
	Price     float64  `json:"preis,omitempty"`
	Discount  float64  `json:"rabatt,omitempty"`
	Available bool     `json:"lieferbar"`
	Date      string   `json:"datum,omitempty"`
	Homepage  string   `json:"homepage,omitempty"`
	Keywords  []string `json:"schlagwoerter,omitempty"`
}

const searchQuery = `
query GetBuecher($suchparameter: SuchparameterInput) {
  buecher(suchparameter: $suchparameter) {
    id
    isbn
    rating
    art
    preis
    lieferbar
    datum
    homepage
    schlagwoerter
    titel {
      titel
      untertitel
    }
  }
}`

const getQuery = `
query GetBuch($id: ID!) {
  buch(id: $id) {
    id
    version
    isbn
    rating
    art
    preis
    lieferbar
    datum
    homepage
    schlagwoerter
    titel {
      titel
      untertitel
    }
    rabatt
  }
}`

const createMutation = `
mutation CreateBuch($input: BuchInput!) {
  create(input: $input) {
    id
  }
}`

const updateMutation = `
mutation UpdateBuch($input: BuchUpdateInput!) {
  update(input: $input) {
    version
  }
}`

const deleteMutation = `
mutation DeleteBuch($id: ID!) {
  delete(id: $id) {
    success
  }
}`

// Search runs the catalog query with the given suchparameter variables.
// A nil filter means "no filter": the variable is left out entirely. An
// empty result is not an error.
func (c *Client) Search(ctx context.Context, filter map[string]any) ([]Book, error) {
	vars := map[string]any{}
	if filter != nil {
		vars["suchparameter"] = filter
	}
	var data struct {
		Books []Book `json:"buecher"`
	}
	if err := c.do(ctx, searchQuery, vars, &data); err != nil {
		// The service reports an empty result as a NOT_FOUND style error
		// rather than an empty list; treat it as zero matches.
		if isNotFoundMessage(err) {
			return nil, nil
		}
		return nil, err
	}
	return data.Books, nil
}

// Get fetches a single record by ID. Returns ErrNotFound when the record
// no longer exists; callers show a dedicated "could not load" state for
// that, distinct from a transport failure.
func (c *Client) Get(ctx context.Context, id string) (*Book, error) {
	var data struct {
		Book *Book `json:"buch"`
	}
	if err := c.do(ctx, getQuery, map[string]any{"id": id}, &data); err != nil {
		if isNotFoundMessage(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if data.Book == nil {
		return nil, ErrNotFound
	}
	return data.Book, nil
}

// Create adds a record and returns its new ID.
func (c *Client) Create(ctx context.Context, input BookInput) (string, error) {
	var data struct {
		Create struct {
			ID string `json:"id"`
		} `json:"create"`
	}
	if err := c.do(ctx, createMutation, map[string]any{"input": input}, &data); err != nil {
		return "", err
	}
	return data.Create.ID, nil
}

// Update modifies a record and returns its new version.
func (c *Client) Update(ctx context.Context, input BookUpdate) (int, error) {
	var data struct {
		Update struct {
			Version int `json:"version"`
		} `json:"update"`
	}
	if err := c.do(ctx, updateMutation, map[string]any{"input": input}, &data); err != nil {
		return 0, err
	}
	return data.Update.Version, nil
}

// Delete removes a record by ID.
func (c *Client) Delete(ctx context.Context, id string) error {
	var data struct {
		Delete struct {
			Success bool `json:"success"`
		} `json:"delete"`
	}
	if err := c.do(ctx, deleteMutation, map[string]any{"id": id}, &data); err != nil {
		if isNotFoundMessage(err) {
			return ErrNotFound
		}
		return err
	}
	if !data.Delete.Success {
		return ErrNotFound
	}
	return nil
}

// isNotFoundMessage reports whether a RemoteError is the service's way of
// saying "no such record" (it phrases this as a German "nicht gefunden" /
// "keine Buecher" message rather than a dedicated code).
func isNotFoundMessage(err error) bool {
	var remote *RemoteError
	if !errors.As(err, &remote) {
		return false
	}
	for _, m := range remote.Messages {
		lower := strings.ToLower(m)
		if strings.Contains(lower, "nicht gefunden") ||
			strings.Contains(lower, "keine buecher") ||
			strings.Contains(lower, "not found") {
			return true
		}
	}
	return false
}
