package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blackwell-systems/buchctl/internal/api"
)

// staticTokens is a TokenSource with a fixed credential.
type staticTokens string

func (s staticTokens) AccessToken() string { return string(s) }

// graphql request as seen by the test server.
type recordedRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
	AuthHdr   string         `json:"-"`
}

// newServer returns an httptest server answering every request with the
// given body, recording what arrived.
func newServer(t *testing.T, status int, body string) (*httptest.Server, *recordedRequest) {
	t.Helper()
	var last recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &last)
		last.AuthHdr = r.Header.Get("Authorization")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &last
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBearerAttached(t *testing.T) {
	srv, last := newServer(t, 200, `{"data":{"buecher":[]}}`)
	c := api.New(srv.URL, staticTokens("tok123"), api.Options{Logger: quietLogger()})

	if _, err := c.Search(context.Background(), nil); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if last.AuthHdr != "Bearer tok123" {
		t.Errorf("Authorization = %q, want Bearer tok123", last.AuthHdr)
	}
}

func TestNoCredentialSendsUnauthenticated(t *testing.T) {
	srv, last := newServer(t, 200, `{"data":{"buecher":[]}}`)
	c := api.New(srv.URL, staticTokens(""), api.Options{Logger: quietLogger()})

	if _, err := c.Search(context.Background(), nil); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if last.AuthHdr != "" {
		t.Errorf("Authorization = %q, want empty", last.AuthHdr)
	}
}

func TestSearch_FilterVariables(t *testing.T) {
	srv, last := newServer(t, 200, `{"data":{"buecher":[
		{"id":"1","isbn":"978-1","titel":{"titel":"Alpha"},"preis":9.99,"lieferbar":true}
	]}}`)
	c := api.New(srv.URL, staticTokens(""), api.Options{Logger: quietLogger()})

	books, err := c.Search(context.Background(), map[string]any{"titel": "Alpha"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(books) != 1 || books[0].Title.Main != "Alpha" {
		t.Fatalf("books = %+v", books)
	}
	sp, ok := last.Variables["suchparameter"].(map[string]any)
	if !ok || sp["titel"] != "Alpha" {
		t.Errorf("suchparameter = %v, want titel=Alpha", last.Variables["suchparameter"])
	}
}

func TestSearch_NoFilterOmitsVariable(t *testing.T) {
	srv, last := newServer(t, 200, `{"data":{"buecher":[]}}`)
	c := api.New(srv.URL, staticTokens(""), api.Options{Logger: quietLogger()})

	if _, err := c.Search(context.Background(), nil); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if _, present := last.Variables["suchparameter"]; present {
		t.Errorf("suchparameter should be absent, got %v", last.Variables)
	}
}

func TestSearch_NotFoundMessageMeansEmpty(t *testing.T) {
	srv, _ := newServer(t, 200, `{"errors":[{"message":"Keine Buecher gefunden"}]}`)
	c := api.New(srv.URL, staticTokens(""), api.Options{Logger: quietLogger()})

	books, err := c.Search(context.Background(), map[string]any{"titel": "zzz"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("books = %v, want none", books)
	}
}

func TestToken_Success(t *testing.T) {
	srv, last := newServer(t, 200, `{"data":{"token":{
		"access_token":"acc","expires_in":300,"refresh_token":"ref","refresh_expires_in":1800
	}}}`)
	c := api.New(srv.URL, staticTokens(""), api.Options{Logger: quietLogger()})

	pair, err := c.Token(context.Background(), "admin", "p")
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if pair.AccessToken != "acc" || pair.RefreshToken != "ref" || pair.ExpiresIn != 300 {
		t.Errorf("pair = %+v", pair)
	}
	if last.Variables["username"] != "admin" {
		t.Errorf("username variable = %v", last.Variables["username"])
	}
}

func TestToken_BadCredentials(t *testing.T) {
	srv, _ := newServer(t, 200, `{"errors":[{"message":"Falscher Benutzername oder falsches Passwort","extensions":{"code":"UNAUTHENTICATED"}}]}`)
	c := api.New(srv.URL, staticTokens(""), api.Options{Logger: quietLogger()})

	_, err := c.Token(context.Background(), "wronguser", "wrongpass")
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{401, api.ErrUnauthorized},
		{403, api.ErrForbidden},
	}
	for _, tc := range cases {
		srv, _ := newServer(t, tc.status, ``)
		c := api.New(srv.URL, staticTokens("stale"), api.Options{Logger: quietLogger()})
		_, err := c.Search(context.Background(), nil)
		if !errors.Is(err, tc.want) {
			t.Errorf("status %d: err = %v, want %v", tc.status, err, tc.want)
		}
	}
}

func TestGet_NotFound(t *testing.T) {
	srv, _ := newServer(t, 200, `{"data":{"buch":null}}`)
	c := api.New(srv.URL, staticTokens(""), api.Options{Logger: quietLogger()})

	_, err := c.Get(context.Background(), "999")
	if !errors.Is(err, api.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGet_Found(t *testing.T) {
	srv, _ := newServer(t, 200, `{"data":{"buch":{
		"id":"7","version":2,"isbn":"978-7","rating":4,"art":"EPUB","preis":19.5,
		"lieferbar":true,"schlagwoerter":["JAVASCRIPT"],
		"titel":{"titel":"Alpha","untertitel":"Beta"},"rabatt":"10 %"
	}}}`)
	c := api.New(srv.URL, staticTokens(""), api.Options{Logger: quietLogger()})

	book, err := c.Get(context.Background(), "7")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if book.ID != "7" || book.Version != 2 || book.Kind != "EPUB" {
		t.Errorf("book = %+v", book)
	}
	if book.Rating == nil || *book.Rating != 4 {
		t.Errorf("rating = %v, want 4", book.Rating)
	}
	if book.Title.Subtitle != "Beta" {
		t.Errorf("subtitle = %q", book.Title.Subtitle)
	}
}

func TestCreateAndDelete(t *testing.T) {
	srv, last := newServer(t, 200, `{"data":{"create":{"id":"42"},"delete":{"success":true}}}`)
	c := api.New(srv.URL, staticTokens("tok"), api.Options{Logger: quietLogger()})

	id, err := c.Create(context.Background(), api.BookInput{
		ISBN:  "978-3-89790",
		Price: 29.9,
		Title: api.Title{Main: "Gamma"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != "42" {
		t.Errorf("id = %q, want 42", id)
	}
	input, _ := last.Variables["input"].(map[string]any)
	if input["isbn"] != "978-3-89790" {
		t.Errorf("input = %v", input)
	}

	if err := c.Delete(context.Background(), "42"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	srv, _ := newServer(t, 200, `{"data":{"delete":{"success":false}}}`)
	c := api.New(srv.URL, staticTokens("tok"), api.Options{Logger: quietLogger()})
	if err := c.Delete(context.Background(), "999"); !errors.Is(err, api.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestTransportFailureSurfacesAndLogs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := api.New(srv.URL, staticTokens(""), api.Options{Logger: log})
	_, err := c.Search(context.Background(), nil)
	if err == nil {
		t.Fatal("expected transport error")
	}
	if !strings.Contains(err.Error(), "unreachable") {
		t.Errorf("err = %v, want generic unreachable message", err)
	}
	if !strings.Contains(buf.String(), "request failed") {
		t.Errorf("observe stage logged nothing: %q", buf.String())
	}
}

func TestRemoteErrorMessagesSurfaceVerbatim(t *testing.T) {
	srv, _ := newServer(t, 200, `{"errors":[{"message":"ISBN ungueltig"},{"message":"Preis fehlt"}]}`)
	c := api.New(srv.URL, staticTokens("tok"), api.Options{Logger: quietLogger()})

	_, err := c.Create(context.Background(), api.BookInput{Title: api.Title{Main: "X"}})
	var remote *api.RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("err = %T, want *RemoteError", err)
	}
	if len(remote.Messages) != 2 || remote.Messages[0] != "ISBN ungueltig" {
		t.Errorf("messages = %v", remote.Messages)
	}
}
