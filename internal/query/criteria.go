// Package query normalizes sparse search criteria into the variables
// payload the catalog service expects. Fields the user left empty are
// physically absent from the payload: the service distinguishes
// "field absent" from "field present but empty".
package query

import "strings"

// Book kinds accepted by the catalog schema.
const (
	KindEpub      = "EPUB"
	KindHardcover = "HARDCOVER"
	KindPaperback = "PAPERBACK"
)

// Kinds lists the valid book kinds in display order.
var Kinds = []string{KindEpub, KindHardcover, KindPaperback}

// Criteria holds the raw search form state before normalization.
// Zero values mean "any": empty strings, Rating 0, AvailableSet false.
type Criteria struct {
	Title    string
	ISBN     string
	Rating   int // minimum rating 1-5; 0 means any
	Kind     string
	Keywords []string

	// Available is only meaningful when AvailableSet is true. The form's
	// "only available books" checkbox maps unchecked to AvailableSet=false,
	// never to Available=false.
	Available    bool
	AvailableSet bool
}

// Build produces the suchparameter variables map, containing only the
// fields that are non-empty after normalization. Returns nil when every
// field is at its default, meaning "no filter".
func (c Criteria) Build() map[string]any {
	params := map[string]any{}

	if t := strings.TrimSpace(c.Title); t != "" {
		params["titel"] = t
	}
	if i := strings.TrimSpace(c.ISBN); i != "" {
		params["isbn"] = i
	}
	if c.Rating >= 1 && c.Rating <= 5 {
		params["rating"] = c.Rating
	}
	if c.Kind != "" {
		params["art"] = c.Kind
	}
	if c.AvailableSet && c.Available {
		params["lieferbar"] = true
	}
	if kw := unionKeywords(c.Keywords); len(kw) > 0 {
		params["schlagwoerter"] = kw
	}

	if len(params) == 0 {
		return nil
	}
	return params
}

// IsZero reports whether no criteria would survive normalization.
func (c Criteria) IsZero() bool {
	return c.Build() == nil
}

// unionKeywords de-duplicates while preserving first-seen order and
// dropping blanks.
func unionKeywords(keywords []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
