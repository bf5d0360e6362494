package query_test

import (
	"reflect"
	"testing"

	"github.com/blackwell-systems/buchctl/internal/query"
)

func TestBuild_AllDefaults(t *testing.T) {
	params := query.Criteria{}.Build()
	if params != nil {
		t.Fatalf("empty criteria should build nil, got %v", params)
	}
}

func TestBuild_WhitespaceOnlyIsAbsent(t *testing.T) {
	params := query.Criteria{Title: "   ", ISBN: "\t"}.Build()
	if params != nil {
		t.Fatalf("whitespace-only fields should build nil, got %v", params)
	}
}

func TestBuild_SingleField(t *testing.T) {
	cases := []struct {
		name string
		c    query.Criteria
		key  string
		want any
	}{
		{"title trimmed", query.Criteria{Title: "  Alpha "}, "titel", "Alpha"},
		{"isbn", query.Criteria{ISBN: "978-3-89790"}, "isbn", "978-3-89790"},
		{"rating", query.Criteria{Rating: 3}, "rating", 3},
		{"kind", query.Criteria{Kind: query.KindEpub}, "art", "EPUB"},
		{"available true", query.Criteria{Available: true, AvailableSet: true}, "lieferbar", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := tc.c.Build()
			if len(params) != 1 {
				t.Fatalf("expected exactly 1 field, got %v", params)
			}
			if got := params[tc.key]; !reflect.DeepEqual(got, tc.want) {
				t.Errorf("params[%q] = %v, want %v", tc.key, got, tc.want)
			}
		})
	}
}

func TestBuild_AvailableFalseIsAbsent(t *testing.T) {
	// Explicit false is the "any" state on the wire, not lieferbar=false.
	params := query.Criteria{Available: false, AvailableSet: true}.Build()
	if params != nil {
		t.Fatalf("available=false should build nil, got %v", params)
	}
}

func TestBuild_RatingOutOfRangeIsAbsent(t *testing.T) {
	for _, r := range []int{-1, 0, 6} {
		if params := (query.Criteria{Rating: r}).Build(); params != nil {
			t.Errorf("rating %d should build nil, got %v", r, params)
		}
	}
}

func TestBuild_KeywordsUnionOrdered(t *testing.T) {
	c := query.Criteria{Keywords: []string{"TYPESCRIPT", "JAVASCRIPT", "TYPESCRIPT", " ", "JAVASCRIPT"}}
	params := c.Build()
	want := []string{"TYPESCRIPT", "JAVASCRIPT"}
	if got, ok := params["schlagwoerter"].([]string); !ok || !reflect.DeepEqual(got, want) {
		t.Fatalf("schlagwoerter = %v, want %v", params["schlagwoerter"], want)
	}
}

func TestBuild_Combined(t *testing.T) {
	c := query.Criteria{
		Title:        "Alpha",
		Rating:       4,
		Available:    true,
		AvailableSet: true,
		Keywords:     []string{"JAVASCRIPT"},
	}
	params := c.Build()
	if len(params) != 4 {
		t.Fatalf("expected 4 fields, got %v", params)
	}
	if c.IsZero() {
		t.Error("IsZero() = true for non-empty criteria")
	}
}
