package cache_test

import (
	"testing"

	"github.com/blackwell-systems/buchctl/internal/api"
	"github.com/blackwell-systems/buchctl/internal/cache"
)

func TestKey_EqualFiltersEqualKeys(t *testing.T) {
	a := map[string]any{"titel": "Alpha", "rating": 3}
	b := map[string]any{"rating": 3, "titel": "Alpha"}
	if cache.Key(a) != cache.Key(b) {
		t.Errorf("keys differ for equal filters: %q vs %q", cache.Key(a), cache.Key(b))
	}
	if cache.Key(a) == cache.Key(nil) {
		t.Error("filtered and unfiltered queries share a key")
	}
}

func TestPutGetOverwrite(t *testing.T) {
	r := cache.NewResults()
	filter := map[string]any{"titel": "Alpha"}

	if _, ok := r.Get(filter); ok {
		t.Fatal("empty cache reported a hit")
	}

	r.Put(filter, []api.Book{{ID: "1"}})
	books, ok := r.Get(filter)
	if !ok || len(books) != 1 || books[0].ID != "1" {
		t.Fatalf("Get = %v, %v", books, ok)
	}

	// A newer response for the same query replaces the entry.
	r.Put(filter, []api.Book{{ID: "2"}, {ID: "3"}})
	books, _ = r.Get(filter)
	if len(books) != 2 || books[0].ID != "2" {
		t.Fatalf("after overwrite: %v", books)
	}
}

func TestClear(t *testing.T) {
	r := cache.NewResults()
	r.Put(nil, []api.Book{{ID: "1"}})
	r.Clear()
	if _, ok := r.Get(nil); ok {
		t.Error("cache still serves entries after Clear")
	}
}
