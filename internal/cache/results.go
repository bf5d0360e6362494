// Package cache keeps recent search results in memory so a repeated
// query can render immediately while a fresh network fetch runs
// ("cache-and-network"). A network response always overwrites the cached
// entry for its query; the cache never invents freshness.
package cache

import (
	"encoding/json"
	"sync"

	"github.com/blackwell-systems/buchctl/internal/api"
)

// Results caches search result sets keyed by their normalized filter.
type Results struct {
	mu      sync.Mutex
	entries map[string][]api.Book
}

// NewResults creates an empty result cache.
func NewResults() *Results {
	return &Results{entries: map[string][]api.Book{}}
}

// Key canonicalizes a filter payload into a cache key. encoding/json
// sorts map keys, so equal filters always produce equal keys. The nil
// ("no filter") payload keys as "null".
func Key(filter map[string]any) string {
	data, err := json.Marshal(filter)
	if err != nil {
		return ""
	}
	return string(data)
}

// Get returns the cached result set for the filter, if any.
func (r *Results) Get(filter map[string]any) ([]api.Book, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	books, ok := r.entries[Key(filter)]
	return books, ok
}

// Put stores a result set for the filter, replacing any previous entry.
func (r *Results) Put(filter map[string]any, books []api.Book) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[Key(filter)] = books
}

// Clear drops every entry. Called on logout so one user's results never
// leak into the next session.
func (r *Results) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = map[string][]api.Book{}
}
