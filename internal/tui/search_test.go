package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/buchctl/internal/api"
	"github.com/blackwell-systems/buchctl/internal/cache"
	"github.com/blackwell-systems/buchctl/internal/guard"
	"github.com/blackwell-systems/buchctl/internal/session"
)

func testDeps(t *testing.T) Deps {
	t.Helper()
	store := session.Open(filepath.Join(t.TempDir(), "session.yml"), nil)
	return Deps{
		Session:    store,
		Cache:      cache.NewResults(),
		Guard:      guard.New(store),
		PageSize:   5,
		PageWindow: 5,
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestSearchReset_ClearsFormWithoutSearching(t *testing.T) {
	v := newSearchView(testDeps(t), 1)
	v.title = "Test"
	v.rating = "4"
	v.availableOnly = true
	v.mode = modeResults
	seqBefore := v.seq

	_, _ = v.Update(keyRune('r'))

	if v.mode != modeForm {
		t.Error("reset should return to the form")
	}
	if v.title != "" || v.rating != anyChoice || v.availableOnly {
		t.Errorf("criteria not cleared: title=%q rating=%q available=%v", v.title, v.rating, v.availableOnly)
	}
	if v.seq != seqBefore || v.inflight {
		t.Error("reset must not issue a search")
	}
}

func TestSearch_StaleResponseDiscarded(t *testing.T) {
	v := newSearchView(testDeps(t), 1)
	v.mode = modeResults
	v.searched = true
	v.seq = 2
	v.inflight = true
	v.books = []api.Book{{ID: "current"}}

	// A response from the superseded request arrives late.
	_, _ = v.Update(searchResultMsg{gen: 1, seq: 1, books: []api.Book{{ID: "stale"}}})

	if len(v.books) != 1 || v.books[0].ID != "current" {
		t.Errorf("stale response overwrote results: %v", v.books)
	}
	if !v.inflight {
		t.Error("stale response must not complete the newer request")
	}

	// The current request's response lands normally.
	_, _ = v.Update(searchResultMsg{gen: 1, seq: 2, books: []api.Book{{ID: "fresh"}}})
	if v.inflight || v.books[0].ID != "fresh" {
		t.Errorf("current response not applied: inflight=%v books=%v", v.inflight, v.books)
	}
}

func TestSearch_SubmitServesCacheWhileFetching(t *testing.T) {
	deps := testDeps(t)
	v := newSearchView(deps, 1)
	v.title = "Alpha"
	cached := []api.Book{{ID: "1"}, {ID: "2"}}
	deps.Cache.Put(v.buildCriteria().Build(), cached)

	cmd := v.submit()

	if cmd == nil {
		t.Fatal("submit must always refetch")
	}
	if !v.fromCache || len(v.books) != 2 {
		t.Errorf("cached results not served: fromCache=%v books=%v", v.fromCache, v.books)
	}
	if !v.inflight {
		t.Error("submit must mark the request in flight")
	}
	if v.pg.Page() != 1 {
		t.Errorf("page = %d after submit, want 1", v.pg.Page())
	}
}

func TestSearch_ResultResetsPagination(t *testing.T) {
	v := newSearchView(testDeps(t), 1)
	v.mode = modeResults
	v.searched = true
	v.seq = 1
	v.inflight = true

	books := make([]api.Book, 12)
	for i := range books {
		books[i] = api.Book{ID: string(rune('a' + i))}
	}
	_, _ = v.Update(searchResultMsg{gen: 1, seq: 1, filter: nil, books: books})

	if v.pg.TotalPages() != 3 {
		t.Errorf("TotalPages = %d, want 3", v.pg.TotalPages())
	}
	if v.pg.Page() != 1 {
		t.Errorf("Page = %d, want 1", v.pg.Page())
	}
}

func TestRouter_LockedEntryLandsOnLogin(t *testing.T) {
	r := NewRouter(testDeps(t))
	if r.route != guard.RouteLogin {
		t.Errorf("route = %v, want login while locked", r.route)
	}

	// Navigating to a protected view while locked stays on login.
	model, _ := r.Update(navigateMsg{route: guard.RouteSearch})
	r = model.(*Router)
	if r.route != guard.RouteLogin {
		t.Errorf("route = %v after protected navigation while locked", r.route)
	}
}

func TestRouter_DropsCompletionsFromTornDownViews(t *testing.T) {
	r := NewRouter(testDeps(t))
	gen := r.gen

	// A completion tagged with an older generation must not reach the view.
	model, cmd := r.Update(searchResultMsg{gen: gen - 1, seq: 1, books: []api.Book{{ID: "x"}}})
	r = model.(*Router)
	if cmd != nil {
		t.Error("orphaned completion produced a command")
	}
	if r.gen != gen {
		t.Error("router state changed on orphaned completion")
	}
}
