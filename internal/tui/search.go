package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/blackwell-systems/buchctl/internal/api"
	"github.com/blackwell-systems/buchctl/internal/guard"
	"github.com/blackwell-systems/buchctl/internal/pager"
	"github.com/blackwell-systems/buchctl/internal/query"
)

const anyChoice = "Any"

// searchKeywords are the keyword toggles offered by the form.
var searchKeywords = []string{"JAVASCRIPT", "TYPESCRIPT", "JAVA", "PYTHON"}

// searchResultMsg is the completion of a catalog query. seq orders
// competing requests within one view: only the most recently issued
// request may update the result set.
type searchResultMsg struct {
	gen    int
	seq    int
	filter map[string]any
	books  []api.Book
	err    error
}

func (m searchResultMsg) generation() int { return m.gen }

type searchMode int

const (
	modeForm searchMode = iota
	modeResults
)

// searchView is the criteria form plus the paginated result browser.
type searchView struct {
	deps Deps
	gen  int
	keys BrowseKeys

	mode searchMode

	// form state, bound into the huh form
	title         string
	isbn          string
	rating        string
	kind          string
	availableOnly bool
	keywords      []string
	form          *huh.Form

	// result state, owned by this view and discarded on navigation
	criteria query.Criteria
	searched bool
	inflight bool
	fromCache bool
	seq      int
	books    []api.Book
	pg       *pager.Pager
	cursor   int
	errMsg   string
	spin     spinner.Model
}

func newSearchView(deps Deps, gen int) *searchView {
	v := &searchView{
		deps: deps,
		gen:  gen,
		keys: NewBrowseKeys(),
		spin: spinner.New(spinner.WithSpinner(spinner.Dot)),
		pg:   pager.New(deps.PageSize),
	}
	v.rating = anyChoice
	v.kind = anyChoice
	v.form = v.newForm()
	return v
}

func (v *searchView) newForm() *huh.Form {
	ratings := []string{anyChoice, "1", "2", "3", "4", "5"}
	kinds := append([]string{anyChoice}, query.Kinds...)
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Description("substring match").
				Value(&v.title),
			huh.NewInput().
				Title("ISBN").
				Value(&v.isbn),
			huh.NewSelect[string]().
				Title("Minimum rating").
				Options(huh.NewOptions(ratings...)...).
				Value(&v.rating),
			huh.NewSelect[string]().
				Title("Kind").
				Options(huh.NewOptions(kinds...)...).
				Value(&v.kind),
			huh.NewConfirm().
				Title("Only available books?").
				Value(&v.availableOnly),
			huh.NewMultiSelect[string]().
				Title("Keywords").
				Options(huh.NewOptions(searchKeywords...)...).
				Value(&v.keywords),
		),
	).WithShowHelp(false)
}

// buildCriteria translates form state into normalized criteria.
func (v *searchView) buildCriteria() query.Criteria {
	c := query.Criteria{
		Title:    v.title,
		ISBN:     v.isbn,
		Keywords: v.keywords,
	}
	if n, err := strconv.Atoi(v.rating); err == nil {
		c.Rating = n
	}
	if v.kind != anyChoice && v.kind != "" {
		c.Kind = v.kind
	}
	if v.availableOnly {
		c.Available = true
		c.AvailableSet = true
	}
	return c
}

// resetForm clears every criterion. It deliberately does not issue a
// search; clearing the form and re-querying are separate actions.
func (v *searchView) resetForm() {
	v.title = ""
	v.isbn = ""
	v.rating = anyChoice
	v.kind = anyChoice
	v.availableOnly = false
	v.keywords = nil
	v.form = v.newForm()
	v.mode = modeForm
}

// submit switches to results and starts the fetch, serving a cached
// result set immediately when one exists for the same filter.
func (v *searchView) submit() tea.Cmd {
	v.criteria = v.buildCriteria()
	filter := v.criteria.Build()

	v.mode = modeResults
	v.searched = true
	v.errMsg = ""
	v.cursor = 0

	if cached, ok := v.deps.Cache.Get(filter); ok {
		v.books = cached
		v.fromCache = true
		v.pg.Reset(len(cached))
	} else {
		v.books = nil
		v.fromCache = false
		v.pg.Reset(0)
	}

	v.seq++
	v.inflight = true
	return tea.Batch(v.spin.Tick, v.searchCmd(v.seq, filter))
}

func (v *searchView) searchCmd(seq int, filter map[string]any) tea.Cmd {
	gen, client := v.gen, v.deps.API
	return func() tea.Msg {
		books, err := client.Search(context.Background(), filter)
		return searchResultMsg{gen: gen, seq: seq, filter: filter, books: books, err: err}
	}
}

func (v *searchView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *searchView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		if v.inflight {
			return v, cmd
		}
		return v, nil

	case searchResultMsg:
		if msg.seq != v.seq {
			// A newer request was issued after this one; the late
			// response must not overwrite the newer result set.
			return v, nil
		}
		v.inflight = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		v.books = msg.books
		v.fromCache = false
		v.pg.Reset(len(msg.books))
		v.cursor = 0
		v.deps.Cache.Put(msg.filter, msg.books)
		return v, nil
	}

	if v.mode == modeForm {
		return v.updateForm(msg)
	}
	return v.updateResults(msg)
}

func (v *searchView) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := v.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State == huh.StateCompleted {
		return v, v.submit()
	}
	if v.form.State == huh.StateAborted {
		return v, tea.Quit
	}
	return v, cmd
}

func (v *searchView) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	page := pager.Slice(v.books, v.pg.Page(), v.pg.Size())

	switch {
	case key.Matches(keyMsg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(keyMsg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}

	case key.Matches(keyMsg, v.keys.Down):
		if v.cursor < len(page)-1 {
			v.cursor++
		}

	case key.Matches(keyMsg, v.keys.PrevPage):
		if v.pg.Prev() {
			v.cursor = 0
		}

	case key.Matches(keyMsg, v.keys.NextPage):
		if v.pg.Next() {
			v.cursor = 0
		}

	case key.Matches(keyMsg, v.keys.Select):
		if v.cursor < len(page) {
			return v, navigate(guard.RouteDetail(page[v.cursor].ID))
		}

	case key.Matches(keyMsg, v.keys.Search):
		v.form = v.newForm()
		v.mode = modeForm
		return v, v.form.Init()

	case key.Matches(keyMsg, v.keys.Reset):
		v.resetForm()
		return v, v.form.Init()

	case key.Matches(keyMsg, v.keys.Create):
		return v, navigate(guard.RouteCreate)
	}
	return v, nil
}

func (v *searchView) View() string {
	if v.mode == modeForm {
		return StyleHeader.Render("Search the catalog") + "\n\n" + v.form.View()
	}
	return v.viewResults()
}

func (v *searchView) viewResults() string {
	var b strings.Builder

	switch {
	case v.errMsg != "":
		b.WriteString(StyleError.Render("✗ Search failed: "+v.errMsg) + "\n\n")
	case v.inflight && v.fromCache:
		b.WriteString(fmt.Sprintf("%s Refreshing … showing cached results (%d)\n\n", v.spin.View(), len(v.books)))
	case v.inflight:
		b.WriteString(v.spin.View() + " Searching …\n\n")
	default:
		b.WriteString(StyleHeader.Render(fmt.Sprintf("Results (%d books found)", len(v.books))) + "\n\n")
	}

	if !v.inflight && v.errMsg == "" && len(v.books) == 0 {
		b.WriteString(StyleHelp.Render("No books found. Try other criteria.") + "\n")
	}

	page := pager.Slice(v.books, v.pg.Page(), v.pg.Size())
	for i, book := range page {
		line := formatBookLine(book)
		if i == v.cursor {
			line = StyleHighlight.Render("› " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	if bar := v.paginationBar(); bar != "" {
		b.WriteString("\n" + bar + "\n")
	}

	b.WriteString("\n" + StyleHelp.Render("enter details · ←/→ page · s new search · r reset · c create · q quit"))
	return b.String()
}

// paginationBar renders the page-number window. Hidden entirely when a
// single page holds everything.
func (v *searchView) paginationBar() string {
	if v.pg.TotalPages() <= 1 {
		return ""
	}
	var parts []string
	for _, p := range v.pg.Window(v.deps.PageWindow) {
		switch {
		case p == pager.Ellipsis:
			parts = append(parts, StyleHelp.Render("…"))
		case p == v.pg.Page():
			parts = append(parts, StylePageActive.Render(strconv.Itoa(p)))
		default:
			parts = append(parts, strconv.Itoa(p))
		}
	}
	return "Page: " + strings.Join(parts, " ")
}

func formatBookLine(b api.Book) string {
	rating := ""
	if b.Rating != nil {
		rating = strings.Repeat("★", *b.Rating)
	}
	avail := ""
	if b.Available {
		avail = StyleAvailable.Render(" ✓")
	}
	kw := ""
	if len(b.Keywords) > 0 {
		kw = " " + StyleKeyword.Render("["+strings.Join(b.Keywords, ",")+"]")
	}
	return fmt.Sprintf("%-30s  %-15s  %-10s %-5s %7.2f €%s%s",
		b.Title.Main, b.ISBN, b.Kind, rating, b.Price, avail, kw)
}
