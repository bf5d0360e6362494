package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/buchctl/internal/api"
	"github.com/blackwell-systems/buchctl/internal/guard"
)

// detailResultMsg is the completion of a single-record fetch.
type detailResultMsg struct {
	gen  int
	book *api.Book
	err  error
}

func (m detailResultMsg) generation() int { return m.gen }

// deleteResultMsg is the completion of a record deletion.
type deleteResultMsg struct {
	gen int
	err error
}

func (m deleteResultMsg) generation() int { return m.gen }

type detailState int

const (
	detailLoading detailState = iota
	detailLoaded
	detailNotFound
	detailFailed
)

// detailView shows one record, with deletion behind a confirmation step.
type detailView struct {
	deps Deps
	gen  int
	id   string

	state      detailState
	book       *api.Book
	errMsg     string
	confirming bool
	deleting   bool
	spin       spinner.Model
}

func newDetailView(deps Deps, gen int, id string) *detailView {
	return &detailView{
		deps: deps,
		gen:  gen,
		id:   id,
		spin: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (v *detailView) Init() tea.Cmd {
	return tea.Batch(v.spin.Tick, v.fetchCmd())
}

func (v *detailView) fetchCmd() tea.Cmd {
	gen, id, client := v.gen, v.id, v.deps.API
	return func() tea.Msg {
		book, err := client.Get(context.Background(), id)
		return detailResultMsg{gen: gen, book: book, err: err}
	}
}

func (v *detailView) deleteCmd() tea.Cmd {
	gen, id, client := v.gen, v.id, v.deps.API
	return func() tea.Msg {
		return deleteResultMsg{gen: gen, err: client.Delete(context.Background(), id)}
	}
}

func (v *detailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		if v.state == detailLoading || v.deleting {
			return v, cmd
		}
		return v, nil

	case detailResultMsg:
		switch {
		case errors.Is(msg.err, api.ErrNotFound):
			// Distinct from a transport failure: the record is gone.
			v.state = detailNotFound
		case msg.err != nil:
			v.state = detailFailed
			v.errMsg = msg.err.Error()
		default:
			v.state = detailLoaded
			v.book = msg.book
		}
		return v, nil

	case deleteResultMsg:
		v.deleting = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		return v, navigate(guard.RouteSearch)

	case tea.KeyMsg:
		return v.updateKeys(msg)
	}
	return v, nil
}

func (v *detailView) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.deleting {
		return v, nil
	}

	if v.confirming {
		switch msg.String() {
		case "y", "Y":
			v.confirming = false
			v.deleting = true
			v.errMsg = ""
			return v, tea.Batch(v.spin.Tick, v.deleteCmd())
		case "n", "N", "esc":
			v.confirming = false
		}
		return v, nil
	}

	switch msg.String() {
	case "esc", "backspace":
		return v, navigate(guard.RouteSearch)
	case "d":
		if v.state == detailLoaded {
			v.confirming = true
		}
	case "q":
		return v, tea.Quit
	}
	return v, nil
}

func (v *detailView) View() string {
	var b strings.Builder

	switch v.state {
	case detailLoading:
		b.WriteString(v.spin.View() + " Loading …\n")
		return b.String()

	case detailNotFound:
		b.WriteString(StyleError.Render("✗ Book could not be loaded. It may have been deleted.") + "\n\n")
		b.WriteString(StyleHelp.Render("esc back to search"))
		return b.String()

	case detailFailed:
		b.WriteString(StyleError.Render("✗ "+v.errMsg) + "\n\n")
		b.WriteString(StyleHelp.Render("esc back to search"))
		return b.String()
	}

	book := v.book
	b.WriteString(StyleHeader.Render(book.Title.Main) + "\n")
	if book.Title.Subtitle != "" {
		b.WriteString(StyleHelp.Render(book.Title.Subtitle) + "\n")
	}
	b.WriteString("\n")

	row := func(label, value string) {
		if value != "" {
			b.WriteString(fmt.Sprintf("%-12s %s\n", label, value))
		}
	}
	row("ID", book.ID)
	row("ISBN", book.ISBN)
	row("Kind", book.Kind)
	if book.Rating != nil {
		row("Rating", strings.Repeat("★", *book.Rating))
	}
	row("Price", fmt.Sprintf("%.2f €", book.Price))
	row("Discount", book.Discount)
	if book.Available {
		row("Available", StyleAvailable.Render("yes"))
	} else {
		row("Available", "no")
	}
	row("Date", book.Date)
	row("Homepage", book.Homepage)
	if len(book.Keywords) > 0 {
		row("Keywords", StyleKeyword.Render(strings.Join(book.Keywords, ", ")))
	}

	if v.errMsg != "" {
		b.WriteString("\n" + StyleError.Render("✗ "+v.errMsg) + "\n")
	}

	switch {
	case v.deleting:
		b.WriteString("\n" + v.spin.View() + " Deleting …\n")
	case v.confirming:
		b.WriteString("\n" + StyleError.Render("Delete this book? (y/n)") + "\n")
	default:
		b.WriteString("\n" + StyleHelp.Render("d delete · esc back · q quit"))
	}
	return b.String()
}
