package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/blackwell-systems/buchctl/internal/api"
	"github.com/blackwell-systems/buchctl/internal/guard"
	"github.com/blackwell-systems/buchctl/internal/query"
)

// createResultMsg is the completion of a record creation.
type createResultMsg struct {
	gen int
	id  string
	err error
}

func (m createResultMsg) generation() int { return m.gen }

// createView collects a new record. Validation runs inside the form,
// before any request is sent, so a malformed payload never reaches the
// service.
type createView struct {
	deps Deps
	gen  int

	title     string
	subtitle  string
	isbn      string
	price     string
	rating    string
	kind      string
	available bool
	keywords  []string
	homepage  string
	date      string
	form      *huh.Form

	inflight bool
	spin     spinner.Model
	errMsg   string
}

func newCreateView(deps Deps, gen int) *createView {
	v := &createView{
		deps: deps,
		gen:  gen,
		spin: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	v.rating = "1"
	v.kind = query.KindEpub
	v.form = v.newForm()
	return v
}

func (v *createView) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&v.title).
				Validate(required("title")),
			huh.NewInput().
				Title("Subtitle").
				Value(&v.subtitle),
			huh.NewInput().
				Title("ISBN").
				Placeholder("978-…").
				Value(&v.isbn).
				Validate(required("isbn")),
			huh.NewInput().
				Title("Price").
				Placeholder("29.90").
				Value(&v.price).
				Validate(validPrice),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Rating").
				Options(huh.NewOptions("1", "2", "3", "4", "5")...).
				Value(&v.rating),
			huh.NewSelect[string]().
				Title("Kind").
				Options(huh.NewOptions(query.Kinds...)...).
				Value(&v.kind),
			huh.NewConfirm().
				Title("Available?").
				Value(&v.available),
			huh.NewMultiSelect[string]().
				Title("Keywords").
				Options(huh.NewOptions(searchKeywords...)...).
				Value(&v.keywords),
			huh.NewInput().
				Title("Homepage").
				Placeholder("https://…").
				Value(&v.homepage),
			huh.NewInput().
				Title("Date").
				Placeholder("2026-02-01").
				Value(&v.date),
		),
	).WithShowHelp(false)
}

func validPrice(s string) error {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("price must be a number")
	}
	if n < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}

func (v *createView) input() api.BookInput {
	price, _ := strconv.ParseFloat(strings.TrimSpace(v.price), 64)
	input := api.BookInput{
		ISBN:      strings.TrimSpace(v.isbn),
		Kind:      v.kind,
		Price:     price,
		Available: v.available,
		Homepage:  strings.TrimSpace(v.homepage),
		Date:      strings.TrimSpace(v.date),
		Keywords:  v.keywords,
		Title: api.Title{
			Main:     strings.TrimSpace(v.title),
			Subtitle: strings.TrimSpace(v.subtitle),
		},
	}
	if n, err := strconv.Atoi(v.rating); err == nil {
		input.Rating = &n
	}
	return input
}

func (v *createView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *createView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		if v.inflight {
			return v, cmd
		}
		return v, nil

	case createResultMsg:
		v.inflight = false
		if msg.err != nil {
			// Remote rejection (validation or otherwise): back to the form
			// with the service's message inline.
			v.errMsg = msg.err.Error()
			v.form = v.newForm()
			return v, v.form.Init()
		}
		return v, navigate(guard.RouteDetail(msg.id))
	}

	if v.inflight {
		return v, nil
	}

	model, cmd := v.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State == huh.StateCompleted {
		v.inflight = true
		v.errMsg = ""
		return v, tea.Batch(v.spin.Tick, v.createCmd())
	}
	if v.form.State == huh.StateAborted {
		return v, navigate(guard.RouteSearch)
	}
	return v, cmd
}

func (v *createView) createCmd() tea.Cmd {
	gen, input, client := v.gen, v.input(), v.deps.API
	return func() tea.Msg {
		id, err := client.Create(context.Background(), input)
		return createResultMsg{gen: gen, id: id, err: err}
	}
}

func (v *createView) View() string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render("New book") + "\n\n")
	if v.errMsg != "" {
		b.WriteString(StyleError.Render("✗ "+v.errMsg) + "\n\n")
	}
	if v.inflight {
		b.WriteString(v.spin.View() + " Creating …\n")
		return b.String()
	}
	b.WriteString(v.form.View())
	return b.String()
}
