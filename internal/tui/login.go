package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/blackwell-systems/buchctl/internal/guard"
)

// loginResultMsg is the completion of a credential exchange.
type loginResultMsg struct {
	gen int
	err error
}

func (m loginResultMsg) generation() int { return m.gen }

// loginView collects credentials and drives Store.Login. Submission is
// disabled while an exchange is in flight so login is never issued twice
// concurrently.
type loginView struct {
	deps Deps
	gen  int

	username string
	password string
	form     *huh.Form

	inflight bool
	spin     spinner.Model
	errMsg   string
}

func newLoginView(deps Deps, gen int) *loginView {
	v := &loginView{
		deps: deps,
		gen:  gen,
		spin: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	v.form = v.newForm()
	return v
}

func (v *loginView) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&v.username).
				Validate(required("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&v.password).
				Validate(required("password")),
		),
	).WithShowHelp(false)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return &validationError{field: field}
		}
		return nil
	}
}

type validationError struct{ field string }

func (e *validationError) Error() string { return e.field + " is required" }

func (v *loginView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *loginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		if v.inflight {
			return v, cmd
		}
		return v, nil

	case loginResultMsg:
		v.inflight = false
		if msg.err != nil {
			// Inline failure; the session is untouched, the form returns.
			v.errMsg = msg.err.Error()
			v.password = ""
			v.form = v.newForm()
			return v, v.form.Init()
		}
		// The guard turns a login-view entry into the replayed or default
		// route now that the session is unlocked.
		return v, navigate(guard.RouteLogin)
	}

	if v.inflight {
		// No resubmission while the exchange runs.
		return v, nil
	}

	model, cmd := v.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State == huh.StateCompleted {
		v.inflight = true
		v.errMsg = ""
		return v, tea.Batch(v.spin.Tick, v.loginCmd())
	}
	if v.form.State == huh.StateAborted {
		return v, tea.Quit
	}
	return v, cmd
}

func (v *loginView) loginCmd() tea.Cmd {
	gen, username, password := v.gen, v.username, v.password
	store := v.deps.Session
	return func() tea.Msg {
		err := store.Login(context.Background(), username, password)
		return loginResultMsg{gen: gen, err: err}
	}
}

func (v *loginView) View() string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render("Log in") + "\n\n")
	if v.errMsg != "" {
		b.WriteString(StyleError.Render("✗ "+v.errMsg) + "\n\n")
	}
	if v.inflight {
		b.WriteString(v.spin.View() + " Logging in …\n")
		return b.String()
	}
	b.WriteString(v.form.View())
	return b.String()
}
