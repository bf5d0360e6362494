// Package tui implements the interactive browser: a router that owns the
// current view and runs every navigation attempt through the route guard,
// plus the login, search, detail, and create views.
//
// Async completions are tagged with the router generation of the view
// that issued them; a completion arriving after its view was torn down is
// dropped instead of firing against the wrong screen.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/buchctl/internal/api"
	"github.com/blackwell-systems/buchctl/internal/cache"
	"github.com/blackwell-systems/buchctl/internal/guard"
	"github.com/blackwell-systems/buchctl/internal/session"
)

// Deps are the collaborators every view shares. The session store is the
// only mutable state that outlives a view.
type Deps struct {
	Session *session.Store
	API     *api.Client
	Cache   *cache.Results
	Guard   *guard.Guard

	PageSize   int
	PageWindow int
}

// navigateMsg asks the router to switch views.
type navigateMsg struct{ route guard.Route }

// navigate returns a command that routes to r (through the guard).
func navigate(r guard.Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: r} }
}

// generational is implemented by async completion messages so the router
// can drop ones issued by a view that no longer exists.
type generational interface{ generation() int }

// Router is the top-level model.
type Router struct {
	deps  Deps
	gen   int
	route guard.Route
	view  tea.Model
	width int
}

// NewRouter creates the router, entering at the search view; the guard
// redirects to login when the session is locked.
func NewRouter(deps Deps) *Router {
	r := &Router{deps: deps}
	r.resolve(guard.RouteSearch)
	return r
}

// resolve runs the guard until a route is allowed, then mounts its view.
func (r *Router) resolve(route guard.Route) {
	d := r.deps.Guard.Check(route)
	for !d.Allow {
		route = d.Redirect
		d = r.deps.Guard.Check(route)
	}
	r.gen++
	r.route = route
	switch route.Name {
	case guard.RouteLogin.Name:
		r.view = newLoginView(r.deps, r.gen)
	case guard.RouteCreate.Name:
		r.view = newCreateView(r.deps, r.gen)
	case "detail":
		r.view = newDetailView(r.deps, r.gen, route.ID)
	default:
		r.view = newSearchView(r.deps, r.gen)
	}
}

func (r *Router) Init() tea.Cmd {
	return r.view.Init()
}

func (r *Router) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return r, tea.Quit
		}
	case navigateMsg:
		r.resolve(msg.route)
		return r, r.view.Init()
	}

	// Completions from torn-down views are no-ops.
	if g, ok := msg.(generational); ok && g.generation() != r.gen {
		return r, nil
	}

	var cmd tea.Cmd
	r.view, cmd = r.view.Update(msg)
	return r, cmd
}

func (r *Router) View() string {
	return r.statusBar() + "\n\n" + r.view.View()
}

// statusBar shows the current location and who is logged in.
func (r *Router) statusBar() string {
	left := StyleHeader.Render("buchctl · " + r.route.Name)
	cur := r.deps.Session.Current()
	right := StyleHelp.Render("not logged in")
	if cur.Authenticated && cur.Identity != nil {
		right = StyleHelp.Render("user: " + cur.Identity.Username)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", right)
}

// Run starts the interactive browser.
func Run(deps Deps) error {
	p := tea.NewProgram(NewRouter(deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
