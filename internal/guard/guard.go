// Package guard gates navigation between views on the session state. It
// is a pure, synchronous decision layer: it never calls the remote
// service, it only reads the session on each navigation attempt.
package guard

// Route names a navigable location. Detail routes carry the record ID.
type Route struct {
	Name string
	ID   string
}

// The fixed route surface.
var (
	RouteLogin  = Route{Name: "login"}
	RouteSearch = Route{Name: "search"}
	RouteCreate = Route{Name: "create"}
)

// RouteDetail is the single-record view for the given identifier.
func RouteDetail(id string) Route { return Route{Name: "detail", ID: id} }

// Protected reports whether the route requires an authenticated session.
// Everything except the login view is protected.
func (r Route) Protected() bool { return r.Name != RouteLogin.Name }

// known reports whether the route is part of the route surface.
func (r Route) known() bool {
	switch r.Name {
	case "login", "search", "create", "detail":
		return true
	}
	return false
}

// SessionReader is the slice of the session store the guard needs.
type SessionReader interface {
	Authenticated() bool
}

// Decision is the outcome of a navigation attempt. Exactly one of Allow
// or a redirect applies; Redirect carries where to go instead.
type Decision struct {
	Allow    bool
	Redirect Route
}

// Guard evaluates navigation attempts against the current session. It
// remembers the most recent denied route so a successful login can replay
// it.
type Guard struct {
	session SessionReader
	pending *Route
}

// New creates a Guard reading authentication state from session.
func New(session SessionReader) *Guard {
	return &Guard{session: session}
}

// Check evaluates a navigation attempt to the given route.
//
// Locked + protected route: redirect to login, remembering the request.
// Unlocked + protected route: allow.
// Unlocked + login route: redirect to the remembered route or the default
// view; an authenticated user is never shown the login form.
// Unknown routes fall through to the default for the current state.
func (g *Guard) Check(r Route) Decision {
	if !r.known() {
		if g.session.Authenticated() {
			return Decision{Redirect: RouteSearch}
		}
		return Decision{Redirect: RouteLogin}
	}

	if !r.Protected() {
		if g.session.Authenticated() {
			return Decision{Redirect: g.consumePending()}
		}
		return Decision{Allow: true}
	}

	if g.session.Authenticated() {
		return Decision{Allow: true}
	}
	pending := r
	g.pending = &pending
	return Decision{Redirect: RouteLogin}
}

// consumePending returns and clears the remembered route, defaulting to
// the search view.
func (g *Guard) consumePending() Route {
	if g.pending != nil {
		r := *g.pending
		g.pending = nil
		return r
	}
	return RouteSearch
}
