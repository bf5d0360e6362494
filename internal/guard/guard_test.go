package guard_test

import (
	"testing"

	"github.com/blackwell-systems/buchctl/internal/guard"
)

type fakeSession bool

func (f *fakeSession) Authenticated() bool { return bool(*f) }

func TestLocked_ProtectedRedirectsToLogin(t *testing.T) {
	authed := fakeSession(false)
	g := guard.New(&authed)

	for _, r := range []guard.Route{guard.RouteSearch, guard.RouteCreate, guard.RouteDetail("7")} {
		d := g.Check(r)
		if d.Allow {
			t.Errorf("Check(%v) allowed while locked", r)
		}
		if d.Redirect != guard.RouteLogin {
			t.Errorf("Check(%v) redirect = %v, want login", r, d.Redirect)
		}
	}
}

func TestLocked_LoginAllowed(t *testing.T) {
	authed := fakeSession(false)
	g := guard.New(&authed)
	if d := g.Check(guard.RouteLogin); !d.Allow {
		t.Errorf("login view should render while locked, got %+v", d)
	}
}

func TestUnlocked_ProtectedAllowed(t *testing.T) {
	authed := fakeSession(true)
	g := guard.New(&authed)
	for _, r := range []guard.Route{guard.RouteSearch, guard.RouteCreate, guard.RouteDetail("7")} {
		if d := g.Check(r); !d.Allow {
			t.Errorf("Check(%v) = %+v, want allow", r, d)
		}
	}
}

func TestReplayAfterLogin(t *testing.T) {
	authed := fakeSession(false)
	g := guard.New(&authed)

	// Denied navigation remembers the original destination.
	want := guard.RouteDetail("42")
	if d := g.Check(want); d.Allow {
		t.Fatal("detail allowed while locked")
	}

	// After login, entering the login view replays it.
	authed = true
	d := g.Check(guard.RouteLogin)
	if d.Allow {
		t.Fatal("authenticated user shown the login form")
	}
	if d.Redirect != want {
		t.Errorf("redirect = %v, want replay of %v", d.Redirect, want)
	}

	// The replay is consumed: next time it's the default view.
	if d := g.Check(guard.RouteLogin); d.Redirect != guard.RouteSearch {
		t.Errorf("redirect = %v, want default search", d.Redirect)
	}
}

func TestUnknownRouteFallsThroughToDefault(t *testing.T) {
	authed := fakeSession(true)
	g := guard.New(&authed)
	if d := g.Check(guard.Route{Name: "nope"}); d.Redirect != guard.RouteSearch {
		t.Errorf("unknown route while unlocked: %+v, want redirect to search", d)
	}

	authed = false
	if d := g.Check(guard.Route{Name: "nope"}); d.Redirect != guard.RouteLogin {
		t.Errorf("unknown route while locked: %+v, want redirect to login", d)
	}
}

func TestGuardReevaluatesOnEachNavigation(t *testing.T) {
	authed := fakeSession(true)
	g := guard.New(&authed)
	if d := g.Check(guard.RouteSearch); !d.Allow {
		t.Fatalf("expected allow, got %+v", d)
	}

	// Session flips (logout): the same navigation is now denied.
	authed = false
	if d := g.Check(guard.RouteSearch); d.Allow {
		t.Error("navigation allowed after logout")
	}
}
