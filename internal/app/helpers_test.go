package app

import (
	"testing"

	"github.com/blackwell-systems/buchctl/internal/query"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 30, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a much longer title than fits", 10, "a much lo…"},
	}
	for _, c := range cases {
		if got := truncate(c.in, c.n); got != c.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", c.in, c.n, got, c.want)
		}
	}
}

func TestValidKind(t *testing.T) {
	for _, k := range query.Kinds {
		if !validKind(k) {
			t.Errorf("validKind(%q) = false", k)
		}
	}
	for _, k := range []string{"", "epub", "AUDIOBOOK"} {
		if validKind(k) {
			t.Errorf("validKind(%q) = true", k)
		}
	}
}

func TestRequired(t *testing.T) {
	check := required("username")
	if err := check(""); err == nil {
		t.Error("empty value accepted")
	}
	if err := check("   "); err == nil {
		t.Error("whitespace-only value accepted")
	}
	if err := check("admin"); err != nil {
		t.Errorf("valid value rejected: %v", err)
	}
}
