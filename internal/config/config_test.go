package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blackwell-systems/buchctl/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BUCHCTL_CONFIG", filepath.Join(t.TempDir(), "missing.yml"))

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "https://localhost:3000" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Path != "/graphql" {
		t.Errorf("Path = %q", cfg.API.Path)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.API.Timeout)
	}
	if cfg.Search.PageSize != 5 || cfg.Search.PageWindow != 5 {
		t.Errorf("Search = %+v", cfg.Search)
	}
	if cfg.Session.File == "" {
		t.Error("Session.File is empty")
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	body := `
api:
  base_url: https://catalog.example.com
  insecure: true
search:
  page_size: 10
`
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BUCHCTL_CONFIG", path)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "https://catalog.example.com" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if !cfg.API.Insecure {
		t.Error("Insecure = false, want true")
	}
	if cfg.Search.PageSize != 10 {
		t.Errorf("PageSize = %d, want 10", cfg.Search.PageSize)
	}
	// Unset values still get defaults.
	if cfg.Search.PageWindow != 5 {
		t.Errorf("PageWindow = %d, want 5", cfg.Search.PageWindow)
	}
}

func TestLoad_InvalidPageSizeFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("search:\n  page_size: 0\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BUCHCTL_CONFIG", path)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Search.PageSize != 5 {
		t.Errorf("PageSize = %d, want fallback 5", cfg.Search.PageSize)
	}
}

func TestExpandHome(t *testing.T) {
	home, _ := os.UserHomeDir()
	if got := config.ExpandHome("~/x/session.yml"); got != filepath.Join(home, "x", "session.yml") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := config.ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome(abs) = %q", got)
	}
}
