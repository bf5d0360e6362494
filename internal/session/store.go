package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// record is the persisted session file: three fixed keys, with the
// identity serialized as JSON under its key. Presence of access_token and
// identity together is what makes a restored session authenticated; a
// partial record is treated as absent, never repaired.
type record struct {
	AccessToken  string `yaml:"access_token"`
	RefreshToken string `yaml:"refresh_token"`
	Identity     string `yaml:"identity"`
}

// Store is the single source of truth for "am I logged in". It is created
// once at startup and injected into the request pipeline (as a TokenSource)
// and the route guard (as a SessionReader).
//
// The store serializes its own state mutation but does not deduplicate
// concurrent Login calls; at-most-one-in-flight is the caller's invariant
// (submit controls are disabled while a call runs).
type Store struct {
	path string
	exch TokenExchanger

	mu  sync.Mutex
	cur Session
}

// Open creates a Store persisting to path and immediately restores any
// existing record. Restoring never fails: an unreadable, unparsable, or
// partial record degrades to a not-authenticated session.
func Open(path string, exch TokenExchanger) *Store {
	s := &Store{path: path, exch: exch}
	s.Restore()
	return s
}

// SetExchanger installs the credential exchanger after construction. The
// store is created before the API client (the client needs the store as
// its token source), so the exchanger is bound once both exist.
func (s *Store) SetExchanger(exch TokenExchanger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exch = exch
}

// Restore re-reads the persisted record. No network call is made; a stale
// but well-formed record is treated as valid until the remote service
// rejects a request using it.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = readRecord(s.path)
}

// Current returns a snapshot of the session.
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Authenticated reports whether a login is active. Satisfies guard.SessionReader.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.Authenticated
}

// AccessToken returns the current access credential, or "" when logged
// out. Satisfies api.TokenSource.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.AccessToken
}

// Login exchanges credentials with the remote service. On success the
// whole session changes atomically and the record is written; on failure
// the session is left exactly as it was and the returned error carries a
// human-readable cause.
func (s *Store) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	exch := s.exch
	s.mu.Unlock()
	if exch == nil {
		return fmt.Errorf("login failed: no credential exchanger configured")
	}

	pair, err := exch.Token(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if pair.AccessToken == "" {
		return fmt.Errorf("login failed: service returned no access token")
	}

	identity := identityFromToken(pair.AccessToken, username)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = Session{
		Authenticated: true,
		AccessToken:   pair.AccessToken,
		RefreshToken:  pair.RefreshToken,
		Identity:      identity,
	}
	if err := writeRecord(s.path, s.cur); err != nil {
		// Session stays usable for this process; persistence is best effort.
		return fmt.Errorf("login succeeded but session could not be saved: %w", err)
	}
	return nil
}

// Refresh obtains a new credential pair using the stored refresh token.
// This is the only consumer of the refresh credential; the request
// pipeline never refreshes automatically.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	cur := s.cur
	exch := s.exch
	s.mu.Unlock()

	if !cur.Authenticated || cur.RefreshToken == "" {
		return fmt.Errorf("not logged in")
	}
	if exch == nil {
		return fmt.Errorf("refresh failed: no credential exchanger configured")
	}
	pair, err := exch.Refresh(ctx, cur.RefreshToken)
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}
	if pair.AccessToken == "" {
		return fmt.Errorf("refresh failed: service returned no access token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.AccessToken = pair.AccessToken
	if pair.RefreshToken != "" {
		s.cur.RefreshToken = pair.RefreshToken
	}
	if err := writeRecord(s.path, s.cur); err != nil {
		return fmt.Errorf("refresh succeeded but session could not be saved: %w", err)
	}
	return nil
}

// Logout clears the session and erases the persisted record. Idempotent:
// logging out while logged out is a no-op.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = Session{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

func readRecord(path string) Session {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}
	}
	var rec record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return Session{}
	}
	if rec.AccessToken == "" || rec.Identity == "" {
		return Session{}
	}
	var id Identity
	if err := json.Unmarshal([]byte(rec.Identity), &id); err != nil {
		return Session{}
	}
	return Session{
		Authenticated: true,
		AccessToken:   rec.AccessToken,
		RefreshToken:  rec.RefreshToken,
		Identity:      &id,
	}
}

func writeRecord(path string, sess Session) error {
	idJSON, err := json.Marshal(sess.Identity)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(record{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		Identity:     string(idJSON),
	})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
