// Package session owns the authentication state: the in-memory Session,
// the persisted credential record, and the login/logout/refresh
// operations that are the only things allowed to mutate either.
package session

import "context"

// Identity describes the logged-in user as derived from the access token.
type Identity struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// Session is the current authentication state. Authenticated is true iff
// AccessToken is non-empty and Identity is non-nil; all four fields change
// together within a single store operation.
type Session struct {
	Authenticated bool
	AccessToken   string
	RefreshToken  string
	Identity      *Identity
}

// TokenPair is the credential set returned by the remote service's
// token and refresh operations.
type TokenPair struct {
	AccessToken      string
	ExpiresIn        int
	RefreshToken     string
	RefreshExpiresIn int
}

// TokenExchanger performs the remote credential exchange. Implemented by
// api.Client; injected so the store stays free of transport concerns.
type TokenExchanger interface {
	Token(ctx context.Context, username, password string) (TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}
