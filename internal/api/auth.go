package api

import (
	"context"

	"github.com/blackwell-systems/buchctl/internal/session"
)

const tokenMutation = `
mutation Token($username: String!, $password: String!) {
  token(username: $username, password: $password) {
    access_token
    expires_in
    refresh_token
    refresh_expires_in
  }
}`

const refreshMutation = `
mutation RefreshToken($refreshToken: String!) {
  refresh(refreshToken: $refreshToken) {
    access_token
    expires_in
    refresh_token
    refresh_expires_in
  }
}`

// tokenPayload mirrors the wire names of the token/refresh results.
type tokenPayload struct {
	AccessToken      string `json:"access_token"`
	ExpiresIn        int    `json:"expires_in"`
	RefreshToken     string `json:"refresh_token"`
	RefreshExpiresIn int    `json:"refresh_expires_in"`
}

// Token performs the credential exchange. Satisfies session.TokenExchanger.
func (c *Client) Token(ctx context.Context, username, password string) (session.TokenPair, error) {
	var data struct {
		Token *tokenPayload `json:"token"`
	}
	err := c.do(ctx, tokenMutation, map[string]any{
		"username": username,
		"password": password,
	}, &data)
	if err != nil {
		return session.TokenPair{}, err
	}
	if data.Token == nil {
		return session.TokenPair{}, ErrUnauthorized
	}
	return pairOf(*data.Token), nil
}

// Refresh trades a refresh credential for a fresh pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (session.TokenPair, error) {
	var data struct {
		Refresh *tokenPayload `json:"refresh"`
	}
	err := c.do(ctx, refreshMutation, map[string]any{
		"refreshToken": refreshToken,
	}, &data)
	if err != nil {
		return session.TokenPair{}, err
	}
	if data.Refresh == nil {
		return session.TokenPair{}, ErrUnauthorized
	}
	return pairOf(*data.Refresh), nil
}

func pairOf(p tokenPayload) session.TokenPair {
	return session.TokenPair{
		AccessToken:      p.AccessToken,
		ExpiresIn:        p.ExpiresIn,
		RefreshToken:     p.RefreshToken,
		RefreshExpiresIn: p.RefreshExpiresIn,
	}
}
