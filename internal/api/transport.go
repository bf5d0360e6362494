package api

import (
	"log/slog"
	"net/http"
)

// TokenSource yields the current access credential, or "" when logged out.
// Implemented by session.Store.
type TokenSource interface {
	AccessToken() string
}

// newTransport composes the fixed request pipeline, outermost first:
// observe (log faults, never alter them) → bearer (attach the credential)
// → base (the actual network exchange). The pipeline does not retry and
// does not refresh an expired credential.
func newTransport(base http.RoundTripper, tokens TokenSource, log *slog.Logger) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &observeTransport{
		log: log,
		base: &bearerTransport{
			tokens: tokens,
			base:   base,
		},
	}
}

// observeTransport reports any fault or error status surfacing from the
// inner stages to the diagnostic sink. Pure side channel: the response and
// error pass through unmodified.
type observeTransport struct {
	base http.RoundTripper
	log  *slog.Logger
}

func (t *observeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	switch {
	case err != nil:
		t.log.Error("request failed",
			"method", req.Method,
			"url", req.URL.String(),
			"error", err,
		)
	case resp.StatusCode >= 400:
		t.log.Warn("request rejected",
			"method", req.Method,
			"url", req.URL.String(),
			"status", resp.StatusCode,
		)
	}
	return resp, err
}

// bearerTransport attaches the current access credential as a bearer
// token. With no credential the request goes out unauthenticated; the
// service is the one that decides to reject it.
type bearerTransport struct {
	tokens TokenSource
	base   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := t.tokens.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return t.base.RoundTrip(req)
}
