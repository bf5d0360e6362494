// Package api is the client for the remote book-catalog service: a
// GraphQL endpoint reached through a fixed middleware pipeline that
// observes faults and attaches the session's bearer credential.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const defaultPath = "/graphql"

// Options tune the client beyond its defaults.
type Options struct {
	// Path is the GraphQL endpoint path, default /graphql.
	Path string
	// Timeout bounds a whole exchange, default 30s.
	Timeout time.Duration
	// InsecureSkipVerify disables TLS verification for self-signed
	// development backends.
	InsecureSkipVerify bool
	// Logger receives pipeline diagnostics; defaults to slog.Default().
	Logger *slog.Logger
}

// Client talks to the catalog service. All exchanges go through the
// request pipeline; see newTransport for the stage order.
type Client struct {
	endpoint string
	http     *http.Client
}

// New creates a Client for the service at baseURL, sourcing credentials
// from tokens.
func New(baseURL string, tokens TokenSource, opts Options) *Client {
	if opts.Path == "" {
		opts.Path = defaultPath
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	var base http.RoundTripper = http.DefaultTransport
	if opts.InsecureSkipVerify {
		base = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Client{
		endpoint: strings.TrimRight(baseURL, "/") + opts.Path,
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: newTransport(base, tokens, opts.Logger),
		},
	}
}

// gqlRequest is the JSON envelope sent to the endpoint.
type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// gqlError is a single error entry in a GraphQL response.
type gqlError struct {
	Message    string         `json:"message"`
	Extensions map[string]any `json:"extensions"`
}

// gqlResponse is the JSON envelope the endpoint answers with.
type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// do executes one GraphQL exchange and decodes the data payload into out.
// Error classification follows the taxonomy: transport faults are wrapped,
// credential rejections map to ErrUnauthorized/ErrForbidden, everything
// else surfaces the service's own messages via RemoteError.
func (c *Client) do(ctx context.Context, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(gqlRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog service unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	default:
		return fmt.Errorf("catalog service error %d", resp.StatusCode)
	}

	var envelope gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return classify(envelope.Errors)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decoding response data: %w", err)
		}
	}
	return nil
}

// classify maps GraphQL error entries onto the client's error taxonomy.
func classify(errs []gqlError) error {
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		if code, _ := e.Extensions["code"].(string); code == "UNAUTHENTICATED" {
			return ErrUnauthorized
		}
		if e.Message != "" {
			messages = append(messages, e.Message)
		}
	}
	return &RemoteError{Messages: messages}
}
