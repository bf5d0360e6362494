package api

import "errors"

// Common catalog service errors.
var (
	// ErrNotFound is returned when a record does not exist (anymore).
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when the service rejects the credential.
	ErrUnauthorized = errors.New("unauthorized: log in and try again")
	// ErrForbidden is returned when the logged-in user lacks the required role.
	ErrForbidden = errors.New("forbidden: your account lacks the required role")
)

// RemoteError carries GraphQL error messages the service returned for an
// otherwise well-formed exchange (validation failures and the like).
type RemoteError struct {
	Messages []string
}

func (e *RemoteError) Error() string {
	if len(e.Messages) == 0 {
		return "remote error"
	}
	if len(e.Messages) == 1 {
		return e.Messages[0]
	}
	out := e.Messages[0]
	for _, m := range e.Messages[1:] {
		out += "; " + m
	}
	return out
}
