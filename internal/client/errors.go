package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable marks transport-level failures: connection refused,
	// timeouts, cancelled contexts. The server never produced a response.
	ErrUnavailable = errors.New("server unavailable")
)

// APIError is a failure the server reported itself, either as a
// {success:false, detail} body or as a non-2xx response with a
// {"detail": "..."} payload.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server error (status %d)", e.StatusCode)
	}
	return e.Detail
}
