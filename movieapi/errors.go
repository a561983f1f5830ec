package movieapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an API failure.
type Kind int

const (
	// KindNetwork indicates a transport failure or timeout.
	KindNetwork Kind = iota + 1
	// KindAuth indicates a missing or rejected token (401/403).
	KindAuth
	// KindNotFound indicates an unknown resource (404).
	KindNotFound
	// KindValidation indicates a malformed request body (400/422).
	KindValidation
	// KindServer indicates a 5xx or an unexpected response shape.
	KindServer
)

// String returns the human readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is a classified failure returned by the API client.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("movieapi: %s error (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("movieapi: %s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("movieapi: %s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// kindForStatus maps an HTTP status code to an error kind.
func kindForStatus(code int) Kind {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return KindAuth
	case code == http.StatusNotFound:
		return KindNotFound
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindServer
	}
}

// IsKind reports whether err is an API error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// IsNetwork reports whether err is a transport failure or timeout.
func IsNetwork(err error) bool { return IsKind(err, KindNetwork) }

// IsAuth reports whether err is a missing/rejected token error.
func IsAuth(err error) bool { return IsKind(err, KindAuth) }

// IsNotFound reports whether err is an unknown-resource error.
func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }

// IsValidation reports whether err is a malformed-request error.
func IsValidation(err error) bool { return IsKind(err, KindValidation) }

// IsServer reports whether err is a server-side failure.
func IsServer(err error) bool { return IsKind(err, KindServer) }
