package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for API operations
var (
	// ErrUnauthorized indicates the caller must authenticate (HTTP 401)
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden indicates the operation is not permitted for the principal (HTTP 403)
	ErrForbidden = errors.New("operation not permitted")

	// ErrNotFound indicates the target entity does not exist (HTTP 404)
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a business-rule violation such as an already
	// borrowed book or a duplicate active reservation (HTTP 409)
	ErrConflict = errors.New("conflict")

	// ErrUnreachable indicates a transport-level failure with no HTTP status
	ErrUnreachable = errors.New("server is unreachable")
)

// APIError carries the HTTP status and server-supplied message of a failed
// request. It matches the corresponding sentinel via errors.Is, so callers
// can branch on the category while still reading the server's message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// Is maps the status code onto the sentinel taxonomy.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrConflict:
		return e.Status == http.StatusConflict
	}
	return false
}

const unreachableMessage = "Cannot reach the server. Please check your connection and try again."

// FriendlyMessage turns an API error into user-facing text. Precedence:
// a caller-supplied override for the exact status, then the server's own
// message, then a transport-failure default, then the fallback. Never
// returns an empty string.
func FriendlyMessage(err error, overrides map[int]string, fallback string) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if msg, ok := overrides[apiErr.Status]; ok && msg != "" {
			return msg
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}

	if errors.Is(err, ErrUnreachable) {
		if msg, ok := overrides[0]; ok && msg != "" {
			return msg
		}
		return unreachableMessage
	}

	return fallback
}
