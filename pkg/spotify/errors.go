package spotify

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a Spotify Web API error response.
type Error struct {
	Status  int    // HTTP status reported by Spotify
	Message string // Error message from Spotify
}

// Error returns the error message.
func (e *Error) Error() string {
	return fmt.Sprintf("spotify: error %d: %s", e.Status, e.Message)
}

// Is checks if the target error is a Spotify error with the same status.
//
// This allows errors.Is() to work with *Error types.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Status == t.Status
}

// Temporary returns true if the request should be retried: rate limiting
// (429) and server-side failures (5xx).
func (e *Error) Temporary() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// Predefined errors for common cases.
var (
	// ErrNotFound is returned when a search matches nothing.
	ErrNotFound = errors.New("spotify: no match found")
)
