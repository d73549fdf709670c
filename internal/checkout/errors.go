package checkout

import (
	"errors"
	"fmt"
)

// Validation errors returned by CreatePix before any request is made.
var (
	ErrMissingFields = errors.New("checkout: name and email are required")
	ErrInvalidEmail  = errors.New("checkout: invalid email")
	ErrInvalidFlow   = errors.New("checkout: unknown flow")
)

// defaultAPIMessage is used when the backend rejects a request without
// saying why.
const defaultAPIMessage = "unknown error generating payment"

// APIError is returned when the payment backend answers with a non-2xx
// status or reports success=false.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 || (e.StatusCode >= 200 && e.StatusCode < 300) {
		return "checkout: " + e.Body
	}
	return fmt.Sprintf("checkout: error %d: %s", e.StatusCode, e.Body)
}
