// internal/apiclient/errors.go
package apiclient

import (
	"errors"
	"fmt"
)

// Sentinel errors for the HTTP-level failure classes callers branch on.
var (
	ErrUnauthorized = errors.New("session expired, please sign in again")
	ErrForbidden    = errors.New("insufficient permissions")
	ErrRateLimited  = errors.New("too many requests, please try again later")
)

// APIError is a business failure: the server answered HTTP 200 but the
// envelope carried a non-zero code.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with code %d", e.Code)
}

// AsAPIError unwraps err into an *APIError when it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
