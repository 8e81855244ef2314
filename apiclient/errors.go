package apiclient

import (
	"errors"
	"fmt"
)

// CodeHTTPError is the fallback application code when a failed response
// carries no JSON body with its own code.
const CodeHTTPError = "HTTP_ERROR"

// APIError is the normalized failure for a single Hub API request. It carries
// the HTTP status alongside the application-level message and code returned
// by the server, when present.
type APIError struct {
	Message string
	Status  int
	Code    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// AsAPIError unwraps err to the *APIError in its chain, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == status
}
