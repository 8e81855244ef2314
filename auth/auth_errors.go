package auth

import (
	"net/http"

	"github.com/projectshub/go-hub-client/apiclient"
)

// Application codes for the synthetic failures the coordinator raises before
// any network traffic happens.
const (
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeNoRefreshToken = "NO_REFRESH_TOKEN"
)

func errNotLoggedIn() *apiclient.APIError {
	return &apiclient.APIError{
		Message: "you are not logged in",
		Status:  http.StatusUnauthorized,
		Code:    CodeUnauthorized,
	}
}

func errNoRefreshToken() *apiclient.APIError {
	return &apiclient.APIError{
		Message: "no refresh token available",
		Status:  http.StatusUnauthorized,
		Code:    CodeNoRefreshToken,
	}
}
