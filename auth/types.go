package auth

import (
	"time"

	"github.com/projectshub/go-hub-client/sessions"
)

// SignupRequest is the account-creation payload. The role is assigned by the
// backend and never sent by the client.
type SignupRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
}

// LoginRequest carries the credentials for a password login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// SignupResponse carries the optional confirmation message from a signup.
type SignupResponse struct {
	Message string `json:"message,omitempty"`
}

// TokenPayload is the wire shape of login and refresh responses.
type TokenPayload struct {
	AccessToken           string    `json:"accessToken"`
	RefreshToken          string    `json:"refreshToken"`
	AccessTokenExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
}

// session builds the Session adopted after a login or refresh. The email is
// whatever the client already knows, never a field of the payload.
func (p TokenPayload) session(email string) *sessions.Session {
	return &sessions.Session{
		AccessToken:           p.AccessToken,
		RefreshToken:          p.RefreshToken,
		AccessTokenExpiresAt:  p.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: p.RefreshTokenExpiresAt,
		Email:                 email,
	}
}
