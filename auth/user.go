package auth

import (
	"time"

	"github.com/projectshub/go-hub-client/sessions"
	"github.com/projectshub/go-hub-client/token"
)

// User is the display view derived from the current session. It is recomputed
// from the access-token claims on every read and has no lifecycle of its own.
type User struct {
	UserID                string
	Email                 string
	FirstName             string
	LastName              string
	FullName              string
	Role                  string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
}

// userFromSession derives the User view. The login-time email wins over the
// token's email claim; claim decode failures degrade to empty fields.
func userFromSession(s *sessions.Session) *User {
	if s == nil {
		return nil
	}

	user := &User{
		Email:                 s.Email,
		AccessTokenExpiresAt:  s.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: s.RefreshTokenExpiresAt,
	}

	if claims := token.DecodePayload(s.AccessToken); claims != nil {
		user.UserID = claims.Subject
		user.FirstName = claims.FirstName
		user.LastName = claims.LastName
		user.FullName = claims.FullName()
		user.Role = claims.Role
		if user.Email == "" {
			user.Email = claims.Email
		}
	}

	return user
}
