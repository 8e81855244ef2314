package sessions

import "time"

// Session is the single client-side authentication record. It is created on
// login, replaced wholesale on every refresh, and destroyed on logout or an
// irrecoverable refresh failure. The JSON tags match both the persisted blob
// and the token payloads returned by the Hub API.
type Session struct {
	AccessToken           string    `json:"accessToken"`
	RefreshToken          string    `json:"refreshToken"`
	AccessTokenExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
	Email                 string    `json:"email,omitempty"` // captured at login time, not from the token payload
}
