package token

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// msRoleClaim is the WS-Federation role claim URI some issuers emit instead
// of a plain "role" claim.
const msRoleClaim = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"

// Claims is the decoded payload of a Hub access token. Nothing here is
// signature-checked; the values are for display and derivation only and must
// never drive a trust decision.
type Claims struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
	Role      string
	ExpiresAt time.Time // zero when the token carries no exp claim
	IssuedAt  time.Time // zero when the token carries no iat claim
}

// DecodePayload decodes the claims segment of raw without verifying the
// signature. It returns nil unless raw splits into exactly three dot-separated
// segments and the middle segment is valid URL-safe base64 JSON.
func DecodePayload(raw string) *Claims {
	if raw == "" {
		return nil
	}

	parsed, _, err := jwtlib.NewParser(jwtlib.WithPaddingAllowed()).ParseUnverified(raw, jwtlib.MapClaims{})
	if err != nil {
		return nil
	}

	mapClaims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil
	}

	claims := &Claims{}
	claims.Subject, _ = mapClaims["sub"].(string)
	claims.Email, _ = mapClaims["email"].(string)
	claims.FirstName, _ = mapClaims["first_name"].(string)
	claims.LastName, _ = mapClaims["last_name"].(string)

	if role, ok := mapClaims["role"].(string); ok && role != "" {
		claims.Role = role
	} else {
		claims.Role, _ = mapClaims[msRoleClaim].(string)
	}

	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}
	if iat, ok := mapClaims["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0)
	}

	return claims
}

// FullName joins the first and last names, returning an empty string when
// neither is present.
func (c *Claims) FullName() string {
	switch {
	case c.FirstName != "" && c.LastName != "":
		return c.FirstName + " " + c.LastName
	case c.FirstName != "":
		return c.FirstName
	default:
		return c.LastName
	}
}
