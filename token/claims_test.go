package token_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/projectshub/go-hub-client/token"
	"github.com/stretchr/testify/require"
)

func encodeSegment(t *testing.T, payload string) string {
	t.Helper()
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}

func makeToken(t *testing.T, payload string) string {
	t.Helper()
	header := encodeSegment(t, `{"alg":"HS256","typ":"JWT"}`)
	return header + "." + encodeSegment(t, payload) + ".signature"
}

func TestDecodePayload(t *testing.T) {
	t.Run("full claim set", func(t *testing.T) {
		raw := makeToken(t, `{"sub":"user-1","email":"john.doe@example.com","first_name":"John","last_name":"Doe","role":"ADMIN","exp":1893456000,"iat":1893455000}`)

		claims := token.DecodePayload(raw)
		require.NotNil(t, claims)
		require.Equal(t, "user-1", claims.Subject)
		require.Equal(t, "john.doe@example.com", claims.Email)
		require.Equal(t, "John", claims.FirstName)
		require.Equal(t, "Doe", claims.LastName)
		require.Equal(t, "ADMIN", claims.Role)
		require.Equal(t, time.Unix(1893456000, 0), claims.ExpiresAt)
		require.Equal(t, "John Doe", claims.FullName())
	})

	t.Run("microsoft role claim fallback", func(t *testing.T) {
		raw := makeToken(t, `{"sub":"user-2","http://schemas.microsoft.com/ws/2008/06/identity/claims/role":"EMPLOYEE"}`)

		claims := token.DecodePayload(raw)
		require.NotNil(t, claims)
		require.Equal(t, "EMPLOYEE", claims.Role)
	})

	t.Run("plain role wins over fallback", func(t *testing.T) {
		raw := makeToken(t, `{"role":"OWNER","http://schemas.microsoft.com/ws/2008/06/identity/claims/role":"EMPLOYEE"}`)

		claims := token.DecodePayload(raw)
		require.NotNil(t, claims)
		require.Equal(t, "OWNER", claims.Role)
	})

	t.Run("missing optional claims", func(t *testing.T) {
		raw := makeToken(t, `{"sub":"user-3"}`)

		claims := token.DecodePayload(raw)
		require.NotNil(t, claims)
		require.Empty(t, claims.Email)
		require.Empty(t, claims.Role)
		require.True(t, claims.ExpiresAt.IsZero())
		require.Empty(t, claims.FullName())
	})

	t.Run("empty token", func(t *testing.T) {
		require.Nil(t, token.DecodePayload(""))
	})

	t.Run("wrong segment count", func(t *testing.T) {
		require.Nil(t, token.DecodePayload("only-one-segment"))
		require.Nil(t, token.DecodePayload("two.segments"))
		require.Nil(t, token.DecodePayload("a.b.c.d"))
	})

	t.Run("claims segment is not base64", func(t *testing.T) {
		header := encodeSegment(t, `{"alg":"HS256","typ":"JWT"}`)
		require.Nil(t, token.DecodePayload(header+".!!!not-base64!!!.signature"))
	})

	t.Run("claims segment is not JSON", func(t *testing.T) {
		raw := makeToken(t, `this is not json`)
		require.Nil(t, token.DecodePayload(raw))
	})

	t.Run("single name parts", func(t *testing.T) {
		first := token.DecodePayload(makeToken(t, `{"first_name":"John"}`))
		require.NotNil(t, first)
		require.Equal(t, "John", first.FullName())

		last := token.DecodePayload(makeToken(t, `{"last_name":"Doe"}`))
		require.NotNil(t, last)
		require.Equal(t, "Doe", last.FullName())
	})
}
