package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTokenService_IssueParseRoundtrip(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour, "")
	userID := uuid.New()

	signed, exp, err := tokens.Issue(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.True(t, exp.After(time.Now()))

	parsed, err := tokens.Parse(signed)
	assert.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestTokenService_ParseGarbage(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour, "")

	parsed, err := tokens.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Equal(t, uuid.Nil, parsed)
}

func TestTokenService_ParseWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-one", time.Hour, "")
	verifier := NewTokenService("secret-two", time.Hour, "")

	signed, _, err := issuer.Issue(uuid.New())
	assert.NoError(t, err)

	_, err = verifier.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_ParseExpired(t *testing.T) {
	tokens := NewTokenService("test-secret", -time.Minute, "")

	signed, _, err := tokens.Issue(uuid.New())
	assert.NoError(t, err)

	_, err = tokens.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_SessionCookieAttributes(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour, "example.com")
	exp := time.Now().Add(time.Hour)

	cookie := tokens.SessionCookie("signed-token", exp)
	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.Equal(t, "signed-token", cookie.Value)
	assert.Equal(t, "example.com", cookie.Domain)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
}

func TestTokenService_ExpiredSessionCookie(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour, "")

	cookie := tokens.ExpiredSessionCookie()
	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
	assert.True(t, cookie.Expires.Before(time.Now()))
}
