package services

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookieName is the cookie the session token travels in. The token is
// also accepted from the Authorization header as a bearer token.
const SessionCookieName = "token"

var ErrInvalidToken = errors.New("invalid or expired token")

// SessionClaims are the JWT claims carried by a session token. The subject
// holds the user id; tokens are stateless and stay valid until natural
// expiry.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// TokenService signs and verifies session tokens and builds the cookies
// that carry them.
type TokenService struct {
	secret       []byte
	expiry       time.Duration
	cookieDomain string
}

func NewTokenService(secret string, expiry time.Duration, cookieDomain string) *TokenService {
	return &TokenService{
		secret:       []byte(secret),
		expiry:       expiry,
		cookieDomain: cookieDomain,
	}
}

// Issue signs a session token for the given user.
func (s *TokenService) Issue(userID uuid.UUID) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.expiry)
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "staymart",
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, exp, nil
}

// Parse verifies a session token and returns the embedded user id.
func (s *TokenService) Parse(tokenString string) (uuid.UUID, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}

// SessionCookie wraps a signed token in the httpOnly cross-site cookie the
// browser client expects.
func (s *TokenService) SessionCookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   s.cookieDomain,
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

// ExpiredSessionCookie returns an already-expired replacement cookie. Logout
// is client-side only; issued tokens remain valid until natural expiry.
func (s *TokenService) ExpiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   s.cookieDomain,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}
