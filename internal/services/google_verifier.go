package services

import (
	"context"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

// GoogleClaims are the identity fields extracted from a verified Google ID
// token.
type GoogleClaims struct {
	Email string
	Name  string
}

// GoogleVerifier validates Google ID tokens against Google's published JWKS.
// It is optional: when no JWKS URL is configured, federated login falls back
// to trusting the posted profile fields, matching the legacy behavior.
type GoogleVerifier struct {
	jwks *keyfunc.JWKS
}

// NewGoogleVerifier fetches the JWKS and keeps it refreshed in the
// background.
func NewGoogleVerifier(ctx context.Context, jwksURL string) (*GoogleVerifier, error) {
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx:             ctx,
		RefreshInterval: time.Hour,
		RefreshErrorHandler: func(err error) {
			// Keep serving with the cached key set; the next refresh retries.
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch google jwks: %w", err)
	}
	return &GoogleVerifier{jwks: jwks}, nil
}

// Verify checks the ID token's signature and expiry and returns the identity
// claims.
func (v *GoogleVerifier) Verify(idToken string) (*GoogleClaims, error) {
	token, err := jwt.Parse(idToken, v.jwks.Keyfunc)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	if email == "" {
		return nil, ErrInvalidToken
	}
	return &GoogleClaims{Email: email, Name: name}, nil
}
