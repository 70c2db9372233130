package gateway

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chartflow/portal/internal/core/domain"
)

// AccessClaims is the subset of a GoTrue access token the portal relies on.
type AccessClaims struct {
	Email        string              `json:"email"`
	UserMetadata domain.UserMetadata `json:"user_metadata"`
	jwt.RegisteredClaims
}

// User rebuilds the token's user.
func (c *AccessClaims) User() *domain.User {
	return &domain.User{ID: c.Subject, Email: c.Email, Metadata: c.UserMetadata}
}

// Tokens signs and parses HS256 access tokens.
// Without a secret tokens are parsed but not verified, and Sign fails.
type Tokens struct {
	secret []byte
	now    func() time.Time
}

func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret), now: time.Now}
}

// Verifying reports whether Parse checks signatures.
func (t *Tokens) Verifying() bool {
	return len(t.secret) > 0
}

// Parse decodes raw. Expiry is always checked; the signature only when a
// secret is configured.
func (t *Tokens) Parse(raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if !t.Verifying() {
		if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
			return nil, fmt.Errorf("parse access token: %w", err)
		}
		if claims.ExpiresAt != nil && !t.now().Before(claims.ExpiresAt.Time) {
			return nil, fmt.Errorf("parse access token: %w", jwt.ErrTokenExpired)
		}
		return claims, nil
	}

	_, err := jwt.ParseWithClaims(raw, claims, func(tok *jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}
	return claims, nil
}

// Sign issues an access token for u valid for ttl.
func (t *Tokens) Sign(u *domain.User, ttl time.Duration) (string, time.Time, error) {
	if !t.Verifying() {
		return "", time.Time{}, errors.New("sign access token: no secret configured")
	}
	now := t.now()
	exp := now.Add(ttl)
	claims := AccessClaims{
		Email:        u.Email,
		UserMetadata: u.Metadata,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Audience:  jwt.ClaimStrings{"authenticated"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, exp, nil
}
