package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/harmonyhub/portal-api/internal/domain"
)

// Claims is the session token payload. The portal has no per-user accounts;
// the email claim is the whole identity.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 session tokens.
type Provider struct {
	secret []byte
	ttl    time.Duration
}

func NewProvider(secret string, ttl time.Duration) (*Provider, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret is empty: %w", domain.ErrUnconfigured)
	}
	return &Provider{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured session lifetime.
func (p *Provider) TTL() time.Duration { return p.ttl }

// Sign issues a session token for the given email.
func (p *Provider) Sign(email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

// Verify parses and validates a session token.
func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", domain.ErrUnauthorized)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid session token: %w", domain.ErrUnauthorized)
	}
	return claims, nil
}
