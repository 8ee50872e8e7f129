// Package token issues and verifies the signed session tokens. Tokens are
// stateless: validity is signature + expiry, there is no revocation list.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	id "bizcore/pkg/domain"
	"bizcore/pkg/sentinel"
)

// Claims are the JWT claims of a session token. The subject is the user ID.
type Claims struct {
	jwt.RegisteredClaims
}

// Service signs and validates session tokens. The signing key is process-wide
// configuration, injected once at startup and immutable afterwards.
type Service struct {
	signingKey []byte
	tokenTTL   time.Duration
}

// New constructs a token service. An empty signing key is a programming error
// caught at wiring time, not a per-request condition.
func New(signingKey string, tokenTTL time.Duration) (*Service, error) {
	if signingKey == "" {
		return nil, fmt.Errorf("signing key is required")
	}
	if tokenTTL <= 0 {
		return nil, fmt.Errorf("token TTL must be positive")
	}
	return &Service{signingKey: []byte(signingKey), tokenTTL: tokenTTL}, nil
}

// Issue produces a signed token embedding the user ID and an expiry of
// now + configured lifetime.
func (s *Service) Issue(userID id.UserID) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	})

	signed, err := t.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature integrity and expiry, returning the embedded user
// ID. Expired tokens return sentinel.ErrExpired, everything else that fails to
// parse returns sentinel.ErrMalformed; callers surface both identically as
// unauthenticated.
func (s *Service) Verify(tokenString string) (id.UserID, error) {
	if tokenString == "" {
		return id.UserID{}, sentinel.ErrMalformed
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return id.UserID{}, sentinel.ErrExpired
		}
		return id.UserID{}, sentinel.ErrMalformed
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return id.UserID{}, sentinel.ErrMalformed
	}

	userID, err := id.ParseUserID(claims.Subject)
	if err != nil || userID.IsNil() {
		return id.UserID{}, sentinel.ErrMalformed
	}
	return userID, nil
}
