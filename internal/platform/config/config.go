package config

import (
	"fmt"
	"os"
	"time"
)

// Server captures process-wide configuration, loaded once at startup and
// immutable afterwards. Services receive it by reference; nothing reads the
// environment past FromEnv.
type Server struct {
	Addr          string
	DatabaseURL   string
	JWTSigningKey string
	TokenTTL      time.Duration
}

const defaultTokenTTL = 24 * time.Hour

// FromEnv builds a Server config from environment variables so main stays lean.
// A missing signing key or database URL is a startup failure, not a
// per-request condition.
func FromEnv() (Server, error) {
	addr := os.Getenv("BIZCORE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	signingKey := os.Getenv("JWT_SIGNING_KEY")
	if signingKey == "" {
		return Server{}, fmt.Errorf("JWT_SIGNING_KEY is required")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return Server{}, fmt.Errorf("DATABASE_URL is required")
	}

	tokenTTL := defaultTokenTTL
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		duration, err := time.ParseDuration(raw)
		if err != nil {
			return Server{}, fmt.Errorf("invalid TOKEN_TTL %q: %w", raw, err)
		}
		tokenTTL = duration
	}

	return Server{
		Addr:          addr,
		DatabaseURL:   databaseURL,
		JWTSigningKey: signingKey,
		TokenTTL:      tokenTTL,
	}, nil
}
