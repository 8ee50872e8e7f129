package service

import (
	"context"
	"errors"
	"time"

	dErrors "bizcore/pkg/domain-errors"
	"bizcore/pkg/sentinel"
)

// invalidCredentials is the single message for both unknown-email and
// wrong-password failures so responses cannot be used to enumerate accounts.
const invalidCredentials = "Invalid email or password"

// Login verifies credentials and issues a session token. When no user exists
// for the email a dummy bcrypt comparison still runs, keeping the cost of the
// two failure paths aligned.
func (s *Service) Login(ctx context.Context, email, plaintext string) (*Session, error) {
	start := time.Now()
	defer s.metrics.ObserveLoginDuration(start)

	user, err := s.users.FindByEmailWithCredential(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.hasher.DummyCompare(plaintext)
			s.authFailure(ctx, "unknown email", email)
			return nil, dErrors.New(dErrors.CodeUnauthorized, invalidCredentials)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}

	if !s.hasher.Verify(plaintext, user.PasswordHash) {
		s.authFailure(ctx, "password mismatch", email)
		return nil, dErrors.New(dErrors.CodeUnauthorized, invalidCredentials)
	}

	tokenString, err := s.issuer.Issue(user.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "token issuance failed after login",
			"user_id", user.ID,
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	s.logger.InfoContext(ctx, "user logged in",
		"user_id", user.ID,
		"tenant_id", user.TenantID,
		"event", "login_succeeded",
	)
	s.metrics.IncrementLoginsSucceeded()

	return &Session{Token: tokenString, User: user.Public()}, nil
}

// authFailure records a failed authentication attempt. The reason stays in
// server logs only; clients always see the same message.
func (s *Service) authFailure(ctx context.Context, reason, email string) {
	s.logger.WarnContext(ctx, "authentication failed",
		"reason", reason,
		"email", email,
		"event", "auth_failed",
	)
	s.metrics.IncrementAuthFailures()
}
