// Package auth is the session middleware consumed by every protected route.
// It verifies the bearer token, resolves the caller's tenant and role, and
// injects the identity into the request context. All failure modes are
// surfaced as one uniform 401 so callers cannot tell a malformed token from
// an expired one or from a deleted user.
package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"bizcore/internal/auth/models"
	id "bizcore/pkg/domain"
)

// TokenVerifier validates a bearer token and returns the embedded user ID.
type TokenVerifier interface {
	Verify(tokenString string) (id.UserID, error)
}

// IdentityLoader resolves the tenant and role context of a verified user ID.
type IdentityLoader interface {
	LoadIdentity(ctx context.Context, userID id.UserID) (*models.Identity, error)
}

type identityKey struct{}

// GetIdentity retrieves the authenticated identity from the context. The
// second return is false on routes that did not pass through RequireAuth.
func GetIdentity(ctx context.Context) (*models.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*models.Identity)
	return identity, ok
}

// WithIdentity returns a context carrying the given identity. Exposed for
// handler tests that bypass the middleware.
func WithIdentity(ctx context.Context, identity *models.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

func writeUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"message":"Not authenticated"}`)) //nolint:errcheck // headers already sent
}

// RequireAuth returns middleware that authenticates requests via the
// Authorization: Bearer header and populates the context with the caller's
// identity. Verification failures and identity-not-found are rejected
// identically; the request is never partially authorized.
func RequireAuth(verifier TokenVerifier, identities IdentityLoader, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || tokenString == "" {
				logger.WarnContext(ctx, "unauthenticated request - missing bearer token",
					"path", r.URL.Path,
				)
				writeUnauthenticated(w)
				return
			}

			userID, err := verifier.Verify(tokenString)
			if err != nil {
				logger.WarnContext(ctx, "unauthenticated request - token rejected",
					"path", r.URL.Path,
					"error", err,
				)
				writeUnauthenticated(w)
				return
			}

			identity, err := identities.LoadIdentity(ctx, userID)
			if err != nil {
				logger.WarnContext(ctx, "unauthenticated request - identity not resolved",
					"path", r.URL.Path,
					"user_id", userID,
					"error", err,
				)
				writeUnauthenticated(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, identity)))
		})
	}
}
