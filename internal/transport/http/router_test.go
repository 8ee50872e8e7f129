package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authhandler "bizcore/internal/auth/handler"
	"bizcore/internal/auth/password"
	authservice "bizcore/internal/auth/service"
	userstore "bizcore/internal/auth/store/user"
	"bizcore/internal/auth/token"
	dashboardhandler "bizcore/internal/dashboard/handler"
	dashboardservice "bizcore/internal/dashboard/service"
	inventoryhandler "bizcore/internal/inventory/handler"
	inventoryservice "bizcore/internal/inventory/service"
	itemstore "bizcore/internal/inventory/store/item"
	tenantstore "bizcore/internal/tenant/store/tenant"
)

type stubHealth struct {
	err error
}

func (s *stubHealth) Health(context.Context) error { return s.err }

func newTestServer(t *testing.T, health HealthChecker) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens, err := token.New("test-signing-key", time.Hour)
	require.NoError(t, err)

	users := userstore.NewInMemory()
	items := itemstore.NewInMemory()
	authSvc := authservice.New(
		users,
		tenantstore.NewInMemory(),
		password.New(bcrypt.MinCost),
		tokens,
		authservice.WithLogger(logger),
	)

	return NewRouter(Deps{
		Auth:      authhandler.New(authSvc, logger),
		Inventory: inventoryhandler.New(inventoryservice.New(items, logger), logger),
		Dashboard: dashboardhandler.New(dashboardservice.New(users, items, logger), logger),
		Verifier:  tokens,
		Identity:  authSvc,
		Health:    health,
		Logger:    logger,
	})
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func registerAlice(t *testing.T, h http.Handler) string {
	t.Helper()
	w := postJSON(t, h, "/api/v1/auth/register", map[string]string{
		"name":        "Alice",
		"email":       "a@x.com",
		"password":    "pw123456",
		"companyName": "Acme",
		"taxNumber":   "TX-1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var env struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotEmpty(t, env.Data.Token)
	return env.Data.Token
}

func TestRouter_RegisterLoginAndProtectedFlow(t *testing.T) {
	h := newTestServer(t, &stubHealth{})
	sessionToken := registerAlice(t, h)

	// Without a session the business API rejects the call.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// With the registration token the whole protected surface is reachable.
	for _, path := range []string{"/api/v1/user/profile", "/api/v1/inventory", "/api/v1/dashboard/summary"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+sessionToken)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "path %s", path)
	}
}

func TestRouter_RejectsNonJSONContentType(t *testing.T) {
	h := newTestServer(t, &stubHealth{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("email=a@x.com")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestRouter_RequestIDOnResponses(t *testing.T) {
	h := newTestServer(t, &stubHealth{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHealth(t *testing.T) {
	t.Run("healthy store", func(t *testing.T) {
		h := newTestServer(t, &stubHealth{})
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unreachable store", func(t *testing.T) {
		h := newTestServer(t, &stubHealth{err: errors.New("dial refused")})
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"success":false,"message":"storage unavailable"}`, w.Body.String())
	})
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	h := newTestServer(t, &stubHealth{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
