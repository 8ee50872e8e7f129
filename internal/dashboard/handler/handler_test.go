package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authmodels "bizcore/internal/auth/models"
	"bizcore/internal/dashboard/service"
	id "bizcore/pkg/domain"
	dErrors "bizcore/pkg/domain-errors"
	authmw "bizcore/pkg/middleware/auth"
)

type stubService struct {
	summary   *service.Summary
	err       error
	gotTenant id.TenantID
}

func (s *stubService) Summarize(_ context.Context, tenantID id.TenantID) (*service.Summary, error) {
	s.gotTenant = tenantID
	return s.summary, s.err
}

func newTestRouter(svc Service, identity *authmodels.Identity) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(svc, logger)

	r := chi.NewRouter()
	r.Group(func(protected chi.Router) {
		if identity != nil {
			protected.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
					next.ServeHTTP(w, req.WithContext(authmw.WithIdentity(req.Context(), identity)))
				})
			})
		}
		h.Register(protected)
	})
	return r
}

func TestHandleSummary(t *testing.T) {
	identity := &authmodels.Identity{
		UserID:   id.NewUserID(),
		TenantID: id.NewTenantID(),
		Role:     authmodels.RoleManager,
	}
	svc := &stubService{summary: &service.Summary{
		UserCount:     4,
		ItemCount:     12,
		LowStockCount: 2,
		StockValue:    350.5,
	}}
	r := newTestRouter(svc, identity)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, identity.TenantID, svc.gotTenant)

	var env struct {
		Success bool            `json:"success"`
		Data    service.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, 4, env.Data.UserCount)
	assert.Equal(t, 12, env.Data.ItemCount)
	assert.Equal(t, 2, env.Data.LowStockCount)
}

func TestHandleSummary_MissingIdentity(t *testing.T) {
	r := newTestRouter(&stubService{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Not authenticated"}`, w.Body.String())
}

func TestHandleSummary_ServiceFailure(t *testing.T) {
	identity := &authmodels.Identity{UserID: id.NewUserID(), TenantID: id.NewTenantID(), Role: authmodels.RoleAdmin}
	svc := &stubService{err: dErrors.Wrap(errors.New("connection reset"), dErrors.CodeInternal, "failed to build dashboard summary")}
	r := newTestRouter(svc, identity)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Something went wrong"}`, w.Body.String())
}
