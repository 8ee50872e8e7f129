package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bizcore/internal/dashboard/service"
	"bizcore/internal/platform/middleware"
	id "bizcore/pkg/domain"
	"bizcore/pkg/httputil"
	authmw "bizcore/pkg/middleware/auth"
)

// Service defines the dashboard operations the HTTP layer needs.
type Service interface {
	Summarize(ctx context.Context, tenantID id.TenantID) (*service.Summary, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register wires the dashboard endpoint. Mounted under the session middleware.
func (h *Handler) Register(r chi.Router) {
	r.Get("/dashboard/summary", h.HandleSummary)
}

func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	identity, ok := authmw.GetIdentity(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "identity missing despite auth middleware", "request_id", requestID)
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Envelope{Success: false, Message: "Not authenticated"})
		return
	}

	summary, err := h.service.Summarize(ctx, identity.TenantID)
	if err != nil {
		h.logger.ErrorContext(ctx, "dashboard summary failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "", summary)
}
