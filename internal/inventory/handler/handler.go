package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	authmodels "bizcore/internal/auth/models"
	"bizcore/internal/inventory/models"
	"bizcore/internal/inventory/service"
	"bizcore/internal/platform/middleware"
	id "bizcore/pkg/domain"
	dErrors "bizcore/pkg/domain-errors"
	"bizcore/pkg/httputil"
	authmw "bizcore/pkg/middleware/auth"
)

// Service defines the inventory operations the HTTP layer needs.
type Service interface {
	CreateItem(ctx context.Context, tenantID id.TenantID, cmd service.CreateCommand) (*models.Item, error)
	GetItem(ctx context.Context, tenantID id.TenantID, itemID id.ItemID) (*models.Item, error)
	ListItems(ctx context.Context, tenantID id.TenantID) ([]*models.Item, error)
	UpdateItem(ctx context.Context, tenantID id.TenantID, itemID id.ItemID, cmd service.CreateCommand) (*models.Item, error)
	DeleteItem(ctx context.Context, tenantID id.TenantID, itemID id.ItemID) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register wires the inventory endpoints. Callers mount this under the
// session middleware; every operation is scoped to the caller's tenant.
func (h *Handler) Register(r chi.Router) {
	r.Post("/inventory", h.HandleCreate)
	r.Get("/inventory", h.HandleList)
	r.Get("/inventory/{id}", h.HandleGet)
	r.Put("/inventory/{id}", h.HandleUpdate)
	r.Delete("/inventory/{id}", h.HandleDelete)
}

// ItemRequest is the create/update payload.
type ItemRequest struct {
	Name      string  `json:"name"`
	SKU       string  `json:"sku"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

func (r *ItemRequest) Normalize() {
	if r == nil {
		return
	}
	r.Name = strings.TrimSpace(r.Name)
	r.SKU = strings.TrimSpace(r.SKU)
}

func (r *ItemRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if r.SKU == "" {
		return dErrors.New(dErrors.CodeValidation, "sku is required")
	}
	if r.Quantity < 0 {
		return dErrors.New(dErrors.CodeValidation, "quantity cannot be negative")
	}
	if r.UnitPrice < 0 {
		return dErrors.New(dErrors.CodeValidation, "unit_price cannot be negative")
	}
	return nil
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	identity, ok := requireIdentity(w, ctx, h.logger, requestID)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ItemRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	item, err := h.service.CreateItem(ctx, identity.TenantID, service.CreateCommand{
		Name:      req.Name,
		SKU:       req.SKU,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create item failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, "", item)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	identity, ok := requireIdentity(w, ctx, h.logger, requestID)
	if !ok {
		return
	}

	items, err := h.service.ListItems(ctx, identity.TenantID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list items failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	if items == nil {
		items = []*models.Item{}
	}

	httputil.WriteSuccess(w, http.StatusOK, "", items)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	identity, ok := requireIdentity(w, ctx, h.logger, requestID)
	if !ok {
		return
	}
	itemID, err := id.ParseItemID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	item, err := h.service.GetItem(ctx, identity.TenantID, itemID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "", item)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	identity, ok := requireIdentity(w, ctx, h.logger, requestID)
	if !ok {
		return
	}
	itemID, err := id.ParseItemID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[ItemRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	item, err := h.service.UpdateItem(ctx, identity.TenantID, itemID, service.CreateCommand{
		Name:      req.Name,
		SKU:       req.SKU,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update item failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "", item)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	identity, ok := requireIdentity(w, ctx, h.logger, requestID)
	if !ok {
		return
	}
	itemID, err := id.ParseItemID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.DeleteItem(ctx, identity.TenantID, itemID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Item deleted", nil)
}

// requireIdentity extracts the authenticated identity placed by the session
// middleware. Its absence on a protected route is a wiring bug, reported as
// unauthenticated rather than a 500 with details.
func requireIdentity(w http.ResponseWriter, ctx context.Context, logger *slog.Logger, requestID string) (*authmodels.Identity, bool) {
	identity, ok := authmw.GetIdentity(ctx)
	if !ok {
		logger.ErrorContext(ctx, "identity missing despite auth middleware", "request_id", requestID)
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Envelope{Success: false, Message: "Not authenticated"})
		return nil, false
	}
	return identity, true
}
