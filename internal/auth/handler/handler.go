package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bizcore/internal/auth/models"
	"bizcore/internal/auth/service"
	"bizcore/internal/platform/middleware"
	id "bizcore/pkg/domain"
	"bizcore/pkg/httputil"
	authmw "bizcore/pkg/middleware/auth"
)

// Service defines the auth operations the HTTP layer needs. Returns domain
// objects, not HTTP response DTOs.
type Service interface {
	Register(ctx context.Context, cmd service.RegisterCommand) (*service.Session, error)
	Login(ctx context.Context, email, password string) (*service.Session, error)
	GetUser(ctx context.Context, userID id.UserID) (*models.PublicUser, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register wires the public auth endpoints.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/register", h.HandleRegister)
	r.Post("/auth/login", h.HandleLogin)
}

// RegisterProtected wires endpoints that require the session middleware.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Get("/user/profile", h.HandleProfile)
}

// HandleRegister provisions a tenant with its first administrative user and
// returns a session token.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	session, err := h.service.Register(ctx, service.RegisterCommand{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		CompanyName: req.CompanyName,
		TaxNumber:   req.TaxNumber,
		Phone:       req.Phone,
		Industry:    req.Industry,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "register failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, "Registration successful", session)
}

// HandleLogin verifies credentials and returns a session token.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	session, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "login failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Login successful", session)
}

// HandleProfile returns the public projection of the authenticated caller.
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	identity, ok := authmw.GetIdentity(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "identity missing despite auth middleware", "request_id", requestID)
		writeUnauthenticated(w)
		return
	}

	user, err := h.service.GetUser(ctx, identity.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "profile lookup failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "", user)
}

func writeUnauthenticated(w http.ResponseWriter) {
	httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Envelope{Success: false, Message: "Not authenticated"})
}
