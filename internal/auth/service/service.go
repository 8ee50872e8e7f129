// Package service orchestrates registration, login, and identity resolution.
// It owns the translation of store sentinels into domain errors; stores stay
// transport- and policy-free.
package service

import (
	"context"
	"log/slog"

	"bizcore/internal/auth/models"
	"bizcore/internal/platform/metrics"
	tenantmodels "bizcore/internal/tenant/models"
	id "bizcore/pkg/domain"
)

// UserStore defines the persistence interface for user data.
// Error contract: Find methods return sentinel.ErrNotFound (wrapped) when the
// entity doesn't exist; Create returns sentinel.ErrAlreadyUsed on duplicates.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmailWithCredential(ctx context.Context, email string) (*models.User, error)
}

// TenantStore defines the persistence interface for tenant data.
// Error contract mirrors UserStore; Create returns sentinel.ErrAlreadyUsed
// when the tax number is taken.
type TenantStore interface {
	Create(ctx context.Context, tenant *tenantmodels.Tenant) error
	Delete(ctx context.Context, tenantID id.TenantID) error
	FindByID(ctx context.Context, tenantID id.TenantID) (*tenantmodels.Tenant, error)
}

// TokenIssuer mints signed session tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID id.UserID) (string, error)
}

// PasswordHasher is the one-way credential transform.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, credential string) bool
	DummyCompare(plaintext string)
}

// StoreTx provides a transactional boundary for the tenant-then-user creation.
// Implementations may wrap a database transaction or an in-memory lock.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Session is the result of a successful registration or login.
type Session struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// Service implements the authentication and tenant-provisioning core.
type Service struct {
	users   UserStore
	tenants TenantStore
	hasher  PasswordHasher
	issuer  TokenIssuer
	storeTx StoreTx
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithStoreTx overrides the transactional boundary. Defaults to an in-memory
// serializing boundary suitable for the in-memory stores.
func WithStoreTx(storeTx StoreTx) Option {
	return func(s *Service) {
		s.storeTx = storeTx
	}
}

func New(users UserStore, tenants TenantStore, hasher PasswordHasher, issuer TokenIssuer, opts ...Option) *Service {
	svc := &Service{
		users:   users,
		tenants: tenants,
		hasher:  hasher,
		issuer:  issuer,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	if svc.storeTx == nil {
		svc.storeTx = newInMemoryStoreTx()
	}
	return svc
}
