package service

import (
	"context"
	"errors"
	"time"

	"bizcore/internal/auth/models"
	tenantmodels "bizcore/internal/tenant/models"
	id "bizcore/pkg/domain"
	dErrors "bizcore/pkg/domain-errors"
	"bizcore/pkg/sentinel"
)

// RegisterCommand is the service-layer input for registration. Handlers build
// it from an already normalized and validated request DTO.
type RegisterCommand struct {
	Name        string
	Email       string
	Password    string
	CompanyName string
	TaxNumber   string
	Phone       string
	Industry    string
}

// Register atomically provisions a tenant and its first administrative user,
// then issues a session token. Tenant and user creation run inside one
// transactional boundary: either both records exist afterwards or neither
// does. Uniqueness of tax number and email is enforced by the stores, so a
// concurrent duplicate surfaces here as a conflict even without a pre-check.
func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*Session, error) {
	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tenant, err := tenantmodels.NewTenant(id.NewTenantID(), cmd.CompanyName, cmd.Email, cmd.TaxNumber, now)
	if err != nil {
		return nil, err
	}
	tenant.Phone = cmd.Phone
	tenant.Industry = cmd.Industry

	user := &models.User{
		ID:           id.NewUserID(),
		TenantID:     tenant.ID,
		Name:         cmd.Name,
		Email:        tenant.Email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	tenantCreated := false
	err = s.storeTx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.tenants.Create(ctx, tenant); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeConflict, "a company with this tax number is already registered")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create tenant")
		}
		tenantCreated = true

		if err := s.users.Create(ctx, user); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeConflict, "a user with this email already exists")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
		}
		return nil
	})
	if err != nil {
		if tenantCreated {
			s.compensateTenant(ctx, tenant.ID)
		}
		s.logger.WarnContext(ctx, "registration failed",
			"email", cmd.Email,
			"tax_number", cmd.TaxNumber,
			"error", err,
		)
		s.metrics.IncrementAuthFailures()
		return nil, err
	}

	tokenString, err := s.issuer.Issue(user.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "token issuance failed after registration",
			"user_id", user.ID,
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	s.logger.InfoContext(ctx, "tenant registered",
		"tenant_id", tenant.ID,
		"user_id", user.ID,
		"event", "tenant_registered",
	)
	s.metrics.IncrementTenantsRegistered()

	return &Session{Token: tokenString, User: user.Public()}, nil
}

// compensateTenant removes a tenant left behind by a failed first-user
// creation. With the Postgres boundary the rollback already removed the row
// and this is a no-op; with the in-memory boundary it undoes the orphan.
func (s *Service) compensateTenant(ctx context.Context, tenantID id.TenantID) {
	if err := s.tenants.Delete(ctx, tenantID); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		s.logger.ErrorContext(ctx, "failed to compensate orphaned tenant",
			"tenant_id", tenantID,
			"error", err,
		)
	}
}
