package service

import (
	"context"
	"errors"

	"bizcore/internal/auth/models"
	id "bizcore/pkg/domain"
	dErrors "bizcore/pkg/domain-errors"
	"bizcore/pkg/sentinel"
)

// LoadIdentity resolves the tenant and role of a verified user ID for the
// session middleware. A user that disappeared after token issuance surfaces
// as not found; the middleware treats that as unauthenticated.
func (s *Service) LoadIdentity(ctx context.Context, userID id.UserID) (*models.Identity, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load identity")
	}
	return &models.Identity{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Role:     user.Role,
	}, nil
}

// GetUser returns the public projection of a user, used by the profile endpoint.
func (s *Service) GetUser(ctx context.Context, userID id.UserID) (*models.PublicUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	public := user.Public()
	return &public, nil
}
