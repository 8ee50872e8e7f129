// Package service implements tenant-scoped inventory operations. The tenant
// always comes from the authenticated identity, never from request input, so
// one tenant can never read or mutate another's items.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bizcore/internal/inventory/models"
	id "bizcore/pkg/domain"
	dErrors "bizcore/pkg/domain-errors"
	"bizcore/pkg/sentinel"
)

// ItemStore defines the persistence interface for inventory items.
// Error contract: Find/Update/Delete return sentinel.ErrNotFound (wrapped)
// when the item doesn't exist in the tenant; Create/Update return
// sentinel.ErrAlreadyUsed on SKU collisions.
type ItemStore interface {
	Create(ctx context.Context, item *models.Item) error
	FindByID(ctx context.Context, tenantID id.TenantID, itemID id.ItemID) (*models.Item, error)
	ListByTenant(ctx context.Context, tenantID id.TenantID) ([]*models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, tenantID id.TenantID, itemID id.ItemID) error
}

// Service orchestrates inventory CRUD for one tenant at a time.
type Service struct {
	items  ItemStore
	logger *slog.Logger
}

func New(items ItemStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{items: items, logger: logger}
}

// CreateCommand is the service-layer input for item creation and updates.
type CreateCommand struct {
	Name      string
	SKU       string
	Quantity  int
	UnitPrice float64
}

func (s *Service) CreateItem(ctx context.Context, tenantID id.TenantID, cmd CreateCommand) (*models.Item, error) {
	item, err := models.NewItem(id.NewItemID(), tenantID, cmd.Name, cmd.SKU, cmd.Quantity, cmd.UnitPrice, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.items.Create(ctx, item); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "an item with this sku already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create item")
	}
	return item, nil
}

func (s *Service) GetItem(ctx context.Context, tenantID id.TenantID, itemID id.ItemID) (*models.Item, error) {
	item, err := s.items.FindByID(ctx, tenantID, itemID)
	if err != nil {
		return nil, wrapItemErr(err, "failed to load item")
	}
	return item, nil
}

func (s *Service) ListItems(ctx context.Context, tenantID id.TenantID) ([]*models.Item, error) {
	items, err := s.items.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list items")
	}
	return items, nil
}

func (s *Service) UpdateItem(ctx context.Context, tenantID id.TenantID, itemID id.ItemID, cmd CreateCommand) (*models.Item, error) {
	existing, err := s.items.FindByID(ctx, tenantID, itemID)
	if err != nil {
		return nil, wrapItemErr(err, "failed to load item")
	}

	updated, err := models.NewItem(existing.ID, tenantID, cmd.Name, cmd.SKU, cmd.Quantity, cmd.UnitPrice, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	updated.CreatedAt = existing.CreatedAt

	if err := s.items.Update(ctx, updated); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "an item with this sku already exists")
		}
		return nil, wrapItemErr(err, "failed to update item")
	}
	return updated, nil
}

func (s *Service) DeleteItem(ctx context.Context, tenantID id.TenantID, itemID id.ItemID) error {
	if err := s.items.Delete(ctx, tenantID, itemID); err != nil {
		return wrapItemErr(err, "failed to delete item")
	}
	return nil
}

func wrapItemErr(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "item not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
