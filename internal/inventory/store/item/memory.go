package item

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"bizcore/internal/inventory/models"
	id "bizcore/pkg/domain"
	"bizcore/pkg/sentinel"
)

// InMemory stores items in memory for tests, mirroring the Postgres error
// contract including per-tenant SKU uniqueness.
type InMemory struct {
	mu    sync.RWMutex
	items map[id.ItemID]*models.Item
}

// NewInMemory constructs an empty in-memory item store.
func NewInMemory() *InMemory {
	return &InMemory{items: make(map[id.ItemID]*models.Item)}
}

func (s *InMemory) Create(_ context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.items {
		if existing.TenantID == item.TenantID && existing.SKU == item.SKU {
			return fmt.Errorf("sku must be unique within tenant: %w", sentinel.ErrAlreadyUsed)
		}
	}
	s.items[item.ID] = item
	return nil
}

func (s *InMemory) FindByID(_ context.Context, tenantID id.TenantID, itemID id.ItemID) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[itemID]
	if !ok || item.TenantID != tenantID {
		return nil, fmt.Errorf("item not found: %w", sentinel.ErrNotFound)
	}
	return item, nil
}

func (s *InMemory) ListByTenant(_ context.Context, tenantID id.TenantID) ([]*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []*models.Item
	for _, item := range s.items {
		if item.TenantID == tenantID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (s *InMemory) Update(_ context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.items[item.ID]
	if !ok || existing.TenantID != item.TenantID {
		return fmt.Errorf("item not found: %w", sentinel.ErrNotFound)
	}
	for _, other := range s.items {
		if other.ID != item.ID && other.TenantID == item.TenantID && other.SKU == item.SKU {
			return fmt.Errorf("sku must be unique within tenant: %w", sentinel.ErrAlreadyUsed)
		}
	}
	s.items[item.ID] = item
	return nil
}

func (s *InMemory) Delete(_ context.Context, tenantID id.TenantID, itemID id.ItemID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[itemID]
	if !ok || item.TenantID != tenantID {
		return fmt.Errorf("item not found: %w", sentinel.ErrNotFound)
	}
	delete(s.items, itemID)
	return nil
}

// Stats returns the tenant's item count, low-stock count, and total stock value.
func (s *InMemory) Stats(_ context.Context, tenantID id.TenantID) (count, lowStock int, stockValue float64, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.TenantID != tenantID {
			continue
		}
		count++
		if item.Quantity < models.LowStockThreshold {
			lowStock++
		}
		stockValue += float64(item.Quantity) * item.UnitPrice
	}
	return count, lowStock, stockValue, nil
}
