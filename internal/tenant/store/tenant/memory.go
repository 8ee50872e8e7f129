package tenant

import (
	"context"
	"fmt"
	"sync"

	"bizcore/internal/tenant/models"
	id "bizcore/pkg/domain"
	"bizcore/pkg/sentinel"
)

// InMemory stores tenants in memory for tests. It mirrors the Postgres error
// contract: duplicate tax numbers return sentinel.ErrAlreadyUsed.
type InMemory struct {
	mu      sync.RWMutex
	tenants map[string]*models.Tenant
	taxIdx  map[string]string
}

// NewInMemory creates an in-memory tenant store.
func NewInMemory() *InMemory {
	return &InMemory{
		tenants: make(map[string]*models.Tenant),
		taxIdx:  make(map[string]string),
	}
}

// Create stores the tenant if the tax number is not already taken.
func (s *InMemory) Create(_ context.Context, t *models.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.taxIdx[t.TaxNumber]; exists {
		return fmt.Errorf("tax number must be unique: %w", sentinel.ErrAlreadyUsed)
	}
	key := t.ID.String()
	s.tenants[key] = t
	s.taxIdx[t.TaxNumber] = key
	return nil
}

// Delete removes a tenant and its tax number index entry.
func (s *InMemory) Delete(_ context.Context, tenantID id.TenantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tenants[tenantID.String()]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.taxIdx, t.TaxNumber)
	delete(s.tenants, tenantID.String())
	return nil
}

// FindByID retrieves a tenant by its UUID.
func (s *InMemory) FindByID(_ context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.tenants[tenantID.String()]; ok {
		return t, nil
	}
	return nil, sentinel.ErrNotFound
}

// FindByTaxNumber retrieves a tenant by its tax number.
func (s *InMemory) FindByTaxNumber(_ context.Context, taxNumber string) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if key, ok := s.taxIdx[taxNumber]; ok {
		return s.tenants[key], nil
	}
	return nil, sentinel.ErrNotFound
}
