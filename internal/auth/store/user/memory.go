package user

// Error contract:
// All store methods follow this pattern:
// - Return sentinel.ErrNotFound (wrapped) when the requested entity does not exist
// - Return sentinel.ErrAlreadyUsed (wrapped) on uniqueness violations
// - Return wrapped errors with context for infrastructure failures

import (
	"context"
	"fmt"
	"sync"

	"bizcore/internal/auth/models"
	id "bizcore/pkg/domain"
	"bizcore/pkg/sentinel"
)

// InMemory stores users in memory for tests, mirroring the Postgres error
// contract including email uniqueness.
type InMemory struct {
	mu       sync.RWMutex
	users    map[id.UserID]*models.User
	emailIdx map[string]id.UserID
}

// NewInMemory constructs an empty in-memory user store.
func NewInMemory() *InMemory {
	return &InMemory{
		users:    make(map[id.UserID]*models.User),
		emailIdx: make(map[string]id.UserID),
	}
}

// Create stores the user if the email is not already taken.
func (s *InMemory) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.emailIdx[user.Email]; exists {
		return fmt.Errorf("email must be unique: %w", sentinel.ErrAlreadyUsed)
	}
	s.users[user.ID] = user
	s.emailIdx[user.Email] = user.ID
	return nil
}

// FindByID retrieves a user without the credential field.
func (s *InMemory) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
	}
	projection := *user
	projection.PasswordHash = ""
	return &projection, nil
}

// FindByEmailWithCredential retrieves a user including the password hash.
func (s *InMemory) FindByEmailWithCredential(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.emailIdx[email]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
	}
	return s.users[userID], nil
}

// CountByTenant returns the number of users belonging to a tenant.
func (s *InMemory) CountByTenant(_ context.Context, tenantID id.TenantID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, user := range s.users {
		if user.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}
