package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizcore/internal/auth/models"
	id "bizcore/pkg/domain"
	"bizcore/pkg/sentinel"
)

func newTestUser(email string) *models.User {
	return &models.User{
		ID:           id.NewUserID(),
		TenantID:     id.NewTenantID(),
		Name:         "Alice",
		Email:        email,
		PasswordHash: "$2a$10$stored-credential",
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestCreate_Success(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()

	user := newTestUser("a@x.com")
	require.NoError(t, store.Create(ctx, user))

	found, err := store.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)
}

func TestCreate_DuplicateEmailReturnsError(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newTestUser("a@x.com")))

	err := store.Create(ctx, newTestUser("a@x.com"))
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel.ErrAlreadyUsed)
}

func TestFindByID_StripsCredential(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()

	user := newTestUser("a@x.com")
	require.NoError(t, store.Create(ctx, user))

	found, err := store.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, found.PasswordHash)
}

func TestFindByID_NotFound(t *testing.T) {
	store := NewInMemory()

	_, err := store.FindByID(context.Background(), id.NewUserID())
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestFindByEmailWithCredential_IncludesCredential(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()

	user := newTestUser("a@x.com")
	require.NoError(t, store.Create(ctx, user))

	found, err := store.FindByEmailWithCredential(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.PasswordHash, found.PasswordHash)
}

func TestFindByEmailWithCredential_NotFound(t *testing.T) {
	store := NewInMemory()

	_, err := store.FindByEmailWithCredential(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestCountByTenant(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()

	tenantID := id.NewTenantID()
	first := newTestUser("a@x.com")
	first.TenantID = tenantID
	second := newTestUser("b@x.com")
	second.TenantID = tenantID
	other := newTestUser("c@x.com")

	require.NoError(t, store.Create(ctx, first))
	require.NoError(t, store.Create(ctx, second))
	require.NoError(t, store.Create(ctx, other))

	count, err := store.CountByTenant(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
