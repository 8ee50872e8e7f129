package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bizcore/internal/auth/models"
	id "bizcore/pkg/domain"
	"bizcore/pkg/sentinel"
	"bizcore/pkg/tx"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresStore persists users in PostgreSQL. Email uniqueness is enforced by
// the database; FindByID and CountByTenant never return the password hash,
// FindByEmailWithCredential is the single credential projection used by login.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed user store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts the user, participating in the transaction carried by ctx
// when one is present.
func (s *PostgresStore) Create(ctx context.Context, user *models.User) error {
	if user == nil {
		return fmt.Errorf("user is required")
	}
	query := `
		INSERT INTO users (id, tenant_id, name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := tx.Executor(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(user.ID),
		uuid.UUID(user.TenantID),
		user.Name,
		user.Email,
		user.PasswordHash,
		string(user.Role),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email must be unique: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByID retrieves a user without the credential field.
func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	query := `
		SELECT id, tenant_id, name, email, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	row := tx.Executor(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(userID))
	user, err := scanUser(row, false)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return user, nil
}

// FindByEmailWithCredential retrieves a user including the password hash.
// This is the explicit exception to the no-credential projection, reserved
// for login.
func (s *PostgresStore) FindByEmailWithCredential(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, tenant_id, name, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	row := tx.Executor(ctx, s.db).QueryRowContext(ctx, query, email)
	user, err := scanUser(row, true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

// CountByTenant returns the number of users belonging to a tenant.
func (s *PostgresStore) CountByTenant(ctx context.Context, tenantID id.TenantID) (int, error) {
	var count int
	err := tx.Executor(ctx, s.db).
		QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE tenant_id = $1`, uuid.UUID(tenantID)).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count users by tenant: %w", err)
	}
	return count, nil
}

type userRow interface {
	Scan(dest ...any) error
}

func scanUser(row userRow, withCredential bool) (*models.User, error) {
	var user models.User
	var userID, tenantID uuid.UUID
	var role string

	dest := []any{&userID, &tenantID, &user.Name, &user.Email}
	if withCredential {
		dest = append(dest, &user.PasswordHash)
	}
	dest = append(dest, &role, &user.CreatedAt, &user.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	user.ID = id.UserID(userID)
	user.TenantID = id.TenantID(tenantID)
	user.Role = models.Role(role)
	return &user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
