package tenant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bizcore/internal/tenant/models"
	id "bizcore/pkg/domain"
	"bizcore/pkg/sentinel"
	"bizcore/pkg/tx"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresStore persists tenants in PostgreSQL. Uniqueness of the tax number
// is enforced by the database; a concurrent duplicate surfaces as
// sentinel.ErrAlreadyUsed regardless of any pre-check.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed tenant store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts the tenant, participating in the transaction carried by ctx
// when one is present.
func (s *PostgresStore) Create(ctx context.Context, tenant *models.Tenant) error {
	if tenant == nil {
		return fmt.Errorf("tenant is required")
	}
	query := `
		INSERT INTO tenants (
			id, name, email, tax_number, phone,
			street, city, state, country, postal_code, industry,
			currency, timezone, fiscal_year_start, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := tx.Executor(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(tenant.ID),
		tenant.Name,
		tenant.Email,
		tenant.TaxNumber,
		tenant.Phone,
		tenant.Address.Street,
		tenant.Address.City,
		tenant.Address.State,
		tenant.Address.Country,
		tenant.Address.PostalCode,
		tenant.Industry,
		tenant.Settings.Currency,
		tenant.Settings.Timezone,
		tenant.Settings.FiscalYearStart,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tax number must be unique: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create tenant: %w", err)
	}
	return nil
}

// Delete removes a tenant. Used as the compensating action when first-user
// creation fails outside a shared transaction.
func (s *PostgresStore) Delete(ctx context.Context, tenantID id.TenantID) error {
	res, err := tx.Executor(ctx, s.db).ExecContext(ctx, `DELETE FROM tenants WHERE id = $1`, uuid.UUID(tenantID))
	if err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete tenant rows: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// FindByID retrieves a tenant by its UUID.
func (s *PostgresStore) FindByID(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	tenant, err := scanTenant(tx.Executor(ctx, s.db).QueryRowContext(ctx, selectTenant+` WHERE id = $1`, uuid.UUID(tenantID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find tenant by id: %w", err)
	}
	return tenant, nil
}

// FindByTaxNumber retrieves a tenant by its tax number.
func (s *PostgresStore) FindByTaxNumber(ctx context.Context, taxNumber string) (*models.Tenant, error) {
	tenant, err := scanTenant(tx.Executor(ctx, s.db).QueryRowContext(ctx, selectTenant+` WHERE tax_number = $1`, taxNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find tenant by tax number: %w", err)
	}
	return tenant, nil
}

const selectTenant = `
	SELECT id, name, email, tax_number, phone,
	       street, city, state, country, postal_code, industry,
	       currency, timezone, fiscal_year_start, created_at, updated_at
	FROM tenants`

type tenantRow interface {
	Scan(dest ...any) error
}

func scanTenant(row tenantRow) (*models.Tenant, error) {
	var tenant models.Tenant
	var tenantID uuid.UUID
	if err := row.Scan(
		&tenantID,
		&tenant.Name,
		&tenant.Email,
		&tenant.TaxNumber,
		&tenant.Phone,
		&tenant.Address.Street,
		&tenant.Address.City,
		&tenant.Address.State,
		&tenant.Address.Country,
		&tenant.Address.PostalCode,
		&tenant.Industry,
		&tenant.Settings.Currency,
		&tenant.Settings.Timezone,
		&tenant.Settings.FiscalYearStart,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	); err != nil {
		return nil, err
	}
	tenant.ID = id.TenantID(tenantID)
	return &tenant, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
