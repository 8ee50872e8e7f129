package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bizcore/internal/inventory/models"
	id "bizcore/pkg/domain"
	"bizcore/pkg/sentinel"
	"bizcore/pkg/tx"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresStore persists inventory items in PostgreSQL. Every query is
// tenant-filtered; per-tenant SKU uniqueness is a composite database index.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed item store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, item *models.Item) error {
	if item == nil {
		return fmt.Errorf("item is required")
	}
	query := `
		INSERT INTO inventory_items (id, tenant_id, name, sku, quantity, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := tx.Executor(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(item.ID),
		uuid.UUID(item.TenantID),
		item.Name,
		item.SKU,
		item.Quantity,
		item.UnitPrice,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("sku must be unique within tenant: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, tenantID id.TenantID, itemID id.ItemID) (*models.Item, error) {
	query := selectItem + ` WHERE tenant_id = $1 AND id = $2`
	item, err := scanItem(tx.Executor(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(tenantID), uuid.UUID(itemID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("item not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find item by id: %w", err)
	}
	return item, nil
}

func (s *PostgresStore) ListByTenant(ctx context.Context, tenantID id.TenantID) ([]*models.Item, error) {
	query := selectItem + ` WHERE tenant_id = $1 ORDER BY created_at`
	rows, err := tx.Executor(ctx, s.db).QueryContext(ctx, query, uuid.UUID(tenantID))
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) Update(ctx context.Context, item *models.Item) error {
	if item == nil {
		return fmt.Errorf("item is required")
	}
	query := `
		UPDATE inventory_items
		SET name = $3, sku = $4, quantity = $5, unit_price = $6, updated_at = $7
		WHERE tenant_id = $1 AND id = $2
	`
	res, err := tx.Executor(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(item.TenantID),
		uuid.UUID(item.ID),
		item.Name,
		item.SKU,
		item.Quantity,
		item.UnitPrice,
		item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("sku must be unique within tenant: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("update item: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update item rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("item not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, tenantID id.TenantID, itemID id.ItemID) error {
	res, err := tx.Executor(ctx, s.db).
		ExecContext(ctx, `DELETE FROM inventory_items WHERE tenant_id = $1 AND id = $2`, uuid.UUID(tenantID), uuid.UUID(itemID))
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete item rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("item not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

// Stats returns the tenant's item count, low-stock count, and total stock value.
func (s *PostgresStore) Stats(ctx context.Context, tenantID id.TenantID) (count, lowStock int, stockValue float64, err error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE quantity < $2),
		       COALESCE(SUM(quantity * unit_price), 0)
		FROM inventory_items
		WHERE tenant_id = $1
	`
	err = tx.Executor(ctx, s.db).
		QueryRowContext(ctx, query, uuid.UUID(tenantID), models.LowStockThreshold).
		Scan(&count, &lowStock, &stockValue)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("item stats: %w", err)
	}
	return count, lowStock, stockValue, nil
}

const selectItem = `
	SELECT id, tenant_id, name, sku, quantity, unit_price, created_at, updated_at
	FROM inventory_items`

type itemRow interface {
	Scan(dest ...any) error
}

func scanItem(row itemRow) (*models.Item, error) {
	var item models.Item
	var itemID, tenantID uuid.UUID
	if err := row.Scan(
		&itemID,
		&tenantID,
		&item.Name,
		&item.SKU,
		&item.Quantity,
		&item.UnitPrice,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	item.ID = id.ItemID(itemID)
	item.TenantID = id.TenantID(tenantID)
	return &item, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
