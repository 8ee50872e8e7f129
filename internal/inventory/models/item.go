package models

import (
	"strings"
	"time"

	id "bizcore/pkg/domain"
	dErrors "bizcore/pkg/domain-errors"
)

// Item is one tenant-scoped inventory record. SKU is unique within a tenant.
type Item struct {
	ID        id.ItemID   `json:"id"`
	TenantID  id.TenantID `json:"tenant_id"`
	Name      string      `json:"name"`
	SKU       string      `json:"sku"`
	Quantity  int         `json:"quantity"`
	UnitPrice float64     `json:"unit_price"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// LowStockThreshold marks items the dashboard reports as running out.
const LowStockThreshold = 10

// NewItem constructs an item with validated required fields.
func NewItem(itemID id.ItemID, tenantID id.TenantID, name, sku string, quantity int, unitPrice float64, now time.Time) (*Item, error) {
	name = strings.TrimSpace(name)
	sku = strings.TrimSpace(sku)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if sku == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "sku is required")
	}
	if quantity < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "quantity cannot be negative")
	}
	if unitPrice < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "unit_price cannot be negative")
	}
	return &Item{
		ID:        itemID,
		TenantID:  tenantID,
		Name:      name,
		SKU:       sku,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
