package models

import (
	"strings"
	"time"

	id "bizcore/pkg/domain"
	dErrors "bizcore/pkg/domain-errors"
)

// Tenant represents one customer organization. All business data in the
// system is partitioned by tenant; the tax number is the globally unique
// registration key.
type Tenant struct {
	ID        id.TenantID `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	TaxNumber string      `json:"tax_number"`
	Phone     string      `json:"phone,omitempty"`
	Address   Address     `json:"address"`
	Industry  string      `json:"industry,omitempty"`
	Settings  Settings    `json:"settings"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Address holds the optional postal address of a tenant.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// Settings holds per-tenant operational defaults.
type Settings struct {
	Currency        string    `json:"currency"`
	Timezone        string    `json:"timezone"`
	FiscalYearStart time.Time `json:"fiscal_year_start"`
}

const (
	defaultCurrency = "USD"
	defaultTimezone = "UTC"
)

// DefaultSettings computes the settings a tenant starts with. The fiscal year
// start is Jan 1 of the creation year, computed here rather than left to a
// schema default.
func DefaultSettings(now time.Time) Settings {
	return Settings{
		Currency:        defaultCurrency,
		Timezone:        defaultTimezone,
		FiscalYearStart: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// NewTenant constructs a tenant with validated required fields and default settings.
func NewTenant(tenantID id.TenantID, name, email, taxNumber string, now time.Time) (*Tenant, error) {
	name = strings.TrimSpace(name)
	taxNumber = strings.TrimSpace(taxNumber)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "company name is required")
	}
	if email == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if taxNumber == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "tax number is required")
	}
	return &Tenant{
		ID:        tenantID,
		Name:      name,
		Email:     strings.ToLower(email),
		TaxNumber: taxNumber,
		Settings:  DefaultSettings(now),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
