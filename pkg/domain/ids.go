// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "bizcore/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing UserID where TenantID is expected.
type (
	UserID   uuid.UUID
	TenantID uuid.UUID
	ItemID   uuid.UUID
)

// New functions - generate fresh identifiers at creation sites.

func NewUserID() UserID     { return UserID(uuid.New()) }
func NewTenantID() TenantID { return TenantID(uuid.New()) }
func NewItemID() ItemID     { return ItemID(uuid.New()) }

// Parse functions - use at trust boundaries (handlers, token claims).

func ParseUserID(s string) (UserID, error) {
	id, err := parseUUID(s, "user ID")
	return UserID(id), err
}

func ParseTenantID(s string) (TenantID, error) {
	id, err := parseUUID(s, "tenant ID")
	return TenantID(id), err
}

func ParseItemID(s string) (ItemID, error) {
	id, err := parseUUID(s, "item ID")
	return ItemID(id), err
}

// String methods - for logging and serialization.

func (id UserID) String() string   { return uuid.UUID(id).String() }
func (id TenantID) String() string { return uuid.UUID(id).String() }
func (id ItemID) String() string   { return uuid.UUID(id).String() }

// Text marshalling - IDs render as canonical UUID strings in JSON payloads.

func (id UserID) MarshalText() ([]byte, error)   { return []byte(uuid.UUID(id).String()), nil }
func (id TenantID) MarshalText() ([]byte, error) { return []byte(uuid.UUID(id).String()), nil }
func (id ItemID) MarshalText() ([]byte, error)   { return []byte(uuid.UUID(id).String()), nil }

func (id *UserID) UnmarshalText(text []byte) error {
	parsed, err := ParseUserID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *TenantID) UnmarshalText(text []byte) error {
	parsed, err := ParseTenantID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *ItemID) UnmarshalText(text []byte) error {
	parsed, err := ParseItemID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// IsNil checks - used for service-layer validation.

func (id UserID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id TenantID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ItemID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }

// parseUUID is the shared validation logic. Nil UUIDs are allowed here so that
// store lookups can return proper "not found" errors; use IsNil() at the
// service layer for business validation.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, label+" cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "invalid "+label)
	}
	return parsed, nil
}
