package models

import (
	"time"

	id "bizcore/pkg/domain"
)

// Role is the closed set of user roles. The first user of a tenant is always
// an admin; subsequent users get their role from user management.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// User represents one login-capable identity belonging to exactly one tenant.
// PasswordHash is never serialized and is excluded from store projections
// except for the explicit credential lookup used by login.
type User struct {
	ID           id.UserID   `json:"id"`
	TenantID     id.TenantID `json:"tenant_id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         Role        `json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// PublicUser is the projection returned by auth endpoints. It never carries
// credential material.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Public returns the response projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}

// Identity is the authenticated caller context attached to requests by the
// session middleware and consumed by downstream modules.
type Identity struct {
	UserID   id.UserID
	TenantID id.TenantID
	Role     Role
}
