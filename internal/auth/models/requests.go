package models

import (
	"net/mail"
	"strings"

	dErrors "bizcore/pkg/domain-errors"
)

// HTTP request DTOs for the auth endpoints. Handlers decode these and run
// Normalize/Validate before anything reaches a service.

const minPasswordLength = 8

// RegisterRequest carries the combined tenant + first-admin registration input.
type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"companyName"`
	TaxNumber   string `json:"taxNumber"`
	Phone       string `json:"phone,omitempty"`
	Industry    string `json:"industry,omitempty"`
}

func (r *RegisterRequest) Normalize() {
	if r == nil {
		return
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.TaxNumber = strings.TrimSpace(r.TaxNumber)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Industry = strings.TrimSpace(r.Industry)
}

func (r *RegisterRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if r.Email == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return dErrors.New(dErrors.CodeValidation, "email must be a valid address")
	}
	if r.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "password is required")
	}
	if len(r.Password) < minPasswordLength {
		return dErrors.New(dErrors.CodeValidation, "password must be at least 8 characters")
	}
	if r.CompanyName == "" {
		return dErrors.New(dErrors.CodeValidation, "companyName is required")
	}
	if r.TaxNumber == "" {
		return dErrors.New(dErrors.CodeValidation, "taxNumber is required")
	}
	return nil
}

// LoginRequest carries credential input for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	if r == nil {
		return
	}
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *LoginRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Email == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if r.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "password is required")
	}
	return nil
}
