package validation

import (
	"strings"

	"github.com/acquisitions/users-api/internal/models"
)

// SignupRequest is the declarative schema for POST /sign-up payloads.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=255"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

// Validate normalizes the payload in place and evaluates the schema.
// Role defaults to "user" when omitted.
func (r *SignupRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = normalizeEmail(r.Email)
	if r.Role == "" {
		r.Role = models.RoleUser
	}
	return runStruct(r)
}

// SigninRequest is the declarative schema for POST /sign-in payloads.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=255"`
}

// Validate normalizes the payload in place and evaluates the schema.
func (r *SigninRequest) Validate() error {
	r.Email = normalizeEmail(r.Email)
	return runStruct(r)
}

// UpdateUserRequest is the declarative schema for PUT /users/:id payloads.
// Pointer fields distinguish "absent" from "present but empty".
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=6,max=255"`
	Role     *string `json:"role" validate:"omitempty,oneof=user admin"`
}

// Validate normalizes the patch in place and evaluates the schema. A patch
// with zero fields is rejected, as is a supplied-but-blank name.
func (r *UpdateUserRequest) Validate() error {
	if r.Name == nil && r.Email == nil && r.Password == nil && r.Role == nil {
		return ValidationErrors{{Field: "body", Message: "At least one field must be provided for update"}}
	}

	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		if trimmed == "" {
			return ValidationErrors{{Field: "name", Message: "Name is required"}}
		}
		r.Name = &trimmed
	}
	if r.Email != nil {
		normalized := normalizeEmail(*r.Email)
		if normalized == "" {
			return ValidationErrors{{Field: "email", Message: "Email is required"}}
		}
		r.Email = &normalized
	}

	return runStruct(r)
}

// normalizeEmail lower-cases and trims an email address before validation,
// which makes uniqueness checks case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
