// Package types provides type definitions for structured data used throughout the creator-studio system.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Creator represents a content creator persona whose messaging style is
// described by a StyleProfile and exemplified by the example corpora.
type Creator struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	AvatarRef   *string   `json:"avatar_ref,omitempty"` // opaque reference; binary storage is external
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Creator status filter values for listing.
const (
	StatusAll      = "all"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// ValidStatus reports whether s is a recognized status filter.
func ValidStatus(s string) bool {
	return s == StatusAll || s == StatusActive || s == StatusInactive
}

// CreateCreatorRequest represents the request to register a new creator.
type CreateCreatorRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	AvatarRef   *string `json:"avatar_ref,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// UpdateCreatorRequest represents a partial update; only provided fields are merged.
type UpdateCreatorRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	AvatarRef   *string `json:"avatar_ref,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// SetActiveRequest toggles a creator's activation state. Setting the current
// value again is a no-op success.
type SetActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// Validate validates the CreateCreatorRequest using the validator.
func (r *CreateCreatorRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateCreatorRequest using the validator.
func (r *UpdateCreatorRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
