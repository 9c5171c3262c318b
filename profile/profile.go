// Package profile defines the Profile entity and its store interface.
// Every user holds exactly one profile; it is the baseline grant that
// permission sets add to.
package profile

import (
	"time"

	"github.com/masatokaneko/shareguard/id"
)

// Profile is a named baseline permission container. System profiles are
// seeded by the host and cannot be renamed or deleted.
type Profile struct {
	ID          id.ProfileID `json:"id" db:"id"`
	TenantID    string       `json:"tenant_id" db:"tenant_id"`
	Name        string       `json:"name" db:"name"`
	Description string       `json:"description,omitempty" db:"description"`
	IsSystem    bool         `json:"is_system" db:"is_system"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// ListFilter contains filters for listing profiles.
type ListFilter struct {
	TenantID string `json:"tenant_id,omitempty"`
	IsSystem *bool  `json:"is_system,omitempty"`
	Search   string `json:"search,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}
