// Package user defines the engine's projection of host-system users.
//
// Users are owned by the host application, so their ids are opaque strings
// rather than TypeIDs. The engine only stores what access decisions need:
// the profile, the optional role, and the active flag.
package user

import (
	"time"

	"github.com/masatokaneko/shareguard/id"
)

// User is a host-system user as seen by the access engine. Both ProfileID
// and RoleID are nullable; a user without a profile simply has no baseline
// grants.
type User struct {
	ID        string        `json:"id" db:"id"`
	TenantID  string        `json:"tenant_id" db:"tenant_id"`
	ProfileID *id.ProfileID `json:"profile_id,omitempty" db:"profile_id"`
	RoleID    *id.RoleID    `json:"role_id,omitempty" db:"role_id"`
	IsActive  bool          `json:"is_active" db:"is_active"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// ListFilter contains filters for listing users.
type ListFilter struct {
	TenantID  string        `json:"tenant_id,omitempty"`
	ProfileID *id.ProfileID `json:"profile_id,omitempty"`
	RoleID    *id.RoleID    `json:"role_id,omitempty"`
	IsActive  *bool         `json:"is_active,omitempty"`
	Limit     int           `json:"limit,omitempty"`
	Offset    int           `json:"offset,omitempty"`
}
