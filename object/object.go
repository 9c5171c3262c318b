// Package object defines the registry of sharable object types. The engine
// refuses to evaluate access on objects that are not registered, and the
// registry carries the parent mapping that controlled-by-parent defaults
// delegate through.
package object

import (
	"time"

	"github.com/masatokaneko/shareguard/id"
)

// Definition registers one object type for sharing in a tenant.
// ParentObject and ParentField are set when records of this object can
// inherit access from a parent record (org-wide default controlled by
// parent); ParentField names the projected field holding the parent
// record id.
type Definition struct {
	ID           id.ObjectDefID `json:"id" db:"id"`
	TenantID     string         `json:"tenant_id" db:"tenant_id"`
	Name         string         `json:"name" db:"name"`
	Label        string         `json:"label,omitempty" db:"label"`
	Description  string         `json:"description,omitempty" db:"description"`
	Sharable     bool           `json:"sharable" db:"sharable"`
	ParentObject string         `json:"parent_object,omitempty" db:"parent_object"`
	ParentField  string         `json:"parent_field,omitempty" db:"parent_field"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// HasParent reports whether the definition carries a parent mapping.
func (d *Definition) HasParent() bool {
	return d.ParentObject != "" && d.ParentField != ""
}

// ListFilter contains filters for listing object definitions.
type ListFilter struct {
	TenantID string `json:"tenant_id,omitempty"`
	Sharable *bool  `json:"sharable,omitempty"`
	Search   string `json:"search,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}
