// Package owd defines org-wide defaults: the baseline sharing level every
// record of an object starts from before shares widen it.
package owd

import (
	"time"

	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/share"
)

// Level is an org-wide default sharing level for an object.
type Level string

// Org-wide default levels.
const (
	Private            Level = "private"
	PublicReadOnly     Level = "public_read_only"
	PublicReadWrite    Level = "public_read_write"
	ControlledByParent Level = "controlled_by_parent"
)

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	switch l {
	case Private, PublicReadOnly, PublicReadWrite, ControlledByParent:
		return true
	default:
		return false
	}
}

// Access maps the level to the record access it grants on its own.
// ControlledByParent maps to none here; the engine resolves it by
// delegating to the parent record.
func (l Level) Access() share.AccessLevel {
	switch l {
	case PublicReadOnly:
		return share.AccessRead
	case PublicReadWrite:
		return share.AccessReadWrite
	default:
		return share.AccessNone
	}
}

// OrgDefault is the stored sharing baseline of one object in one tenant.
// Objects without a row fall back to DefaultFor.
type OrgDefault struct {
	ID               id.OrgDefaultID `json:"id" db:"id"`
	TenantID         string          `json:"tenant_id" db:"tenant_id"`
	ObjectName       string          `json:"object_name" db:"object_name"`
	InternalLevel    Level           `json:"internal_level" db:"internal_level"`
	ExternalLevel    Level           `json:"external_level" db:"external_level"`
	GrantByHierarchy bool            `json:"grant_by_hierarchy" db:"grant_by_hierarchy"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// DefaultFor returns the implicit org-wide default used when no row exists
// for an object: fully private with hierarchy grants enabled.
func DefaultFor(tenantID, objectName string) *OrgDefault {
	return &OrgDefault{
		TenantID:         tenantID,
		ObjectName:       objectName,
		InternalLevel:    Private,
		ExternalLevel:    Private,
		GrantByHierarchy: true,
	}
}
