// Package record defines the projection of host-system records the engine
// evaluates against: the owner, the optional parent record, and the field
// values criteria-based rules inspect. Record ids are host-owned opaque
// strings, like user ids.
package record

import "time"

// Record is the engine's projection of one host record.
type Record struct {
	TenantID   string         `json:"tenant_id" db:"tenant_id"`
	ObjectName string         `json:"object_name" db:"object_name"`
	ID         string         `json:"id" db:"id"`
	OwnerID    string         `json:"owner_id" db:"owner_id"`
	ParentID   string         `json:"parent_id,omitempty" db:"parent_id"`
	Fields     map[string]any `json:"fields,omitempty" db:"fields"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" db:"updated_at"`
}
