// Package permission defines object-level and field-level permission rows
// held by profiles and permission sets.
//
// Rows are sparse: the absence of an object permission row means no access
// to that object through that holder, and the absence of a field permission
// row means the field is readable but not editable. Effective permissions
// are the boolean OR across the user's profile and active permission sets.
package permission

import (
	"time"

	"github.com/masatokaneko/shareguard/id"
)

// HolderType identifies which container a permission row belongs to.
type HolderType string

// Holder types.
const (
	HolderProfile       HolderType = "profile"
	HolderPermissionSet HolderType = "permission_set"
)

// ObjectPermission grants object-level actions on one object through one
// holder. ViewAll and ModifyAll bypass record-level sharing entirely.
type ObjectPermission struct {
	ID         id.ObjectPermID `json:"id" db:"id"`
	TenantID   string          `json:"tenant_id" db:"tenant_id"`
	HolderType HolderType      `json:"holder_type" db:"holder_type"`
	HolderID   id.ID           `json:"holder_id" db:"holder_id"`
	ObjectName string          `json:"object_name" db:"object_name"`
	CanCreate  bool            `json:"can_create" db:"can_create"`
	CanRead    bool            `json:"can_read" db:"can_read"`
	CanEdit    bool            `json:"can_edit" db:"can_edit"`
	CanDelete  bool            `json:"can_delete" db:"can_delete"`
	ViewAll    bool            `json:"view_all" db:"view_all"`
	ModifyAll  bool            `json:"modify_all" db:"modify_all"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
}

// FieldPermission restricts one field of one object through one holder.
type FieldPermission struct {
	ID         id.FieldPermID `json:"id" db:"id"`
	TenantID   string         `json:"tenant_id" db:"tenant_id"`
	HolderType HolderType     `json:"holder_type" db:"holder_type"`
	HolderID   id.ID          `json:"holder_id" db:"holder_id"`
	ObjectName string         `json:"object_name" db:"object_name"`
	FieldName  string         `json:"field_name" db:"field_name"`
	Readable   bool           `json:"readable" db:"readable"`
	Editable   bool           `json:"editable" db:"editable"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" db:"updated_at"`
}

// Holder names one permission container during effective-permission
// resolution: the profile first, then each active permission set.
type Holder struct {
	Type HolderType `json:"type"`
	ID   id.ID      `json:"id"`
}
