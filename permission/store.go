package permission

import (
	"context"

	"github.com/masatokaneko/shareguard/id"
)

// Store defines persistence operations for object and field permissions.
type Store interface {
	// UpsertObjectPermission creates or replaces the object permission row
	// for a (holder, object) pair.
	UpsertObjectPermission(ctx context.Context, p *ObjectPermission) error

	// GetObjectPermission retrieves the row for a (holder, object) pair.
	GetObjectPermission(ctx context.Context, tenantID string, holder Holder, objectName string) (*ObjectPermission, error)

	// ListObjectPermissions returns object permission rows for any of the
	// given holders on one object.
	ListObjectPermissions(ctx context.Context, tenantID string, holders []Holder, objectName string) ([]*ObjectPermission, error)

	// ListObjectPermissionsForHolder returns all object permission rows of
	// one holder.
	ListObjectPermissionsForHolder(ctx context.Context, tenantID string, holder Holder) ([]*ObjectPermission, error)

	// DeleteObjectPermission removes an object permission row by ID.
	DeleteObjectPermission(ctx context.Context, permID id.ObjectPermID) error

	// UpsertFieldPermission creates or replaces the field permission row
	// for a (holder, object, field) triple.
	UpsertFieldPermission(ctx context.Context, p *FieldPermission) error

	// ListFieldPermissions returns field permission rows for any of the
	// given holders on one object, across all fields.
	ListFieldPermissions(ctx context.Context, tenantID string, holders []Holder, objectName string) ([]*FieldPermission, error)

	// DeleteFieldPermission removes a field permission row by ID.
	DeleteFieldPermission(ctx context.Context, permID id.FieldPermID) error

	// DeletePermissionsForHolder removes every permission row of a holder.
	// Used when a profile or permission set is deleted.
	DeletePermissionsForHolder(ctx context.Context, tenantID string, holder Holder) error
}
