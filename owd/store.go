package owd

import "context"

// Store defines persistence operations for org-wide defaults.
type Store interface {
	// UpsertOrgDefault creates or replaces the row for a (tenant, object)
	// pair.
	UpsertOrgDefault(ctx context.Context, d *OrgDefault) error

	// GetOrgDefault retrieves the row for a (tenant, object) pair.
	GetOrgDefault(ctx context.Context, tenantID, objectName string) (*OrgDefault, error)

	// ListOrgDefaults returns all rows of a tenant.
	ListOrgDefaults(ctx context.Context, tenantID string) ([]*OrgDefault, error)

	// DeleteOrgDefault removes the row for a (tenant, object) pair.
	DeleteOrgDefault(ctx context.Context, tenantID, objectName string) error
}
