package permset

import (
	"context"

	"github.com/masatokaneko/shareguard/id"
)

// Store defines persistence operations for permission sets and assignments.
type Store interface {
	// CreatePermissionSet persists a new permission set.
	CreatePermissionSet(ctx context.Context, ps *PermissionSet) error

	// GetPermissionSet retrieves a permission set by ID.
	GetPermissionSet(ctx context.Context, setID id.PermissionSetID) (*PermissionSet, error)

	// UpdatePermissionSet persists changes to a permission set.
	UpdatePermissionSet(ctx context.Context, ps *PermissionSet) error

	// DeletePermissionSet removes a permission set and its assignments.
	DeletePermissionSet(ctx context.Context, setID id.PermissionSetID) error

	// ListPermissionSets returns permission sets matching the filter.
	ListPermissionSets(ctx context.Context, filter *ListFilter) ([]*PermissionSet, error)

	// CountPermissionSets returns the number of sets matching the filter.
	CountPermissionSets(ctx context.Context, filter *ListFilter) (int64, error)

	// CreateAssignment links a user to a permission set.
	CreateAssignment(ctx context.Context, a *Assignment) error

	// DeleteAssignment removes an assignment by ID.
	DeleteAssignment(ctx context.Context, assignmentID id.AssignmentID) error

	// ListAssignmentsForUser returns a user's assignments in a tenant.
	ListAssignmentsForUser(ctx context.Context, tenantID, userID string) ([]*Assignment, error)

	// ListActiveSetIDsForUser returns the ids of active permission sets
	// assigned to a user, in assignment creation order.
	ListActiveSetIDsForUser(ctx context.Context, tenantID, userID string) ([]id.PermissionSetID, error)
}
