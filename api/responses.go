package api

import (
	"github.com/masatokaneko/shareguard"
)

// CanActionResponse is the response for an action permission check.
type CanActionResponse struct {
	Allowed bool `json:"allowed" description:"Whether the action is allowed"`
}

// FilterRecordsResponse is the response for a batch accessibility filter.
type FilterRecordsResponse struct {
	RecordIDs []string `json:"record_ids" description:"Accessible record ids in input order"`
}

// FieldPermissionsResponse maps field names to effective permissions.
type FieldPermissionsResponse struct {
	Fields map[string]shareguard.FieldPerm `json:"fields" description:"Effective field permissions"`
}

// ApplyFieldSecurityResponse is the response for field-level filtering.
type ApplyFieldSecurityResponse struct {
	Fields map[string]any `json:"fields" description:"Field values with inaccessible fields nulled"`
}

// RolePathResponse lists a user's role chain from their role to the root.
type RolePathResponse struct {
	RoleIDs []string `json:"role_ids" description:"Role ids from the user's role up to the root"`
}

// ListResponse wraps a list of items with pagination metadata.
type ListResponse[T any] struct {
	Items  []T   `json:"items" description:"List of items"`
	Total  int64 `json:"total" description:"Total count"`
	Limit  int   `json:"limit" description:"Page size"`
	Offset int   `json:"offset" description:"Page offset"`
}
