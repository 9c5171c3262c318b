package api

import (
	"github.com/masatokaneko/shareguard/rule"
)

// ──────────────────────────────────────────────────
// Access requests
// ──────────────────────────────────────────────────

// CheckAccessRequest is the body for a record access evaluation.
type CheckAccessRequest struct {
	TenantID   string `json:"tenant_id,omitempty" description:"Tenant override; defaults to the request scope"`
	UserID     string `json:"user_id" description:"User identifier"`
	ObjectName string `json:"object_name" description:"Object type name"`
	RecordID   string `json:"record_id" description:"Record identifier"`
}

// CanActionRequest is the body for an action permission check.
type CanActionRequest struct {
	TenantID   string `json:"tenant_id,omitempty" description:"Tenant override; defaults to the request scope"`
	UserID     string `json:"user_id" description:"User identifier"`
	ObjectName string `json:"object_name" description:"Object type name"`
	RecordID   string `json:"record_id,omitempty" description:"Record identifier (empty for create)"`
	Action     string `json:"action" description:"Action (create, read, edit, delete)"`
}

// FilterRecordsRequest is the body for a batch accessibility filter.
type FilterRecordsRequest struct {
	TenantID      string   `json:"tenant_id,omitempty" description:"Tenant override; defaults to the request scope"`
	UserID        string   `json:"user_id" description:"User identifier"`
	ObjectName    string   `json:"object_name" description:"Object type name"`
	RecordIDs     []string `json:"record_ids" description:"Record identifiers to filter"`
	RequiredLevel string   `json:"required_level" description:"Required access level (read, read_write)"`
}

// ObjectAccessRequest holds the parameters for object- and field-level
// permission lookups.
type ObjectAccessRequest struct {
	ObjectName string `path:"objectName" description:"Object type name"`
	UserID     string `query:"user_id" description:"User identifier"`
	TenantID   string `query:"tenant_id" description:"Tenant override"`
}

// ApplyFieldSecurityRequest is the body for field-level filtering.
type ApplyFieldSecurityRequest struct {
	TenantID   string         `json:"tenant_id,omitempty" description:"Tenant override; defaults to the request scope"`
	UserID     string         `json:"user_id" description:"User identifier"`
	ObjectName string         `json:"object_name" description:"Object type name"`
	Mode       string         `json:"mode,omitempty" description:"Filter mode (read or edit; default read)"`
	Fields     map[string]any `json:"fields" description:"Field values to filter"`
}

// ──────────────────────────────────────────────────
// Share requests
// ──────────────────────────────────────────────────

// RecordRequest holds the path parameters addressing one record.
type RecordRequest struct {
	ObjectName string `path:"objectName" description:"Object type name"`
	RecordID   string `path:"recordId" description:"Record identifier"`
	TenantID   string `query:"tenant_id" description:"Tenant override"`
}

// CalculateSharesRequest is the body for share materialization on a new
// record.
type CalculateSharesRequest struct {
	TenantID string `json:"tenant_id,omitempty" description:"Tenant override; defaults to the request scope"`
	OwnerID  string `json:"owner_id" description:"Record owner user id"`
}

// ChangeOwnerRequest is the body for an ownership change.
type ChangeOwnerRequest struct {
	TenantID   string `json:"tenant_id,omitempty" description:"Tenant override; defaults to the request scope"`
	OldOwnerID string `json:"old_owner_id" description:"Previous owner user id"`
	NewOwnerID string `json:"new_owner_id" description:"New owner user id"`
}

// CreateManualShareRequest is the body for creating a manual share.
type CreateManualShareRequest struct {
	TenantID    string `json:"tenant_id,omitempty" description:"Tenant override; defaults to the request scope"`
	SubjectType string `json:"subject_type" description:"Grantee type (user, group, role)"`
	SubjectID   string `json:"subject_id" description:"Grantee identifier"`
	AccessLevel string `json:"access_level" description:"Granted level (read, read_write)"`
}

// DeleteManualShareRequest holds the parameters for removing a manual
// share.
type DeleteManualShareRequest struct {
	ObjectName  string `path:"objectName" description:"Object type name"`
	RecordID    string `path:"recordId" description:"Record identifier"`
	SubjectType string `query:"subject_type" description:"Grantee type (user, group, role)"`
	SubjectID   string `query:"subject_id" description:"Grantee identifier"`
	TenantID    string `query:"tenant_id" description:"Tenant override"`
}

// ListSharesRequest holds query parameters for listing share rows.
type ListSharesRequest struct {
	TenantID       string `query:"tenant_id" description:"Tenant override"`
	ObjectName     string `query:"object_name" description:"Filter by object type"`
	RecordID       string `query:"record_id" description:"Filter by record"`
	SubjectType    string `query:"subject_type" description:"Filter by grantee type"`
	SubjectID      string `query:"subject_id" description:"Filter by grantee id"`
	RowCause       string `query:"row_cause" description:"Filter by row cause"`
	IncludeDeleted bool   `query:"include_deleted" description:"Include soft-deleted rows"`
	Limit          int    `query:"limit" description:"Maximum results (default: 50)"`
	Offset         int    `query:"offset" description:"Results to skip"`
}

// ──────────────────────────────────────────────────
// Sharing rule requests
// ──────────────────────────────────────────────────

// CreateRuleRequest is the body for creating a sharing rule.
type CreateRuleRequest struct {
	TenantID    string           `json:"tenant_id,omitempty" description:"Tenant override; defaults to the request scope"`
	ObjectName  string           `json:"object_name" description:"Object type the rule applies to"`
	Name        string           `json:"name" description:"Rule name"`
	Description string           `json:"description,omitempty" description:"Human-readable description"`
	Type        string           `json:"type" description:"Rule type (owner_based, criteria_based)"`
	SourceType  string           `json:"source_type,omitempty" description:"Owner population type (owner-based rules)"`
	SourceID    string           `json:"source_id,omitempty" description:"Owner population identifier"`
	Criteria    []rule.Criterion `json:"criteria,omitempty" description:"Field criteria (criteria-based rules)"`
	TargetType  string           `json:"target_type" description:"Grantee type"`
	TargetID    string           `json:"target_id" description:"Grantee identifier"`
	AccessLevel string           `json:"access_level" description:"Granted level (read, read_write)"`
	IsActive    *bool            `json:"is_active,omitempty" description:"Active flag (default: true)"`
}

// UpdateRuleRequest is the body for updating a sharing rule.
type UpdateRuleRequest struct {
	Name        string           `json:"name,omitempty" description:"Rule name"`
	Description string           `json:"description,omitempty" description:"Human-readable description"`
	Criteria    []rule.Criterion `json:"criteria,omitempty" description:"Field criteria (criteria-based rules)"`
	AccessLevel string           `json:"access_level,omitempty" description:"Granted level (read, read_write)"`
	IsActive    *bool            `json:"is_active,omitempty" description:"Active flag"`
}

// GetRuleRequest is the path parameter for addressing a sharing rule.
type GetRuleRequest struct {
	RuleID string `path:"ruleId" description:"Sharing rule ID"`
}

// ListRulesRequest holds query parameters for listing sharing rules.
type ListRulesRequest struct {
	TenantID   string `query:"tenant_id" description:"Tenant override"`
	ObjectName string `query:"object_name" description:"Filter by object type"`
	Type       string `query:"type" description:"Filter by rule type"`
	IsActive   *bool  `query:"is_active" description:"Filter by active flag"`
	Limit      int    `query:"limit" description:"Maximum results (default: 50)"`
	Offset     int    `query:"offset" description:"Results to skip"`
}

// ──────────────────────────────────────────────────
// Org-wide default requests
// ──────────────────────────────────────────────────

// SetOrgDefaultRequest is the body for setting an object's org-wide
// default.
type SetOrgDefaultRequest struct {
	TenantID         string `json:"tenant_id,omitempty" description:"Tenant override; defaults to the request scope"`
	InternalLevel    string `json:"internal_level" description:"Baseline level for internal users"`
	ExternalLevel    string `json:"external_level,omitempty" description:"Baseline level for external users (default: private)"`
	GrantByHierarchy *bool  `json:"grant_by_hierarchy,omitempty" description:"Grant access up the role hierarchy (default: true)"`
}

// GetOrgDefaultRequest holds the parameters for reading an org-wide
// default.
type GetOrgDefaultRequest struct {
	ObjectName string `path:"objectName" description:"Object type name"`
	TenantID   string `query:"tenant_id" description:"Tenant override"`
}

// ListOrgDefaultsRequest holds query parameters for listing org-wide
// defaults.
type ListOrgDefaultsRequest struct {
	TenantID string `query:"tenant_id" description:"Tenant override"`
}

// ──────────────────────────────────────────────────
// Role requests
// ──────────────────────────────────────────────────

// CreateRoleRequest is the body for creating a role.
type CreateRoleRequest struct {
	TenantID    string `json:"tenant_id,omitempty" description:"Tenant override; defaults to the request scope"`
	Name        string `json:"name" description:"Role name"`
	Description string `json:"description,omitempty" description:"Human-readable description"`
	ParentID    string `json:"parent_id,omitempty" description:"Parent role ID in the hierarchy"`
}

// UpdateRoleRequest is the body for updating a role.
type UpdateRoleRequest struct {
	Name        string  `json:"name,omitempty" description:"Role name"`
	Description string  `json:"description,omitempty" description:"Human-readable description"`
	ParentID    *string `json:"parent_id,omitempty" description:"Parent role ID; empty string detaches the role"`
}

// GetRoleRequest is the path parameter for addressing a role.
type GetRoleRequest struct {
	RoleID string `path:"roleId" description:"Role ID"`
}

// ListRolesRequest holds query parameters for listing roles.
type ListRolesRequest struct {
	TenantID string `query:"tenant_id" description:"Tenant override"`
	ParentID string `query:"parent_id" description:"Filter by parent role"`
	Search   string `query:"search" description:"Search by name"`
	Limit    int    `query:"limit" description:"Maximum results (default: 50)"`
	Offset   int    `query:"offset" description:"Results to skip"`
}

// ──────────────────────────────────────────────────
// Group requests
// ──────────────────────────────────────────────────

// CreateGroupRequest is the body for creating a public group.
type CreateGroupRequest struct {
	TenantID    string `json:"tenant_id,omitempty" description:"Tenant override; defaults to the request scope"`
	Name        string `json:"name" description:"Group name"`
	Description string `json:"description,omitempty" description:"Human-readable description"`
}

// UpdateGroupRequest is the body for updating a public group.
type UpdateGroupRequest struct {
	Name        string `json:"name,omitempty" description:"Group name"`
	Description string `json:"description,omitempty" description:"Human-readable description"`
}

// GetGroupRequest is the path parameter for addressing a group.
type GetGroupRequest struct {
	GroupID string `path:"groupId" description:"Group ID"`
}

// ListGroupsRequest holds query parameters for listing groups.
type ListGroupsRequest struct {
	TenantID string `query:"tenant_id" description:"Tenant override"`
	Search   string `query:"search" description:"Search by name"`
	Limit    int    `query:"limit" description:"Maximum results (default: 50)"`
	Offset   int    `query:"offset" description:"Results to skip"`
}

// AddGroupMemberRequest is the body for adding a group member.
type AddGroupMemberRequest struct {
	TenantID   string `json:"tenant_id,omitempty" description:"Tenant override; defaults to the request scope"`
	MemberType string `json:"member_type" description:"Member type (user, group, role, role_and_subordinates)"`
	MemberID   string `json:"member_id" description:"Member identifier"`
}

// ──────────────────────────────────────────────────
// Profile requests
// ──────────────────────────────────────────────────

// CreateProfileRequest is the body for creating a profile.
type CreateProfileRequest struct {
	TenantID    string `json:"tenant_id,omitempty" description:"Tenant override; defaults to the request scope"`
	Name        string `json:"name" description:"Profile name"`
	Description string `json:"description,omitempty" description:"Human-readable description"`
	IsSystem    bool   `json:"is_system,omitempty" description:"System profile flag"`
}

// UpdateProfileRequest is the body for updating a profile.
type UpdateProfileRequest struct {
	Name        string `json:"name,omitempty" description:"Profile name"`
	Description string `json:"description,omitempty" description:"Human-readable description"`
}

// GetProfileRequest is the path parameter for addressing a profile.
type GetProfileRequest struct {
	ProfileID string `path:"profileId" description:"Profile ID"`
}

// ListProfilesRequest holds query parameters for listing profiles.
type ListProfilesRequest struct {
	TenantID string `query:"tenant_id" description:"Tenant override"`
	IsSystem *bool  `query:"is_system" description:"Filter by system flag"`
	Search   string `query:"search" description:"Search by name"`
	Limit    int    `query:"limit" description:"Maximum results (default: 50)"`
	Offset   int    `query:"offset" description:"Results to skip"`
}

// ──────────────────────────────────────────────────
// Permission set requests
// ──────────────────────────────────────────────────

// CreatePermissionSetRequest is the body for creating a permission set.
type CreatePermissionSetRequest struct {
	TenantID    string `json:"tenant_id,omitempty" description:"Tenant override; defaults to the request scope"`
	Name        string `json:"name" description:"Permission set name"`
	Description string `json:"description,omitempty" description:"Human-readable description"`
	IsActive    *bool  `json:"is_active,omitempty" description:"Active flag (default: true)"`
}

// UpdatePermissionSetRequest is the body for updating a permission set.
type UpdatePermissionSetRequest struct {
	Name        string `json:"name,omitempty" description:"Permission set name"`
	Description string `json:"description,omitempty" description:"Human-readable description"`
	IsActive    *bool  `json:"is_active,omitempty" description:"Active flag"`
}

// GetPermissionSetRequest is the path parameter for addressing a
// permission set.
type GetPermissionSetRequest struct {
	SetID string `path:"setId" description:"Permission set ID"`
}

// ListPermissionSetsRequest holds query parameters for listing permission
// sets.
type ListPermissionSetsRequest struct {
	TenantID string `query:"tenant_id" description:"Tenant override"`
	IsActive *bool  `query:"is_active" description:"Filter by active flag"`
	Search   string `query:"search" description:"Search by name"`
	Limit    int    `query:"limit" description:"Maximum results (default: 50)"`
	Offset   int    `query:"offset" description:"Results to skip"`
}

// CreateAssignmentRequest is the body for assigning a permission set to a
// user.
type CreateAssignmentRequest struct {
	TenantID string `json:"tenant_id,omitempty" description:"Tenant override; defaults to the request scope"`
	UserID   string `json:"user_id" description:"User identifier"`
}

// ──────────────────────────────────────────────────
// Permission row requests
// ──────────────────────────────────────────────────

// UpsertObjectPermissionRequest is the body for setting a holder's object
// permission row.
type UpsertObjectPermissionRequest struct {
	TenantID   string `json:"tenant_id,omitempty" description:"Tenant override; defaults to the request scope"`
	HolderType string `json:"holder_type" description:"Holder type (profile, permission_set)"`
	HolderID   string `json:"holder_id" description:"Holder ID"`
	ObjectName string `json:"object_name" description:"Object type name"`
	CanCreate  bool   `json:"can_create,omitempty" description:"Create grant"`
	CanRead    bool   `json:"can_read,omitempty" description:"Read grant"`
	CanEdit    bool   `json:"can_edit,omitempty" description:"Edit grant"`
	CanDelete  bool   `json:"can_delete,omitempty" description:"Delete grant"`
	ViewAll    bool   `json:"view_all,omitempty" description:"View-all override"`
	ModifyAll  bool   `json:"modify_all,omitempty" description:"Modify-all override"`
}

// UpsertFieldPermissionRequest is the body for setting a holder's field
// permission row.
type UpsertFieldPermissionRequest struct {
	TenantID   string `json:"tenant_id,omitempty" description:"Tenant override; defaults to the request scope"`
	HolderType string `json:"holder_type" description:"Holder type (profile, permission_set)"`
	HolderID   string `json:"holder_id" description:"Holder ID"`
	ObjectName string `json:"object_name" description:"Object type name"`
	FieldName  string `json:"field_name" description:"Field name"`
	Readable   bool   `json:"readable,omitempty" description:"Read grant"`
	Editable   bool   `json:"editable,omitempty" description:"Edit grant"`
}

// ListHolderPermissionsRequest holds query parameters for listing a
// holder's permission rows.
type ListHolderPermissionsRequest struct {
	TenantID   string `query:"tenant_id" description:"Tenant override"`
	HolderType string `query:"holder_type" description:"Holder type (profile, permission_set)"`
	HolderID   string `query:"holder_id" description:"Holder ID"`
	ObjectName string `query:"object_name" description:"Object type (field permissions only)"`
}

// DeletePermissionRequest is the path parameter for deleting a permission
// row.
type DeletePermissionRequest struct {
	PermID string `path:"permId" description:"Permission row ID"`
}

// ──────────────────────────────────────────────────
// User requests
// ──────────────────────────────────────────────────

// UpsertUserRequest is the body for projecting a host user.
type UpsertUserRequest struct {
	TenantID  string `json:"tenant_id,omitempty" description:"Tenant override; defaults to the request scope"`
	ProfileID string `json:"profile_id,omitempty" description:"Profile ID"`
	RoleID    string `json:"role_id,omitempty" description:"Role ID"`
	IsActive  *bool  `json:"is_active,omitempty" description:"Active flag (default: true)"`
}

// GetUserRequest holds the parameters for addressing a user projection.
type GetUserRequest struct {
	UserID   string `path:"userId" description:"User identifier"`
	TenantID string `query:"tenant_id" description:"Tenant override"`
}

// ListUsersRequest holds query parameters for listing user projections.
type ListUsersRequest struct {
	TenantID  string `query:"tenant_id" description:"Tenant override"`
	ProfileID string `query:"profile_id" description:"Filter by profile"`
	RoleID    string `query:"role_id" description:"Filter by role"`
	IsActive  *bool  `query:"is_active" description:"Filter by active flag"`
	Limit     int    `query:"limit" description:"Maximum results (default: 50)"`
	Offset    int    `query:"offset" description:"Results to skip"`
}

// ──────────────────────────────────────────────────
// Object definition and record requests
// ──────────────────────────────────────────────────

// CreateObjectRequest is the body for registering an object definition.
type CreateObjectRequest struct {
	TenantID     string `json:"tenant_id,omitempty" description:"Tenant override; defaults to the request scope"`
	Name         string `json:"name" description:"Object type name"`
	Label        string `json:"label,omitempty" description:"Display label"`
	Description  string `json:"description,omitempty" description:"Human-readable description"`
	Sharable     *bool  `json:"sharable,omitempty" description:"Sharable flag (default: true)"`
	ParentObject string `json:"parent_object,omitempty" description:"Parent object for controlled-by-parent"`
	ParentField  string `json:"parent_field,omitempty" description:"Record field holding the parent id"`
}

// UpdateObjectRequest is the body for updating an object definition.
type UpdateObjectRequest struct {
	Label        string  `json:"label,omitempty" description:"Display label"`
	Description  string  `json:"description,omitempty" description:"Human-readable description"`
	Sharable     *bool   `json:"sharable,omitempty" description:"Sharable flag"`
	ParentObject *string `json:"parent_object,omitempty" description:"Parent object; empty string clears"`
	ParentField  *string `json:"parent_field,omitempty" description:"Parent field; empty string clears"`
}

// GetObjectRequest holds the parameters for addressing an object
// definition by name.
type GetObjectRequest struct {
	ObjectName string `path:"objectName" description:"Object type name"`
	TenantID   string `query:"tenant_id" description:"Tenant override"`
}

// ListObjectsRequest holds query parameters for listing object
// definitions.
type ListObjectsRequest struct {
	TenantID string `query:"tenant_id" description:"Tenant override"`
	Sharable *bool  `query:"sharable" description:"Filter by sharable flag"`
	Search   string `query:"search" description:"Search by name"`
	Limit    int    `query:"limit" description:"Maximum results (default: 50)"`
	Offset   int    `query:"offset" description:"Results to skip"`
}

// UpsertRecordRequest is the body for projecting a host record.
type UpsertRecordRequest struct {
	TenantID string         `json:"tenant_id,omitempty" description:"Tenant override; defaults to the request scope"`
	OwnerID  string         `json:"owner_id" description:"Record owner user id"`
	ParentID string         `json:"parent_id,omitempty" description:"Parent record id"`
	Fields   map[string]any `json:"fields,omitempty" description:"Projected field values for criteria rules"`
}
