// Package shareguard provides Salesforce-style record-level access control
// for Go.
//
// Users get baseline permissions from a Profile, additive permissions from
// Permission Sets, and row-level access from ownership, the role hierarchy,
// sharing rules, and manual shares. The engine materializes derived share
// rows, keeps them consistent with their sources, and answers record access
// questions with a strict precedence procedure. It is tenant-scoped by
// default via forge.Scope and integrates with the Forge ecosystem.
//
//	eng, err := shareguard.NewEngine(
//	    shareguard.WithStore(memStore),
//	)
//	res, err := eng.RecordAccess(ctx, "user_123", "contract", "rec_456")
//	if res.Level == share.AccessReadWrite { ... }
package shareguard

import (
	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/permission"
	"github.com/masatokaneko/shareguard/share"
)

// Action is an object-level operation gated by effective permissions.
type Action string

const (
	// ActionCreate creates a new record of an object.
	ActionCreate Action = "create"

	// ActionRead reads a record.
	ActionRead Action = "read"

	// ActionEdit updates a record.
	ActionEdit Action = "edit"

	// ActionDelete deletes a record.
	ActionDelete Action = "delete"
)

// ObjectPermissions is the effective object-level grant of one user on one
// object: the boolean OR of the profile row and every active permission set
// row. A user with no rows has no access.
type ObjectPermissions struct {
	CanCreate bool `json:"can_create"`
	CanRead   bool `json:"can_read"`
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
	ViewAll   bool `json:"view_all"`
	ModifyAll bool `json:"modify_all"`
}

// merge ORs one stored permission row into the effective grant.
func (p *ObjectPermissions) merge(row *permission.ObjectPermission) {
	p.CanCreate = p.CanCreate || row.CanCreate
	p.CanRead = p.CanRead || row.CanRead
	p.CanEdit = p.CanEdit || row.CanEdit
	p.CanDelete = p.CanDelete || row.CanDelete
	p.ViewAll = p.ViewAll || row.ViewAll
	p.ModifyAll = p.ModifyAll || row.ModifyAll
}

// FieldPerm is the effective permission on one field.
type FieldPerm struct {
	Readable bool `json:"readable"`
	Editable bool `json:"editable"`
}

// DefaultFieldPerm is the policy for fields with no explicit permission
// row: readable, not editable.
var DefaultFieldPerm = FieldPerm{Readable: true, Editable: false}

// FieldSecurityMode selects which field permission ApplyFieldSecurity
// filters by.
type FieldSecurityMode string

const (
	// FieldSecurityRead nulls out fields the user cannot read.
	FieldSecurityRead FieldSecurityMode = "read"

	// FieldSecurityEdit nulls out fields the user cannot edit.
	FieldSecurityEdit FieldSecurityMode = "edit"
)

// PermissionContext is a user's resolved permission sources: the profile,
// the role, and the active permission sets.
type PermissionContext struct {
	TenantID         string               `json:"tenant_id"`
	UserID           string               `json:"user_id"`
	ProfileID        *id.ProfileID        `json:"profile_id,omitempty"`
	RoleID           *id.RoleID           `json:"role_id,omitempty"`
	PermissionSetIDs []id.PermissionSetID `json:"permission_set_ids,omitempty"`
}

// holders returns the permission containers in merge order: the profile
// first, then each active permission set.
func (pc *PermissionContext) holders() []permission.Holder {
	holders := make([]permission.Holder, 0, len(pc.PermissionSetIDs)+1)
	if pc.ProfileID != nil {
		holders = append(holders, permission.Holder{Type: permission.HolderProfile, ID: *pc.ProfileID})
	}
	for _, setID := range pc.PermissionSetIDs {
		holders = append(holders, permission.Holder{Type: permission.HolderPermissionSet, ID: setID})
	}
	return holders
}

// AccessRequest is the input to a record access evaluation.
type AccessRequest struct {
	TenantID   string `json:"tenant_id"`
	UserID     string `json:"user_id"`
	ObjectName string `json:"object_name"`
	RecordID   string `json:"record_id"`
}

// AccessSource identifies which precedence step produced an access result.
type AccessSource string

const (
	// SourceNone means no grant applied.
	SourceNone AccessSource = "none"

	// SourceModifyAll means an object-level modify-all override applied.
	SourceModifyAll AccessSource = "modify_all"

	// SourceViewAll means an object-level view-all override applied.
	SourceViewAll AccessSource = "view_all"

	// SourceParent means access was delegated to the parent record.
	SourceParent AccessSource = "parent"

	// SourceOrgDefault means the org-wide default level applied.
	SourceOrgDefault AccessSource = "org_default"

	// SourceOwner means the user owns the record.
	SourceOwner AccessSource = "owner"

	// SourceRoleHierarchy means the user's role is above the owner's role.
	SourceRoleHierarchy AccessSource = "role_hierarchy"

	// SourceShare means an explicit share row granted access.
	SourceShare AccessSource = "share"
)

// AccessResult is the outcome of a record access evaluation.
type AccessResult struct {
	Level      share.AccessLevel `json:"level"`
	Source     AccessSource      `json:"source"`
	Reason     string            `json:"reason,omitempty"`
	EvalTimeNs int64             `json:"eval_time_ns"`
}

// RecordFailure reports one record that failed during a batch
// recalculation.
type RecordFailure struct {
	RecordID string `json:"record_id"`
	Error    string `json:"error"`
}

// RecalcResult summarizes a sharing-rule recalculation. Failures are
// accumulated per record rather than aborting the batch; rerunning the
// recalculation is safe because every write is an upsert.
type RecalcResult struct {
	RuleID    id.RuleID       `json:"rule_id"`
	Processed int             `json:"processed"`
	Failures  []RecordFailure `json:"failures,omitempty"`
}
