package shareguard

import (
	"context"
	"fmt"

	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/owd"
	"github.com/masatokaneko/shareguard/permission"
	"github.com/masatokaneko/shareguard/profile"
)

// PermissionContext resolves a user's permission sources: profile id, role
// id, and active permission set ids. Fails with ErrUserNotFound if the user
// does not exist or is inactive.
func (e *Engine) PermissionContext(ctx context.Context, userID string) (*PermissionContext, error) {
	scope := scopeFromContext(ctx)
	return e.permissionContextFor(ctx, scope.tenantID, userID)
}

func (e *Engine) permissionContextFor(ctx context.Context, tenantID, userID string) (*PermissionContext, error) {
	u, err := e.store.GetUser(ctx, tenantID, userID)
	if err != nil || u == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	if !u.IsActive {
		return nil, fmt.Errorf("%w: %s is inactive", ErrUserNotFound, userID)
	}

	setIDs, err := e.store.ListActiveSetIDsForUser(ctx, tenantID, userID)
	if err != nil {
		return nil, fmt.Errorf("shareguard: list permission sets for %s: %w", userID, err)
	}

	return &PermissionContext{
		TenantID:         tenantID,
		UserID:           userID,
		ProfileID:        u.ProfileID,
		RoleID:           u.RoleID,
		PermissionSetIDs: setIDs,
	}, nil
}

// ObjectPermissions returns the user's effective object-level permissions:
// all-false, then the profile row ORed in, then every active permission set
// row ORed in. Permission sets are strictly additive — they can only grant,
// never revoke, a profile grant.
func (e *Engine) ObjectPermissions(ctx context.Context, userID, objectName string) (*ObjectPermissions, error) {
	pc, err := e.PermissionContext(ctx, userID)
	if err != nil {
		return nil, err
	}
	return e.objectPermissionsFor(ctx, pc, objectName)
}

func (e *Engine) objectPermissionsFor(ctx context.Context, pc *PermissionContext, objectName string) (*ObjectPermissions, error) {
	perms := &ObjectPermissions{}
	holders := pc.holders()
	if len(holders) == 0 {
		return perms, nil
	}

	rows, err := e.store.ListObjectPermissions(ctx, pc.TenantID, holders, objectName)
	if err != nil {
		return nil, fmt.Errorf("shareguard: list object permissions for %s: %w", objectName, err)
	}
	for _, row := range rows {
		perms.merge(row)
	}
	return perms, nil
}

// FieldPermissions returns the user's effective per-field permissions on an
// object, keyed by field name. Only fields with explicit permission rows
// appear in the map; absent fields carry DefaultFieldPerm.
func (e *Engine) FieldPermissions(ctx context.Context, userID, objectName string) (map[string]FieldPerm, error) {
	pc, err := e.PermissionContext(ctx, userID)
	if err != nil {
		return nil, err
	}
	return e.fieldPermissionsFor(ctx, pc, objectName)
}

func (e *Engine) fieldPermissionsFor(ctx context.Context, pc *PermissionContext, objectName string) (map[string]FieldPerm, error) {
	out := make(map[string]FieldPerm)
	holders := pc.holders()
	if len(holders) == 0 {
		return out, nil
	}

	rows, err := e.store.ListFieldPermissions(ctx, pc.TenantID, holders, objectName)
	if err != nil {
		return nil, fmt.Errorf("shareguard: list field permissions for %s: %w", objectName, err)
	}
	for _, row := range rows {
		fp := out[row.FieldName]
		fp.Readable = fp.Readable || row.Readable
		fp.Editable = fp.Editable || row.Editable
		out[row.FieldName] = fp
	}
	return out, nil
}

// HasFieldPermission reports whether the user may read (FieldSecurityRead)
// or edit (FieldSecurityEdit) one field of an object.
func (e *Engine) HasFieldPermission(ctx context.Context, userID, objectName, fieldName string, mode FieldSecurityMode) (bool, error) {
	fps, err := e.FieldPermissions(ctx, userID, objectName)
	if err != nil {
		return false, err
	}
	fp, ok := fps[fieldName]
	if !ok {
		fp = DefaultFieldPerm
	}
	if mode == FieldSecurityEdit {
		return fp.Editable, nil
	}
	return fp.Readable, nil
}

// ApplyFieldSecurity returns a copy of the record's fields with
// inaccessible fields nulled out: unreadable fields in read mode,
// uneditable fields in edit mode. Fields with no explicit permission row
// are left untouched.
func (e *Engine) ApplyFieldSecurity(ctx context.Context, userID, objectName string, fields map[string]any, mode FieldSecurityMode) (map[string]any, error) {
	fps, err := e.FieldPermissions(ctx, userID, objectName)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(fields))
	for name, val := range fields {
		fp, ok := fps[name]
		if !ok {
			out[name] = val
			continue
		}
		allowed := fp.Readable
		if mode == FieldSecurityEdit {
			allowed = fp.Editable
		}
		if allowed {
			out[name] = val
		} else {
			out[name] = nil
		}
	}
	return out, nil
}

// OrgDefault returns the org-wide default for an object, falling back to
// {private, private, hierarchy grants enabled} when no row is stored.
func (e *Engine) OrgDefault(ctx context.Context, objectName string) (*owd.OrgDefault, error) {
	scope := scopeFromContext(ctx)
	return e.orgDefaultFor(ctx, scope.tenantID, objectName), nil
}

func (e *Engine) orgDefaultFor(ctx context.Context, tenantID, objectName string) *owd.OrgDefault {
	d, err := e.store.GetOrgDefault(ctx, tenantID, objectName)
	if err != nil || d == nil {
		return owd.DefaultFor(tenantID, objectName)
	}
	return d
}

// UpdateProfile persists profile changes, refusing to rename system
// profiles.
func (e *Engine) UpdateProfile(ctx context.Context, p *profile.Profile) error {
	existing, err := e.store.GetProfile(ctx, p.ID)
	if err != nil || existing == nil {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, p.ID)
	}
	if existing.IsSystem && existing.Name != p.Name {
		return fmt.Errorf("%w: %s", ErrSystemProfileImmutable, existing.Name)
	}
	p.IsSystem = existing.IsSystem
	return e.store.UpdateProfile(ctx, p)
}

// DeleteProfile removes a profile and its permission rows, refusing to
// delete system profiles.
func (e *Engine) DeleteProfile(ctx context.Context, profileID id.ProfileID) error {
	existing, err := e.store.GetProfile(ctx, profileID)
	if err != nil || existing == nil {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, profileID)
	}
	if existing.IsSystem {
		return fmt.Errorf("%w: %s", ErrSystemProfileImmutable, existing.Name)
	}
	holder := permission.Holder{Type: permission.HolderProfile, ID: profileID}
	if err := e.store.DeletePermissionsForHolder(ctx, existing.TenantID, holder); err != nil {
		return fmt.Errorf("shareguard: delete profile permissions: %w", err)
	}
	return e.store.DeleteProfile(ctx, profileID)
}
