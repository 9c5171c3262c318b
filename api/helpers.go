package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/xraph/forge"

	"github.com/masatokaneko/shareguard"
	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/permission"
	"github.com/masatokaneko/shareguard/share"
	"github.com/masatokaneko/shareguard/store"
)

// mapError maps domain errors to Forge HTTP errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return forge.NotFound(err.Error())
	}
	if errors.Is(err, shareguard.ErrSystemProfileImmutable) || errors.Is(err, shareguard.ErrUnsupportedObject) {
		return forge.BadRequest(err.Error())
	}
	if errors.Is(err, shareguard.ErrInvalidAccessLevel) || errors.Is(err, shareguard.ErrInvalidSubject) {
		return forge.BadRequest(err.Error())
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound) ||
		errors.Is(err, shareguard.ErrUserNotFound) ||
		errors.Is(err, shareguard.ErrRoleNotFound) ||
		errors.Is(err, shareguard.ErrProfileNotFound) ||
		errors.Is(err, shareguard.ErrPermissionSetNotFound) ||
		errors.Is(err, shareguard.ErrGroupNotFound) ||
		errors.Is(err, shareguard.ErrRuleNotFound) ||
		errors.Is(err, shareguard.ErrShareNotFound) ||
		errors.Is(err, shareguard.ErrRecordNotFound)
}

func defaultLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}

// requestContext layers an explicit tenant id from the request onto the
// handler context. When empty, the engine falls back to the request scope.
func requestContext(ctx forge.Context, tenantID string) context.Context {
	c := ctx.Context()
	if tenantID != "" {
		c = shareguard.WithTenant(c, "", tenantID)
	}
	return c
}

// resolveTenant returns the explicit tenant id or the one carried by the
// request scope.
func resolveTenant(ctx forge.Context, tenantID string) string {
	if tenantID != "" {
		return tenantID
	}
	return shareguard.TenantFromContext(ctx.Context())
}

// parseHolder builds a permission holder from its wire form, validating
// the id against the holder type's prefix.
func parseHolder(holderType, holderID string) (permission.Holder, error) {
	switch permission.HolderType(holderType) {
	case permission.HolderProfile:
		pid, err := id.ParseProfileID(holderID)
		if err != nil {
			return permission.Holder{}, fmt.Errorf("invalid holder id: %w", err)
		}
		return permission.Holder{Type: permission.HolderProfile, ID: pid}, nil
	case permission.HolderPermissionSet:
		sid, err := id.ParsePermissionSetID(holderID)
		if err != nil {
			return permission.Holder{}, fmt.Errorf("invalid holder id: %w", err)
		}
		return permission.Holder{Type: permission.HolderPermissionSet, ID: sid}, nil
	default:
		return permission.Holder{}, fmt.Errorf("unknown holder type %q", holderType)
	}
}

// parseSubject builds a share subject from its wire form, validating id
// prefixes for group and role subjects.
func parseSubject(subjectType, subjectID string) (share.Subject, error) {
	switch share.SubjectType(subjectType) {
	case share.SubjectUser:
		if subjectID == "" {
			return share.Subject{}, fmt.Errorf("%w: empty user id", shareguard.ErrInvalidSubject)
		}
		return share.UserSubject(subjectID), nil
	case share.SubjectGroup:
		gid, err := id.ParseGroupID(subjectID)
		if err != nil {
			return share.Subject{}, fmt.Errorf("%w: %v", shareguard.ErrInvalidSubject, err)
		}
		return share.GroupSubject(gid), nil
	case share.SubjectRole:
		rid, err := id.ParseRoleID(subjectID)
		if err != nil {
			return share.Subject{}, fmt.Errorf("%w: %v", shareguard.ErrInvalidSubject, err)
		}
		return share.RoleSubject(rid), nil
	default:
		return share.Subject{}, fmt.Errorf("%w: unknown subject type %q", shareguard.ErrInvalidSubject, subjectType)
	}
}
