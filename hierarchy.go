package shareguard

import (
	"context"

	"github.com/masatokaneko/shareguard/id"
)

// UserRolePath returns role ids from the user's own role up to the root of
// the hierarchy. A user without a role yields an empty path.
func (e *Engine) UserRolePath(ctx context.Context, userID string) ([]id.RoleID, error) {
	pc, err := e.PermissionContext(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pc.RoleID == nil {
		return nil, nil
	}
	return e.rolePathFrom(ctx, *pc.RoleID), nil
}

// rolePathFrom walks parent pointers from a role to the root. The walk is
// bounded by a visited set and a depth limit; a cyclic hierarchy degrades
// to a truncated path instead of looping.
func (e *Engine) rolePathFrom(ctx context.Context, start id.RoleID) []id.RoleID {
	seen := make(map[string]struct{})
	path := make([]id.RoleID, 0, 4)

	current := start
	for depth := 0; depth <= e.config.MaxHierarchyDepth; depth++ {
		key := current.String()
		if _, ok := seen[key]; ok {
			break
		}
		seen[key] = struct{}{}
		path = append(path, current)

		r, err := e.store.GetRole(ctx, current)
		if err != nil || r == nil || r.ParentID == nil {
			break
		}
		current = *r.ParentID
	}
	return path
}

// isAncestorRole reports whether sourceID is a strict ancestor of targetID:
// it walks upward from targetID and returns true iff sourceID is
// encountered. A role is not its own ancestor.
func (e *Engine) isAncestorRole(ctx context.Context, sourceID, targetID id.RoleID) bool {
	seen := map[string]struct{}{targetID.String(): {}}

	current := targetID
	for depth := 0; depth <= e.config.MaxHierarchyDepth; depth++ {
		r, err := e.store.GetRole(ctx, current)
		if err != nil || r == nil || r.ParentID == nil {
			return false
		}
		parent := *r.ParentID
		if parent.String() == sourceID.String() {
			return true
		}
		if _, ok := seen[parent.String()]; ok {
			return false
		}
		seen[parent.String()] = struct{}{}
		current = parent
	}
	return false
}

// subtreeRoles returns a role and all its descendants, breadth-first,
// cycle-guarded by a visited set.
func (e *Engine) subtreeRoles(ctx context.Context, rootID id.RoleID) []id.RoleID {
	seen := make(map[string]struct{})
	out := make([]id.RoleID, 0, 4)
	queue := []id.RoleID{rootID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		key := current.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, current)

		children, err := e.store.ListChildRoles(ctx, current)
		if err != nil {
			continue
		}
		for _, child := range children {
			queue = append(queue, child.ID)
		}
	}
	return out
}
