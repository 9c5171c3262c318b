package shareguard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/masatokaneko/shareguard/group"
	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/rule"
	"github.com/masatokaneko/shareguard/share"
)

// sourceMembers resolves a rule's owner population to a flat set of user
// ids: direct role members, a role subtree's members, or a public group
// expanded recursively.
func (e *Engine) sourceMembers(ctx context.Context, tenantID string, sourceType rule.PrincipalType, sourceID string) ([]string, error) {
	switch sourceType {
	case rule.PrincipalRole:
		roleID, err := id.ParseRoleID(sourceID)
		if err != nil {
			return nil, fmt.Errorf("shareguard: parse source role: %w", err)
		}
		return e.store.ListUsersByRole(ctx, tenantID, roleID)

	case rule.PrincipalRoleAndSubordinates:
		roleID, err := id.ParseRoleID(sourceID)
		if err != nil {
			return nil, fmt.Errorf("shareguard: parse source role: %w", err)
		}
		seen := make(map[string]struct{})
		var out []string
		for _, rid := range e.subtreeRoles(ctx, roleID) {
			users, err := e.store.ListUsersByRole(ctx, tenantID, rid)
			if err != nil {
				return nil, fmt.Errorf("shareguard: list users for role %s: %w", rid, err)
			}
			for _, u := range users {
				if _, ok := seen[u]; ok {
					continue
				}
				seen[u] = struct{}{}
				out = append(out, u)
			}
		}
		return out, nil

	case rule.PrincipalGroup:
		groupID, err := id.ParseGroupID(sourceID)
		if err != nil {
			return nil, fmt.Errorf("shareguard: parse source group: %w", err)
		}
		return e.expandGroupUsers(ctx, tenantID, groupID)

	default:
		return nil, fmt.Errorf("shareguard: unsupported source type %q", sourceType)
	}
}

// expandGroupUsers flattens a public group to user ids, expanding nested
// groups and role members. Nested-group cycles are guarded by a visited
// set; a cycle contributes nothing new instead of hanging.
func (e *Engine) expandGroupUsers(ctx context.Context, tenantID string, groupID id.GroupID) ([]string, error) {
	seenGroups := make(map[string]struct{})
	seenUsers := make(map[string]struct{})
	var out []string

	addUser := func(userID string) {
		if _, ok := seenUsers[userID]; ok {
			return
		}
		seenUsers[userID] = struct{}{}
		out = append(out, userID)
	}

	var walk func(gid id.GroupID, depth int) error
	walk = func(gid id.GroupID, depth int) error {
		if depth > e.config.MaxGroupDepth {
			return nil
		}
		key := gid.String()
		if _, ok := seenGroups[key]; ok {
			return nil
		}
		seenGroups[key] = struct{}{}

		members, err := e.store.ListMembers(ctx, gid)
		if err != nil {
			return fmt.Errorf("shareguard: list members of group %s: %w", gid, err)
		}
		for _, m := range members {
			switch m.MemberType {
			case group.MemberUser:
				addUser(m.MemberID)

			case group.MemberGroup:
				child, err := id.ParseGroupID(m.MemberID)
				if err != nil {
					e.logger.Warn("skipping malformed group member",
						slog.String("group_id", gid.String()), slog.String("member_id", m.MemberID))
					continue
				}
				if err := walk(child, depth+1); err != nil {
					return err
				}

			case group.MemberRole:
				roleID, err := id.ParseRoleID(m.MemberID)
				if err != nil {
					e.logger.Warn("skipping malformed role member",
						slog.String("group_id", gid.String()), slog.String("member_id", m.MemberID))
					continue
				}
				users, err := e.store.ListUsersByRole(ctx, tenantID, roleID)
				if err != nil {
					return err
				}
				for _, u := range users {
					addUser(u)
				}

			case group.MemberRoleAndSubordinates:
				roleID, err := id.ParseRoleID(m.MemberID)
				if err != nil {
					e.logger.Warn("skipping malformed role member",
						slog.String("group_id", gid.String()), slog.String("member_id", m.MemberID))
					continue
				}
				for _, rid := range e.subtreeRoles(ctx, roleID) {
					users, err := e.store.ListUsersByRole(ctx, tenantID, rid)
					if err != nil {
						return err
					}
					for _, u := range users {
						addUser(u)
					}
				}
			}
		}
		return nil
	}

	if err := walk(groupID, 0); err != nil {
		return nil, err
	}
	return out, nil
}

// targetSubjects expands a rule's target into share subjects. Users and
// roles are singletons; role-and-subordinates becomes one Role subject per
// role in the subtree so that users added to those roles later inherit
// access without recomputation; a public group stays a singleton Group
// subject whose membership is resolved lazily at read time.
func (e *Engine) targetSubjects(ctx context.Context, targetType rule.PrincipalType, targetID string) ([]share.Subject, error) {
	switch targetType {
	case rule.PrincipalUser:
		return []share.Subject{share.UserSubject(targetID)}, nil

	case rule.PrincipalRole:
		roleID, err := id.ParseRoleID(targetID)
		if err != nil {
			return nil, fmt.Errorf("shareguard: parse target role: %w", err)
		}
		return []share.Subject{share.RoleSubject(roleID)}, nil

	case rule.PrincipalRoleAndSubordinates:
		roleID, err := id.ParseRoleID(targetID)
		if err != nil {
			return nil, fmt.Errorf("shareguard: parse target role: %w", err)
		}
		roles := e.subtreeRoles(ctx, roleID)
		subjects := make([]share.Subject, 0, len(roles))
		for _, rid := range roles {
			subjects = append(subjects, share.RoleSubject(rid))
		}
		return subjects, nil

	case rule.PrincipalGroup:
		groupID, err := id.ParseGroupID(targetID)
		if err != nil {
			return nil, fmt.Errorf("shareguard: parse target group: %w", err)
		}
		return []share.Subject{share.GroupSubject(groupID)}, nil

	default:
		return nil, fmt.Errorf("shareguard: unsupported target type %q", targetType)
	}
}

// groupsForUser returns the ids of every group that contains the user:
// directly, via the user's role (as a role or role-and-subordinates
// member), or transitively through group nesting. The reverse walk is
// bounded by a visited set.
func (e *Engine) groupsForUser(ctx context.Context, tenantID, userID string, roleID *id.RoleID) []id.GroupID {
	seen := make(map[string]struct{})
	var out []id.GroupID
	var frontier []id.GroupID

	add := func(gids []id.GroupID) {
		for _, gid := range gids {
			key := gid.String()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, gid)
			frontier = append(frontier, gid)
		}
	}

	direct, err := e.store.ListGroupIDsWithMember(ctx, tenantID, group.MemberUser, userID)
	if err != nil {
		e.logger.Warn("group membership lookup failed",
			slog.String("user_id", userID), slog.String("error", err.Error()))
	} else {
		add(direct)
	}

	if roleID != nil {
		byRole, err := e.store.ListGroupIDsWithMember(ctx, tenantID, group.MemberRole, roleID.String())
		if err == nil {
			add(byRole)
		}
		// A role-and-subordinates member matches any role on the user's
		// path to the root, the user's own role included.
		for _, rid := range e.rolePathFrom(ctx, *roleID) {
			ras, err := e.store.ListGroupIDsWithMember(ctx, tenantID, group.MemberRoleAndSubordinates, rid.String())
			if err == nil {
				add(ras)
			}
		}
	}

	// Groups nested inside other groups grant membership upward.
	for len(frontier) > 0 {
		gid := frontier[0]
		frontier = frontier[1:]
		parents, err := e.store.ListGroupIDsWithMember(ctx, tenantID, group.MemberGroup, gid.String())
		if err != nil {
			continue
		}
		add(parents)
	}
	return out
}
