package group

import (
	"context"

	"github.com/masatokaneko/shareguard/id"
)

// Store defines persistence operations for groups and their members.
type Store interface {
	// CreateGroup persists a new group.
	CreateGroup(ctx context.Context, g *Group) error

	// GetGroup retrieves a group by ID.
	GetGroup(ctx context.Context, groupID id.GroupID) (*Group, error)

	// UpdateGroup persists changes to a group.
	UpdateGroup(ctx context.Context, g *Group) error

	// DeleteGroup removes a group and its membership rows.
	DeleteGroup(ctx context.Context, groupID id.GroupID) error

	// ListGroups returns groups matching the filter.
	ListGroups(ctx context.Context, filter *ListFilter) ([]*Group, error)

	// CountGroups returns the number of groups matching the filter.
	CountGroups(ctx context.Context, filter *ListFilter) (int64, error)

	// AddMember persists a membership row.
	AddMember(ctx context.Context, m *Member) error

	// RemoveMember removes a membership row by ID.
	RemoveMember(ctx context.Context, memberID id.GroupMemberID) error

	// ListMembers returns the direct members of a group.
	ListMembers(ctx context.Context, groupID id.GroupID) ([]*Member, error)

	// ListGroupIDsWithMember returns ids of groups that directly contain
	// the given member row value, for reverse membership walks.
	ListGroupIDsWithMember(ctx context.Context, tenantID string, memberType MemberType, memberID string) ([]id.GroupID, error)
}
