// Package group defines public groups and their members. Members can be
// users, other groups, roles, or roles with their subordinates; expansion
// happens lazily at evaluation time with a nested-group cycle guard.
package group

import (
	"time"

	"github.com/masatokaneko/shareguard/id"
)

// MemberType identifies what a group member row refers to.
type MemberType string

// Member types.
const (
	MemberUser                MemberType = "user"
	MemberGroup               MemberType = "group"
	MemberRole                MemberType = "role"
	MemberRoleAndSubordinates MemberType = "role_and_subordinates"
)

// Valid reports whether t is a known member type.
func (t MemberType) Valid() bool {
	switch t {
	case MemberUser, MemberGroup, MemberRole, MemberRoleAndSubordinates:
		return true
	default:
		return false
	}
}

// Group is a named collection of users, roles, and nested groups usable as
// a sharing grantee.
type Group struct {
	ID          id.GroupID `json:"id" db:"id"`
	TenantID    string     `json:"tenant_id" db:"tenant_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Member is one membership row. MemberID holds a user id for user members
// and a TypeID string for group and role members.
type Member struct {
	ID         id.GroupMemberID `json:"id" db:"id"`
	TenantID   string           `json:"tenant_id" db:"tenant_id"`
	GroupID    id.GroupID       `json:"group_id" db:"group_id"`
	MemberType MemberType       `json:"member_type" db:"member_type"`
	MemberID   string           `json:"member_id" db:"member_id"`
	CreatedAt  time.Time        `json:"created_at" db:"created_at"`
}

// ListFilter contains filters for listing groups.
type ListFilter struct {
	TenantID string `json:"tenant_id,omitempty"`
	Search   string `json:"search,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}
