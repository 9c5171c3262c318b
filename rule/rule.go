// Package rule defines sharing rules: declarative grants that materialize
// into share rows when records are created or rules recalculated.
package rule

import (
	"time"

	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/share"
)

// Type distinguishes how a rule selects records.
type Type string

// Rule types.
const (
	OwnerBased    Type = "owner_based"
	CriteriaBased Type = "criteria_based"
)

// Valid reports whether t is a known rule type.
func (t Type) Valid() bool {
	return t == OwnerBased || t == CriteriaBased
}

// PrincipalType identifies what a rule's source or target refers to.
// Sources name owner populations and accept group, role, or
// role-and-subordinates; targets additionally accept a single user.
type PrincipalType string

// Principal types for rule sources and targets.
const (
	PrincipalUser                PrincipalType = "user"
	PrincipalGroup               PrincipalType = "group"
	PrincipalRole                PrincipalType = "role"
	PrincipalRoleAndSubordinates PrincipalType = "role_and_subordinates"
)

// Valid reports whether t is a known principal type.
func (t PrincipalType) Valid() bool {
	switch t {
	case PrincipalUser, PrincipalGroup, PrincipalRole, PrincipalRoleAndSubordinates:
		return true
	default:
		return false
	}
}

// ValidSource reports whether t may name an owner population.
func (t PrincipalType) ValidSource() bool {
	return t.Valid() && t != PrincipalUser
}

// Criterion is one field/value pair of a criteria-based rule. A record
// matches when every criterion matches; values compare by string form, and
// a slice value matches when the record field equals any element.
type Criterion struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// SharingRule grants a target principal access to records selected either
// by who owns them (owner-based) or by field values (criteria-based).
//
// A criteria-based rule with an empty criteria list matches every record of
// its object. Callers that want a rule to match nothing should deactivate
// or delete it instead.
type SharingRule struct {
	ID          id.RuleID         `json:"id" db:"id"`
	TenantID    string            `json:"tenant_id" db:"tenant_id"`
	ObjectName  string            `json:"object_name" db:"object_name"`
	Name        string            `json:"name" db:"name"`
	Description string            `json:"description,omitempty" db:"description"`
	Type        Type              `json:"type" db:"type"`
	SourceType  PrincipalType     `json:"source_type,omitempty" db:"source_type"`
	SourceID    string            `json:"source_id,omitempty" db:"source_id"`
	Criteria    []Criterion       `json:"criteria,omitempty" db:"criteria"`
	TargetType  PrincipalType     `json:"target_type" db:"target_type"`
	TargetID    string            `json:"target_id" db:"target_id"`
	AccessLevel share.AccessLevel `json:"access_level" db:"access_level"`
	IsActive    bool              `json:"is_active" db:"is_active"`
	CreatedAt   time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" db:"updated_at"`
}

// ListFilter contains filters for listing sharing rules.
type ListFilter struct {
	TenantID   string `json:"tenant_id,omitempty"`
	ObjectName string `json:"object_name,omitempty"`
	Type       Type   `json:"type,omitempty"`
	IsActive   *bool  `json:"is_active,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Offset     int    `json:"offset,omitempty"`
}
