// Package id defines TypeID-based identity types for all Shareguard entities.
//
// Every entity uses a single ID struct with a prefix that identifies the
// entity type. IDs are K-sortable (UUIDv7-based), globally unique, and
// URL-safe in the format "prefix_suffix". User ids are deliberately NOT
// TypeIDs: users are owned by the host system and referenced as opaque
// strings.
package id

import (
	"database/sql/driver"
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Prefix identifies the entity type encoded in a TypeID.
type Prefix string

// Prefix constants for all Shareguard entity types.
const (
	PrefixRole          Prefix = "role"
	PrefixProfile       Prefix = "prof"
	PrefixPermissionSet Prefix = "pset"
	PrefixAssignment    Prefix = "psa"
	PrefixObjectPerm    Prefix = "operm"
	PrefixFieldPerm     Prefix = "fperm"
	PrefixOrgDefault    Prefix = "owd"
	PrefixGroup         Prefix = "grp"
	PrefixGroupMember   Prefix = "gmem"
	PrefixRule          Prefix = "srule"
	PrefixShare         Prefix = "shr"
	PrefixObjectDef     Prefix = "sobj"
)

// ID is the primary identifier type for all Shareguard entities.
// It wraps a TypeID providing a prefix-qualified, globally unique,
// sortable, URL-safe identifier in the format "prefix_suffix".
//
//nolint:recvcheck // Value receivers for read-only methods, pointer receivers for UnmarshalText/Scan.
type ID struct {
	inner typeid.TypeID
	valid bool
}

// Nil is the zero-value ID.
var Nil ID

// New generates a new globally unique ID with the given prefix.
// It panics if prefix is not a valid TypeID prefix (programming error).
func New(prefix Prefix) ID {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", prefix, err))
	}

	return ID{inner: tid, valid: true}
}

// Parse parses a TypeID string (e.g., "role_01h2xcejqtf2nbrexx3vqjhp41")
// into an ID. Returns an error if the string is not valid.
func Parse(s string) (ID, error) {
	if s == "" {
		return Nil, fmt.Errorf("id: parse %q: empty string", s)
	}

	tid, err := typeid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("id: parse %q: %w", s, err)
	}

	return ID{inner: tid, valid: true}, nil
}

// ParseWithPrefix parses a TypeID string and validates that its prefix
// matches the expected value.
func ParseWithPrefix(s string, expected Prefix) (ID, error) {
	parsed, err := Parse(s)
	if err != nil {
		return Nil, err
	}

	if parsed.Prefix() != expected {
		return Nil, fmt.Errorf("id: expected prefix %q, got %q", expected, parsed.Prefix())
	}

	return parsed, nil
}

// MustParse is like Parse but panics on error. Use for hardcoded ID values.
func MustParse(s string) ID {
	parsed, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("id: must parse %q: %v", s, err))
	}

	return parsed
}

// ──────────────────────────────────────────────────
// Type aliases per entity
// ──────────────────────────────────────────────────

// RoleID is a type-safe identifier for roles (prefix: "role").
type RoleID = ID

// ProfileID is a type-safe identifier for permission profiles (prefix: "prof").
type ProfileID = ID

// PermissionSetID is a type-safe identifier for permission sets (prefix: "pset").
type PermissionSetID = ID

// AssignmentID is a type-safe identifier for permission set assignments (prefix: "psa").
type AssignmentID = ID

// ObjectPermID is a type-safe identifier for object permission rows (prefix: "operm").
type ObjectPermID = ID

// FieldPermID is a type-safe identifier for field permission rows (prefix: "fperm").
type FieldPermID = ID

// OrgDefaultID is a type-safe identifier for org-wide default rows (prefix: "owd").
type OrgDefaultID = ID

// GroupID is a type-safe identifier for public groups (prefix: "grp").
type GroupID = ID

// GroupMemberID is a type-safe identifier for group members (prefix: "gmem").
type GroupMemberID = ID

// RuleID is a type-safe identifier for sharing rules (prefix: "srule").
type RuleID = ID

// ShareID is a type-safe identifier for share rows (prefix: "shr").
type ShareID = ID

// ObjectDefID is a type-safe identifier for object definitions (prefix: "sobj").
type ObjectDefID = ID

// ──────────────────────────────────────────────────
// Convenience constructors
// ──────────────────────────────────────────────────

// NewRoleID generates a new unique role ID.
func NewRoleID() ID { return New(PrefixRole) }

// NewProfileID generates a new unique profile ID.
func NewProfileID() ID { return New(PrefixProfile) }

// NewPermissionSetID generates a new unique permission set ID.
func NewPermissionSetID() ID { return New(PrefixPermissionSet) }

// NewAssignmentID generates a new unique assignment ID.
func NewAssignmentID() ID { return New(PrefixAssignment) }

// NewObjectPermID generates a new unique object permission ID.
func NewObjectPermID() ID { return New(PrefixObjectPerm) }

// NewFieldPermID generates a new unique field permission ID.
func NewFieldPermID() ID { return New(PrefixFieldPerm) }

// NewOrgDefaultID generates a new unique org-wide default ID.
func NewOrgDefaultID() ID { return New(PrefixOrgDefault) }

// NewGroupID generates a new unique public group ID.
func NewGroupID() ID { return New(PrefixGroup) }

// NewGroupMemberID generates a new unique group member ID.
func NewGroupMemberID() ID { return New(PrefixGroupMember) }

// NewRuleID generates a new unique sharing rule ID.
func NewRuleID() ID { return New(PrefixRule) }

// NewShareID generates a new unique share ID.
func NewShareID() ID { return New(PrefixShare) }

// NewObjectDefID generates a new unique object definition ID.
func NewObjectDefID() ID { return New(PrefixObjectDef) }

// ──────────────────────────────────────────────────
// Convenience parsers
// ──────────────────────────────────────────────────

// ParseRoleID parses a string and validates the "role" prefix.
func ParseRoleID(s string) (ID, error) { return ParseWithPrefix(s, PrefixRole) }

// ParseProfileID parses a string and validates the "prof" prefix.
func ParseProfileID(s string) (ID, error) { return ParseWithPrefix(s, PrefixProfile) }

// ParsePermissionSetID parses a string and validates the "pset" prefix.
func ParsePermissionSetID(s string) (ID, error) { return ParseWithPrefix(s, PrefixPermissionSet) }

// ParseAssignmentID parses a string and validates the "psa" prefix.
func ParseAssignmentID(s string) (ID, error) { return ParseWithPrefix(s, PrefixAssignment) }

// ParseObjectPermID parses a string and validates the "operm" prefix.
func ParseObjectPermID(s string) (ID, error) { return ParseWithPrefix(s, PrefixObjectPerm) }

// ParseFieldPermID parses a string and validates the "fperm" prefix.
func ParseFieldPermID(s string) (ID, error) { return ParseWithPrefix(s, PrefixFieldPerm) }

// ParseOrgDefaultID parses a string and validates the "owd" prefix.
func ParseOrgDefaultID(s string) (ID, error) { return ParseWithPrefix(s, PrefixOrgDefault) }

// ParseGroupID parses a string and validates the "grp" prefix.
func ParseGroupID(s string) (ID, error) { return ParseWithPrefix(s, PrefixGroup) }

// ParseGroupMemberID parses a string and validates the "gmem" prefix.
func ParseGroupMemberID(s string) (ID, error) { return ParseWithPrefix(s, PrefixGroupMember) }

// ParseRuleID parses a string and validates the "srule" prefix.
func ParseRuleID(s string) (ID, error) { return ParseWithPrefix(s, PrefixRule) }

// ParseShareID parses a string and validates the "shr" prefix.
func ParseShareID(s string) (ID, error) { return ParseWithPrefix(s, PrefixShare) }

// ParseObjectDefID parses a string and validates the "sobj" prefix.
func ParseObjectDefID(s string) (ID, error) { return ParseWithPrefix(s, PrefixObjectDef) }

// ParseAny parses a string into an ID without type checking the prefix.
func ParseAny(s string) (ID, error) { return Parse(s) }

// ──────────────────────────────────────────────────
// ID methods
// ──────────────────────────────────────────────────

// String returns the full TypeID string representation (prefix_suffix).
// Returns an empty string for the Nil ID.
func (i ID) String() string {
	if !i.valid {
		return ""
	}

	return i.inner.String()
}

// Prefix returns the prefix component of this ID.
func (i ID) Prefix() Prefix {
	if !i.valid {
		return ""
	}

	return Prefix(i.inner.Prefix())
}

// IsNil reports whether this ID is the zero value.
func (i ID) IsNil() bool {
	return !i.valid
}

// MarshalText implements encoding.TextMarshaler.
func (i ID) MarshalText() ([]byte, error) {
	if !i.valid {
		return []byte{}, nil
	}

	return []byte(i.inner.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *ID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*i = Nil

		return nil
	}

	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}

	*i = parsed

	return nil
}

// Value implements driver.Valuer for database storage.
// Returns nil for the Nil ID so that optional foreign key columns store NULL.
func (i ID) Value() (driver.Value, error) {
	if !i.valid {
		return nil, nil //nolint:nilnil // nil is the canonical NULL for driver.Valuer
	}

	return i.inner.String(), nil
}

// Scan implements sql.Scanner for database retrieval.
func (i *ID) Scan(src any) error {
	if src == nil {
		*i = Nil

		return nil
	}

	switch v := src.(type) {
	case string:
		if v == "" {
			*i = Nil

			return nil
		}

		return i.UnmarshalText([]byte(v))
	case []byte:
		if len(v) == 0 {
			*i = Nil

			return nil
		}

		return i.UnmarshalText(v)
	default:
		return fmt.Errorf("id: cannot scan %T into ID", src)
	}
}
