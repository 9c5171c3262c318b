// Package share defines share rows, access levels, row causes, and share
// subjects for record-level sharing.
package share

import (
	"time"

	"github.com/masatokaneko/shareguard/id"
)

// AccessLevel is the strength of access granted on a record.
type AccessLevel string

// Access levels ordered from weakest to strongest.
const (
	AccessNone      AccessLevel = "none"
	AccessRead      AccessLevel = "read"
	AccessReadWrite AccessLevel = "read_write"
)

// rank orders access levels for widening comparisons.
func (l AccessLevel) rank() int {
	switch l {
	case AccessRead:
		return 1
	case AccessReadWrite:
		return 2
	default:
		return 0
	}
}

// Valid reports whether l is a known access level.
func (l AccessLevel) Valid() bool {
	switch l {
	case AccessNone, AccessRead, AccessReadWrite:
		return true
	default:
		return false
	}
}

// Covers reports whether l grants at least the access of other.
func (l AccessLevel) Covers(other AccessLevel) bool {
	return l.rank() >= other.rank()
}

// Max returns the wider of two access levels.
func Max(a, b AccessLevel) AccessLevel {
	if b.rank() > a.rank() {
		return b
	}

	return a
}

// RowCause records why a share row exists. Recalculation only ever touches
// rows with a derived cause; manual rows survive every recompute.
type RowCause string

// Row causes.
const (
	CauseOwner         RowCause = "owner"
	CauseRoleHierarchy RowCause = "role_hierarchy"
	CauseRule          RowCause = "rule"
	CauseManual        RowCause = "manual"
	CauseTeam          RowCause = "team"
	CauseTerritory     RowCause = "territory"
	CauseImplicit      RowCause = "implicit"
)

// Valid reports whether c is a known row cause.
func (c RowCause) Valid() bool {
	switch c {
	case CauseOwner, CauseRoleHierarchy, CauseRule, CauseManual, CauseTeam, CauseTerritory, CauseImplicit:
		return true
	default:
		return false
	}
}

// Derived reports whether rows with this cause are regenerated by
// recalculation. Manual rows are not.
func (c RowCause) Derived() bool {
	return c != CauseManual
}

// SubjectType identifies what kind of grantee a share row points at.
type SubjectType string

// Subject types. Role-and-subordinates targets are expanded to one row per
// role at materialization time, so stored rows only ever use these three.
const (
	SubjectUser  SubjectType = "user"
	SubjectGroup SubjectType = "group"
	SubjectRole  SubjectType = "role"
)

// Subject is a grantee reference: a user id, a group id, or a role id.
type Subject struct {
	Type SubjectType `json:"type"`
	ID   string      `json:"id"`
}

// Key returns a stable map key for the subject.
func (s Subject) Key() string {
	return string(s.Type) + ":" + s.ID
}

// UserSubject builds a subject for a user id.
func UserSubject(userID string) Subject {
	return Subject{Type: SubjectUser, ID: userID}
}

// GroupSubject builds a subject for a group id.
func GroupSubject(groupID id.GroupID) Subject {
	return Subject{Type: SubjectGroup, ID: groupID.String()}
}

// RoleSubject builds a subject for a role id.
func RoleSubject(roleID id.RoleID) Subject {
	return Subject{Type: SubjectRole, ID: roleID.String()}
}

// Share is one record-level access grant. Rows are unique per
// (tenant, object, record, subject type, subject id, row cause) among live
// rows; deletion is always a soft delete so that recomputation can revive
// rather than recreate.
type Share struct {
	ID          id.ShareID  `json:"id" db:"id"`
	TenantID    string      `json:"tenant_id" db:"tenant_id"`
	ObjectName  string      `json:"object_name" db:"object_name"`
	RecordID    string      `json:"record_id" db:"record_id"`
	SubjectType SubjectType `json:"subject_type" db:"subject_type"`
	SubjectID   string      `json:"subject_id" db:"subject_id"`
	AccessLevel AccessLevel `json:"access_level" db:"access_level"`
	RowCause    RowCause    `json:"row_cause" db:"row_cause"`
	RuleID      *id.RuleID  `json:"rule_id,omitempty" db:"rule_id"`
	IsDeleted   bool        `json:"is_deleted" db:"is_deleted"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
	DeletedAt   *time.Time  `json:"deleted_at,omitempty" db:"deleted_at"`
}

// Subject returns the grantee reference of the share row.
func (s *Share) Subject() Subject {
	return Subject{Type: s.SubjectType, ID: s.SubjectID}
}

// ListFilter contains filters for listing share rows.
type ListFilter struct {
	TenantID       string      `json:"tenant_id,omitempty"`
	ObjectName     string      `json:"object_name,omitempty"`
	RecordID       string      `json:"record_id,omitempty"`
	SubjectType    SubjectType `json:"subject_type,omitempty"`
	SubjectID      string      `json:"subject_id,omitempty"`
	RowCause       RowCause    `json:"row_cause,omitempty"`
	IncludeDeleted bool        `json:"include_deleted,omitempty"`
	Limit          int         `json:"limit,omitempty"`
	Offset         int         `json:"offset,omitempty"`
}
