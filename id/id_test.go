package id_test

import (
	"strings"
	"testing"

	"github.com/masatokaneko/shareguard/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() id.ID
		prefix string
	}{
		{"RoleID", id.NewRoleID, "role_"},
		{"ProfileID", id.NewProfileID, "prof_"},
		{"PermissionSetID", id.NewPermissionSetID, "pset_"},
		{"AssignmentID", id.NewAssignmentID, "psa_"},
		{"ObjectPermID", id.NewObjectPermID, "operm_"},
		{"FieldPermID", id.NewFieldPermID, "fperm_"},
		{"OrgDefaultID", id.NewOrgDefaultID, "owd_"},
		{"GroupID", id.NewGroupID, "grp_"},
		{"GroupMemberID", id.NewGroupMemberID, "gmem_"},
		{"RuleID", id.NewRuleID, "srule_"},
		{"ShareID", id.NewShareID, "shr_"},
		{"ObjectDefID", id.NewObjectDefID, "sobj_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn().String()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	i := id.New(id.PrefixRole)
	if i.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if i.Prefix() != id.PrefixRole {
		t.Errorf("expected prefix %q, got %q", id.PrefixRole, i.Prefix())
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		newFn   func() id.ID
		parseFn func(string) (id.ID, error)
	}{
		{"RoleID", id.NewRoleID, id.ParseRoleID},
		{"ProfileID", id.NewProfileID, id.ParseProfileID},
		{"PermissionSetID", id.NewPermissionSetID, id.ParsePermissionSetID},
		{"GroupID", id.NewGroupID, id.ParseGroupID},
		{"RuleID", id.NewRuleID, id.ParseRuleID},
		{"ShareID", id.NewShareID, id.ParseShareID},
		{"ObjectDefID", id.NewObjectDefID, id.ParseObjectDefID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := tt.newFn()
			parsed, err := tt.parseFn(original.String())
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if parsed.String() != original.String() {
				t.Errorf("round-trip mismatch: %q != %q", parsed.String(), original.String())
			}
		})
	}
}

func TestCrossTypeRejection(t *testing.T) {
	roleID := id.NewRoleID()

	if _, err := id.ParseGroupID(roleID.String()); err == nil {
		t.Fatal("expected group parser to reject a role ID")
	}
	if _, err := id.ParseRuleID(roleID.String()); err == nil {
		t.Fatal("expected rule parser to reject a role ID")
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := id.Parse(""); err == nil {
		t.Fatal("expected error for empty string")
	}
}

func TestNilID(t *testing.T) {
	if !id.Nil.IsNil() {
		t.Fatal("expected Nil to be nil")
	}
	if id.Nil.String() != "" {
		t.Fatalf("expected empty string, got %q", id.Nil.String())
	}

	v, err := id.Nil.Value()
	if err != nil {
		t.Fatal(err)
	}
	if v != nil {
		t.Fatalf("expected NULL driver value, got %v", v)
	}
}

func TestScan(t *testing.T) {
	original := id.NewShareID()

	var scanned id.ID
	if err := scanned.Scan(original.String()); err != nil {
		t.Fatal(err)
	}
	if scanned.String() != original.String() {
		t.Fatalf("scan mismatch: %q != %q", scanned.String(), original.String())
	}

	var fromNil id.ID
	if err := fromNil.Scan(nil); err != nil {
		t.Fatal(err)
	}
	if !fromNil.IsNil() {
		t.Fatal("expected nil ID from NULL scan")
	}
}
