package shareguard

import (
	"errors"
	"testing"

	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/owd"
	"github.com/masatokaneko/shareguard/permission"
	"github.com/masatokaneko/shareguard/permset"
	"github.com/masatokaneko/shareguard/profile"
	"github.com/masatokaneko/shareguard/share"
)

func TestObjectPermissionsMerge(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	seedUser(t, s, "alice", "contract", nil, readPerm())

	setID := id.NewPermissionSetID()
	if err := s.CreatePermissionSet(ctx, &permset.PermissionSet{ID: setID, TenantID: "t1", Name: "editors", IsActive: true}); err != nil {
		t.Fatalf("create permission set: %v", err)
	}
	err := s.UpsertObjectPermission(ctx, &permission.ObjectPermission{
		TenantID:   "t1",
		HolderType: permission.HolderPermissionSet,
		HolderID:   setID,
		ObjectName: "contract",
		CanEdit:    true,
	})
	if err != nil {
		t.Fatalf("upsert set permission: %v", err)
	}

	// Before assignment only the profile baseline applies.
	perms, err := eng.ObjectPermissions(ctx, "alice", "contract")
	if err != nil {
		t.Fatalf("object permissions: %v", err)
	}
	if !perms.CanRead || perms.CanEdit {
		t.Fatalf("got %+v, want read only before assignment", perms)
	}

	err = s.CreateAssignment(ctx, &permset.Assignment{
		ID: id.NewAssignmentID(), TenantID: "t1", UserID: "alice", PermissionSetID: setID,
	})
	if err != nil {
		t.Fatalf("create assignment: %v", err)
	}

	perms, err = eng.ObjectPermissions(ctx, "alice", "contract")
	if err != nil {
		t.Fatalf("object permissions: %v", err)
	}
	if !perms.CanRead || !perms.CanEdit {
		t.Fatalf("got %+v, want read+edit after assignment", perms)
	}

	// Deactivating the set removes it from resolution; the assignment row
	// stays in place.
	ps, err := s.GetPermissionSet(ctx, setID)
	if err != nil {
		t.Fatalf("get permission set: %v", err)
	}
	ps.IsActive = false
	if err := s.UpdatePermissionSet(ctx, ps); err != nil {
		t.Fatalf("update permission set: %v", err)
	}
	perms, err = eng.ObjectPermissions(ctx, "alice", "contract")
	if err != nil {
		t.Fatalf("object permissions: %v", err)
	}
	if perms.CanEdit {
		t.Fatal("inactive permission set still granting")
	}

	assigns, err := s.ListAssignmentsForUser(ctx, "t1", "alice")
	if err != nil {
		t.Fatalf("list assignments: %v", err)
	}
	if len(assigns) != 1 {
		t.Fatalf("got %d assignments, want 1", len(assigns))
	}
}

func TestFieldPermissions(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	profID := seedUser(t, s, "alice", "contract", nil, readPerm())

	err := s.UpsertFieldPermission(ctx, &permission.FieldPermission{
		TenantID:   "t1",
		HolderType: permission.HolderProfile,
		HolderID:   profID,
		ObjectName: "contract",
		FieldName:  "salary",
		Readable:   false,
		Editable:   false,
	})
	if err != nil {
		t.Fatalf("upsert field permission: %v", err)
	}
	err = s.UpsertFieldPermission(ctx, &permission.FieldPermission{
		TenantID:   "t1",
		HolderType: permission.HolderProfile,
		HolderID:   profID,
		ObjectName: "contract",
		FieldName:  "status",
		Readable:   true,
		Editable:   true,
	})
	if err != nil {
		t.Fatalf("upsert field permission: %v", err)
	}

	fps, err := eng.FieldPermissions(ctx, "alice", "contract")
	if err != nil {
		t.Fatalf("field permissions: %v", err)
	}
	if fp := fps["salary"]; fp.Readable || fp.Editable {
		t.Fatalf("salary: got %+v, want hidden", fp)
	}
	if fp := fps["status"]; !fp.Readable || !fp.Editable {
		t.Fatalf("status: got %+v, want readable+editable", fp)
	}
	if _, ok := fps["name"]; ok {
		t.Fatal("fields without rows must not appear in the map")
	}

	// Fields without a row default to readable, not editable.
	ok, err := eng.HasFieldPermission(ctx, "alice", "contract", "name", FieldSecurityRead)
	if err != nil || !ok {
		t.Fatalf("read name: got %v/%v, want readable", ok, err)
	}
	ok, err = eng.HasFieldPermission(ctx, "alice", "contract", "name", FieldSecurityEdit)
	if err != nil {
		t.Fatalf("edit name: %v", err)
	}
	if ok {
		t.Fatal("default field permission must not be editable")
	}
}

func TestApplyFieldSecurity(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	profID := seedUser(t, s, "alice", "contract", nil, readPerm())

	err := s.UpsertFieldPermission(ctx, &permission.FieldPermission{
		TenantID:   "t1",
		HolderType: permission.HolderProfile,
		HolderID:   profID,
		ObjectName: "contract",
		FieldName:  "salary",
		Readable:   false,
	})
	if err != nil {
		t.Fatalf("upsert field permission: %v", err)
	}
	err = s.UpsertFieldPermission(ctx, &permission.FieldPermission{
		TenantID:   "t1",
		HolderType: permission.HolderProfile,
		HolderID:   profID,
		ObjectName: "contract",
		FieldName:  "status",
		Readable:   true,
		Editable:   false,
	})
	if err != nil {
		t.Fatalf("upsert field permission: %v", err)
	}

	fields := map[string]any{"salary": 90000, "status": "open", "name": "acme"}

	got, err := eng.ApplyFieldSecurity(ctx, "alice", "contract", fields, FieldSecurityRead)
	if err != nil {
		t.Fatalf("apply read: %v", err)
	}
	if got["salary"] != nil {
		t.Fatal("unreadable field not nulled in read mode")
	}
	if got["status"] != "open" || got["name"] != "acme" {
		t.Fatalf("readable fields mangled: %+v", got)
	}

	got, err = eng.ApplyFieldSecurity(ctx, "alice", "contract", fields, FieldSecurityEdit)
	if err != nil {
		t.Fatalf("apply edit: %v", err)
	}
	if got["status"] != nil {
		t.Fatal("uneditable field not nulled in edit mode")
	}
	// No explicit row leaves the field untouched even in edit mode.
	if got["name"] != "acme" {
		t.Fatalf("defaulted field mangled: %v", got["name"])
	}
}

func TestUpdateProfileSystemImmutable(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	sysID := id.NewProfileID()
	if err := s.CreateProfile(ctx, &profile.Profile{ID: sysID, TenantID: "t1", Name: "System Administrator", IsSystem: true}); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	renamed := &profile.Profile{ID: sysID, TenantID: "t1", Name: "Renamed", IsSystem: true}
	if err := eng.UpdateProfile(ctx, renamed); !errors.Is(err, ErrSystemProfileImmutable) {
		t.Fatalf("got %v, want ErrSystemProfileImmutable", err)
	}

	// Same name, new description is allowed, and the system flag cannot be
	// laundered away.
	updated := &profile.Profile{ID: sysID, TenantID: "t1", Name: "System Administrator", Description: "seeded", IsSystem: false}
	if err := eng.UpdateProfile(ctx, updated); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := s.GetProfile(ctx, sysID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if !got.IsSystem || got.Description != "seeded" {
		t.Fatalf("got %+v, want system flag pinned with new description", got)
	}
}

func TestDeleteProfile(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	sysID := id.NewProfileID()
	if err := s.CreateProfile(ctx, &profile.Profile{ID: sysID, TenantID: "t1", Name: "System Administrator", IsSystem: true}); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if err := eng.DeleteProfile(ctx, sysID); !errors.Is(err, ErrSystemProfileImmutable) {
		t.Fatalf("got %v, want ErrSystemProfileImmutable", err)
	}

	custom := id.NewProfileID()
	if err := s.CreateProfile(ctx, &profile.Profile{ID: custom, TenantID: "t1", Name: "Sales"}); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	err := s.UpsertObjectPermission(ctx, &permission.ObjectPermission{
		TenantID:   "t1",
		HolderType: permission.HolderProfile,
		HolderID:   custom,
		ObjectName: "contract",
		CanRead:    true,
	})
	if err != nil {
		t.Fatalf("upsert permission: %v", err)
	}

	if err := eng.DeleteProfile(ctx, custom); err != nil {
		t.Fatalf("delete profile: %v", err)
	}
	if _, err := s.GetProfile(ctx, custom); err == nil {
		t.Fatal("profile still present after delete")
	}
	holder := permission.Holder{Type: permission.HolderProfile, ID: custom}
	rows, err := s.ListObjectPermissionsForHolder(ctx, "t1", holder)
	if err != nil {
		t.Fatalf("list permissions: %v", err)
	}
	if len(rows) != 0 {
		t.Fatal("profile permission rows must be deleted with the profile")
	}
}

func TestOrgDefaultFallback(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := testCtx()

	d, err := eng.OrgDefault(ctx, "contract")
	if err != nil {
		t.Fatalf("org default: %v", err)
	}
	if d.InternalLevel != owd.Private || !d.GrantByHierarchy {
		t.Fatalf("got %+v, want private with hierarchy grants", d)
	}
	if d.InternalLevel.Access() != share.AccessNone {
		t.Fatal("private default must grant no baseline access")
	}
}
