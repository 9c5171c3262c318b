package shareguard

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/masatokaneko/shareguard/group"
	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/object"
	"github.com/masatokaneko/shareguard/owd"
	"github.com/masatokaneko/shareguard/permission"
	"github.com/masatokaneko/shareguard/profile"
	"github.com/masatokaneko/shareguard/record"
	"github.com/masatokaneko/shareguard/role"
	"github.com/masatokaneko/shareguard/share"
	"github.com/masatokaneko/shareguard/store/memory"
	"github.com/masatokaneko/shareguard/user"
)

func newTestEngine(t *testing.T) (*Engine, *memory.Store) {
	t.Helper()
	s := memory.New()
	eng, err := NewEngine(WithStore(s))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return eng, s
}

func testCtx() context.Context {
	return WithTenant(context.Background(), "app1", "t1")
}

func seedObject(t *testing.T, s *memory.Store, name string) {
	t.Helper()
	err := s.CreateDefinition(testCtx(), &object.Definition{
		ID:       id.NewObjectDefID(),
		TenantID: "t1",
		Name:     name,
		Sharable: true,
	})
	if err != nil {
		t.Fatalf("create definition %s: %v", name, err)
	}
}

func seedChildObject(t *testing.T, s *memory.Store, name, parentObject string) {
	t.Helper()
	err := s.CreateDefinition(testCtx(), &object.Definition{
		ID:           id.NewObjectDefID(),
		TenantID:     "t1",
		Name:         name,
		Sharable:     true,
		ParentObject: parentObject,
		ParentField:  parentObject + "_id",
	})
	if err != nil {
		t.Fatalf("create definition %s: %v", name, err)
	}
}

// seedUser creates a profile carrying the given object permission row and a
// user holding it. It returns the profile id so tests can attach more rows.
func seedUser(t *testing.T, s *memory.Store, userID, objectName string, roleID *id.RoleID, perms permission.ObjectPermission) id.ProfileID {
	t.Helper()
	ctx := testCtx()

	profID := id.NewProfileID()
	if err := s.CreateProfile(ctx, &profile.Profile{ID: profID, TenantID: "t1", Name: "profile " + userID}); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	perms.TenantID = "t1"
	perms.HolderType = permission.HolderProfile
	perms.HolderID = profID
	perms.ObjectName = objectName
	if err := s.UpsertObjectPermission(ctx, &perms); err != nil {
		t.Fatalf("upsert object permission: %v", err)
	}

	err := s.UpsertUser(ctx, &user.User{
		ID:        userID,
		TenantID:  "t1",
		ProfileID: &profID,
		RoleID:    roleID,
		IsActive:  true,
	})
	if err != nil {
		t.Fatalf("upsert user %s: %v", userID, err)
	}
	return profID
}

func seedRecord(t *testing.T, s *memory.Store, objectName, recordID, ownerID string) {
	t.Helper()
	err := s.UpsertRecord(testCtx(), &record.Record{
		TenantID:   "t1",
		ObjectName: objectName,
		ID:         recordID,
		OwnerID:    ownerID,
	})
	if err != nil {
		t.Fatalf("upsert record %s: %v", recordID, err)
	}
}

func seedRole(t *testing.T, s *memory.Store, name string, parentID *id.RoleID) id.RoleID {
	t.Helper()
	roleID := id.NewRoleID()
	err := s.CreateRole(testCtx(), &role.Role{ID: roleID, TenantID: "t1", Name: name, ParentID: parentID})
	if err != nil {
		t.Fatalf("create role %s: %v", name, err)
	}
	return roleID
}

func readPerm() permission.ObjectPermission {
	return permission.ObjectPermission{CanRead: true}
}

func TestRecordAccessOwner(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	seedUser(t, s, "alice", "contract", nil, readPerm())
	seedRecord(t, s, "contract", "rec1", "alice")

	res, err := eng.RecordAccess(ctx, "alice", "contract", "rec1")
	if err != nil {
		t.Fatalf("record access: %v", err)
	}
	if res.Level != share.AccessReadWrite || res.Source != SourceOwner {
		t.Fatalf("got %s/%s, want read_write/owner", res.Level, res.Source)
	}
}

func TestRecordAccessDeniesWithoutObjectRead(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	// ModifyAll without CanRead must not grant anything.
	seedUser(t, s, "alice", "contract", nil, permission.ObjectPermission{ModifyAll: true})
	seedRecord(t, s, "contract", "rec1", "alice")

	res, err := eng.RecordAccess(ctx, "alice", "contract", "rec1")
	if err != nil {
		t.Fatalf("record access: %v", err)
	}
	if res.Level != share.AccessNone || res.Source != SourceNone {
		t.Fatalf("got %s/%s, want none/none", res.Level, res.Source)
	}
}

func TestRecordAccessModifyAll(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	seedUser(t, s, "admin", "contract", nil, permission.ObjectPermission{CanRead: true, ModifyAll: true})
	seedUser(t, s, "bob", "contract", nil, readPerm())
	seedRecord(t, s, "contract", "rec1", "bob")

	res, err := eng.RecordAccess(ctx, "admin", "contract", "rec1")
	if err != nil {
		t.Fatalf("record access: %v", err)
	}
	if res.Level != share.AccessReadWrite || res.Source != SourceModifyAll {
		t.Fatalf("got %s/%s, want read_write/modify_all", res.Level, res.Source)
	}
}

func TestRecordAccessRoleHierarchy(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	managerRole := seedRole(t, s, "manager", nil)
	repRole := seedRole(t, s, "rep", &managerRole)

	seedUser(t, s, "manager1", "contract", &managerRole, readPerm())
	seedUser(t, s, "rep1", "contract", &repRole, readPerm())
	seedRecord(t, s, "contract", "rec1", "rep1")

	res, err := eng.RecordAccess(ctx, "manager1", "contract", "rec1")
	if err != nil {
		t.Fatalf("record access: %v", err)
	}
	if res.Level != share.AccessReadWrite || res.Source != SourceRoleHierarchy {
		t.Fatalf("got %s/%s, want read_write/role_hierarchy", res.Level, res.Source)
	}

	// The grant flows up, never down.
	res, err = eng.RecordAccess(ctx, "rep1", "contract", "rec1")
	if err != nil {
		t.Fatalf("record access: %v", err)
	}
	if res.Source == SourceRoleHierarchy {
		t.Fatal("subordinate must not inherit through the hierarchy")
	}
}

func TestRecordAccessHierarchyDisabled(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	err := s.UpsertOrgDefault(ctx, &owd.OrgDefault{
		ID:            id.NewOrgDefaultID(),
		TenantID:      "t1",
		ObjectName:    "contract",
		InternalLevel: owd.Private,
		ExternalLevel: owd.Private,
	})
	if err != nil {
		t.Fatalf("upsert org default: %v", err)
	}

	managerRole := seedRole(t, s, "manager", nil)
	repRole := seedRole(t, s, "rep", &managerRole)
	seedUser(t, s, "manager1", "contract", &managerRole, readPerm())
	seedUser(t, s, "rep1", "contract", &repRole, readPerm())
	seedRecord(t, s, "contract", "rec1", "rep1")

	res, err := eng.RecordAccess(ctx, "manager1", "contract", "rec1")
	if err != nil {
		t.Fatalf("record access: %v", err)
	}
	if res.Level != share.AccessNone {
		t.Fatalf("got %s, want none with hierarchy grants off", res.Level)
	}
}

func TestRecordAccessShareRows(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	seedUser(t, s, "alice", "contract", nil, readPerm())
	seedUser(t, s, "bob", "contract", nil, readPerm())
	seedRecord(t, s, "contract", "rec1", "bob")

	groupID := id.NewGroupID()
	if err := s.CreateGroup(ctx, &group.Group{ID: groupID, TenantID: "t1", Name: "sales"}); err != nil {
		t.Fatalf("create group: %v", err)
	}
	err := s.AddMember(ctx, &group.Member{
		ID:         id.NewGroupMemberID(),
		TenantID:   "t1",
		GroupID:    groupID,
		MemberType: group.MemberUser,
		MemberID:   "alice",
	})
	if err != nil {
		t.Fatalf("add member: %v", err)
	}

	if _, err := eng.CreateManualShare(ctx, "contract", "rec1", share.GroupSubject(groupID), share.AccessRead); err != nil {
		t.Fatalf("create group share: %v", err)
	}

	res, err := eng.RecordAccess(ctx, "alice", "contract", "rec1")
	if err != nil {
		t.Fatalf("record access: %v", err)
	}
	if res.Level != share.AccessRead || res.Source != SourceShare {
		t.Fatalf("got %s/%s, want read/share", res.Level, res.Source)
	}

	// A wider direct share wins over the narrower group share.
	if _, err := eng.CreateManualShare(ctx, "contract", "rec1", share.UserSubject("alice"), share.AccessReadWrite); err != nil {
		t.Fatalf("create user share: %v", err)
	}
	res, err = eng.RecordAccess(ctx, "alice", "contract", "rec1")
	if err != nil {
		t.Fatalf("record access: %v", err)
	}
	if res.Level != share.AccessReadWrite || res.Source != SourceShare {
		t.Fatalf("got %s/%s, want read_write/share", res.Level, res.Source)
	}
}

func TestRecordAccessOrgDefaults(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	seedUser(t, s, "alice", "contract", nil, readPerm())
	seedUser(t, s, "bob", "contract", nil, readPerm())
	seedRecord(t, s, "contract", "rec1", "bob")

	set := func(level owd.Level) {
		t.Helper()
		err := s.UpsertOrgDefault(ctx, &owd.OrgDefault{
			ID:               id.NewOrgDefaultID(),
			TenantID:         "t1",
			ObjectName:       "contract",
			InternalLevel:    level,
			ExternalLevel:    owd.Private,
			GrantByHierarchy: true,
		})
		if err != nil {
			t.Fatalf("upsert org default: %v", err)
		}
	}

	set(owd.PublicReadOnly)
	res, err := eng.RecordAccess(ctx, "alice", "contract", "rec1")
	if err != nil {
		t.Fatalf("record access: %v", err)
	}
	if res.Level != share.AccessRead || res.Source != SourceOrgDefault {
		t.Fatalf("got %s/%s, want read/org_default", res.Level, res.Source)
	}

	set(owd.PublicReadWrite)
	res, err = eng.RecordAccess(ctx, "alice", "contract", "rec1")
	if err != nil {
		t.Fatalf("record access: %v", err)
	}
	if res.Level != share.AccessReadWrite || res.Source != SourceOrgDefault {
		t.Fatalf("got %s/%s, want read_write/org_default", res.Level, res.Source)
	}
}

func TestRecordAccessViewAll(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	seedUser(t, s, "auditor", "contract", nil, permission.ObjectPermission{CanRead: true, ViewAll: true})
	seedUser(t, s, "bob", "contract", nil, readPerm())
	seedRecord(t, s, "contract", "rec1", "bob")

	res, err := eng.RecordAccess(ctx, "auditor", "contract", "rec1")
	if err != nil {
		t.Fatalf("record access: %v", err)
	}
	if res.Level != share.AccessRead || res.Source != SourceViewAll {
		t.Fatalf("got %s/%s, want read/view_all", res.Level, res.Source)
	}
}

func TestRecordAccessControlledByParent(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "account")
	seedChildObject(t, s, "contact", "account")
	err := s.UpsertOrgDefault(ctx, &owd.OrgDefault{
		ID:            id.NewOrgDefaultID(),
		TenantID:      "t1",
		ObjectName:    "contact",
		InternalLevel: owd.ControlledByParent,
		ExternalLevel: owd.ControlledByParent,
	})
	if err != nil {
		t.Fatalf("upsert org default: %v", err)
	}

	profID := seedUser(t, s, "alice", "contact", nil, readPerm())
	err = s.UpsertObjectPermission(ctx, &permission.ObjectPermission{
		TenantID:   "t1",
		HolderType: permission.HolderProfile,
		HolderID:   profID,
		ObjectName: "account",
		CanRead:    true,
	})
	if err != nil {
		t.Fatalf("upsert parent permission: %v", err)
	}

	seedRecord(t, s, "account", "acc1", "alice")
	err = s.UpsertRecord(ctx, &record.Record{
		TenantID:   "t1",
		ObjectName: "contact",
		ID:         "con1",
		OwnerID:    "bob",
		ParentID:   "acc1",
	})
	if err != nil {
		t.Fatalf("upsert child record: %v", err)
	}

	res, err := eng.RecordAccess(ctx, "alice", "contact", "con1")
	if err != nil {
		t.Fatalf("record access: %v", err)
	}
	if res.Level != share.AccessReadWrite || res.Source != SourceParent {
		t.Fatalf("got %s/%s, want read_write/parent", res.Level, res.Source)
	}

	// A child without a parent record denies rather than falling through
	// to its own ownership.
	err = s.UpsertRecord(ctx, &record.Record{
		TenantID:   "t1",
		ObjectName: "contact",
		ID:         "con2",
		OwnerID:    "alice",
	})
	if err != nil {
		t.Fatalf("upsert orphan record: %v", err)
	}
	res, err = eng.RecordAccess(ctx, "alice", "contact", "con2")
	if err != nil {
		t.Fatalf("record access: %v", err)
	}
	if res.Level != share.AccessNone || res.Source != SourceParent {
		t.Fatalf("got %s/%s, want none/parent for orphan", res.Level, res.Source)
	}
}

func TestRecordAccessParentCycle(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedChildObject(t, s, "invoice", "payment")
	seedChildObject(t, s, "payment", "invoice")
	for _, name := range []string{"invoice", "payment"} {
		err := s.UpsertOrgDefault(ctx, &owd.OrgDefault{
			ID:            id.NewOrgDefaultID(),
			TenantID:      "t1",
			ObjectName:    name,
			InternalLevel: owd.ControlledByParent,
			ExternalLevel: owd.ControlledByParent,
		})
		if err != nil {
			t.Fatalf("upsert org default: %v", err)
		}
	}

	profID := seedUser(t, s, "alice", "invoice", nil, readPerm())
	err := s.UpsertObjectPermission(ctx, &permission.ObjectPermission{
		TenantID:   "t1",
		HolderType: permission.HolderProfile,
		HolderID:   profID,
		ObjectName: "payment",
		CanRead:    true,
	})
	if err != nil {
		t.Fatalf("upsert permission: %v", err)
	}

	err = s.UpsertRecord(ctx, &record.Record{
		TenantID: "t1", ObjectName: "invoice", ID: "inv1", OwnerID: "alice", ParentID: "pay1",
	})
	if err != nil {
		t.Fatalf("upsert record: %v", err)
	}
	err = s.UpsertRecord(ctx, &record.Record{
		TenantID: "t1", ObjectName: "payment", ID: "pay1", OwnerID: "alice", ParentID: "inv1",
	})
	if err != nil {
		t.Fatalf("upsert record: %v", err)
	}

	res, err := eng.RecordAccess(ctx, "alice", "invoice", "inv1")
	if err != nil {
		t.Fatalf("record access: %v", err)
	}
	if res.Level != share.AccessNone {
		t.Fatalf("got %s, want none on a delegation cycle", res.Level)
	}
}

func TestRecordAccessUnknownObject(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	seedUser(t, s, "alice", "contract", nil, readPerm())

	_, err := eng.RecordAccess(ctx, "alice", "widget", "rec1")
	if !errors.Is(err, ErrUnsupportedObject) {
		t.Fatalf("got %v, want ErrUnsupportedObject", err)
	}
}

func TestRecordAccessInactiveUser(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	profID := id.NewProfileID()
	if err := s.CreateProfile(ctx, &profile.Profile{ID: profID, TenantID: "t1", Name: "base"}); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	err := s.UpsertUser(ctx, &user.User{ID: "ghost", TenantID: "t1", ProfileID: &profID, IsActive: false})
	if err != nil {
		t.Fatalf("upsert user: %v", err)
	}

	_, err = eng.RecordAccess(ctx, "ghost", "contract", "rec1")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("got %v, want ErrUserNotFound", err)
	}
}

func TestCanPerformAction(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	seedUser(t, s, "alice", "contract", nil, permission.ObjectPermission{
		CanCreate: true, CanRead: true, CanEdit: true,
	})
	seedUser(t, s, "bob", "contract", nil, readPerm())
	seedRecord(t, s, "contract", "rec1", "bob")

	// Create is object-level only.
	ok, err := eng.CanPerformAction(ctx, "alice", "contract", "", ActionCreate)
	if err != nil || !ok {
		t.Fatalf("create: got %v/%v, want allowed", ok, err)
	}

	// Edit needs ReadWrite record access; a readable record is not enough.
	ok, err = eng.CanPerformAction(ctx, "alice", "contract", "rec1", ActionEdit)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if ok {
		t.Fatal("edit allowed without read_write record access")
	}

	if _, err := eng.CreateManualShare(ctx, "contract", "rec1", share.UserSubject("alice"), share.AccessReadWrite); err != nil {
		t.Fatalf("create share: %v", err)
	}
	ok, err = eng.CanPerformAction(ctx, "alice", "contract", "rec1", ActionEdit)
	if err != nil || !ok {
		t.Fatalf("edit after share: got %v/%v, want allowed", ok, err)
	}

	// Delete without the object flag is denied regardless of record access.
	ok, err = eng.CanPerformAction(ctx, "alice", "contract", "rec1", ActionDelete)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok {
		t.Fatal("delete allowed without the object delete flag")
	}

	if _, err := eng.CanPerformAction(ctx, "alice", "contract", "", Action("archive")); err == nil {
		t.Fatal("unknown action must error")
	}
}

func TestFilterAccessibleRecords(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	seedUser(t, s, "alice", "contract", nil, readPerm())
	seedUser(t, s, "bob", "contract", nil, readPerm())
	seedRecord(t, s, "contract", "rec1", "alice")
	seedRecord(t, s, "contract", "rec2", "bob")
	seedRecord(t, s, "contract", "rec3", "alice")

	got, err := eng.FilterAccessibleRecords(ctx, "alice", "contract",
		[]string{"rec1", "rec2", "rec3"}, share.AccessReadWrite)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 2 || got[0] != "rec1" || got[1] != "rec3" {
		t.Fatalf("got %v, want [rec1 rec3]", got)
	}
}

func TestUserRolePath(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	root := seedRole(t, s, "vp", nil)
	mid := seedRole(t, s, "manager", &root)
	leaf := seedRole(t, s, "rep", &mid)

	profID := id.NewProfileID()
	if err := s.CreateProfile(ctx, &profile.Profile{ID: profID, TenantID: "t1", Name: "base"}); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	err := s.UpsertUser(ctx, &user.User{ID: "rep1", TenantID: "t1", ProfileID: &profID, RoleID: &leaf, IsActive: true})
	if err != nil {
		t.Fatalf("upsert user: %v", err)
	}

	path, err := eng.UserRolePath(ctx, "rep1")
	if err != nil {
		t.Fatalf("role path: %v", err)
	}
	if len(path) != 3 || path[0].String() != leaf.String() || path[1].String() != mid.String() || path[2].String() != root.String() {
		t.Fatalf("got %v, want [rep manager vp] chain", path)
	}

	// A user without a role has an empty path.
	err = s.UpsertUser(ctx, &user.User{ID: "norole", TenantID: "t1", ProfileID: &profID, IsActive: true})
	if err != nil {
		t.Fatalf("upsert user: %v", err)
	}
	path, err = eng.UserRolePath(ctx, "norole")
	if err != nil {
		t.Fatalf("role path: %v", err)
	}
	if len(path) != 0 {
		t.Fatalf("got %v, want empty path", path)
	}
}

// mapCache is a minimal Cache for exercising invalidation.
type mapCache struct {
	entries map[string]*AccessResult
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]*AccessResult)}
}

func (c *mapCache) key(tenantID, userID, objectName, recordID string) string {
	return tenantID + "/" + userID + "/" + objectName + "/" + recordID
}

func (c *mapCache) Get(_ context.Context, tenantID, userID, objectName, recordID string) (*AccessResult, bool) {
	r, ok := c.entries[c.key(tenantID, userID, objectName, recordID)]
	return r, ok
}

func (c *mapCache) Set(_ context.Context, tenantID, userID, objectName, recordID string, result *AccessResult) {
	c.entries[c.key(tenantID, userID, objectName, recordID)] = result
}

func (c *mapCache) InvalidateRecord(_ context.Context, tenantID, objectName, recordID string) {
	for k := range c.entries {
		if strings.HasPrefix(k, tenantID+"/") && strings.HasSuffix(k, "/"+objectName+"/"+recordID) {
			delete(c.entries, k)
		}
	}
}

func (c *mapCache) InvalidateTenant(_ context.Context, tenantID string) {
	for k := range c.entries {
		if strings.HasPrefix(k, tenantID+"/") {
			delete(c.entries, k)
		}
	}
}

func TestInvalidateTenantDropsCachedDecisions(t *testing.T) {
	s := memory.New()
	eng, err := NewEngine(WithStore(s), WithCache(newMapCache()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	ctx := testCtx()

	seedObject(t, s, "contract")
	seedUser(t, s, "alice", "contract", nil, readPerm())
	seedUser(t, s, "bob", "contract", nil, readPerm())
	seedRecord(t, s, "contract", "rec1", "bob")

	err = s.UpsertOrgDefault(ctx, &owd.OrgDefault{
		ID:            id.NewOrgDefaultID(),
		TenantID:      "t1",
		ObjectName:    "contract",
		InternalLevel: owd.PublicReadOnly,
		ExternalLevel: owd.Private,
	})
	if err != nil {
		t.Fatalf("upsert org default: %v", err)
	}

	res, err := eng.RecordAccess(ctx, "alice", "contract", "rec1")
	if err != nil {
		t.Fatalf("record access: %v", err)
	}
	if res.Level != share.AccessRead {
		t.Fatalf("got %s, want read under public default", res.Level)
	}

	// Tightening the default leaves the cached grant until invalidation.
	err = s.UpsertOrgDefault(ctx, &owd.OrgDefault{
		ID:            id.NewOrgDefaultID(),
		TenantID:      "t1",
		ObjectName:    "contract",
		InternalLevel: owd.Private,
		ExternalLevel: owd.Private,
	})
	if err != nil {
		t.Fatalf("upsert org default: %v", err)
	}
	res, err = eng.RecordAccess(ctx, "alice", "contract", "rec1")
	if err != nil {
		t.Fatalf("record access: %v", err)
	}
	if res.Level != share.AccessRead {
		t.Fatalf("got %s, want stale cached read before invalidation", res.Level)
	}

	eng.InvalidateTenant(ctx, "t1")
	res, err = eng.RecordAccess(ctx, "alice", "contract", "rec1")
	if err != nil {
		t.Fatalf("record access: %v", err)
	}
	if res.Level != share.AccessNone {
		t.Fatalf("got %s, want none after invalidation", res.Level)
	}
}
