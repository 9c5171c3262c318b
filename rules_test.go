package shareguard

import (
	"testing"

	"github.com/masatokaneko/shareguard/group"
	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/rule"
	"github.com/masatokaneko/shareguard/share"
	"github.com/masatokaneko/shareguard/user"
)

func TestOwnerBasedRuleRoleToRole(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	srcRole := seedRole(t, s, "sales", nil)
	tgtRole := seedRole(t, s, "support", nil)
	seedUser(t, s, "alice", "contract", &srcRole, readPerm())
	seedUser(t, s, "bob", "contract", &tgtRole, readPerm())

	err := s.CreateRule(ctx, &rule.SharingRule{
		ID:          id.NewRuleID(),
		TenantID:    "t1",
		ObjectName:  "contract",
		Name:        "sales records to support",
		Type:        rule.OwnerBased,
		SourceType:  rule.PrincipalRole,
		SourceID:    srcRole.String(),
		TargetType:  rule.PrincipalRole,
		TargetID:    tgtRole.String(),
		AccessLevel: share.AccessRead,
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("create rule: %v", err)
	}

	seedRecord(t, s, "contract", "rec1", "alice")
	if err := eng.CalculateNewRecordShares(ctx, "contract", "rec1", "alice"); err != nil {
		t.Fatalf("calculate: %v", err)
	}

	row := findCause(liveShares(t, eng, "contract", "rec1"), share.CauseRule)
	if row == nil {
		t.Fatal("owner-based rule produced no share")
	}
	if row.SubjectType != share.SubjectRole || row.SubjectID != tgtRole.String() || row.AccessLevel != share.AccessRead {
		t.Fatalf("got %s %s %s, want role %s read", row.SubjectType, row.SubjectID, row.AccessLevel, tgtRole)
	}

	res, err := eng.RecordAccess(ctx, "bob", "contract", "rec1")
	if err != nil {
		t.Fatalf("record access: %v", err)
	}
	if res.Level != share.AccessRead || res.Source != SourceShare {
		t.Fatalf("got %s/%s, want read/share", res.Level, res.Source)
	}

	// An owner outside the source role gets no rule share.
	seedRecord(t, s, "contract", "rec2", "carol")
	if err := eng.CalculateNewRecordShares(ctx, "contract", "rec2", "carol"); err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if findCause(liveShares(t, eng, "contract", "rec2"), share.CauseRule) != nil {
		t.Fatal("rule applied to a record whose owner is outside the source role")
	}
}

func TestRuleTargetRoleAndSubordinates(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	parentRole := seedRole(t, s, "director", nil)
	childRole := seedRole(t, s, "analyst", &parentRole)

	err := s.CreateRule(ctx, &rule.SharingRule{
		ID:          id.NewRuleID(),
		TenantID:    "t1",
		ObjectName:  "contract",
		Name:        "all contracts to the director subtree",
		Type:        rule.CriteriaBased,
		TargetType:  rule.PrincipalRoleAndSubordinates,
		TargetID:    parentRole.String(),
		AccessLevel: share.AccessRead,
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("create rule: %v", err)
	}

	seedRecord(t, s, "contract", "rec1", "alice")
	if err := eng.CalculateNewRecordShares(ctx, "contract", "rec1", "alice"); err != nil {
		t.Fatalf("calculate: %v", err)
	}

	// One Role-subject row per role in the subtree, never per user.
	subjects := make(map[string]bool)
	for _, row := range liveShares(t, eng, "contract", "rec1") {
		if row.RowCause != share.CauseRule {
			continue
		}
		if row.SubjectType != share.SubjectRole {
			t.Fatalf("got subject type %s, want role", row.SubjectType)
		}
		subjects[row.SubjectID] = true
	}
	if len(subjects) != 2 || !subjects[parentRole.String()] || !subjects[childRole.String()] {
		t.Fatalf("got subtree subjects %v, want director and analyst roles", subjects)
	}

	// A user placed under the subtree after materialization gains access
	// with no recomputation.
	seedUser(t, s, "newhire", "contract", &childRole, readPerm())
	res, err := eng.RecordAccess(ctx, "newhire", "contract", "rec1")
	if err != nil {
		t.Fatalf("record access: %v", err)
	}
	if res.Level != share.AccessRead || res.Source != SourceShare {
		t.Fatalf("got %s/%s, want read/share for late role member", res.Level, res.Source)
	}
}

func TestOwnerBasedRuleGroupSourceWithCycle(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	seedUser(t, s, "bob", "contract", nil, readPerm())

	groupA := id.NewGroupID()
	groupB := id.NewGroupID()
	if err := s.CreateGroup(ctx, &group.Group{ID: groupA, TenantID: "t1", Name: "a"}); err != nil {
		t.Fatalf("create group: %v", err)
	}
	if err := s.CreateGroup(ctx, &group.Group{ID: groupB, TenantID: "t1", Name: "b"}); err != nil {
		t.Fatalf("create group: %v", err)
	}
	addMember := func(gid id.GroupID, mt group.MemberType, memberID string) {
		t.Helper()
		err := s.AddMember(ctx, &group.Member{
			ID: id.NewGroupMemberID(), TenantID: "t1", GroupID: gid, MemberType: mt, MemberID: memberID,
		})
		if err != nil {
			t.Fatalf("add member: %v", err)
		}
	}
	addMember(groupA, group.MemberGroup, groupB.String())
	addMember(groupB, group.MemberGroup, groupA.String())
	addMember(groupB, group.MemberUser, "carol")

	err := s.UpsertUser(ctx, &user.User{ID: "carol", TenantID: "t1", IsActive: true})
	if err != nil {
		t.Fatalf("upsert user: %v", err)
	}

	err = s.CreateRule(ctx, &rule.SharingRule{
		ID:          id.NewRuleID(),
		TenantID:    "t1",
		ObjectName:  "contract",
		Name:        "group a records to bob",
		Type:        rule.OwnerBased,
		SourceType:  rule.PrincipalGroup,
		SourceID:    groupA.String(),
		TargetType:  rule.PrincipalUser,
		TargetID:    "bob",
		AccessLevel: share.AccessRead,
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("create rule: %v", err)
	}

	// Expansion must cross the mutual nesting exactly once and still find
	// carol, not hang or drop her.
	seedRecord(t, s, "contract", "rec1", "carol")
	if err := eng.CalculateNewRecordShares(ctx, "contract", "rec1", "carol"); err != nil {
		t.Fatalf("calculate: %v", err)
	}

	row := findCause(liveShares(t, eng, "contract", "rec1"), share.CauseRule)
	if row == nil || row.SubjectID != "bob" {
		t.Fatalf("rule share missing or wrong: %+v", row)
	}
}
