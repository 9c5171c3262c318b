package shareguard

import (
	"testing"

	"github.com/masatokaneko/shareguard/group"
	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/share"
)

func TestRecordAccessThroughNestedGroupCycle(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	seedUser(t, s, "carol", "contract", nil, readPerm())
	seedRecord(t, s, "contract", "rec1", "owner1")

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

	// The share targets the outer group; carol is only reachable through
	// the nested (and mutually nested) inner group.
	if _, err := eng.CreateManualShare(ctx, "contract", "rec1", share.GroupSubject(groupA), share.AccessRead); err != nil {
		t.Fatalf("create share: %v", err)
	}

	res, err := eng.RecordAccess(ctx, "carol", "contract", "rec1")
	if err != nil {
		t.Fatalf("record access: %v", err)
	}
	if res.Level != share.AccessRead || res.Source != SourceShare {
		t.Fatalf("got %s/%s, want read/share through nested groups", res.Level, res.Source)
	}
}
