package memory

import (
	"context"
	"testing"

	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/permset"
	"github.com/masatokaneko/shareguard/record"
	"github.com/masatokaneko/shareguard/share"
	"github.com/masatokaneko/shareguard/user"
)

func TestUpsertShareWidens(t *testing.T) {
	ctx := context.Background()
	s := New()

	first := &share.Share{
		TenantID:    "t1",
		ObjectName:  "contract",
		RecordID:    "r1",
		SubjectType: share.SubjectUser,
		SubjectID:   "u1",
		AccessLevel: share.AccessRead,
		RowCause:    share.CauseRule,
	}
	if err := s.UpsertShare(ctx, first); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if first.ID.IsNil() {
		t.Fatal("expected generated share id")
	}

	// Widening to read_write keeps the row id.
	second := &share.Share{
		TenantID:    "t1",
		ObjectName:  "contract",
		RecordID:    "r1",
		SubjectType: share.SubjectUser,
		SubjectID:   "u1",
		AccessLevel: share.AccessReadWrite,
		RowCause:    share.CauseRule,
	}
	if err := s.UpsertShare(ctx, second); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if second.ID.String() != first.ID.String() {
		t.Fatalf("expected reused id %s, got %s", first.ID, second.ID)
	}
	if second.AccessLevel != share.AccessReadWrite {
		t.Fatalf("expected read_write, got %q", second.AccessLevel)
	}

	// A narrower upsert does not shrink the stored level.
	third := &share.Share{
		TenantID:    "t1",
		ObjectName:  "contract",
		RecordID:    "r1",
		SubjectType: share.SubjectUser,
		SubjectID:   "u1",
		AccessLevel: share.AccessRead,
		RowCause:    share.CauseRule,
	}
	if err := s.UpsertShare(ctx, third); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if third.AccessLevel != share.AccessReadWrite {
		t.Fatalf("expected level to stay read_write, got %q", third.AccessLevel)
	}

	rows, err := s.ListSharesForRecord(ctx, "t1", "contract", "r1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 live row, got %d", len(rows))
	}
}

func TestUpsertShareRevivesSoftDeleted(t *testing.T) {
	ctx := context.Background()
	s := New()

	sh := &share.Share{
		TenantID:    "t1",
		ObjectName:  "contract",
		RecordID:    "r1",
		SubjectType: share.SubjectUser,
		SubjectID:   "u1",
		AccessLevel: share.AccessReadWrite,
		RowCause:    share.CauseOwner,
	}
	if err := s.UpsertShare(ctx, sh); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	originalID := sh.ID

	if err := s.SoftDeleteShare(ctx, sh.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	rows, _ := s.ListSharesForRecord(ctx, "t1", "contract", "r1")
	if len(rows) != 0 {
		t.Fatalf("expected no live rows after soft delete, got %d", len(rows))
	}

	// Re-upserting the same grant key revives the old row instead of
	// inserting a new one.
	revived := &share.Share{
		TenantID:    "t1",
		ObjectName:  "contract",
		RecordID:    "r1",
		SubjectType: share.SubjectUser,
		SubjectID:   "u1",
		AccessLevel: share.AccessRead,
		RowCause:    share.CauseOwner,
	}
	if err := s.UpsertShare(ctx, revived); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if revived.ID.String() != originalID.String() {
		t.Fatalf("expected revived id %s, got %s", originalID, revived.ID)
	}
	if revived.IsDeleted || revived.DeletedAt != nil {
		t.Fatal("expected revived row to be live")
	}
	if revived.AccessLevel != share.AccessRead {
		t.Fatalf("expected revived level read, got %q", revived.AccessLevel)
	}
}

func TestSoftDeleteSharesByCause(t *testing.T) {
	ctx := context.Background()
	s := New()

	causes := []share.RowCause{share.CauseOwner, share.CauseRule, share.CauseManual}
	for i, cause := range causes {
		sh := &share.Share{
			TenantID:    "t1",
			ObjectName:  "contract",
			RecordID:    "r1",
			SubjectType: share.SubjectUser,
			SubjectID:   "u" + string(rune('1'+i)),
			AccessLevel: share.AccessRead,
			RowCause:    cause,
		}
		if err := s.UpsertShare(ctx, sh); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	n, err := s.SoftDeleteShares(ctx, "t1", "contract", "r1", []share.RowCause{share.CauseOwner, share.CauseRule})
	if err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows marked, got %d", n)
	}

	rows, _ := s.ListSharesForRecord(ctx, "t1", "contract", "r1")
	if len(rows) != 1 || rows[0].RowCause != share.CauseManual {
		t.Fatalf("expected only the manual row to survive, got %+v", rows)
	}

	// Nil causes matches everything.
	n, err = s.SoftDeleteShares(ctx, "t1", "contract", "r1", nil)
	if err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row marked, got %d", n)
	}
}

func TestSoftDeleteSharesByRule(t *testing.T) {
	ctx := context.Background()
	s := New()

	ruleID := id.NewRuleID()
	otherRuleID := id.NewRuleID()
	for i, rid := range []id.RuleID{ruleID, otherRuleID} {
		r := rid
		sh := &share.Share{
			TenantID:    "t1",
			ObjectName:  "contract",
			RecordID:    "r" + string(rune('1'+i)),
			SubjectType: share.SubjectUser,
			SubjectID:   "u1",
			AccessLevel: share.AccessRead,
			RowCause:    share.CauseRule,
			RuleID:      &r,
		}
		if err := s.UpsertShare(ctx, sh); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	n, err := s.SoftDeleteSharesByRule(ctx, "t1", ruleID)
	if err != nil {
		t.Fatalf("soft delete by rule: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row marked, got %d", n)
	}
	rows, _ := s.ListSharesForRecord(ctx, "t1", "contract", "r2")
	if len(rows) != 1 {
		t.Fatal("expected the other rule's row to survive")
	}
}

func TestListSharesForSubjects(t *testing.T) {
	ctx := context.Background()
	s := New()

	groupID := id.NewGroupID()
	subjects := []share.Subject{
		share.UserSubject("u1"),
		share.GroupSubject(groupID),
	}
	for _, sub := range subjects {
		sh := &share.Share{
			TenantID:    "t1",
			ObjectName:  "contract",
			RecordID:    "r1",
			SubjectType: sub.Type,
			SubjectID:   sub.ID,
			AccessLevel: share.AccessRead,
			RowCause:    share.CauseRule,
		}
		if err := s.UpsertShare(ctx, sh); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}
	// A row for an unrelated subject.
	other := &share.Share{
		TenantID:    "t1",
		ObjectName:  "contract",
		RecordID:    "r1",
		SubjectType: share.SubjectUser,
		SubjectID:   "u2",
		AccessLevel: share.AccessReadWrite,
		RowCause:    share.CauseManual,
	}
	if err := s.UpsertShare(ctx, other); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	rows, err := s.ListSharesForSubjects(ctx, "t1", "contract", "r1", subjects)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}

func TestListRecordIDsPagination(t *testing.T) {
	ctx := context.Background()
	s := New()

	for _, rid := range []string{"c", "a", "e", "b", "d"} {
		err := s.UpsertRecord(ctx, &record.Record{
			TenantID:   "t1",
			ObjectName: "contract",
			ID:         rid,
			OwnerID:    "u1",
		})
		if err != nil {
			t.Fatalf("upsert record: %v", err)
		}
	}

	page1, err := s.ListRecordIDs(ctx, "t1", "contract", "", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page1) != 2 || page1[0] != "a" || page1[1] != "b" {
		t.Fatalf("expected [a b], got %v", page1)
	}

	page2, err := s.ListRecordIDs(ctx, "t1", "contract", page1[len(page1)-1], 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page2) != 2 || page2[0] != "c" || page2[1] != "d" {
		t.Fatalf("expected [c d], got %v", page2)
	}

	page3, err := s.ListRecordIDs(ctx, "t1", "contract", page2[len(page2)-1], 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page3) != 1 || page3[0] != "e" {
		t.Fatalf("expected [e], got %v", page3)
	}
}

func TestListActiveSetIDsForUser(t *testing.T) {
	ctx := context.Background()
	s := New()

	active := &permset.PermissionSet{ID: id.NewPermissionSetID(), TenantID: "t1", Name: "Active Set", IsActive: true}
	inactive := &permset.PermissionSet{ID: id.NewPermissionSetID(), TenantID: "t1", Name: "Inactive Set", IsActive: false}
	for _, ps := range []*permset.PermissionSet{active, inactive} {
		if err := s.CreatePermissionSet(ctx, ps); err != nil {
			t.Fatalf("create permission set: %v", err)
		}
		a := &permset.Assignment{
			ID:              id.NewAssignmentID(),
			TenantID:        "t1",
			UserID:          "u1",
			PermissionSetID: ps.ID,
		}
		if err := s.CreateAssignment(ctx, a); err != nil {
			t.Fatalf("create assignment: %v", err)
		}
	}

	ids, err := s.ListActiveSetIDsForUser(ctx, "t1", "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 1 || ids[0].String() != active.ID.String() {
		t.Fatalf("expected only the active set, got %v", ids)
	}
}

func TestGetUserNotFound(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.UpsertUser(ctx, &user.User{ID: "u1", TenantID: "t1", IsActive: true}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if _, err := s.GetUser(ctx, "t1", "u1"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := s.GetUser(ctx, "t2", "u1"); err == nil {
		t.Fatal("expected not found for wrong tenant")
	}
}
