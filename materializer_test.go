package shareguard

import (
	"errors"
	"testing"

	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/record"
	"github.com/masatokaneko/shareguard/rule"
	"github.com/masatokaneko/shareguard/share"
	"github.com/masatokaneko/shareguard/store/memory"
)

func liveShares(t *testing.T, eng *Engine, objectName, recordID string) []*share.Share {
	t.Helper()
	rows, err := eng.RecordShares(testCtx(), objectName, recordID)
	if err != nil {
		t.Fatalf("record shares: %v", err)
	}
	return rows
}

func findCause(rows []*share.Share, cause share.RowCause) *share.Share {
	for _, row := range rows {
		if row.RowCause == cause {
			return row
		}
	}
	return nil
}

func TestCalculateNewRecordShares(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	managerRole := seedRole(t, s, "manager", nil)
	repRole := seedRole(t, s, "rep", &managerRole)
	seedUser(t, s, "rep1", "contract", &repRole, readPerm())
	seedRecord(t, s, "contract", "rec1", "rep1")

	if err := eng.CalculateNewRecordShares(ctx, "contract", "rec1", "rep1"); err != nil {
		t.Fatalf("calculate: %v", err)
	}

	rows := liveShares(t, eng, "contract", "rec1")
	owner := findCause(rows, share.CauseOwner)
	if owner == nil || owner.SubjectID != "rep1" || owner.AccessLevel != share.AccessReadWrite {
		t.Fatalf("owner share missing or wrong: %+v", owner)
	}

	hier := findCause(rows, share.CauseRoleHierarchy)
	if hier == nil || hier.SubjectType != share.SubjectRole || hier.SubjectID != managerRole.String() {
		t.Fatalf("hierarchy share missing or wrong: %+v", hier)
	}
	// The owner's own role gets no hierarchy row.
	for _, row := range rows {
		if row.RowCause == share.CauseRoleHierarchy && row.SubjectID == repRole.String() {
			t.Fatal("owner's own role must not receive a hierarchy share")
		}
	}

	// Idempotent: a second materialization adds nothing.
	before := len(rows)
	if err := eng.CalculateNewRecordShares(ctx, "contract", "rec1", "rep1"); err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if after := len(liveShares(t, eng, "contract", "rec1")); after != before {
		t.Fatalf("share count changed %d -> %d on rerun", before, after)
	}
}

func TestCalculateNewRecordSharesAppliesRules(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	seedUser(t, s, "bob", "contract", nil, readPerm())

	ruleID := id.NewRuleID()
	err := s.CreateRule(ctx, &rule.SharingRule{
		ID:          ruleID,
		TenantID:    "t1",
		ObjectName:  "contract",
		Name:        "high value to bob",
		Type:        rule.CriteriaBased,
		Criteria:    []rule.Criterion{{Field: "tier", Value: "gold"}},
		TargetType:  rule.PrincipalUser,
		TargetID:    "bob",
		AccessLevel: share.AccessRead,
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("create rule: %v", err)
	}

	seedRecordWithFields(t, s, "contract", "rec1", "alice", map[string]any{"tier": "gold"})
	seedRecordWithFields(t, s, "contract", "rec2", "alice", map[string]any{"tier": "bronze"})

	for _, recID := range []string{"rec1", "rec2"} {
		if err := eng.CalculateNewRecordShares(ctx, "contract", recID, "alice"); err != nil {
			t.Fatalf("calculate %s: %v", recID, err)
		}
	}

	row := findCause(liveShares(t, eng, "contract", "rec1"), share.CauseRule)
	if row == nil || row.SubjectID != "bob" || row.AccessLevel != share.AccessRead {
		t.Fatalf("rule share missing or wrong: %+v", row)
	}
	if row.RuleID == nil || row.RuleID.String() != ruleID.String() {
		t.Fatalf("rule share not tagged with its rule: %+v", row)
	}
	if findCause(liveShares(t, eng, "contract", "rec2"), share.CauseRule) != nil {
		t.Fatal("rule share materialized for a non-matching record")
	}
}

func TestUpdateOwnerShare(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	seedUser(t, s, "alice", "contract", nil, readPerm())
	seedUser(t, s, "bob", "contract", nil, readPerm())
	seedRecord(t, s, "contract", "rec1", "alice")

	if err := eng.CalculateNewRecordShares(ctx, "contract", "rec1", "alice"); err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if _, err := eng.CreateManualShare(ctx, "contract", "rec1", share.UserSubject("carol"), share.AccessRead); err != nil {
		t.Fatalf("create manual share: %v", err)
	}

	if err := eng.UpdateOwnerShare(ctx, "contract", "rec1", "alice", "bob"); err != nil {
		t.Fatalf("update owner: %v", err)
	}

	rows := liveShares(t, eng, "contract", "rec1")
	owner := findCause(rows, share.CauseOwner)
	if owner == nil || owner.SubjectID != "bob" {
		t.Fatalf("owner share did not move: %+v", owner)
	}
	for _, row := range rows {
		if row.RowCause == share.CauseOwner && row.SubjectID == "alice" {
			t.Fatal("old owner share still live")
		}
	}
	manual := findCause(rows, share.CauseManual)
	if manual == nil || manual.SubjectID != "carol" {
		t.Fatal("manual share must survive an owner change")
	}
}

func TestRecalculateRecordShares(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	managerRole := seedRole(t, s, "manager", nil)
	repRole := seedRole(t, s, "rep", &managerRole)
	seedUser(t, s, "rep1", "contract", &repRole, readPerm())
	seedRecord(t, s, "contract", "rec1", "rep1")

	if err := eng.CalculateNewRecordShares(ctx, "contract", "rec1", "rep1"); err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if _, err := eng.CreateManualShare(ctx, "contract", "rec1", share.UserSubject("carol"), share.AccessReadWrite); err != nil {
		t.Fatalf("create manual share: %v", err)
	}

	if err := eng.RecalculateRecordShares(ctx, "contract", "rec1"); err != nil {
		t.Fatalf("recalculate: %v", err)
	}

	rows := liveShares(t, eng, "contract", "rec1")
	if findCause(rows, share.CauseOwner) == nil {
		t.Fatal("owner share must survive recalculation")
	}
	if findCause(rows, share.CauseManual) == nil {
		t.Fatal("manual share must survive recalculation")
	}
	if findCause(rows, share.CauseRoleHierarchy) == nil {
		t.Fatal("hierarchy share must be regenerated")
	}

	if err := eng.RecalculateRecordShares(ctx, "contract", "missing"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("got %v, want ErrRecordNotFound", err)
	}
}

func TestRecalculateRuleShares(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	seedUser(t, s, "bob", "contract", nil, readPerm())

	r := &rule.SharingRule{
		ID:          id.NewRuleID(),
		TenantID:    "t1",
		ObjectName:  "contract",
		Name:        "gold to bob",
		Type:        rule.CriteriaBased,
		Criteria:    []rule.Criterion{{Field: "tier", Value: "gold"}},
		TargetType:  rule.PrincipalUser,
		TargetID:    "bob",
		AccessLevel: share.AccessRead,
		IsActive:    true,
	}
	if err := s.CreateRule(ctx, r); err != nil {
		t.Fatalf("create rule: %v", err)
	}

	seedRecordWithFields(t, s, "contract", "rec1", "alice", map[string]any{"tier": "gold"})
	seedRecordWithFields(t, s, "contract", "rec2", "alice", map[string]any{"tier": "gold"})
	seedRecordWithFields(t, s, "contract", "rec3", "alice", map[string]any{"tier": "bronze"})

	result, err := eng.RecalculateRuleShares(ctx, r.ID)
	if err != nil {
		t.Fatalf("recalculate rule: %v", err)
	}
	if result.Processed != 3 || len(result.Failures) != 0 {
		t.Fatalf("got processed=%d failures=%d, want 3/0", result.Processed, len(result.Failures))
	}
	if findCause(liveShares(t, eng, "contract", "rec1"), share.CauseRule) == nil {
		t.Fatal("matching record has no rule share")
	}
	if findCause(liveShares(t, eng, "contract", "rec3"), share.CauseRule) != nil {
		t.Fatal("non-matching record got a rule share")
	}

	// Deactivating the rule and recalculating clears its shares.
	r.IsActive = false
	if err := s.UpdateRule(ctx, r); err != nil {
		t.Fatalf("update rule: %v", err)
	}
	result, err = eng.RecalculateRuleShares(ctx, r.ID)
	if err != nil {
		t.Fatalf("recalculate inactive rule: %v", err)
	}
	if result.Processed != 0 {
		t.Fatalf("inactive rule processed %d records, want 0", result.Processed)
	}
	if findCause(liveShares(t, eng, "contract", "rec1"), share.CauseRule) != nil {
		t.Fatal("inactive rule left shares behind")
	}

	if _, err := eng.RecalculateRuleShares(ctx, id.NewRuleID()); !errors.Is(err, ErrRuleNotFound) {
		t.Fatalf("got %v, want ErrRuleNotFound", err)
	}
}

func TestManualShareLifecycle(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	seedRecord(t, s, "contract", "rec1", "alice")

	if _, err := eng.CreateManualShare(ctx, "contract", "rec1", share.UserSubject("bob"), share.AccessNone); !errors.Is(err, ErrInvalidAccessLevel) {
		t.Fatalf("got %v, want ErrInvalidAccessLevel", err)
	}
	if _, err := eng.CreateManualShare(ctx, "contract", "rec1", share.Subject{Type: "team", ID: "x"}, share.AccessRead); !errors.Is(err, ErrInvalidSubject) {
		t.Fatalf("got %v, want ErrInvalidSubject", err)
	}

	// Re-upserting the same grant widens in place and never narrows.
	if _, err := eng.CreateManualShare(ctx, "contract", "rec1", share.UserSubject("bob"), share.AccessRead); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := eng.CreateManualShare(ctx, "contract", "rec1", share.UserSubject("bob"), share.AccessReadWrite); err != nil {
		t.Fatalf("widen: %v", err)
	}
	if _, err := eng.CreateManualShare(ctx, "contract", "rec1", share.UserSubject("bob"), share.AccessRead); err != nil {
		t.Fatalf("re-create: %v", err)
	}

	rows := liveShares(t, eng, "contract", "rec1")
	if len(rows) != 1 {
		t.Fatalf("got %d live rows, want 1", len(rows))
	}
	if rows[0].AccessLevel != share.AccessReadWrite {
		t.Fatalf("got %s, want read_write after widening", rows[0].AccessLevel)
	}

	if err := eng.DeleteManualShare(ctx, "contract", "rec1", share.UserSubject("bob")); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(liveShares(t, eng, "contract", "rec1")) != 0 {
		t.Fatal("share still live after delete")
	}
	if err := eng.DeleteManualShare(ctx, "contract", "rec1", share.UserSubject("bob")); !errors.Is(err, ErrShareNotFound) {
		t.Fatalf("got %v, want ErrShareNotFound", err)
	}
}

func TestDeleteRecordShares(t *testing.T) {
	eng, s := newTestEngine(t)
	ctx := testCtx()

	seedObject(t, s, "contract")
	seedUser(t, s, "alice", "contract", nil, readPerm())
	seedRecord(t, s, "contract", "rec1", "alice")

	if err := eng.CalculateNewRecordShares(ctx, "contract", "rec1", "alice"); err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if _, err := eng.CreateManualShare(ctx, "contract", "rec1", share.UserSubject("bob"), share.AccessRead); err != nil {
		t.Fatalf("create manual share: %v", err)
	}

	if err := eng.DeleteRecordShares(ctx, "contract", "rec1"); err != nil {
		t.Fatalf("delete record shares: %v", err)
	}
	if len(liveShares(t, eng, "contract", "rec1")) != 0 {
		t.Fatal("live rows remain after record share deletion")
	}

	// Rows are soft-deleted, not erased.
	deleted, err := s.ListShares(ctx, &share.ListFilter{
		TenantID: "t1", ObjectName: "contract", RecordID: "rec1", IncludeDeleted: true,
	})
	if err != nil {
		t.Fatalf("list deleted: %v", err)
	}
	if len(deleted) == 0 {
		t.Fatal("soft-deleted rows missing")
	}
	for _, row := range deleted {
		if !row.IsDeleted {
			t.Fatalf("row %s not marked deleted", row.ID)
		}
	}
}

func seedRecordWithFields(t *testing.T, s *memory.Store, objectName, recordID, ownerID string, fields map[string]any) {
	t.Helper()
	err := s.UpsertRecord(testCtx(), &record.Record{
		TenantID:   "t1",
		ObjectName: objectName,
		ID:         recordID,
		OwnerID:    ownerID,
		Fields:     fields,
	})
	if err != nil {
		t.Fatalf("upsert record %s: %v", recordID, err)
	}
}
