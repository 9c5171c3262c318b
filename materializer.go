package shareguard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/rule"
	"github.com/masatokaneko/shareguard/share"
)

// CalculateNewRecordShares materializes the derived share rows for a newly
// created record: the Owner share, the RoleHierarchy shares for every
// ancestor of the owner's role (when the org-wide default grants by
// hierarchy), and the grants of every active sharing rule. Calling it twice
// is idempotent: every write is an upsert and access levels only widen.
func (e *Engine) CalculateNewRecordShares(ctx context.Context, objectName, recordID, ownerID string) error {
	scope := scopeFromContext(ctx)
	if _, err := e.objectDefinition(ctx, scope.tenantID, objectName); err != nil {
		return err
	}

	if err := e.upsertOwnerShare(ctx, scope.tenantID, objectName, recordID, ownerID); err != nil {
		return err
	}
	e.materializeHierarchyShares(ctx, scope.tenantID, objectName, recordID, ownerID)
	e.applyRulesToRecord(ctx, scope.tenantID, objectName, recordID, ownerID)

	e.invalidateRecord(ctx, scope.tenantID, objectName, recordID)
	if e.plugins != nil {
		e.plugins.EmitSharesMaterialized(ctx, scope.tenantID, objectName, recordID)
	}
	return nil
}

// UpdateOwnerShare moves the Owner share from the old owner to the new one
// and fully recomputes the derived rows: an owner change can change which
// hierarchy ancestors and owner-based rules apply. Manual shares survive.
func (e *Engine) UpdateOwnerShare(ctx context.Context, objectName, recordID, oldOwnerID, newOwnerID string) error {
	scope := scopeFromContext(ctx)
	if _, err := e.objectDefinition(ctx, scope.tenantID, objectName); err != nil {
		return err
	}

	// The cause-wide soft delete covers the old owner's row, so oldOwnerID
	// is informational only.
	if _, err := e.store.SoftDeleteShares(ctx, scope.tenantID, objectName, recordID,
		[]share.RowCause{share.CauseOwner, share.CauseRoleHierarchy, share.CauseRule}); err != nil {
		return fmt.Errorf("shareguard: clear derived shares: %w", err)
	}

	if err := e.upsertOwnerShare(ctx, scope.tenantID, objectName, recordID, newOwnerID); err != nil {
		return err
	}
	e.materializeHierarchyShares(ctx, scope.tenantID, objectName, recordID, newOwnerID)
	e.applyRulesToRecord(ctx, scope.tenantID, objectName, recordID, newOwnerID)

	e.invalidateRecord(ctx, scope.tenantID, objectName, recordID)
	if e.plugins != nil {
		e.plugins.EmitSharesMaterialized(ctx, scope.tenantID, objectName, recordID)
	}
	return nil
}

// RecalculateRecordShares soft-deletes every Rule- and RoleHierarchy-caused
// row of the record and regenerates both from current state. Owner and
// Manual rows are untouched. Used after a rule definition or membership
// change.
func (e *Engine) RecalculateRecordShares(ctx context.Context, objectName, recordID string) error {
	scope := scopeFromContext(ctx)
	if _, err := e.objectDefinition(ctx, scope.tenantID, objectName); err != nil {
		return err
	}

	rec, err := e.store.GetRecord(ctx, scope.tenantID, objectName, recordID)
	if err != nil || rec == nil {
		return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, objectName, recordID)
	}

	if _, err := e.store.SoftDeleteShares(ctx, scope.tenantID, objectName, recordID,
		[]share.RowCause{share.CauseRoleHierarchy, share.CauseRule}); err != nil {
		return fmt.Errorf("shareguard: clear derived shares: %w", err)
	}

	e.materializeHierarchyShares(ctx, scope.tenantID, objectName, recordID, rec.OwnerID)
	e.applyRulesToRecord(ctx, scope.tenantID, objectName, recordID, rec.OwnerID)

	e.invalidateRecord(ctx, scope.tenantID, objectName, recordID)
	if e.plugins != nil {
		e.plugins.EmitSharesMaterialized(ctx, scope.tenantID, objectName, recordID)
	}
	return nil
}

// RecalculateRuleShares soft-deletes every share tagged with the rule, then
// reapplies the rule to every record of its object unless the rule is now
// inactive. The batch honors context cancellation between records and
// accumulates per-record failures instead of aborting: every write is an
// upsert, so rerunning after a partial failure converges to the same state.
func (e *Engine) RecalculateRuleShares(ctx context.Context, ruleID id.RuleID) (*RecalcResult, error) {
	r, err := e.store.GetRule(ctx, ruleID)
	if err != nil || r == nil {
		return nil, fmt.Errorf("%w: %s", ErrRuleNotFound, ruleID)
	}

	result := &RecalcResult{RuleID: ruleID}

	if _, err := e.store.SoftDeleteSharesByRule(ctx, r.TenantID, ruleID); err != nil {
		return nil, fmt.Errorf("shareguard: clear rule shares: %w", err)
	}

	if !r.IsActive {
		e.invalidateTenant(ctx, r.TenantID)
		if e.plugins != nil {
			e.plugins.EmitRuleRecalculated(ctx, ruleID, result)
		}
		return result, nil
	}

	afterID := ""
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		recordIDs, err := e.store.ListRecordIDs(ctx, r.TenantID, r.ObjectName, afterID, e.config.RecalcPageSize)
		if err != nil {
			return result, fmt.Errorf("shareguard: list records for %s: %w", r.ObjectName, err)
		}
		if len(recordIDs) == 0 {
			break
		}

		for _, recordID := range recordIDs {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			if err := e.applyRuleToRecord(ctx, r, recordID); err != nil {
				result.Failures = append(result.Failures, RecordFailure{RecordID: recordID, Error: err.Error()})
				e.logger.Warn("rule recalculation failed for record",
					slog.String("rule_id", ruleID.String()),
					slog.String("record_id", recordID),
					slog.String("error", err.Error()),
				)
				continue
			}
			result.Processed++
		}
		afterID = recordIDs[len(recordIDs)-1]
	}

	e.invalidateTenant(ctx, r.TenantID)
	if e.plugins != nil {
		e.plugins.EmitRuleRecalculated(ctx, ruleID, result)
	}
	return result, nil
}

func (e *Engine) applyRuleToRecord(ctx context.Context, r *rule.SharingRule, recordID string) error {
	switch r.Type {
	case rule.OwnerBased:
		rec, err := e.store.GetRecord(ctx, r.TenantID, r.ObjectName, recordID)
		if err != nil || rec == nil {
			return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, r.ObjectName, recordID)
		}
		return e.applyOwnerBasedRule(ctx, r, recordID, rec.OwnerID)
	case rule.CriteriaBased:
		return e.applyCriteriaBasedRule(ctx, r, recordID)
	default:
		return fmt.Errorf("shareguard: unknown rule type %q", r.Type)
	}
}

// DeleteRecordShares soft-deletes every share row of a record, of any
// cause. Called when the record itself is deleted.
func (e *Engine) DeleteRecordShares(ctx context.Context, objectName, recordID string) error {
	scope := scopeFromContext(ctx)
	if _, err := e.objectDefinition(ctx, scope.tenantID, objectName); err != nil {
		return err
	}

	if _, err := e.store.SoftDeleteShares(ctx, scope.tenantID, objectName, recordID, nil); err != nil {
		return fmt.Errorf("shareguard: delete record shares: %w", err)
	}

	e.invalidateRecord(ctx, scope.tenantID, objectName, recordID)
	if e.plugins != nil {
		e.plugins.EmitSharesDeleted(ctx, scope.tenantID, objectName, recordID)
	}
	return nil
}

// CreateManualShare stores a direct user-initiated grant. Manual shares
// bypass all recomputation: they are preserved across every recalculation
// and only removed by DeleteManualShare or record deletion.
func (e *Engine) CreateManualShare(ctx context.Context, objectName, recordID string, subject share.Subject, level share.AccessLevel) (*share.Share, error) {
	scope := scopeFromContext(ctx)
	if _, err := e.objectDefinition(ctx, scope.tenantID, objectName); err != nil {
		return nil, err
	}
	if level != share.AccessRead && level != share.AccessReadWrite {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAccessLevel, level)
	}
	if subject.ID == "" || !validSubjectType(subject.Type) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSubject, subject.Key())
	}

	s := &share.Share{
		TenantID:    scope.tenantID,
		ObjectName:  objectName,
		RecordID:    recordID,
		SubjectType: subject.Type,
		SubjectID:   subject.ID,
		AccessLevel: level,
		RowCause:    share.CauseManual,
	}
	if err := e.store.UpsertShare(ctx, s); err != nil {
		return nil, fmt.Errorf("shareguard: create manual share: %w", err)
	}

	e.invalidateRecord(ctx, scope.tenantID, objectName, recordID)
	if e.plugins != nil {
		e.plugins.EmitManualShareCreated(ctx, s)
	}
	return s, nil
}

// DeleteManualShare soft-deletes the live manual share for a subject on a
// record.
func (e *Engine) DeleteManualShare(ctx context.Context, objectName, recordID string, subject share.Subject) error {
	scope := scopeFromContext(ctx)
	if _, err := e.objectDefinition(ctx, scope.tenantID, objectName); err != nil {
		return err
	}

	s, err := e.store.FindShare(ctx, scope.tenantID, objectName, recordID, subject, share.CauseManual)
	if err != nil || s == nil {
		return fmt.Errorf("%w: manual share for %s", ErrShareNotFound, subject.Key())
	}
	if err := e.store.SoftDeleteShare(ctx, s.ID); err != nil {
		return fmt.Errorf("shareguard: delete manual share: %w", err)
	}

	e.invalidateRecord(ctx, scope.tenantID, objectName, recordID)
	if e.plugins != nil {
		e.plugins.EmitManualShareDeleted(ctx, s.ID)
	}
	return nil
}

// RecordShares returns every live share row on a record, for "who has
// access" views.
func (e *Engine) RecordShares(ctx context.Context, objectName, recordID string) ([]*share.Share, error) {
	scope := scopeFromContext(ctx)
	if _, err := e.objectDefinition(ctx, scope.tenantID, objectName); err != nil {
		return nil, err
	}
	return e.store.ListSharesForRecord(ctx, scope.tenantID, objectName, recordID)
}

// upsertOwnerShare writes the ReadWrite Owner-caused share for a record's
// current owner.
func (e *Engine) upsertOwnerShare(ctx context.Context, tenantID, objectName, recordID, ownerID string) error {
	s := &share.Share{
		TenantID:    tenantID,
		ObjectName:  objectName,
		RecordID:    recordID,
		SubjectType: share.SubjectUser,
		SubjectID:   ownerID,
		AccessLevel: share.AccessReadWrite,
		RowCause:    share.CauseOwner,
	}
	if err := e.store.UpsertShare(ctx, s); err != nil {
		return fmt.Errorf("shareguard: upsert owner share: %w", err)
	}
	return nil
}

// materializeHierarchyShares writes ReadWrite RoleHierarchy shares for
// every strict ancestor of the owner's role, tagged at the role level so
// users who later join those roles inherit access automatically. No-op when
// the org-wide default disables hierarchy grants or the owner has no role.
func (e *Engine) materializeHierarchyShares(ctx context.Context, tenantID, objectName, recordID, ownerID string) {
	d := e.orgDefaultFor(ctx, tenantID, objectName)
	if !d.GrantByHierarchy {
		return
	}

	owner, err := e.store.GetUser(ctx, tenantID, ownerID)
	if err != nil || owner == nil || owner.RoleID == nil {
		return
	}

	path := e.rolePathFrom(ctx, *owner.RoleID)
	for _, ancestorID := range path[1:] {
		s := &share.Share{
			TenantID:    tenantID,
			ObjectName:  objectName,
			RecordID:    recordID,
			SubjectType: share.SubjectRole,
			SubjectID:   ancestorID.String(),
			AccessLevel: share.AccessReadWrite,
			RowCause:    share.CauseRoleHierarchy,
		}
		if err := e.store.UpsertShare(ctx, s); err != nil {
			e.logger.Warn("hierarchy share upsert failed",
				slog.String("record_id", recordID),
				slog.String("role_id", ancestorID.String()),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (e *Engine) invalidateRecord(ctx context.Context, tenantID, objectName, recordID string) {
	if e.cache != nil {
		e.cache.InvalidateRecord(ctx, tenantID, objectName, recordID)
	}
}

func (e *Engine) invalidateTenant(ctx context.Context, tenantID string) {
	e.InvalidateTenant(ctx, tenantID)
}

func validSubjectType(t share.SubjectType) bool {
	switch t {
	case share.SubjectUser, share.SubjectGroup, share.SubjectRole:
		return true
	default:
		return false
	}
}
