package shareguard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/masatokaneko/shareguard/rule"
	"github.com/masatokaneko/shareguard/share"
)

// applyOwnerBasedRule materializes the rule's grants for one record if the
// record's owner belongs to the rule's source population. Otherwise it is a
// no-op.
func (e *Engine) applyOwnerBasedRule(ctx context.Context, r *rule.SharingRule, recordID, ownerID string) error {
	members, err := e.sourceMembers(ctx, r.TenantID, r.SourceType, r.SourceID)
	if err != nil {
		return fmt.Errorf("shareguard: resolve rule source: %w", err)
	}

	match := false
	for _, m := range members {
		if m == ownerID {
			match = true
			break
		}
	}
	if !match {
		return nil
	}
	return e.grantRuleShares(ctx, r, recordID)
}

// applyCriteriaBasedRule materializes the rule's grants for one record if
// the record's projected fields satisfy every criterion. An empty criteria
// list matches every record.
func (e *Engine) applyCriteriaBasedRule(ctx context.Context, r *rule.SharingRule, recordID string) error {
	rec, err := e.store.GetRecord(ctx, r.TenantID, r.ObjectName, recordID)
	if err != nil || rec == nil {
		return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, r.ObjectName, recordID)
	}
	if !rule.MatchesCriteria(r.Criteria, rec.Fields) {
		return nil
	}
	return e.grantRuleShares(ctx, r, recordID)
}

// grantRuleShares expands the rule's target into subjects and upserts one
// Rule-caused share per subject at the rule's access level, widening but
// never narrowing existing grants.
func (e *Engine) grantRuleShares(ctx context.Context, r *rule.SharingRule, recordID string) error {
	subjects, err := e.targetSubjects(ctx, r.TargetType, r.TargetID)
	if err != nil {
		return fmt.Errorf("shareguard: resolve rule target: %w", err)
	}

	for _, sub := range subjects {
		ruleID := r.ID
		s := &share.Share{
			TenantID:    r.TenantID,
			ObjectName:  r.ObjectName,
			RecordID:    recordID,
			SubjectType: sub.Type,
			SubjectID:   sub.ID,
			AccessLevel: r.AccessLevel,
			RowCause:    share.CauseRule,
			RuleID:      &ruleID,
		}
		if err := e.store.UpsertShare(ctx, s); err != nil {
			return fmt.Errorf("shareguard: upsert share for %s: %w", sub.Key(), err)
		}
	}
	return nil
}

// applyRulesToRecord applies every active rule of the object to one record.
// Rule order does not affect the final state because grants only widen.
// Failures are isolated per rule: one bad rule is logged and skipped, it
// never aborts the rest.
func (e *Engine) applyRulesToRecord(ctx context.Context, tenantID, objectName, recordID, ownerID string) {
	rules, err := e.store.ListRulesForObject(ctx, tenantID, objectName)
	if err != nil {
		e.logger.Warn("listing sharing rules failed",
			slog.String("object", objectName),
			slog.String("error", err.Error()),
		)
		return
	}

	for _, r := range rules {
		if !r.IsActive {
			continue
		}
		var applyErr error
		switch r.Type {
		case rule.OwnerBased:
			applyErr = e.applyOwnerBasedRule(ctx, r, recordID, ownerID)
		case rule.CriteriaBased:
			applyErr = e.applyCriteriaBasedRule(ctx, r, recordID)
		default:
			applyErr = fmt.Errorf("shareguard: unknown rule type %q", r.Type)
		}
		if applyErr != nil {
			e.logger.Warn("sharing rule application failed",
				slog.String("rule_id", r.ID.String()),
				slog.String("record_id", recordID),
				slog.String("error", applyErr.Error()),
			)
		}
	}
}
