// Package plugin defines the plugin system for Shareguard.
// Plugins are notified of lifecycle events (access evaluated, shares
// materialized, rule recalculated, etc.) and can react — logging, metrics,
// tracing, etc.
//
// Each lifecycle hook is a separate interface so plugins opt in only
// to the events they care about.
package plugin

import (
	"context"

	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/rule"
	"github.com/masatokaneko/shareguard/share"
)

// Plugin is the base interface all plugins must implement.
type Plugin interface {
	// Name returns a unique human-readable name for the plugin.
	Name() string
}

// ──────────────────────────────────────────────────
// Access check lifecycle hooks
// ──────────────────────────────────────────────────

// BeforeAccessCheck is called before a record access evaluation.
// The req parameter is *shareguard.AccessRequest (passed as any to avoid
// an import cycle).
type BeforeAccessCheck interface {
	OnBeforeAccessCheck(ctx context.Context, req any) error
}

// AfterAccessCheck is called after a record access evaluation completes.
// The req parameter is *shareguard.AccessRequest; result is
// *shareguard.AccessResult.
type AfterAccessCheck interface {
	OnAfterAccessCheck(ctx context.Context, req, result any) error
}

// ──────────────────────────────────────────────────
// Share materialization hooks
// ──────────────────────────────────────────────────

// SharesMaterialized is called after derived share rows are created or
// recomputed for a record.
type SharesMaterialized interface {
	OnSharesMaterialized(ctx context.Context, tenantID, objectName, recordID string) error
}

// SharesDeleted is called after all share rows of a record are soft-deleted.
type SharesDeleted interface {
	OnSharesDeleted(ctx context.Context, tenantID, objectName, recordID string) error
}

// ──────────────────────────────────────────────────
// Sharing rule lifecycle hooks
// ──────────────────────────────────────────────────

// RuleCreated is called after a sharing rule is created.
type RuleCreated interface {
	OnRuleCreated(ctx context.Context, r *rule.SharingRule) error
}

// RuleUpdated is called after a sharing rule is updated.
type RuleUpdated interface {
	OnRuleUpdated(ctx context.Context, r *rule.SharingRule) error
}

// RuleDeleted is called after a sharing rule is deleted.
type RuleDeleted interface {
	OnRuleDeleted(ctx context.Context, ruleID id.RuleID) error
}

// RuleRecalculated is called after a rule's shares are recomputed.
// The result parameter is *shareguard.RecalcResult.
type RuleRecalculated interface {
	OnRuleRecalculated(ctx context.Context, ruleID id.RuleID, result any) error
}

// ──────────────────────────────────────────────────
// Manual share hooks
// ──────────────────────────────────────────────────

// ManualShareCreated is called after a manual share is created.
type ManualShareCreated interface {
	OnManualShareCreated(ctx context.Context, s *share.Share) error
}

// ManualShareDeleted is called after a manual share is soft-deleted.
type ManualShareDeleted interface {
	OnManualShareDeleted(ctx context.Context, shareID id.ShareID) error
}

// ──────────────────────────────────────────────────
// Shutdown hook
// ──────────────────────────────────────────────────

// Shutdown is called during graceful shutdown.
type Shutdown interface {
	OnShutdown(ctx context.Context) error
}
