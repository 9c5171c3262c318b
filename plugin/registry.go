package plugin

import (
	"context"
	"log/slog"

	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/rule"
	"github.com/masatokaneko/shareguard/share"
)

// Named entry types pair a hook with the plugin name for logging.

type beforeAccessCheckEntry struct {
	name string
	hook BeforeAccessCheck
}
type afterAccessCheckEntry struct {
	name string
	hook AfterAccessCheck
}
type sharesMaterializedEntry struct {
	name string
	hook SharesMaterialized
}
type sharesDeletedEntry struct {
	name string
	hook SharesDeleted
}
type ruleCreatedEntry struct {
	name string
	hook RuleCreated
}
type ruleUpdatedEntry struct {
	name string
	hook RuleUpdated
}
type ruleDeletedEntry struct {
	name string
	hook RuleDeleted
}
type ruleRecalculatedEntry struct {
	name string
	hook RuleRecalculated
}
type manualShareCreatedEntry struct {
	name string
	hook ManualShareCreated
}
type manualShareDeletedEntry struct {
	name string
	hook ManualShareDeleted
}
type shutdownEntry struct {
	name string
	hook Shutdown
}

// Registry holds registered plugins and dispatches lifecycle events.
// It type-caches plugins at registration time so emit calls iterate
// only over plugins implementing the relevant hook.
type Registry struct {
	plugins []Plugin
	logger  *slog.Logger

	beforeAccessCheck  []beforeAccessCheckEntry
	afterAccessCheck   []afterAccessCheckEntry
	sharesMaterialized []sharesMaterializedEntry
	sharesDeleted      []sharesDeletedEntry
	ruleCreated        []ruleCreatedEntry
	ruleUpdated        []ruleUpdatedEntry
	ruleDeleted        []ruleDeletedEntry
	ruleRecalculated   []ruleRecalculatedEntry
	manualShareCreated []manualShareCreatedEntry
	manualShareDeleted []manualShareDeletedEntry
	shutdown           []shutdownEntry
}

// NewRegistry creates a plugin registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register adds a plugin and type-asserts it into all applicable
// hook caches. Plugins are notified in registration order.
func (r *Registry) Register(p Plugin) {
	r.plugins = append(r.plugins, p)
	name := p.Name()

	if h, ok := p.(BeforeAccessCheck); ok {
		r.beforeAccessCheck = append(r.beforeAccessCheck, beforeAccessCheckEntry{name, h})
	}
	if h, ok := p.(AfterAccessCheck); ok {
		r.afterAccessCheck = append(r.afterAccessCheck, afterAccessCheckEntry{name, h})
	}
	if h, ok := p.(SharesMaterialized); ok {
		r.sharesMaterialized = append(r.sharesMaterialized, sharesMaterializedEntry{name, h})
	}
	if h, ok := p.(SharesDeleted); ok {
		r.sharesDeleted = append(r.sharesDeleted, sharesDeletedEntry{name, h})
	}
	if h, ok := p.(RuleCreated); ok {
		r.ruleCreated = append(r.ruleCreated, ruleCreatedEntry{name, h})
	}
	if h, ok := p.(RuleUpdated); ok {
		r.ruleUpdated = append(r.ruleUpdated, ruleUpdatedEntry{name, h})
	}
	if h, ok := p.(RuleDeleted); ok {
		r.ruleDeleted = append(r.ruleDeleted, ruleDeletedEntry{name, h})
	}
	if h, ok := p.(RuleRecalculated); ok {
		r.ruleRecalculated = append(r.ruleRecalculated, ruleRecalculatedEntry{name, h})
	}
	if h, ok := p.(ManualShareCreated); ok {
		r.manualShareCreated = append(r.manualShareCreated, manualShareCreatedEntry{name, h})
	}
	if h, ok := p.(ManualShareDeleted); ok {
		r.manualShareDeleted = append(r.manualShareDeleted, manualShareDeletedEntry{name, h})
	}
	if h, ok := p.(Shutdown); ok {
		r.shutdown = append(r.shutdown, shutdownEntry{name, h})
	}
}

// Plugins returns all registered plugins.
func (r *Registry) Plugins() []Plugin { return r.plugins }

// ──────────────────────────────────────────────────
// Access check event emitters
// ──────────────────────────────────────────────────

// EmitBeforeAccessCheck notifies all plugins that implement BeforeAccessCheck.
func (r *Registry) EmitBeforeAccessCheck(ctx context.Context, req any) {
	for _, e := range r.beforeAccessCheck {
		if err := e.hook.OnBeforeAccessCheck(ctx, req); err != nil {
			r.logHookError("OnBeforeAccessCheck", e.name, err)
		}
	}
}

// EmitAfterAccessCheck notifies all plugins that implement AfterAccessCheck.
func (r *Registry) EmitAfterAccessCheck(ctx context.Context, req, result any) {
	for _, e := range r.afterAccessCheck {
		if err := e.hook.OnAfterAccessCheck(ctx, req, result); err != nil {
			r.logHookError("OnAfterAccessCheck", e.name, err)
		}
	}
}

// ──────────────────────────────────────────────────
// Share event emitters
// ──────────────────────────────────────────────────

// EmitSharesMaterialized notifies all plugins that implement SharesMaterialized.
func (r *Registry) EmitSharesMaterialized(ctx context.Context, tenantID, objectName, recordID string) {
	for _, e := range r.sharesMaterialized {
		if err := e.hook.OnSharesMaterialized(ctx, tenantID, objectName, recordID); err != nil {
			r.logHookError("OnSharesMaterialized", e.name, err)
		}
	}
}

// EmitSharesDeleted notifies all plugins that implement SharesDeleted.
func (r *Registry) EmitSharesDeleted(ctx context.Context, tenantID, objectName, recordID string) {
	for _, e := range r.sharesDeleted {
		if err := e.hook.OnSharesDeleted(ctx, tenantID, objectName, recordID); err != nil {
			r.logHookError("OnSharesDeleted", e.name, err)
		}
	}
}

// ──────────────────────────────────────────────────
// Rule event emitters
// ──────────────────────────────────────────────────

// EmitRuleCreated notifies all plugins that implement RuleCreated.
func (r *Registry) EmitRuleCreated(ctx context.Context, rl *rule.SharingRule) {
	for _, e := range r.ruleCreated {
		if err := e.hook.OnRuleCreated(ctx, rl); err != nil {
			r.logHookError("OnRuleCreated", e.name, err)
		}
	}
}

// EmitRuleUpdated notifies all plugins that implement RuleUpdated.
func (r *Registry) EmitRuleUpdated(ctx context.Context, rl *rule.SharingRule) {
	for _, e := range r.ruleUpdated {
		if err := e.hook.OnRuleUpdated(ctx, rl); err != nil {
			r.logHookError("OnRuleUpdated", e.name, err)
		}
	}
}

// EmitRuleDeleted notifies all plugins that implement RuleDeleted.
func (r *Registry) EmitRuleDeleted(ctx context.Context, ruleID id.RuleID) {
	for _, e := range r.ruleDeleted {
		if err := e.hook.OnRuleDeleted(ctx, ruleID); err != nil {
			r.logHookError("OnRuleDeleted", e.name, err)
		}
	}
}

// EmitRuleRecalculated notifies all plugins that implement RuleRecalculated.
func (r *Registry) EmitRuleRecalculated(ctx context.Context, ruleID id.RuleID, result any) {
	for _, e := range r.ruleRecalculated {
		if err := e.hook.OnRuleRecalculated(ctx, ruleID, result); err != nil {
			r.logHookError("OnRuleRecalculated", e.name, err)
		}
	}
}

// ──────────────────────────────────────────────────
// Manual share event emitters
// ──────────────────────────────────────────────────

// EmitManualShareCreated notifies all plugins that implement ManualShareCreated.
func (r *Registry) EmitManualShareCreated(ctx context.Context, s *share.Share) {
	for _, e := range r.manualShareCreated {
		if err := e.hook.OnManualShareCreated(ctx, s); err != nil {
			r.logHookError("OnManualShareCreated", e.name, err)
		}
	}
}

// EmitManualShareDeleted notifies all plugins that implement ManualShareDeleted.
func (r *Registry) EmitManualShareDeleted(ctx context.Context, shareID id.ShareID) {
	for _, e := range r.manualShareDeleted {
		if err := e.hook.OnManualShareDeleted(ctx, shareID); err != nil {
			r.logHookError("OnManualShareDeleted", e.name, err)
		}
	}
}

// ──────────────────────────────────────────────────
// Shutdown emitter
// ──────────────────────────────────────────────────

// EmitShutdown notifies all plugins that implement Shutdown.
func (r *Registry) EmitShutdown(ctx context.Context) {
	for _, e := range r.shutdown {
		if err := e.hook.OnShutdown(ctx); err != nil {
			r.logHookError("OnShutdown", e.name, err)
		}
	}
}

// logHookError logs a warning when a lifecycle hook returns an error.
// Errors from hooks are never propagated — they must not block the pipeline.
func (r *Registry) logHookError(hook, pluginName string, err error) {
	r.logger.Warn("plugin hook error",
		slog.String("hook", hook),
		slog.String("plugin", pluginName),
		slog.String("error", err.Error()),
	)
}
