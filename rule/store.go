package rule

import (
	"context"

	"github.com/masatokaneko/shareguard/id"
)

// Store defines persistence operations for sharing rules.
type Store interface {
	// CreateRule persists a new sharing rule.
	CreateRule(ctx context.Context, r *SharingRule) error

	// GetRule retrieves a rule by ID.
	GetRule(ctx context.Context, ruleID id.RuleID) (*SharingRule, error)

	// UpdateRule persists changes to a rule.
	UpdateRule(ctx context.Context, r *SharingRule) error

	// DeleteRule removes a rule by ID. Shares it produced are soft-deleted
	// by the engine, not the store.
	DeleteRule(ctx context.Context, ruleID id.RuleID) error

	// ListRules returns rules matching the filter.
	ListRules(ctx context.Context, filter *ListFilter) ([]*SharingRule, error)

	// CountRules returns the number of rules matching the filter.
	CountRules(ctx context.Context, filter *ListFilter) (int64, error)

	// ListRulesForObject returns all rules of one object in a tenant.
	ListRulesForObject(ctx context.Context, tenantID, objectName string) ([]*SharingRule, error)
}
