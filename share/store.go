package share

import (
	"context"

	"github.com/masatokaneko/shareguard/id"
)

// Store defines persistence operations for share rows.
//
// UpsertShare carries the widen-or-revive contract: if a live row already
// exists for the same (tenant, object, record, subject, cause) key, its
// access level is widened to the max of old and new and the row id is kept;
// if only a soft-deleted row exists, it is revived with the new level;
// otherwise a fresh row is inserted. Levels are never narrowed by an upsert.
type Store interface {
	// UpsertShare inserts, widens, or revives a share row. On return s
	// reflects the stored row, including the id of a reused row.
	UpsertShare(ctx context.Context, s *Share) error

	// GetShare retrieves a share row by ID, including soft-deleted rows.
	GetShare(ctx context.Context, shareID id.ShareID) (*Share, error)

	// FindShare retrieves the live share row for an exact grant key.
	FindShare(ctx context.Context, tenantID, objectName, recordID string, subject Subject, cause RowCause) (*Share, error)

	// ListSharesForRecord returns all live share rows on a record.
	ListSharesForRecord(ctx context.Context, tenantID, objectName, recordID string) ([]*Share, error)

	// ListSharesForSubjects returns live share rows on a record held by any
	// of the given subjects.
	ListSharesForSubjects(ctx context.Context, tenantID, objectName, recordID string, subjects []Subject) ([]*Share, error)

	// ListShares returns share rows matching the filter.
	ListShares(ctx context.Context, filter *ListFilter) ([]*Share, error)

	// CountShares returns the number of share rows matching the filter.
	CountShares(ctx context.Context, filter *ListFilter) (int64, error)

	// SoftDeleteShare marks a single share row deleted.
	SoftDeleteShare(ctx context.Context, shareID id.ShareID) error

	// SoftDeleteShares marks all live rows on a record with any of the given
	// causes deleted. A nil or empty causes slice matches every cause.
	// Returns the number of rows marked.
	SoftDeleteShares(ctx context.Context, tenantID, objectName, recordID string, causes []RowCause) (int64, error)

	// SoftDeleteSharesByRule marks all live rows produced by a sharing rule
	// deleted. Returns the number of rows marked.
	SoftDeleteSharesByRule(ctx context.Context, tenantID string, ruleID id.RuleID) (int64, error)
}
