package record

import "context"

// Store defines the record projection contract. Hosts keep the projection
// in sync (directly for SQL backends, via UpsertRecord otherwise); the
// engine only reads it, except for DeleteRecord on full share teardown.
type Store interface {
	// UpsertRecord creates or replaces a record projection.
	UpsertRecord(ctx context.Context, r *Record) error

	// GetRecord retrieves a record projection.
	GetRecord(ctx context.Context, tenantID, objectName, recordID string) (*Record, error)

	// DeleteRecord removes a record projection.
	DeleteRecord(ctx context.Context, tenantID, objectName, recordID string) error

	// ListRecordIDs enumerates record ids of one object in a tenant, in a
	// stable order, for batch recalculation. Limit bounds the page size;
	// afterID resumes enumeration past a previous page.
	ListRecordIDs(ctx context.Context, tenantID, objectName string, afterID string, limit int) ([]string, error)

	// ListRecordsByOwner returns records of one object owned by a user.
	ListRecordsByOwner(ctx context.Context, tenantID, objectName, ownerID string) ([]*Record, error)
}
