package shareguard

import "context"

// Cache provides caching for record access results. Implementations must
// treat entries as advisory: the engine invalidates per record on share
// writes and per tenant on bulk recomputation and administrative writes
// (org defaults, hierarchy, membership), and a stale entry only ever
// persists until its TTL.
type Cache interface {
	// Get returns a cached access result, if available.
	Get(ctx context.Context, tenantID, userID, objectName, recordID string) (*AccessResult, bool)

	// Set stores an access result in the cache.
	Set(ctx context.Context, tenantID, userID, objectName, recordID string, result *AccessResult)

	// InvalidateRecord removes all cached results for a record.
	InvalidateRecord(ctx context.Context, tenantID, objectName, recordID string)

	// InvalidateTenant removes all cached results for a tenant.
	InvalidateTenant(ctx context.Context, tenantID string)
}
