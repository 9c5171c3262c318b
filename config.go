package shareguard

import "time"

// Config holds configuration for the Shareguard engine.
type Config struct {
	// MaxHierarchyDepth bounds role hierarchy walks.
	// Defaults to 50.
	MaxHierarchyDepth int `json:"max_hierarchy_depth,omitempty"`

	// MaxGroupDepth bounds nested group expansion.
	// Defaults to 10.
	MaxGroupDepth int `json:"max_group_depth,omitempty"`

	// RecalcPageSize is the record page size used by rule recalculation.
	// Defaults to 500.
	RecalcPageSize int `json:"recalc_page_size,omitempty"`

	// CacheTTL is the time-to-live for cached access results.
	// Zero means no caching.
	CacheTTL time.Duration `json:"cache_ttl,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxHierarchyDepth: 50,
		MaxGroupDepth:     10,
		RecalcPageSize:    500,
	}
}
