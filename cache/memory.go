// Package cache provides caching implementations for Shareguard access
// results.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/masatokaneko/shareguard"
)

// Compile-time interface check.
var _ shareguard.Cache = (*Memory)(nil)

// Memory is an in-memory cache with TTL-based expiration.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
	maxSize int
}

type entry struct {
	result    *shareguard.AccessResult
	expiresAt time.Time
}

// MemoryOption configures the memory cache.
type MemoryOption func(*Memory)

// WithTTL sets the cache entry time-to-live.
func WithTTL(ttl time.Duration) MemoryOption {
	return func(m *Memory) { m.ttl = ttl }
}

// WithMaxSize sets the maximum number of cache entries.
func WithMaxSize(n int) MemoryOption {
	return func(m *Memory) { m.maxSize = n }
}

// NewMemory creates a new in-memory cache.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		entries: make(map[string]*entry),
		ttl:     5 * time.Minute,
		maxSize: 10000,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns a cached access result.
func (m *Memory) Get(_ context.Context, tenantID, userID, objectName, recordID string) (*shareguard.AccessResult, bool) {
	key := cacheKey(tenantID, userID, objectName, recordID)
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false
	}
	return e.result, true
}

// Set stores an access result in the cache.
func (m *Memory) Set(_ context.Context, tenantID, userID, objectName, recordID string, result *shareguard.AccessResult) {
	key := cacheKey(tenantID, userID, objectName, recordID)
	m.mu.Lock()
	defer m.mu.Unlock()

	// Evict if at capacity.
	if len(m.entries) >= m.maxSize {
		m.evictExpired()
		if len(m.entries) >= m.maxSize {
			// Evict one arbitrary entry.
			m.evictOne()
		}
	}

	m.entries[key] = &entry{
		result:    result,
		expiresAt: time.Now().Add(m.ttl),
	}
}

// InvalidateRecord removes all cached results for a record, across users.
func (m *Memory) InvalidateRecord(_ context.Context, tenantID, objectName, recordID string) {
	prefix := fmt.Sprintf("%s:%s:%s:", tenantID, objectName, recordID)
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.entries {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			delete(m.entries, k)
		}
	}
}

// InvalidateTenant removes all cached results for a tenant.
func (m *Memory) InvalidateTenant(_ context.Context, tenantID string) {
	prefix := tenantID + ":"
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.entries {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			delete(m.entries, k)
		}
	}
}

func cacheKey(tenantID, userID, objectName, recordID string) string {
	return fmt.Sprintf("%s:%s:%s:%s", tenantID, objectName, recordID, userID)
}

// evictExpired removes all expired entries. Must hold write lock.
func (m *Memory) evictExpired() {
	now := time.Now()
	for k, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, k)
		}
	}
}

// evictOne removes one arbitrary entry. Must hold write lock.
func (m *Memory) evictOne() {
	for k := range m.entries {
		delete(m.entries, k)
		return
	}
}
