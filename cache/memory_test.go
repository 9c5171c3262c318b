package cache

import (
	"context"
	"testing"
	"time"

	"github.com/masatokaneko/shareguard"
	"github.com/masatokaneko/shareguard/share"
)

func TestMemoryCacheHitMiss(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(WithTTL(time.Minute))

	result := &shareguard.AccessResult{Level: share.AccessRead, Source: shareguard.SourceShare}

	// Miss
	_, ok := c.Get(ctx, "t1", "u1", "contract", "r1")
	if ok {
		t.Fatal("expected cache miss")
	}

	// Set + Hit
	c.Set(ctx, "t1", "u1", "contract", "r1", result)
	got, ok := c.Get(ctx, "t1", "u1", "contract", "r1")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.Level != share.AccessRead {
		t.Fatalf("expected read level, got %q", got.Level)
	}
}

func TestMemoryCacheTTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(WithTTL(1 * time.Millisecond))

	c.Set(ctx, "t1", "u1", "contract", "r1", &shareguard.AccessResult{Level: share.AccessRead})
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get(ctx, "t1", "u1", "contract", "r1")
	if ok {
		t.Fatal("expected cache miss after TTL expiry")
	}
}

func TestMemoryCacheInvalidateRecord(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	c.Set(ctx, "t1", "u1", "contract", "r1", &shareguard.AccessResult{Level: share.AccessRead})
	c.Set(ctx, "t1", "u2", "contract", "r1", &shareguard.AccessResult{Level: share.AccessReadWrite})
	c.Set(ctx, "t1", "u1", "contract", "r2", &shareguard.AccessResult{Level: share.AccessRead})

	c.InvalidateRecord(ctx, "t1", "contract", "r1")

	if _, ok := c.Get(ctx, "t1", "u1", "contract", "r1"); ok {
		t.Fatal("u1/r1 should be invalidated")
	}
	if _, ok := c.Get(ctx, "t1", "u2", "contract", "r1"); ok {
		t.Fatal("u2/r1 should be invalidated")
	}
	if _, ok := c.Get(ctx, "t1", "u1", "contract", "r2"); !ok {
		t.Fatal("u1/r2 should still be cached")
	}
}

func TestMemoryCacheInvalidateTenant(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	c.Set(ctx, "t1", "u1", "contract", "r1", &shareguard.AccessResult{Level: share.AccessRead})
	c.Set(ctx, "t1", "u2", "invoice", "r2", &shareguard.AccessResult{Level: share.AccessNone})
	c.Set(ctx, "t2", "u1", "contract", "r1", &shareguard.AccessResult{Level: share.AccessRead})

	c.InvalidateTenant(ctx, "t1")

	if _, ok := c.Get(ctx, "t1", "u1", "contract", "r1"); ok {
		t.Fatal("t1 entry should be invalidated")
	}
	if _, ok := c.Get(ctx, "t1", "u2", "invoice", "r2"); ok {
		t.Fatal("t1 entry should be invalidated")
	}
	if _, ok := c.Get(ctx, "t2", "u1", "contract", "r1"); !ok {
		t.Fatal("t2 entry should still be cached")
	}
}

func TestMemoryCacheMaxSize(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(WithMaxSize(2))

	for i := 0; i < 5; i++ {
		c.Set(ctx, "t1", "u1", "contract", string(rune('a'+i)), &shareguard.AccessResult{Level: share.AccessRead})
	}

	c.mu.RLock()
	size := len(c.entries)
	c.mu.RUnlock()
	if size > 2 {
		t.Fatalf("expected max 2 entries, got %d", size)
	}
}
