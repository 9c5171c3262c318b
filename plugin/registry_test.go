package plugin

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/rule"
)

// testPlugin implements Plugin + RuleCreated + AfterAccessCheck.
type testPlugin struct {
	ruleCreatedCalled      bool
	afterAccessCheckCalled bool
}

func (t *testPlugin) Name() string { return "test-plugin" }

func (t *testPlugin) OnRuleCreated(_ context.Context, _ *rule.SharingRule) error {
	t.ruleCreatedCalled = true
	return nil
}

func (t *testPlugin) OnAfterAccessCheck(_ context.Context, _, _ any) error {
	t.afterAccessCheckCalled = true
	return nil
}

// minimalPlugin only implements Plugin (no hooks).
type minimalPlugin struct{}

func (m *minimalPlugin) Name() string { return "minimal" }

// failingPlugin returns an error from its hook; the registry must swallow it.
type failingPlugin struct {
	called bool
}

func (f *failingPlugin) Name() string { return "failing" }

func (f *failingPlugin) OnSharesMaterialized(_ context.Context, _, _, _ string) error {
	f.called = true
	return errors.New("hook failure")
}

func TestRegistryDispatch(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(slog.Default())

	tp := &testPlugin{}
	reg.Register(tp)
	reg.Register(&minimalPlugin{})

	if len(reg.Plugins()) != 2 {
		t.Fatalf("expected 2 plugins, got %d", len(reg.Plugins()))
	}

	// Should dispatch RuleCreated to testPlugin only.
	reg.EmitRuleCreated(ctx, &rule.SharingRule{ID: id.NewRuleID(), Name: "sales-to-managers"})
	if !tp.ruleCreatedCalled {
		t.Fatal("OnRuleCreated was not called")
	}

	// Should dispatch AfterAccessCheck.
	reg.EmitAfterAccessCheck(ctx, nil, nil)
	if !tp.afterAccessCheckCalled {
		t.Fatal("OnAfterAccessCheck was not called")
	}

	// Should not panic on hooks with no listeners.
	reg.EmitBeforeAccessCheck(ctx, nil)
	reg.EmitRuleDeleted(ctx, id.NewRuleID())
	reg.EmitShutdown(ctx)
}

func TestRegistrySwallowsHookErrors(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(slog.Default())

	fp := &failingPlugin{}
	reg.Register(fp)

	// Must not panic or propagate.
	reg.EmitSharesMaterialized(ctx, "tenant-1", "contract", "rec-1")
	if !fp.called {
		t.Fatal("OnSharesMaterialized was not called")
	}
}
