package shareguard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/masatokaneko/shareguard/object"
	"github.com/masatokaneko/shareguard/plugin"
	"github.com/masatokaneko/shareguard/store"
)

// Engine is the central access control engine. It resolves effective
// permissions, materializes derived share rows, and evaluates record
// access.
type Engine struct {
	store   store.Store
	cache   Cache
	plugins *plugin.Registry
	logger  *slog.Logger
	config  Config
}

// NewEngine creates a new Shareguard engine with the given options.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		logger: slog.Default(),
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		return nil, errors.New("shareguard: store is required")
	}
	if e.config.MaxHierarchyDepth <= 0 {
		e.config.MaxHierarchyDepth = DefaultConfig().MaxHierarchyDepth
	}
	if e.config.MaxGroupDepth <= 0 {
		e.config.MaxGroupDepth = DefaultConfig().MaxGroupDepth
	}
	if e.config.RecalcPageSize <= 0 {
		e.config.RecalcPageSize = DefaultConfig().RecalcPageSize
	}
	return e, nil
}

// Store returns the underlying composite store.
func (e *Engine) Store() store.Store { return e.store }

// Plugins returns the plugin registry (may be nil).
func (e *Engine) Plugins() *plugin.Registry { return e.plugins }

// InvalidateTenant drops every cached access result of a tenant. The
// materializer calls it after bulk recomputation; administrative callers
// use it after org-default, hierarchy, or membership writes that change
// decisions without touching share rows.
func (e *Engine) InvalidateTenant(ctx context.Context, tenantID string) {
	if e.cache != nil {
		e.cache.InvalidateTenant(ctx, tenantID)
	}
}

// Start performs any startup initialization.
func (e *Engine) Start(_ context.Context) error { return nil }

// Stop performs graceful shutdown.
func (e *Engine) Stop(ctx context.Context) error {
	if e.plugins != nil {
		e.plugins.EmitShutdown(ctx)
	}
	return nil
}

// objectDefinition loads the registration of an object and verifies it is
// sharable. Unregistered or non-sharable objects fail fast: silently
// granting or denying on a misconfigured object would be worse than an
// error.
func (e *Engine) objectDefinition(ctx context.Context, tenantID, objectName string) (*object.Definition, error) {
	def, err := e.store.GetDefinitionByName(ctx, tenantID, objectName)
	if err != nil || def == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedObject, objectName)
	}
	if !def.Sharable {
		return nil, fmt.Errorf("%w: %s is not sharable", ErrUnsupportedObject, objectName)
	}
	return def, nil
}
