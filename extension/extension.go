// Package extension provides a Forge extension entry point for Shareguard.
package extension

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/xraph/forge"
	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/pgdriver"
	"github.com/xraph/vessel"

	"github.com/masatokaneko/shareguard"
	"github.com/masatokaneko/shareguard/api"
	"github.com/masatokaneko/shareguard/plugin"
	"github.com/masatokaneko/shareguard/store"
	"github.com/masatokaneko/shareguard/store/postgres"
	"github.com/masatokaneko/shareguard/store/sqlite"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "shareguard"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Record-level access control engine (profiles, permission sets, sharing rules)"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts Shareguard as a Forge extension.
type Extension struct {
	config     Config
	eng        *shareguard.Engine
	apiHandler *api.API
	logger     *slog.Logger
	engineOpts []shareguard.Option
	plugins    []plugin.Plugin
}

// New creates a Shareguard Forge extension with the given options.
func New(opts ...ExtOption) *Extension {
	e := &Extension{config: DefaultConfig()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the extension name.
func (e *Extension) Name() string { return ExtensionName }

// Description returns the extension description.
func (e *Extension) Description() string { return ExtensionDescription }

// Version returns the extension version.
func (e *Extension) Version() string { return ExtensionVersion }

// Dependencies returns the list of extension names this extension depends on.
func (e *Extension) Dependencies() []string { return []string{} }

// Engine returns the underlying Shareguard engine.
func (e *Extension) Engine() *shareguard.Engine { return e.eng }

// API returns the API handler.
func (e *Extension) API() *api.API { return e.apiHandler }

// Register implements [forge.Extension]. It initializes the engine,
// registers it in the DI container, and optionally registers HTTP routes.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.init(fapp); err != nil {
		return err
	}

	// Register the engine in the DI container.
	if err := vessel.Provide(fapp.Container(), func() (*shareguard.Engine, error) {
		return e.eng, nil
	}); err != nil {
		return fmt.Errorf("shareguard: register engine in container: %w", err)
	}

	return nil
}

func (e *Extension) init(fapp forge.App) error {
	logger := e.logger
	if logger == nil {
		logger = slog.Default()
	}

	// Build engine options.
	opts := make([]shareguard.Option, 0, len(e.engineOpts)+len(e.plugins)+3)
	opts = append(opts, shareguard.WithLogger(logger))

	engCfg := shareguard.DefaultConfig()
	if e.config.MaxHierarchyDepth > 0 {
		engCfg.MaxHierarchyDepth = e.config.MaxHierarchyDepth
	}
	if e.config.MaxGroupDepth > 0 {
		engCfg.MaxGroupDepth = e.config.MaxGroupDepth
	}
	opts = append(opts, shareguard.WithConfig(engCfg))

	// Try to resolve a store from the DI container: a ready-made store
	// first, then a grove database to build one around.
	if s, err := forge.Inject[store.Store](fapp.Container()); err == nil {
		opts = append(opts, shareguard.WithStore(s))
	} else if db, err := forge.Inject[*grove.DB](fapp.Container()); err == nil {
		opts = append(opts, shareguard.WithStore(storeForDB(db)))
	}

	// Append user-provided options (may override store).
	opts = append(opts, e.engineOpts...)

	// Register extension hooks.
	for _, x := range e.plugins {
		opts = append(opts, shareguard.WithPlugin(x))
	}

	eng, err := shareguard.NewEngine(opts...)
	if err != nil {
		return fmt.Errorf("shareguard: create engine: %w", err)
	}
	e.eng = eng

	// Create API handler.
	e.apiHandler = api.New(eng, fapp.Router())

	// Register HTTP routes unless disabled.
	if !e.config.DisableRoutes {
		if err := e.apiHandler.RegisterRoutes(fapp.Router()); err != nil {
			return fmt.Errorf("shareguard: register routes: %w", err)
		}
	}

	return nil
}

// storeForDB builds the store matching the database driver.
func storeForDB(db *grove.DB) store.Store {
	if pgdriver.Unwrap(db) != nil {
		return postgres.New(db)
	}
	return sqlite.New(db)
}

// Start begins the engine and runs migrations if enabled.
func (e *Extension) Start(ctx context.Context) error {
	if e.eng == nil {
		return errors.New("shareguard: extension not initialized")
	}

	// Run migrations unless disabled.
	if !e.config.DisableMigrate {
		s := e.eng.Store()
		if s != nil {
			if err := s.Migrate(ctx); err != nil {
				return fmt.Errorf("shareguard: migration failed: %w", err)
			}
		}
	}

	return e.eng.Start(ctx)
}

// Stop gracefully shuts down the engine.
func (e *Extension) Stop(ctx context.Context) error {
	if e.eng == nil {
		return nil
	}
	return e.eng.Stop(ctx)
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.eng == nil {
		return errors.New("shareguard: extension not initialized")
	}
	s := e.eng.Store()
	if s == nil {
		return errors.New("shareguard: no store configured")
	}
	return s.Ping(ctx)
}

// Handler returns the HTTP handler for all API routes.
func (e *Extension) Handler() http.Handler {
	if e.apiHandler == nil {
		return http.NotFoundHandler()
	}
	return e.apiHandler.Handler()
}

// RegisterRoutes registers all API routes into a Forge router.
func (e *Extension) RegisterRoutes(router forge.Router) error {
	if e.apiHandler != nil {
		return e.apiHandler.RegisterRoutes(router)
	}
	return nil
}
