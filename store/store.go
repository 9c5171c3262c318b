// Package store defines the aggregate persistence interface. Each subsystem
// (user, role, profile, permset, permission, owd, group, rule, share,
// object, record) defines its own store interface. The composite Store
// composes them all. Backends: Postgres, SQLite, and Memory.
package store

import (
	"context"
	"errors"

	"github.com/masatokaneko/shareguard/group"
	"github.com/masatokaneko/shareguard/object"
	"github.com/masatokaneko/shareguard/owd"
	"github.com/masatokaneko/shareguard/permission"
	"github.com/masatokaneko/shareguard/permset"
	"github.com/masatokaneko/shareguard/profile"
	"github.com/masatokaneko/shareguard/record"
	"github.com/masatokaneko/shareguard/role"
	"github.com/masatokaneko/shareguard/rule"
	"github.com/masatokaneko/shareguard/share"
	"github.com/masatokaneko/shareguard/user"
)

// ErrNotFound is the sentinel every backend wraps when an entity does not
// exist. Callers test with errors.Is.
var ErrNotFound = errors.New("not found")

// Store is the aggregate persistence interface.
// Each subsystem store is a composable interface; a single backend
// (postgres, sqlite, memory) implements all of them.
type Store interface {
	user.Store
	role.Store
	profile.Store
	permset.Store
	permission.Store
	owd.Store
	group.Store
	rule.Store
	share.Store
	object.Store
	record.Store

	// Migrate runs all schema migrations.
	Migrate(ctx context.Context) error

	// Ping checks database connectivity.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error
}
