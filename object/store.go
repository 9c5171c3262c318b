package object

import (
	"context"

	"github.com/masatokaneko/shareguard/id"
)

// Store defines persistence operations for object definitions.
type Store interface {
	// CreateDefinition persists a new object definition.
	CreateDefinition(ctx context.Context, d *Definition) error

	// GetDefinition retrieves a definition by ID.
	GetDefinition(ctx context.Context, defID id.ObjectDefID) (*Definition, error)

	// GetDefinitionByName retrieves a definition by tenant and object name.
	GetDefinitionByName(ctx context.Context, tenantID, name string) (*Definition, error)

	// UpdateDefinition persists changes to a definition.
	UpdateDefinition(ctx context.Context, d *Definition) error

	// DeleteDefinition removes a definition by ID.
	DeleteDefinition(ctx context.Context, defID id.ObjectDefID) error

	// ListDefinitions returns definitions matching the filter.
	ListDefinitions(ctx context.Context, filter *ListFilter) ([]*Definition, error)
}
