package profile

import (
	"context"

	"github.com/masatokaneko/shareguard/id"
)

// Store defines persistence operations for profiles.
type Store interface {
	// CreateProfile persists a new profile.
	CreateProfile(ctx context.Context, p *Profile) error

	// GetProfile retrieves a profile by ID.
	GetProfile(ctx context.Context, profileID id.ProfileID) (*Profile, error)

	// GetProfileByName retrieves a profile by tenant and name.
	GetProfileByName(ctx context.Context, tenantID, name string) (*Profile, error)

	// UpdateProfile persists changes to a profile.
	UpdateProfile(ctx context.Context, p *Profile) error

	// DeleteProfile removes a profile by ID.
	DeleteProfile(ctx context.Context, profileID id.ProfileID) error

	// ListProfiles returns profiles matching the filter.
	ListProfiles(ctx context.Context, filter *ListFilter) ([]*Profile, error)

	// CountProfiles returns the number of profiles matching the filter.
	CountProfiles(ctx context.Context, filter *ListFilter) (int64, error)
}
