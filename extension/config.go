package extension

// Config holds the Shareguard extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.shareguard" or "shareguard"
// keys).
type Config struct {
	// DisableRoutes prevents HTTP route registration.
	DisableRoutes bool `json:"disable_routes" mapstructure:"disable_routes" yaml:"disable_routes"`

	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// BasePath is the URL prefix for shareguard routes (default: "/shareguard").
	BasePath string `json:"base_path" mapstructure:"base_path" yaml:"base_path"`

	// MaxHierarchyDepth bounds role hierarchy walks.
	MaxHierarchyDepth int `json:"max_hierarchy_depth" mapstructure:"max_hierarchy_depth" yaml:"max_hierarchy_depth"`

	// MaxGroupDepth bounds nested group expansion.
	MaxGroupDepth int `json:"max_group_depth" mapstructure:"max_group_depth" yaml:"max_group_depth"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxHierarchyDepth: 50,
		MaxGroupDepth:     10,
	}
}
