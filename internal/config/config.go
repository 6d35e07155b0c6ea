package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"apiscout/internal/eventbus"
)

// LocalFileName is the per-directory config file name
const LocalFileName = ".apiscout.toml"

// ErrNotFound is returned when an explicit config path does not exist
var ErrNotFound = errors.New("config file not found")

// Config represents the application configuration
type Config struct {
	Specs  []SpecSource   `toml:"specs"`
	Search SearchSettings `toml:"search"`
	UI     UISettings     `toml:"ui"`
	Log    LogSettings    `toml:"log"`
}

// SpecSource is one OpenAPI document, loaded as one API version
type SpecSource struct {
	Version string `toml:"version"`
	Path    string `toml:"path"`
	Label   string `toml:"label,omitempty"`
	Default bool   `toml:"default,omitempty"`
}

// SearchSettings tunes the search box
type SearchSettings struct {
	DebounceMS     int     `toml:"debounce_ms"`
	MaxResults     int     `toml:"max_results"`
	Threshold      float64 `toml:"threshold"`
	ScopeToVersion bool    `toml:"scope_to_version"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowTargets bool `toml:"show_targets"`
	WrapWidth   int  `toml:"wrap_width"`
}

// LogSettings controls log output
type LogSettings struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service that reads from the first
// existing file among ./.apiscout.toml and the user config directory.
func NewConfigService() ConfigService {
	if _, err := os.Stat(LocalFileName); err == nil {
		return &configService{filePath: LocalFileName}
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "apiscout", "config.toml"),
	}
}

// NewConfigServiceForPath creates a config service bound to an explicit file
func NewConfigServiceForPath(path string) ConfigService {
	return &configService{filePath: path}
}

// WithBus attaches an event bus so loads are announced
func WithBus(cs ConfigService, bus eventbus.EventBus) ConfigService {
	if impl, ok := cs.(*configService); ok {
		impl.bus = bus
	}
	return cs
}

// Path returns the file the service reads by default
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when absent
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrNotFound) {
		cfg = DefaultConfig()
		err = nil
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:  cs.filePath,
			Specs: len(cfg.Specs),
		})
	}

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path.
// Keys missing from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Relative spec paths are resolved against the config file's directory
	base := filepath.Dir(path)
	for i, s := range cfg.Specs {
		if s.Path != "" && !filepath.IsAbs(s.Path) {
			cfg.Specs[i].Path = filepath.Join(base, s.Path)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Search.DebounceMS < 0 {
		return fmt.Errorf("search.debounce_ms must not be negative, got %d", c.Search.DebounceMS)
	}
	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("search.max_results must be positive, got %d", c.Search.MaxResults)
	}
	if c.Search.Threshold <= 0 || c.Search.Threshold > 1 {
		return fmt.Errorf("search.threshold must be in (0, 1], got %g", c.Search.Threshold)
	}
	defaults := 0
	for i, s := range c.Specs {
		if s.Path == "" {
			return fmt.Errorf("specs[%d]: path is required", i)
		}
		// A lone spec may take its version from the document's info.version
		if s.Version == "" && len(c.Specs) > 1 {
			return fmt.Errorf("specs[%d]: version is required when several specs are configured", i)
		}
		if s.Default {
			defaults++
		}
	}
	if defaults > 1 {
		return fmt.Errorf("specs: %d entries marked default, at most one allowed", defaults)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Search: SearchSettings{
			DebounceMS:     150,
			MaxResults:     10,
			Threshold:      0.3,
			ScopeToVersion: true,
		},
		UI: UISettings{
			ShowTargets: true,
			WrapWidth:   80,
		},
		Log: LogSettings{
			Level: "info",
			File:  "apiscout.log",
		},
	}
}
