// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Ship      ShipConfig      `yaml:"ship"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds the tile grid cell dimensions in world units. Both values
// are written once at startup and never change while the simulation runs.
type GridConfig struct {
	CellX uint8 `yaml:"cell_x"`
	CellY uint8 `yaml:"cell_y"`
}

// PhysicsConfig holds simulation physics parameters.
type PhysicsConfig struct {
	DT              float64 `yaml:"dt"`               // seconds per simulation tick
	Gravity         float64 `yaml:"gravity"`          // downward acceleration, tiles/sec^2 per unit weight
	MaintainedDecay float64 `yaml:"maintained_decay"` // maintained velocity decay, tiles/sec^2
	ParallelRoots   int     `yaml:"parallel_roots"`   // hierarchy root count before propagation goes parallel; 0 disables
}

// PlayerConfig holds player movement parameters.
type PlayerConfig struct {
	WalkSpeed      float64 `yaml:"walk_speed"`      // tiles/sec along a cardinal direction
	DiagonalFactor float64 `yaml:"diagonal_factor"` // walk speed multiplier on diagonals
}

// ShipConfig holds ship spawning parameters.
type ShipConfig struct {
	SpawnX     int     `yaml:"spawn_x"` // tile coordinates of the ship root
	SpawnY     int     `yaml:"spawn_y"`
	SpawnZ     int     `yaml:"spawn_z"`
	DriftSpeed float64 `yaml:"drift_speed"` // constant ship velocity along +y, tiles/sec
}

// TelemetryConfig holds telemetry collection settings.
type TelemetryConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Interval   int    `yaml:"interval"`    // ticks between samples
	WindowSize int    `yaml:"window_size"` // samples per aggregation window
	OutputDir  string `yaml:"output_dir"`
}

// DerivedConfig holds values derived from loaded config.
type DerivedConfig struct {
	DT32      float32 // Physics.DT as float32
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Grid.CellX == 0 || c.Grid.CellY == 0 {
		return fmt.Errorf("grid cell sizes must be nonzero, got %dx%d", c.Grid.CellX, c.Grid.CellY)
	}
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics dt must be positive, got %v", c.Physics.DT)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}
