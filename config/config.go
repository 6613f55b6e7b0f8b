// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/kudo/geom"
	"github.com/pthm-cable/kudo/tags"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Boss      BossConfig      `yaml:"boss"`
	Level     LevelConfig     `yaml:"level"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// Vec2 is a YAML-friendly 2D vector.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Vec converts to a geometry vector.
func (v Vec2) Vec() geom.Vec {
	return geom.V(v.X, v.Y)
}

// ScreenConfig holds window parameters.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int    `yaml:"target_fps"`
}

// WorldConfig holds the level grid and backdrop.
type WorldConfig struct {
	Cols      int      `yaml:"cols"`
	Rows      int      `yaml:"rows"`
	CellsX    float64  `yaml:"cells_x"` // cells visible across the screen
	CellsY    float64  `yaml:"cells_y"` // cells visible down the screen
	Sky       [3]uint8 `yaml:"sky"`
	DeathSky  [3]uint8 `yaml:"death_sky"`
	AssetsDir string   `yaml:"assets_dir"`
}

// PhysicsConfig holds default body tuning.
type PhysicsConfig struct {
	Gravity     float64  `yaml:"gravity"`
	MaxVelocity Vec2     `yaml:"max_velocity"`
	Weight      float64  `yaml:"weight"`
	Solid       []string `yaml:"solid"` // tags that block the player
}

// PlayerConfig holds player spawn and controls.
type PlayerConfig struct {
	Spawn           Vec2    `yaml:"spawn"`
	Size            Vec2    `yaml:"size"`
	Speed           float64 `yaml:"speed"`
	JumpFactor      float64 `yaml:"jump_factor"`   // jump velocity = speed * factor
	BushSlowdown    float64 `yaml:"bush_slowdown"` // speed divisor inside bushes
	Weight          float64 `yaml:"weight"`
	ColliderInflate Vec2    `yaml:"collider_inflate"`
	ProbeInflate    Vec2    `yaml:"probe_inflate"`
	ProbeOffset     Vec2    `yaml:"probe_offset"`
	Sprite          string  `yaml:"sprite"`
}

// BossConfig holds the patrolling boss.
type BossConfig struct {
	Enabled         bool    `yaml:"enabled"`
	Spawn           Vec2    `yaml:"spawn"`
	Size            Vec2    `yaml:"size"`
	ColliderInflate Vec2    `yaml:"collider_inflate"`
	PatrolMin       float64 `yaml:"patrol_min"`
	PatrolMax       float64 `yaml:"patrol_max"`
	Speed           float64 `yaml:"speed"`
	Sprite          string  `yaml:"sprite"`
}

// LevelConfig selects how terrain is built.
type LevelConfig struct {
	Generator  string   `yaml:"generator"` // "walk" or "noise"
	NoiseScale float64  `yaml:"noise_scale"`
	Goal       bool     `yaml:"goal"`   // place a goal cell above the last column
	Layout     []string `yaml:"layout"` // hand-written rows, overrides the generator
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // ticks per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	CellW, CellH   float64  // world size of one grid cell
	WorldW, WorldH float64  // world size of the whole grid
	Solid          tags.Set // parsed Physics.Solid
	ScreenW32      float32
	ScreenH32      float32
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

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only fields present in the file are overwritten.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	if c.World.Cols <= 0 || c.World.Rows <= 0 {
		return fmt.Errorf("world grid must be positive, got %dx%d", c.World.Cols, c.World.Rows)
	}
	if c.World.CellsX <= 0 || c.World.CellsY <= 0 {
		return fmt.Errorf("world cells_x and cells_y must be positive")
	}
	if c.Player.BushSlowdown <= 0 {
		return fmt.Errorf("player.bush_slowdown must be positive, got %v", c.Player.BushSlowdown)
	}
	switch c.Level.Generator {
	case "walk", "noise":
	default:
		return fmt.Errorf("unknown level generator %q", c.Level.Generator)
	}

	solid, err := tags.ParseSet(c.Physics.Solid)
	if err != nil {
		return fmt.Errorf("physics.solid: %w", err)
	}
	c.Derived.Solid = solid

	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.CellW = float64(c.Screen.Width) / c.World.CellsX
	c.Derived.CellH = float64(c.Screen.Height) / c.World.CellsY
	c.Derived.WorldW = c.Derived.CellW * float64(c.World.Cols)
	c.Derived.WorldH = c.Derived.CellH * float64(c.World.Rows)
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
