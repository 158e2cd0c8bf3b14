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
	Screen     ScreenConfig     `yaml:"screen"`
	Bird       BirdConfig       `yaml:"bird"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Pipes      PipesConfig      `yaml:"pipes"`
	Ground     GroundConfig     `yaml:"ground"`
	Fitness    FitnessConfig    `yaml:"fitness"`
	Controller ControllerConfig `yaml:"controller"`
	Evolution  EvolutionConfig  `yaml:"evolution"`
	Generation GenerationConfig `yaml:"generation"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// BirdConfig holds agent spawn and animation settings.
type BirdConfig struct {
	StartX        float64 `yaml:"start_x"`
	StartY        float64 `yaml:"start_y"`
	AnimationTime int     `yaml:"animation_time"` // Ticks per wing pose
}

// PhysicsConfig holds the bird kinematics constants.
type PhysicsConfig struct {
	JumpVelocity     float64 `yaml:"jump_velocity"`     // Velocity set on jump (negative is up)
	Gravity          float64 `yaml:"gravity"`           // Coefficient of t² in displacement
	MaxDisplacement  float64 `yaml:"max_displacement"`  // Downward displacement cap per tick
	JumpBoost        float64 `yaml:"jump_boost"`        // Extra lift applied when ascending
	MaxRotation      float64 `yaml:"max_rotation"`      // Tilt on ascent (degrees)
	RotationVelocity float64 `yaml:"rotation_velocity"` // Tilt decay per tick when falling
	MinTilt          float64 `yaml:"min_tilt"`          // Nose-dive limit
}

// PipesConfig holds obstacle generation parameters.
type PipesConfig struct {
	Gap      float64 `yaml:"gap"`
	Velocity float64 `yaml:"velocity"`
	GapMin   int     `yaml:"gap_min"` // Inclusive lower bound of gap top
	GapMax   int     `yaml:"gap_max"` // Exclusive upper bound of gap top
	FirstX   float64 `yaml:"first_x"`
	SpawnX   float64 `yaml:"spawn_x"`
}

// GroundConfig holds the scrolling ground band settings.
type GroundConfig struct {
	Y        float64 `yaml:"y"`
	Velocity float64 `yaml:"velocity"`
}

// FitnessConfig holds per-tick fitness increments.
type FitnessConfig struct {
	SurvivalReward   float64 `yaml:"survival_reward"`
	CollisionPenalty float64 `yaml:"collision_penalty"`
	PassReward       float64 `yaml:"pass_reward"`
}

// ControllerConfig holds controller decision settings.
type ControllerConfig struct {
	JumpThreshold float64 `yaml:"jump_threshold"` // Jump when output is strictly greater
}

// EvolutionConfig holds evolution driver settings.
type EvolutionConfig struct {
	NumGenerations     int     `yaml:"num_generations"`
	FitnessThreshold   float64 `yaml:"fitness_threshold"`
	InitialWeightRange float64 `yaml:"initial_weight_range"`
}

// GenerationConfig holds per-generation limits.
type GenerationConfig struct {
	MaxTicks int `yaml:"max_ticks"` // 0 = run until every agent is dead
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow int `yaml:"perf_window"`
	LogEvery   int `yaml:"log_every"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32
	GroundY32 float32
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
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

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

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	if c.Pipes.GapMax <= c.Pipes.GapMin {
		return fmt.Errorf("pipes: gap_max (%d) must be greater than gap_min (%d)", c.Pipes.GapMax, c.Pipes.GapMin)
	}
	if c.Pipes.Gap <= 0 {
		return fmt.Errorf("pipes: gap must be positive, got %v", c.Pipes.Gap)
	}
	if c.Ground.Y <= 0 {
		return fmt.Errorf("ground: y must be positive, got %v", c.Ground.Y)
	}
	if c.Bird.AnimationTime < 1 {
		return fmt.Errorf("bird: animation_time must be at least 1, got %d", c.Bird.AnimationTime)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.GroundY32 = float32(c.Ground.Y)

	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = 60
	}
	if c.Telemetry.LogEvery < 1 {
		c.Telemetry.LogEvery = 1
	}
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
