// Package config provides configuration loading and access for the visualization.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all visualization configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Shape     ShapeConfig     `yaml:"shape"`
	Morph     MorphConfig     `yaml:"morph"`
	Gesture   GestureConfig   `yaml:"gesture"`
	Dust      DustConfig      `yaml:"dust"`
	Stars     StarsConfig     `yaml:"stars"`
	Snow      SnowConfig      `yaml:"snow"`
	Twinkle   TwinkleConfig   `yaml:"twinkle"`
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

// ShapeConfig holds the parameters for the two target point distributions.
type ShapeConfig struct {
	Count          int     `yaml:"count"`            // Number of morph particles
	Revolutions    float64 `yaml:"revolutions"`      // Full turns of the formed spiral
	MaxRadius      float64 `yaml:"max_radius"`       // Spiral radius at the base
	Span           float64 `yaml:"span"`             // Vertical extent, centered on 0
	Jitter         float64 `yaml:"jitter"`           // Uniform per-axis offset applied at generation
	AccentChance   float64 `yaml:"accent_chance"`    // Probability a particle gets the accent color
	ShellRadiusMin float64 `yaml:"shell_radius_min"` // Inner radius of the scattered shell
	ShellRadiusMax float64 `yaml:"shell_radius_max"` // Outer radius of the scattered shell
}

// MorphConfig holds per-frame integration parameters.
type MorphConfig struct {
	Stiffness float64 `yaml:"stiffness"` // K in alpha = 1 - exp(-K*dt); higher = faster convergence
	Jitter    float64 `yaml:"jitter"`    // Uniform per-axis shimmer added after the pull
}

// GestureConfig holds gesture debounce parameters.
type GestureConfig struct {
	LockMillis int `yaml:"lock_millis"` // Transition lock duration
}

// DustConfig holds drifting dust field parameters.
type DustConfig struct {
	Count      int     `yaml:"count"`
	HalfExtent float64 `yaml:"half_extent"` // Wrap volume half-size
	DriftSpeed float64 `yaml:"drift_speed"` // Velocity magnitude scale
	NoiseScale float64 `yaml:"noise_scale"` // Spatial frequency of the velocity noise field
	SwayAmp    float64 `yaml:"sway_amp"`
	SwayFreq   float64 `yaml:"sway_freq"`
}

// StarsConfig holds star shell parameters.
type StarsConfig struct {
	Count     int     `yaml:"count"`
	RadiusMin float64 `yaml:"radius_min"`
	RadiusMax float64 `yaml:"radius_max"`
	SwayAmp   float64 `yaml:"sway_amp"`
	SwayFreq  float64 `yaml:"sway_freq"`
}

// SnowConfig holds falling snow parameters.
type SnowConfig struct {
	Count       int     `yaml:"count"`
	HalfExtent  float64 `yaml:"half_extent"`  // Horizontal spawn area half-size
	SpawnHeight float64 `yaml:"spawn_height"` // Y position on recycle
	GroundLevel float64 `yaml:"ground_level"` // Y threshold that triggers recycle
	FallRateMin float64 `yaml:"fall_rate_min"`
	FallRateMax float64 `yaml:"fall_rate_max"`
	SwayAmp     float64 `yaml:"sway_amp"`
	SwayFreq    float64 `yaml:"sway_freq"`
}

// TwinkleConfig holds light intensity parameters.
type TwinkleConfig struct {
	Base      float64 `yaml:"base"`      // Peak intensity when formed
	FreqA     float64 `yaml:"freq_a"`    // First waveform frequency (Hz)
	FreqB     float64 `yaml:"freq_b"`    // Second waveform frequency (Hz)
	Stiffness float64 `yaml:"stiffness"` // Smoothing K toward the target intensity
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT        float64 // Fixed seconds per tick (1 / target FPS)
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

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.DT = 1.0 / float64(fps)

	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
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
