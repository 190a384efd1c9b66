// Package config provides configuration loading and access for the evolver and viewer.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Evolution EvolutionConfig `yaml:"evolution"`
	Plot      PlotConfig      `yaml:"plot"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Caption   string `yaml:"caption"`
}

// EvolutionConfig holds the genetic algorithm parameters.
// Out-of-range values are clamped, never rejected.
type EvolutionConfig struct {
	DesiredNumber  int     `yaml:"desired_number"`  // Target, clamped to [0, max_number]
	PopulationSize int     `yaml:"population_size"` // At least 2
	MaxNumber      int     `yaml:"max_number"`      // Largest representable individual
	CrossRange     int     `yaml:"cross_range"`     // Bits swapped per crossover, at most half the bit width
	Sleep          float64 `yaml:"sleep"`           // Seconds between generations
	MaxGenerations int     `yaml:"max_generations"` // 0 = run until the target is reached
}

// PlotConfig holds plot layout in scene pixels.
type PlotConfig struct {
	OriginX         float32 `yaml:"origin_x"`          // X of generation 0 and of threshold labels
	ColumnWidth     float32 `yaml:"column_width"`      // Horizontal spacing between generations
	BandTop         float32 `yaml:"band_top"`          // Y of max_number
	BandBottom      float32 `yaml:"band_bottom"`       // Y of 0
	BestLabelY      float32 `yaml:"best_label_y"`      // Row of best values
	IterationLabelY float32 `yaml:"iteration_label_y"` // Row of iteration numbers
	PopulationTextY float32 `yaml:"population_text_y"` // First row of population text lines
	DotRadius       float32 `yaml:"dot_radius"`
	BestRadius      float32 `yaml:"best_radius"`
	LabelFontSize   int32   `yaml:"label_font_size"`
	DataFontSize    int32   `yaml:"data_font_size"`
	FollowMargin    float32 `yaml:"follow_margin"` // Gap kept right of the newest generation when following
	PanSpeed        float32 `yaml:"pan_speed"`     // Arrow-key pan in pixels per frame
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow int `yaml:"perf_window"` // Generations averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Sleep     time.Duration // Evolution.Sleep as a duration
	ScreenW32 float32       // Screen.Width as float32
	ScreenH32 float32       // Screen.Height as float32
}

// maxSleepSeconds is the longest sleep a time.Duration can hold.
const maxSleepSeconds = float64(math.MaxInt64) / float64(time.Second)

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

	cfg.Normalize()
	return cfg, nil
}

// Normalize clamps evolution parameters to their valid ranges and recomputes
// derived values. Call again after changing fields by hand.
func (c *Config) Normalize() {
	ev := &c.Evolution
	ev.MaxNumber = max(ev.MaxNumber, 1)
	ev.DesiredNumber = min(max(ev.DesiredNumber, 0), ev.MaxNumber)
	ev.PopulationSize = max(ev.PopulationSize, 2)
	ev.CrossRange = max(ev.CrossRange, 0)
	if math.IsNaN(ev.Sleep) {
		ev.Sleep = 0
	}
	ev.Sleep = min(max(ev.Sleep, 0), maxSleepSeconds)
	ev.MaxGenerations = max(ev.MaxGenerations, 0)

	if c.Plot.ColumnWidth <= 0 {
		c.Plot.ColumnWidth = 30
	}
	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = 60
	}

	c.Derived.Sleep = sleepDuration(ev.Sleep)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// sleepDuration converts clamped seconds to a duration, saturating at the maximum.
func sleepDuration(seconds float64) time.Duration {
	if seconds >= maxSleepSeconds {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(seconds * float64(time.Second))
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
