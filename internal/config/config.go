// Package config loads the navigation engine's YAML configuration:
// grid/loop parameters, output settings, and optional metrics sinks.
//
// A grid engine has no sensible default map size, so Load validates
// that every required key is present and positive, raising
// MapInitializationError otherwise.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"upside-down-research.com/oss/lpastar-nav/internal/naverrors"
)

// Config is the navigation engine's configuration.
type Config struct {
	Map     MapConfig     `yaml:"map"`
	Loop    LoopConfig    `yaml:"loop"`
	Output  OutputConfig  `yaml:"output"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// MapConfig holds the occupancy-model parameters.
type MapConfig struct {
	Width                float64 `yaml:"width"`
	Height               float64 `yaml:"height"`
	Resolution           float64 `yaml:"resolution"`
	FreeCaseValue        float64 `yaml:"free_case_value"`
	ObstacleCaseValue    float64 `yaml:"obstacle_case_value"`
	HeuristicsMultiplier float64 `yaml:"heuristics_multiplier"`
}

// LoopConfig holds the reactive control loop's timing parameters.
type LoopConfig struct {
	PeriodMS   int     `yaml:"period"`  // control-loop sleep, milliseconds
	TimeoutSec float64 `yaml:"timeout"` // planner timeout, seconds
}

// OutputConfig holds ambient output settings: where run artifacts and
// progress output go.
type OutputConfig struct {
	Directory    string `yaml:"directory"`
	ShowProgress bool   `yaml:"show_progress"`
}

// MetricsConfig controls the o11y package's optional Prometheus
// pushgateway and InfluxDB wiring.
type MetricsConfig struct {
	Enabled        bool   `yaml:"enabled"`
	PushgatewayURL string `yaml:"pushgateway_url"`
	InfluxURL      string `yaml:"influx_url"`
	InfluxToken    string `yaml:"influx_token"` // supports ${ENV_VAR} interpolation
	InfluxOrg      string `yaml:"influx_org"`
	InfluxBucket   string `yaml:"influx_bucket"`
}

// DefaultConfig returns a config with sensible defaults for everything
// except the map section (dimensions, resolution and costs), which has
// none.
func DefaultConfig() *Config {
	return &Config{
		Loop: LoopConfig{
			PeriodMS:   100,
			TimeoutSec: 30,
		},
		Output: OutputConfig{
			Directory:    "./output",
			ShowProgress: true,
		},
		Metrics: MetricsConfig{
			Enabled:        false,
			PushgatewayURL: "http://localhost:9091",
		},
	}
}

// Load reads configuration from a YAML file at path, expanding
// ${ENV_VAR} references, and validates that every required key is
// present and positive.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every required key is present and positive,
// returning MapInitializationError on the first failure.
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value float64
	}{
		{"width", c.Map.Width},
		{"height", c.Map.Height},
		{"resolution", c.Map.Resolution},
		{"free_case_value", c.Map.FreeCaseValue},
		{"obstacle_case_value", c.Map.ObstacleCaseValue},
		{"heuristics_multiplier", c.Map.HeuristicsMultiplier},
	}
	for _, r := range required {
		if r.value <= 0 {
			return &naverrors.MapInitializationError{Key: r.key}
		}
	}
	if c.Loop.PeriodMS <= 0 {
		return &naverrors.MapInitializationError{Key: "period"}
	}
	if c.Loop.TimeoutSec <= 0 {
		return &naverrors.MapInitializationError{Key: "timeout"}
	}
	return nil
}

// Save writes cfg to path as YAML, creating parent directories as
// needed.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ExampleConfig returns a commented example config for `navigator config init`.
func ExampleConfig() string {
	return `# Navigator configuration file

map:
  # World bounds, in the caller's distance units
  width: 30
  height: 20

  # Cell size
  resolution: 1

  # Transition cost multiplier for a free-to-free step
  free_case_value: 1

  # Transition cost for any step touching an occupied cell
  obstacle_case_value: 1000

  # Heuristic multiplier; must be <= free_case_value for admissibility
  heuristics_multiplier: 1

loop:
  # Control-loop sleep, milliseconds
  period: 100

  # Wall-clock budget for a single find_path call, seconds
  timeout: 30

output:
  directory: ./output
  show_progress: true

metrics:
  enabled: false
  pushgateway_url: http://localhost:9091
  influx_url: http://localhost:8086
  influx_token: ${INFLUX_TOKEN}
  influx_org: nav
  influx_bucket: planner
`
}
