package config

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/san-kum/framekit/internal/interp"
	"github.com/san-kum/framekit/internal/spring"
	"gopkg.in/yaml.v3"
)

const (
	DefaultOutputDir = "out"
	DefaultDataDir   = ".framekit"
	DefaultLogLevel  = "info"
	DefaultTheme     = "studio"
	DefaultTickMS    = 0
)

type Config struct {
	Render  RenderConfig                `yaml:"render"`
	Log     LogConfig                   `yaml:"log"`
	Preview PreviewConfig               `yaml:"preview"`
	Springs map[string]spring.Config    `yaml:"springs,omitempty"`
	Curves  map[string]interp.TrackSpec `yaml:"curves,omitempty"`
}

type RenderConfig struct {
	// Workers is the number of frames evaluated concurrently. Zero means
	// one per logical CPU.
	Workers   int    `yaml:"workers"`
	OutputDir string `yaml:"output_dir"`
	DataDir   string `yaml:"data_dir"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type PreviewConfig struct {
	Theme string `yaml:"theme"`
	// TickMS is the playback interval; zero plays at the composition rate.
	TickMS int `yaml:"tick_ms"`
}

func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			OutputDir: DefaultOutputDir,
			DataDir:   DefaultDataDir,
		},
		Log:     LogConfig{Level: DefaultLogLevel},
		Preview: PreviewConfig{Theme: DefaultTheme, TickMS: DefaultTickMS},
	}
}

// Load reads a YAML file over DefaultConfig and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every user spring and curve.
func (c *Config) Validate() error {
	if c.Render.Workers < 0 {
		return fmt.Errorf("render.workers must not be negative, got %d", c.Render.Workers)
	}
	if c.Preview.TickMS < 0 {
		return fmt.Errorf("preview.tick_ms must not be negative, got %d", c.Preview.TickMS)
	}
	for _, name := range sortedKeys(c.Springs) {
		if err := c.Springs[name].Validate(); err != nil {
			return fmt.Errorf("springs.%s: %w", name, err)
		}
	}
	for _, name := range sortedKeys(c.Curves) {
		if _, err := c.Curves[name].Build(); err != nil {
			return fmt.Errorf("curves.%s: %w", name, err)
		}
	}
	return nil
}

// Spring resolves a spring by name: user springs from the file take
// precedence over the built-in presets.
func (c *Config) Spring(name string) (spring.Config, bool) {
	if s, ok := c.Springs[name]; ok {
		return s, true
	}
	return GetPreset(name)
}

// Curve builds the named curve from the file.
func (c *Config) Curve(name string) (*interp.Track, error) {
	spec, ok := c.Curves[name]
	if !ok {
		return nil, fmt.Errorf("unknown curve %q", name)
	}
	return spec.Build()
}

// CurveNames lists the curves defined in the file, sorted.
func (c *Config) CurveNames() []string {
	return sortedKeys(c.Curves)
}

// SampleCurve evaluates the named curve at every frame of its breakpoint
// domain plus pad frames on each side, so the extrapolation policies show.
// It returns the first sampled frame alongside the samples.
func (c *Config) SampleCurve(name string, pad int) (int, []float64, error) {
	track, err := c.Curve(name)
	if err != nil {
		return 0, nil, err
	}
	if pad < 0 {
		pad = 0
	}
	lo, hi := track.Domain()
	from := int(math.Floor(lo)) - pad
	to := int(math.Ceil(hi)) + pad + 1
	return from, track.Sample(from, to), nil
}

// SpringNames lists built-in presets and user springs, sorted, without
// duplicates.
func (c *Config) SpringNames() []string {
	seen := map[string]bool{}
	for _, n := range ListPresets() {
		seen[n] = true
	}
	for n := range c.Springs {
		seen[n] = true
	}
	return sortedKeys(seen)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
