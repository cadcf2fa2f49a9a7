package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"
)

// DefaultOutput is where the figure is written when nothing overrides it.
const DefaultOutput = "static/images/softmax_geometry.png"

// Config captures the runtime knobs for a rendering run.
type Config struct {
	Output          string  `yaml:"output"`
	Seed            int64   `yaml:"seed"`
	SamplesPerClass int     `yaml:"samples_per_class"`
	Step            float64 `yaml:"step"`
	Margin          float64 `yaml:"margin"`
	WidthIn         float64 `yaml:"width_in"`
	HeightIn        float64 `yaml:"height_in"`
	DPI             float64 `yaml:"dpi"`
	Locale          string  `yaml:"locale"`
	FontPath        string  `yaml:"font_path"`
	Log             Log     `yaml:"log"`
}

// Log configures the logger.
type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	Output          string
	Seed            int64
	SamplesPerClass int
	Step            float64
	DPI             float64
	Locale          string
	FontPath        string
	LogLevel        string
}

// Default returns the configuration that reproduces the published figure.
func Default() *Config {
	return &Config{
		Output:          DefaultOutput,
		Seed:            42,
		SamplesPerClass: 1000,
		Step:            0.02,
		Margin:          1,
		WidthIn:         12,
		HeightIn:        8,
		DPI:             300,
		Locale:          "en",
		Log: Log{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads and validates a Config from YAML. Keys missing from the file
// keep their default values, and an empty file yields Default.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.SetStrict(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.SamplesPerClass > 0 {
		c.SamplesPerClass = o.SamplesPerClass
	}
	if o.Step > 0 {
		c.Step = o.Step
	}
	if o.DPI > 0 {
		c.DPI = o.DPI
	}
	if o.Locale != "" {
		c.Locale = o.Locale
	}
	if o.FontPath != "" {
		c.FontPath = o.FontPath
	}
	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Output == "" {
		return errors.New("output path must be set")
	}
	if c.SamplesPerClass <= 0 {
		return fmt.Errorf("samples_per_class must be > 0 (got %d)", c.SamplesPerClass)
	}
	if c.Step <= 0 {
		return fmt.Errorf("step must be > 0 (got %g)", c.Step)
	}
	if c.Margin < 0 {
		return fmt.Errorf("margin must be >= 0 (got %g)", c.Margin)
	}
	if c.WidthIn <= 0 || c.HeightIn <= 0 {
		return fmt.Errorf("figure size must be > 0 (got %gx%g in)", c.WidthIn, c.HeightIn)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be > 0 (got %g)", c.DPI)
	}
	if c.Seed == 0 {
		c.Seed = 42
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	return nil
}
