// Package config holds the run parameters for the money model: the
// model-wide constants fixed at construction plus engine and logging knobs.
// Values come from defaults, then an optional YAML file, then MONEYSIM_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the complete run configuration.
type Config struct {
	// Model parameters, immutable for the run.
	Foragers       int     `yaml:"foragers"`
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	Consume        float64 `yaml:"consume"`         // Forager upkeep per tick
	Growth         float64 `yaml:"growth"`          // Capital growth per tick
	GrowthVariance float64 `yaml:"growth_variance"` // 0 = uniform growth; up to 1
	Seed           int64   `yaml:"seed"`            // 0 = draw a fresh seed

	// Engine.
	Ticks       int           `yaml:"ticks"`        // 0 = run until stopped
	ReportEvery int           `yaml:"report_every"` // 0 = no periodic reports
	Interval    time.Duration `yaml:"interval"`     // 0 = as fast as possible

	// Logging.
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text or pretty
}

// Default returns the stock configuration: 20 Foragers on a 10×10 grid with
// unit upkeep and growth.
func Default() Config {
	return Config{
		Foragers:    20,
		Width:       10,
		Height:      10,
		Consume:     1,
		Growth:      1,
		Seed:        42,
		Ticks:       500,
		ReportEvery: 50,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every out-of-range parameter at once.
func (c Config) Validate() error {
	var errs []error
	positiveInt := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, name, v))
		}
	}
	positiveFloat := func(name string, v float64) {
		if !(v > 0) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%w: %s must be positive and finite, got %g", ErrInvalidConfig, name, v))
		}
	}

	positiveInt("foragers", c.Foragers)
	positiveInt("width", c.Width)
	positiveInt("height", c.Height)
	positiveFloat("consume", c.Consume)
	positiveFloat("growth", c.Growth)

	if !(c.GrowthVariance >= 0 && c.GrowthVariance <= 1) {
		errs = append(errs, fmt.Errorf("%w: growth_variance must be within [0, 1], got %g", ErrInvalidConfig, c.GrowthVariance))
	}
	if c.Ticks < 0 {
		errs = append(errs, fmt.Errorf("%w: ticks must not be negative, got %d", ErrInvalidConfig, c.Ticks))
	}
	if c.ReportEvery < 0 {
		errs = append(errs, fmt.Errorf("%w: report_every must not be negative, got %d", ErrInvalidConfig, c.ReportEvery))
	}
	if c.Interval < 0 {
		errs = append(errs, fmt.Errorf("%w: interval must not be negative, got %s", ErrInvalidConfig, c.Interval))
	}

	return errors.Join(errs...)
}

// Cells returns the number of grid cells, which is also the Capital count.
func (c Config) Cells() int {
	return c.Width * c.Height
}

// String returns a one-line summary of the model parameters.
func (c Config) String() string {
	return fmt.Sprintf("N=%d %dx%d consume=%s growth=%s seed=%d",
		c.Foragers, c.Width, c.Height,
		strconv.FormatFloat(c.Consume, 'g', -1, 64),
		strconv.FormatFloat(c.Growth, 'g', -1, 64),
		c.Seed)
}
