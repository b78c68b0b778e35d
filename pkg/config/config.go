// Package config loads centralplot settings from YAML and validates them.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-centralities/pkg/chart"
	"github.com/dd0wney/cluso-centralities/pkg/dataset"
	"github.com/dd0wney/cluso-centralities/pkg/validation"
)

// Config is the full set of settings for one run.
type Config struct {
	DataDir    string       `yaml:"data_dir"`
	File       string       `yaml:"file" validate:"required"`
	Strict     bool         `yaml:"strict"`
	Duplicates string       `yaml:"duplicates" validate:"oneof=keep-last reject"`
	Axis       AxisConfig   `yaml:"axis"`
	LogLevel   string       `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFile    string       `yaml:"log_file"`
	Metrics    string       `yaml:"metrics_file"`
	Export     ExportConfig `yaml:"export"`
}

// AxisConfig is the data window shown at start-up and on reset.
type AxisConfig struct {
	XMin float64 `yaml:"x_min"`
	XMax float64 `yaml:"x_max"`
	YMin float64 `yaml:"y_min"`
	YMax float64 `yaml:"y_max"`
}

// ExportConfig sizes static chart exports, in points (1/72 inch).
type ExportConfig struct {
	Width  float64 `yaml:"width" validate:"gt=0,lte=10000"`
	Height float64 `yaml:"height" validate:"gt=0,lte=10000"`
}

// Default returns the settings used when no config file is given.
func Default() Config {
	return Config{
		DataDir:    dataset.DefaultDir,
		File:       dataset.DefaultFile,
		Strict:     true,
		Duplicates: dataset.KeepLast.String(),
		Axis: AxisConfig{
			XMin: chart.DefaultX.Min,
			XMax: chart.DefaultX.Max,
			YMin: chart.DefaultY.Min,
			YMax: chart.DefaultY.Max,
		},
		LogLevel: "info",
		Export: ExportConfig{
			Width:  576,
			Height: 576,
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks struct tags first, then the cross-field rules.
// The log level is compared in the spelling logging.ParseLevel accepts.
func (c Config) Validate() error {
	c.LogLevel = normalizeLevel(c.LogLevel)
	if err := validation.Struct(&c); err != nil {
		return err
	}

	return validation.NewConfigValidator("Config").
		Finite("Axis.XMin", c.Axis.XMin).
		Finite("Axis.XMax", c.Axis.XMax).
		Finite("Axis.YMin", c.Axis.YMin).
		Finite("Axis.YMax", c.Axis.YMax).
		Less("Axis.X", c.Axis.XMin, c.Axis.XMax).
		Less("Axis.Y", c.Axis.YMin, c.Axis.YMax).
		Validate()
}

func normalizeLevel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return "warn"
	}
	return s
}

// Path returns the centrality file location.
func (c Config) Path() string {
	return dataset.ResolvePath(c.DataDir, c.File)
}

// DatasetOptions translates the loader settings. Logging is added by the caller.
func (c Config) DatasetOptions() ([]dataset.Option, error) {
	policy, ok := dataset.ParseDuplicatePolicy(c.Duplicates)
	if !ok {
		return nil, errors.New("unknown duplicate policy " + c.Duplicates)
	}

	opts := []dataset.Option{dataset.WithDuplicatePolicy(policy)}
	if c.Strict {
		opts = append(opts, dataset.WithStrict())
	} else {
		opts = append(opts, dataset.WithLenient())
	}
	return opts, nil
}

// Viewport returns the configured start-up window.
func (c Config) Viewport() chart.Viewport {
	return chart.NewViewport(
		chart.Range{Min: c.Axis.XMin, Max: c.Axis.XMax},
		chart.Range{Min: c.Axis.YMin, Max: c.Axis.YMax},
	)
}
