package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-centralities/pkg/chart"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "centralplot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, filepath.Join("job_test", "centralities.csv"), cfg.Path())
	assert.Equal(t, chart.DefaultViewport(), cfg.Viewport())

	opts, err := cfg.DatasetOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 2)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
data_dir: exports
file: run42.csv.sz
strict: false
duplicates: reject
axis:
  x_max: 1.0
  y_max: 0.1
log_level: debug
metrics_file: /tmp/centralplot.prom
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, filepath.Join("exports", "run42.csv.sz"), cfg.Path())
	assert.False(t, cfg.Strict)
	assert.Equal(t, "reject", cfg.Duplicates)
	assert.Equal(t, 0.0, cfg.Axis.XMin, "unset keys keep their defaults")
	assert.Equal(t, 1.0, cfg.Axis.XMax)
	assert.Equal(t, 576.0, cfg.Export.Width)
	assert.Equal(t, "/tmp/centralplot.prom", cfg.Metrics)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "axis: [not, a, map]\n"))
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty file", func(c *Config) { c.File = "" }, "Config.File: field is required"},
		{"bad duplicates", func(c *Config) { c.Duplicates = "first" }, "Config.Duplicates"},
		{"bad level", func(c *Config) { c.LogLevel = "trace" }, "Config.LogLevel"},
		{"zero export width", func(c *Config) { c.Export.Width = 0 }, "Config.Export.Width"},
		{"reversed x axis", func(c *Config) { c.Axis.XMin, c.Axis.XMax = 1, 0 }, "Config.Axis.X"},
		{"flat y axis", func(c *Config) { c.Axis.YMax = c.Axis.YMin }, "Config.Axis.Y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.want), "error %q should contain %q", err, tt.want)
		})
	}
}

func TestValidate_LogLevelSpellings(t *testing.T) {
	for _, level := range []string{"debug", "INFO", "warn", "warning", "WARNING", " Error "} {
		t.Run(level, func(t *testing.T) {
			cfg := Default()
			cfg.LogLevel = level
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestDatasetOptions_UnknownPolicy(t *testing.T) {
	cfg := Default()
	cfg.Duplicates = "first"

	_, err := cfg.DatasetOptions()
	assert.Error(t, err)
}
