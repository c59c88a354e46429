package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/owid-co2-data.csv", cfg.Input.Path)
	assert.Equal(t, "data/cleaned_co2_data.csv", cfg.Output.CleanedCSV)
	assert.Equal(t, "Statistics.txt", cfg.Output.Statistics)
	assert.Equal(t, "Visualisations", cfg.Output.ChartDir)
	assert.Empty(t, cfg.Output.Workbook)
	assert.True(t, cfg.Output.CreateDirs)
	assert.InDelta(t, 12.0, cfg.Charts.WidthIn, 0.001)
	assert.InDelta(t, 7.0, cfg.Charts.HeightIn, 0.001)
	assert.Equal(t, 10, cfg.Aggregate.TopN)
	assert.Empty(t, cfg.Classify.OverridesFile)
	assert.Empty(t, cfg.Store.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
input:
  path: raw/co2.csv
store:
  driver: sqlite
  database_url: runs.db
log:
  level: debug
  format: console
aggregate:
  top_n: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "raw/co2.csv", cfg.Input.Path)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "runs.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 5, cfg.Aggregate.TopN)
	// Defaults still apply for unset values
	assert.Equal(t, "Statistics.txt", cfg.Output.Statistics)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("EMISSIONS_STORE_DRIVER", "postgres")
	t.Setenv("EMISSIONS_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("EMISSIONS_AGGREGATE_TOP_N", "3")
	t.Setenv("EMISSIONS_OUTPUT_CHART_DIR", "charts")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Aggregate.TopN)
	assert.Equal(t, "charts", cfg.Output.ChartDir)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("input: [\n"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read file")
}

func validDefaults() *Config {
	cfg := &Config{}
	cfg.Input.Path = "data/owid-co2-data.csv"
	cfg.Output.CleanedCSV = "data/cleaned_co2_data.csv"
	cfg.Output.Statistics = "Statistics.txt"
	cfg.Output.ChartDir = "Visualisations"
	cfg.Charts.WidthIn = 12
	cfg.Charts.HeightIn = 7
	cfg.Aggregate.TopN = 10
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"missing input", func(c *Config) { c.Input.Path = "" }, "input.path"},
		{"zero top n", func(c *Config) { c.Aggregate.TopN = 0 }, "top_n"},
		{"top n other than ten", func(c *Config) { c.Aggregate.TopN = 5 }, "aggregate.top_n must be 10"},
		{"zero chart size", func(c *Config) { c.Charts.HeightIn = 0 }, "charts.width_in"},
		{"sqlite without url", func(c *Config) { c.Store.Driver = "sqlite" }, "database_url"},
		{"postgres with url", func(c *Config) {
			c.Store.Driver = "postgres"
			c.Store.DatabaseURL = "postgres://localhost/emissions"
		}, ""},
		{"unknown driver", func(c *Config) {
			c.Store.Driver = "mysql"
			c.Store.DatabaseURL = "x"
		}, "store.driver"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validDefaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
