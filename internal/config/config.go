// Package config loads the emissions-cli configuration and builds the global logger.
package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// reportTopN is the country count fixed by the report header and chart name.
const reportTopN = 10

// Config holds the full application configuration.
type Config struct {
	Input     InputConfig     `yaml:"input" mapstructure:"input"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
	Charts    ChartsConfig    `yaml:"charts" mapstructure:"charts"`
	Aggregate AggregateConfig `yaml:"aggregate" mapstructure:"aggregate"`
	Classify  ClassifyConfig  `yaml:"classify" mapstructure:"classify"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// InputConfig locates the raw dataset.
type InputConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// OutputConfig locates the emitted artifacts. An empty Workbook skips the XLSX output.
type OutputConfig struct {
	CleanedCSV string `yaml:"cleaned_csv" mapstructure:"cleaned_csv"`
	Statistics string `yaml:"statistics" mapstructure:"statistics"`
	ChartDir   string `yaml:"chart_dir" mapstructure:"chart_dir"`
	Workbook   string `yaml:"workbook" mapstructure:"workbook"`
	CreateDirs bool   `yaml:"create_dirs" mapstructure:"create_dirs"`
}

// ChartsConfig sets the chart image size in inches.
type ChartsConfig struct {
	WidthIn  float64 `yaml:"width_in" mapstructure:"width_in"`
	HeightIn float64 `yaml:"height_in" mapstructure:"height_in"`
}

// AggregateConfig configures the aggregate views.
type AggregateConfig struct {
	TopN int `yaml:"top_n" mapstructure:"top_n"`
}

// ClassifyConfig configures the country classifier.
type ClassifyConfig struct {
	OverridesFile string `yaml:"overrides_file" mapstructure:"overrides_file"`
}

// StoreConfig configures the optional snapshot database. An empty Driver disables it.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("EMISSIONS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("input.path", "data/owid-co2-data.csv")
	v.SetDefault("output.cleaned_csv", "data/cleaned_co2_data.csv")
	v.SetDefault("output.statistics", "Statistics.txt")
	v.SetDefault("output.chart_dir", "Visualisations")
	v.SetDefault("output.workbook", "")
	v.SetDefault("output.create_dirs", true)
	v.SetDefault("charts.width_in", 12)
	v.SetDefault("charts.height_in", 7)
	v.SetDefault("aggregate.top_n", 10)
	v.SetDefault("classify.overrides_file", "")
	v.SetDefault("store.driver", "")
	v.SetDefault("store.database_url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a pipeline run depends on.
func (c *Config) Validate() error {
	var problems []string
	if c.Input.Path == "" {
		problems = append(problems, "input.path is required")
	}
	if c.Output.CleanedCSV == "" {
		problems = append(problems, "output.cleaned_csv is required")
	}
	if c.Output.Statistics == "" {
		problems = append(problems, "output.statistics is required")
	}
	if c.Output.ChartDir == "" {
		problems = append(problems, "output.chart_dir is required")
	}
	if c.Aggregate.TopN != reportTopN {
		problems = append(problems, fmt.Sprintf("aggregate.top_n must be %d: the report header and chart name are fixed", reportTopN))
	}
	if c.Charts.WidthIn <= 0 || c.Charts.HeightIn <= 0 {
		problems = append(problems, "charts.width_in and charts.height_in must be positive")
	}
	switch c.Store.Driver {
	case "":
	case "sqlite", "postgres":
		if c.Store.DatabaseURL == "" {
			problems = append(problems, "store.database_url is required when store.driver is set")
		}
	default:
		problems = append(problems, "store.driver must be sqlite, postgres, or empty")
	}

	if len(problems) > 0 {
		return eris.Errorf("config: invalid: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
