// Package config provides viper-based configuration for bookmarks-flatten
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dastanaron/bookmarks-flatten/internal/export"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Flatten FlattenConfig `mapstructure:"flatten"`
	Export  ExportConfig  `mapstructure:"export"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// FlattenConfig tunes the flat tag-organized export
type FlattenConfig struct {
	// TitleThreshold is the title length in runes above which the title is
	// repeated at the start of the description.
	TitleThreshold int `mapstructure:"title_threshold"`
}

// ExportConfig controls how exporters run
type ExportConfig struct {
	Parallel bool `mapstructure:"parallel"`
}

// OutputConfig contains console output settings
type OutputConfig struct {
	Colors bool `mapstructure:"colors"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	return &Config{
		Flatten: FlattenConfig{TitleThreshold: export.DefaultTitleThreshold},
		Output:  OutputConfig{Colors: true},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// WithTitleThreshold sets the flat export title threshold
func (c *Config) WithTitleThreshold(n int) *Config {
	c.Flatten.TitleThreshold = n
	return c
}

// WithParallel sets whether exporters run concurrently
func (c *Config) WithParallel(parallel bool) *Config {
	c.Export.Parallel = parallel
	return c
}

// Load reads configuration from file and environment variables.
// A missing default config file is not an error; a missing explicit one is.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".bookmarks-flatten")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/bookmarks-flatten")
	}

	v.SetEnvPrefix("BOOKMARKS_FLATTEN")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

var envKeyReplacer = strings.NewReplacer(".", "_")

func setDefaults(v *viper.Viper) {
	d := NewConfig()
	v.SetDefault("flatten.title_threshold", d.Flatten.TitleThreshold)
	v.SetDefault("export.parallel", d.Export.Parallel)
	v.SetDefault("output.colors", d.Output.Colors)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.Flatten.TitleThreshold < 0 {
		return fmt.Errorf("invalid title threshold: %d (must be >= 0)", c.Flatten.TitleThreshold)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s (must be text or json)", c.Logging.Format)
	}

	return nil
}
