// Package config loads application configuration from file and
// environment and owns global logger initialization.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Paths    PathsConfig    `yaml:"paths" mapstructure:"paths"`
	Menu     MenuConfig     `yaml:"menu" mapstructure:"menu"`
	Dedupe   DedupeConfig   `yaml:"dedupe" mapstructure:"dedupe"`
	Site     SiteConfig     `yaml:"site" mapstructure:"site"`
	Google   GoogleConfig   `yaml:"google" mapstructure:"google"`
	Overpass OverpassConfig `yaml:"overpass" mapstructure:"overpass"`
	Manifest ManifestConfig `yaml:"manifest" mapstructure:"manifest"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// PathsConfig fixes the well-known pipeline file locations. The stage
// files under TmpDir are part of the process-wide pipeline contract.
type PathsConfig struct {
	TmpDir  string `yaml:"tmp_dir" mapstructure:"tmp_dir"`
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`
}

// MenuConfig configures the menu-placeholder maintenance tool.
type MenuConfig struct {
	Currency string `yaml:"currency" mapstructure:"currency"`
}

// DedupeConfig configures the dedupe/merge stage.
type DedupeConfig struct {
	// ProximityDegrees is the coordinate distance, in degrees, under
	// which two same-slug records are considered the same place.
	ProximityDegrees float64 `yaml:"proximity_degrees" mapstructure:"proximity_degrees"`
}

// SiteConfig holds the public site parameters used by the build stages.
type SiteConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// GoogleConfig holds Google Places API settings.
type GoogleConfig struct {
	MapsAPIKey string `yaml:"maps_api_key" mapstructure:"maps_api_key"`
	BaseURL    string `yaml:"base_url" mapstructure:"base_url"`
}

// OverpassConfig holds OpenStreetMap Overpass API settings.
type OverpassConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// ManifestConfig configures the stage-run manifest store.
type ManifestConfig struct {
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
	v.SetEnvPrefix("PLACES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("paths.tmp_dir", "scripts/tmp")
	v.SetDefault("paths.data_dir", "data")
	v.SetDefault("menu.currency", "OMR")
	v.SetDefault("dedupe.proximity_degrees", 0.001)
	v.SetDefault("site.base_url", "https://muscat.guide")
	v.SetDefault("google.base_url", "https://places.googleapis.com/v1")
	v.SetDefault("overpass.base_url", "https://overpass-api.de/api/interpreter")
	v.SetDefault("manifest.driver", "sqlite")
	v.SetDefault("manifest.database_url", "scripts/tmp/manifest.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// GOOGLE_MAPS_API_KEY is the name the discovery scripts have always
	// documented; honor it alongside the PLACES_ prefixed form.
	_ = v.BindEnv("google.maps_api_key", "PLACES_GOOGLE_MAPS_API_KEY", "GOOGLE_MAPS_API_KEY")

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
