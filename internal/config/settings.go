package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. REGIMECALC_LOGGING_LEVEL
const EnvPrefix = "REGIMECALC"

// DefaultSettingsName is the settings file looked up when none is given
const DefaultSettingsName = "regimecalc"

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputFile string `mapstructure:"output_file"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format"` // console, json, csv
}

// BatchConfig holds batch comparison options
type BatchConfig struct {
	Workers int `mapstructure:"workers"` // 0 means one per CPU
}

// Settings is the tool configuration
type Settings struct {
	Logging    LoggingConfig `mapstructure:"logging"`
	TablesFile string        `mapstructure:"tables_file"` // optional onboarding document
	Output     OutputConfig  `mapstructure:"output"`
	Batch      BatchConfig   `mapstructure:"batch"`
}

// NewViper returns a viper instance with defaults and environment binding applied
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output_file", "")
	v.SetDefault("tables_file", "")
	v.SetDefault("output.format", "console")
	v.SetDefault("batch.workers", 0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadSettings reads settings from path, or from regimecalc.yaml in the working
// directory or $HOME/.config/regimecalc when path is empty. A missing default
// file is not an error.
func LoadSettings(v *viper.Viper, path string) (*Settings, error) {
	if v == nil {
		v = NewViper()
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(DefaultSettingsName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/regimecalc")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate checks enumerated settings
func (s *Settings) Validate() error {
	if _, err := parseLevel(s.Logging.Level); err != nil {
		return err
	}
	switch s.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s", s.Logging.Format)
	}
	if s.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must not be negative, got %d", s.Batch.Workers)
	}
	return nil
}
