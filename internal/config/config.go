package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/legalworkbench/legal-text-extractor/internal/patterns"
)

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	config := GetDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/etc/legalclean/")
	viper.AddConfigPath("$HOME/.legalclean/")

	// Environment variable overrides
	viper.SetEnvPrefix("LEGALCLEAN")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configPath != "" {
		viper.SetConfigFile(configPath)
	}

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found is not an error - we'll use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// validateConfig validates the loaded configuration
func validateConfig(config *Config) error {
	if config.Detector.MinTextLength < 0 {
		return fmt.Errorf("invalid detector.min_text_length: %d", config.Detector.MinTextLength)
	}
	if config.Detector.MinSignalMatches < 1 {
		return fmt.Errorf("invalid detector.min_signal_matches: %d (must be at least 1)", config.Detector.MinSignalMatches)
	}

	if config.Cleaner.MaxRemovedSpan < 1 {
		return fmt.Errorf("invalid cleaner.max_removed_span: %d", config.Cleaner.MaxRemovedSpan)
	}

	if config.Metrics.HighMin <= config.Metrics.MediumMin {
		return fmt.Errorf("metrics.high_min (%d) must exceed metrics.medium_min (%d)",
			config.Metrics.HighMin, config.Metrics.MediumMin)
	}

	if sys := config.Batch.SystemOverride; sys != "" && !patterns.CourtSystem(sys).Valid() {
		return fmt.Errorf("invalid batch.system_override: %q", sys)
	}

	if config.Sections.Analyzer != "none" && config.Sections.Analyzer != "rules" {
		return fmt.Errorf("invalid sections.analyzer: %s (must be none or rules)", config.Sections.Analyzer)
	}

	if config.Status.Enabled && (config.Status.Port <= 0 || config.Status.Port > 65535) {
		return fmt.Errorf("invalid status port: %d", config.Status.Port)
	}

	if config.Logging.Level != "debug" && config.Logging.Level != "info" && config.Logging.Level != "warn" && config.Logging.Level != "error" {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.Logging.Level)
	}
	if config.Logging.Format != "json" && config.Logging.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", config.Logging.Format)
	}

	return nil
}

// Watch starts watching the configuration file for changes. The pattern
// library and thresholds are frozen at startup, so the callback only sees
// configurations that would take effect after a restart.
func Watch(config *Config, callback func(*Config)) error {
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		newConfig := GetDefaults()
		if err := viper.Unmarshal(newConfig); err != nil {
			// Log error but don't crash
			return
		}

		if err := validateConfig(newConfig); err != nil {
			return
		}

		callback(newConfig)
	})

	return nil
}
