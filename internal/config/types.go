package config

import (
	"github.com/legalworkbench/legal-text-extractor/internal/batch"
	"github.com/legalworkbench/legal-text-extractor/internal/cache"
	"github.com/legalworkbench/legal-text-extractor/internal/cleaner"
	"github.com/legalworkbench/legal-text-extractor/internal/detector"
	"github.com/legalworkbench/legal-text-extractor/internal/metrics"
	"github.com/legalworkbench/legal-text-extractor/internal/status"
	"github.com/legalworkbench/legal-text-extractor/internal/store"
)

// Config represents the main configuration structure
type Config struct {
	Detector detector.Config `yaml:"detector" mapstructure:"detector"`
	Cleaner  cleaner.Config  `yaml:"cleaner" mapstructure:"cleaner"`
	Metrics  metrics.Config  `yaml:"metrics" mapstructure:"metrics"`
	Batch    batch.Config    `yaml:"batch" mapstructure:"batch"`
	Cache    cache.Config    `yaml:"cache" mapstructure:"cache"`
	Store    store.Config    `yaml:"store" mapstructure:"store"`
	Status   status.Config   `yaml:"status" mapstructure:"status"`
	Sections SectionsConfig  `yaml:"sections" mapstructure:"sections"`
	Logging  LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// SectionsConfig selects the section analyzer implementation.
type SectionsConfig struct {
	// Analyzer is one of "none" or "rules". External analyzers plug in at
	// construction time, not through configuration.
	Analyzer string `yaml:"analyzer" mapstructure:"analyzer"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // json or console
	File   struct {
		Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
		Path     string `yaml:"path" mapstructure:"path"`
		MaxSize  int    `yaml:"max_size" mapstructure:"max_size"`
		MaxAge   int    `yaml:"max_age" mapstructure:"max_age"`
		Compress bool   `yaml:"compress" mapstructure:"compress"`
	} `yaml:"file" mapstructure:"file"`
}

// GetDefaults returns a configuration with sensible defaults
func GetDefaults() *Config {
	cfg := &Config{
		Detector: detector.DefaultConfig(),
		Cleaner:  cleaner.DefaultConfig(),
		Metrics:  metrics.DefaultConfig(),
		Batch:    batch.DefaultConfig(),
		Cache:    cache.DefaultConfig(),
		Store:    store.DefaultConfig(),
		Status:   status.DefaultConfig(),
		Sections: SectionsConfig{Analyzer: "rules"},
	}
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"
	cfg.Logging.File.Path = "logs/legalclean.log"
	cfg.Logging.File.MaxSize = 100 // MB
	cfg.Logging.File.MaxAge = 30   // days
	cfg.Logging.File.Compress = true
	return cfg
}
