package config

import (
	"strings"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	cfg := GetDefaults()

	if cfg.Detector.MinTextLength != 50 || cfg.Detector.MinSignalMatches != 2 {
		t.Errorf("Detector defaults = %+v", cfg.Detector)
	}
	if cfg.Metrics.HighMin != 80 || cfg.Metrics.MediumMin != 50 {
		t.Errorf("Metrics defaults = %+v", cfg.Metrics)
	}
	if cfg.Sections.Analyzer != "rules" {
		t.Errorf("Sections.Analyzer = %s, want rules", cfg.Sections.Analyzer)
	}
	if cfg.Cache.Enabled || cfg.Store.Enabled || cfg.Status.Enabled {
		t.Error("Optional subsystems must default to disabled")
	}
	if err := validateConfig(cfg); err != nil {
		t.Errorf("Defaults must validate: %v", err)
	}
}

func TestValidateConfig(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "NegativeMinTextLength",
			mutate:  func(c *Config) { c.Detector.MinTextLength = -1 },
			wantErr: "min_text_length",
		},
		{
			name:    "ZeroSignalMatches",
			mutate:  func(c *Config) { c.Detector.MinSignalMatches = 0 },
			wantErr: "min_signal_matches",
		},
		{
			name:    "ZeroRemovedSpan",
			mutate:  func(c *Config) { c.Cleaner.MaxRemovedSpan = 0 },
			wantErr: "max_removed_span",
		},
		{
			name:    "InvertedBands",
			mutate:  func(c *Config) { c.Metrics.HighMin = 40 },
			wantErr: "high_min",
		},
		{
			name:    "UnknownSystemOverride",
			mutate:  func(c *Config) { c.Batch.SystemOverride = "TJXX" },
			wantErr: "system_override",
		},
		{
			name:    "UnknownAnalyzer",
			mutate:  func(c *Config) { c.Sections.Analyzer = "ml" },
			wantErr: "sections.analyzer",
		},
		{
			name: "BadStatusPort",
			mutate: func(c *Config) {
				c.Status.Enabled = true
				c.Status.Port = 0
			},
			wantErr: "status port",
		},
		{
			name:    "BadLogLevel",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "log level",
		},
		{
			name:    "BadLogFormat",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "log format",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := GetDefaults()
			tc.mutate(cfg)
			err := validateConfig(cfg)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Error %q does not mention %q", err, tc.wantErr)
			}
		})
	}

	t.Run("ValidOverridePasses", func(t *testing.T) {
		cfg := GetDefaults()
		cfg.Batch.SystemOverride = "ESAJ"
		if err := validateConfig(cfg); err != nil {
			t.Errorf("ESAJ override must validate: %v", err)
		}
	})

	t.Run("DisabledStatusIgnoresPort", func(t *testing.T) {
		cfg := GetDefaults()
		cfg.Status.Port = 0
		if err := validateConfig(cfg); err != nil {
			t.Errorf("Disabled status server must not validate its port: %v", err)
		}
	})
}
