// Package metrics derives quality figures from cleaning results. Pure
// computation; nothing here mutates its inputs.
package metrics

import "github.com/legalworkbench/legal-text-extractor/internal/cleaner"

// ConfidenceBand buckets a 0-100 detection confidence for reporting.
type ConfidenceBand string

const (
	BandHigh   ConfidenceBand = "high"
	BandMedium ConfidenceBand = "medium"
	BandLow    ConfidenceBand = "low"
)

// Config contains the band boundaries. Tunable; the defaults follow the
// review workflow: high means trust, medium means spot-check, low means
// manual review.
type Config struct {
	HighMin   int `yaml:"high_min" mapstructure:"high_min"`
	MediumMin int `yaml:"medium_min" mapstructure:"medium_min"`
}

// DefaultConfig returns the default band boundaries.
func DefaultConfig() Config {
	return Config{HighMin: 80, MediumMin: 50}
}

// Metrics is the reporting view of one cleaning result.
type Metrics struct {
	ReductionPct    float64        `json:"reduction_pct"`
	ConfidenceBand  ConfidenceBand `json:"confidence_band"`
	PatternsApplied int            `json:"patterns_applied"`
}

// Reporter computes Metrics from cleaning results.
type Reporter struct {
	config Config
}

// NewReporter creates a reporter with the given band boundaries.
func NewReporter(cfg Config) *Reporter {
	if cfg.HighMin <= 0 {
		cfg.HighMin = DefaultConfig().HighMin
	}
	if cfg.MediumMin <= 0 {
		cfg.MediumMin = DefaultConfig().MediumMin
	}
	return &Reporter{config: cfg}
}

// Report computes the metrics for one result. The reduction percentage is
// recomputed from the actual byte lengths, never estimated.
func (r *Reporter) Report(result cleaner.Result) Metrics {
	reduction := 0.0
	if n := len(result.OriginalText); n > 0 {
		reduction = float64(n-len(result.CleanedText)) / float64(n) * 100
	}
	return Metrics{
		ReductionPct:    reduction,
		ConfidenceBand:  r.Band(result.Confidence),
		PatternsApplied: result.PatternsApplied,
	}
}

// Band maps a confidence score to its reporting band.
func (r *Reporter) Band(confidence int) ConfidenceBand {
	switch {
	case confidence >= r.config.HighMin:
		return BandHigh
	case confidence >= r.config.MediumMin:
		return BandMedium
	default:
		return BandLow
	}
}
