// Package detector identifies which electronic filing platform produced a
// document by scoring its text against per-system signature patterns.
package detector

import (
	"github.com/legalworkbench/legal-text-extractor/internal/logger"
	"github.com/legalworkbench/legal-text-extractor/internal/patterns"
	"go.uber.org/zap"
)

// Config contains detection thresholds. The exact values are tunable; the
// defaults were calibrated against labeled sample dumps.
type Config struct {
	// MinTextLength is the minimum input size, in bytes, for detection to
	// be attempted at all. Confidence on tiny samples is unreliable.
	MinTextLength int `yaml:"min_text_length" mapstructure:"min_text_length"`
	// MinSignalMatches is the minimum number of matched signatures before
	// a system is considered detected rather than UNKNOWN.
	MinSignalMatches int `yaml:"min_signal_matches" mapstructure:"min_signal_matches"`
}

// DefaultConfig returns the calibrated detection thresholds.
func DefaultConfig() Config {
	return Config{
		MinTextLength:    50,
		MinSignalMatches: 2,
	}
}

// Result is the outcome of a detection pass. Confidence is always within
// [0, 100].
type Result struct {
	System         patterns.CourtSystem `json:"system"`
	Confidence     int                  `json:"confidence"`
	SignalsMatched []string             `json:"signals_matched,omitempty"`
}

// Detector scores text against the library's signature sets. Stateless and
// safe for concurrent use.
type Detector struct {
	library *patterns.Library
	config  Config
	logger  *logger.Logger
}

// New creates a detector over the given library.
func New(lib *patterns.Library, cfg Config, log *logger.Logger) *Detector {
	if cfg.MinTextLength <= 0 {
		cfg.MinTextLength = DefaultConfig().MinTextLength
	}
	if cfg.MinSignalMatches <= 0 {
		cfg.MinSignalMatches = DefaultConfig().MinSignalMatches
	}
	return &Detector{library: lib, config: cfg, logger: log}
}

// Detect scores text against every known system and returns the best match.
// It never fails: empty, short or unmatchable input yields UNKNOWN with
// confidence 0. Identical input always yields an identical result.
func (d *Detector) Detect(text string) Result {
	unknown := Result{System: patterns.SystemUnknown, Confidence: 0}

	if len(text) < d.config.MinTextLength {
		return unknown
	}

	best := unknown
	bestTotal := 0
	tied := false

	for _, sys := range patterns.KnownSystems {
		sigs := d.library.Signatures(sys)
		if len(sigs) == 0 {
			continue
		}

		var matched []string
		for _, sig := range sigs {
			if sig.Regexp.MatchString(text) {
				matched = append(matched, sig.ID)
			}
		}
		if len(matched) < d.config.MinSignalMatches {
			continue
		}

		confidence := (len(matched)*100 + len(sigs)/2) / len(sigs)
		if confidence > 100 {
			confidence = 100
		}

		// Equal scores: a larger signature set means more specific
		// evidence. A genuine tie is not worth guessing over.
		switch {
		case confidence > best.Confidence,
			confidence == best.Confidence && best.System != patterns.SystemUnknown && len(sigs) > bestTotal:
			best = Result{System: sys, Confidence: confidence, SignalsMatched: matched}
			bestTotal = len(sigs)
			tied = false
		case confidence == best.Confidence && best.System != patterns.SystemUnknown && len(sigs) == bestTotal:
			tied = true
		}
	}

	if tied {
		return unknown
	}

	if d.logger != nil && best.System != patterns.SystemUnknown {
		d.logger.Debug("court system detected",
			zap.String("system", string(best.System)),
			zap.Int("confidence", best.Confidence),
			zap.Int("signals", len(best.SignalsMatched)),
		)
	}

	return best
}
