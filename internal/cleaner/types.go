package cleaner

import (
	"github.com/legalworkbench/legal-text-extractor/internal/patterns"
	"github.com/legalworkbench/legal-text-extractor/internal/sections"
)

// Config contains cleaning thresholds.
type Config struct {
	// MaxRemovedSpan is the size, in bytes, above which a destructive
	// pattern match is flagged for human review. The removal still
	// happens; the flag only lands in Result.Warnings.
	MaxRemovedSpan int `yaml:"max_removed_span" mapstructure:"max_removed_span"`
}

// DefaultConfig returns the default cleaning thresholds.
func DefaultConfig() Config {
	return Config{MaxRemovedSpan: 280}
}

// Options controls a single Clean invocation. The zero value means: detect
// the system automatically, no blacklist, no metadata.
type Options struct {
	// SystemOverride bypasses detection when the caller already knows the
	// source system (for example a batch pre-sorted by tribunal).
	SystemOverride patterns.CourtSystem
	// Blacklist lists caller-supplied terms to strip after the standard
	// pattern sets. Terms prefixed "re:" are treated as regular
	// expressions, everything else as literals.
	Blacklist []string
	// Meta is opaque caller bookkeeping (source path, page count). The
	// pipeline passes it through unchanged.
	Meta map[string]string
}

// Result is the outcome of cleaning one document. Immutable once returned;
// owned by the caller.
type Result struct {
	OriginalText    string               `json:"-"`
	CleanedText     string               `json:"cleaned_text"`
	System          patterns.CourtSystem `json:"system"`
	Confidence      int                  `json:"confidence"`
	PatternsApplied int                  `json:"patterns_applied"`
	ReductionPct    float64              `json:"reduction_pct"`
	Warnings        []string             `json:"warnings,omitempty"`
	Sections        []sections.Section   `json:"sections,omitempty"`
	Meta            map[string]string    `json:"meta,omitempty"`
}
