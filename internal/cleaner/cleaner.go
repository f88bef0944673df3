// Package cleaner orchestrates the text-cleaning pipeline: system detection,
// system-specific and universal pattern removal, caller blacklists and the
// final normalization pass.
package cleaner

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/legalworkbench/legal-text-extractor/internal/detector"
	"github.com/legalworkbench/legal-text-extractor/internal/logger"
	"github.com/legalworkbench/legal-text-extractor/internal/normalizer"
	"github.com/legalworkbench/legal-text-extractor/internal/patterns"
	"github.com/legalworkbench/legal-text-extractor/internal/sections"
	"go.uber.org/zap"
)

const blacklistPatternPrefix = "re:"

// Cleaner applies the pattern library to documents. Stateless per
// invocation and safe for concurrent use; the shared library is read-only.
type Cleaner struct {
	library  *patterns.Library
	detector *detector.Detector
	analyzer sections.Analyzer
	config   Config
	logger   *logger.Logger
}

// New creates a cleaner over the given library and detector. analyzer may
// be nil to skip section analysis.
func New(lib *patterns.Library, det *detector.Detector, analyzer sections.Analyzer, cfg Config, log *logger.Logger) *Cleaner {
	if cfg.MaxRemovedSpan <= 0 {
		cfg.MaxRemovedSpan = DefaultConfig().MaxRemovedSpan
	}
	return &Cleaner{
		library:  lib,
		detector: det,
		analyzer: analyzer,
		config:   cfg,
		logger:   log,
	}
}

// Clean runs the full pipeline over one document: detection (unless
// overridden), system patterns, universal patterns, blacklist, normalizer,
// optional section analysis. Re-running Clean on its own output returns
// the output unchanged.
func (c *Cleaner) Clean(ctx context.Context, text string, opts Options) (Result, error) {
	result := Result{
		OriginalText: text,
		Meta:         opts.Meta,
	}

	if !utf8.ValidString(text) {
		result.Warnings = append(result.Warnings, "input contained invalid UTF-8; offending bytes dropped")
	}
	sanitized := normalizer.FixEncoding(text)

	system, confidence, err := c.resolveSystem(sanitized, opts)
	if err != nil {
		return result, err
	}
	result.System = system
	result.Confidence = confidence

	// Citations are masked for the whole pattern phase so no removal can
	// cross or consume them. The blacklist runs after restore: explicitly
	// blacklisted citations are the one sanctioned way to drop them.
	masked, spans := normalizer.ProtectCitations(sanitized)

	target := system
	if target == patterns.SystemUnknown {
		target = patterns.SystemGeneric
	}
	masked = c.applyPatterns(masked, c.library.SystemPatterns(target), &result)
	masked = c.applyPatterns(masked, c.library.UniversalPatterns(), &result)

	restored := normalizer.RestoreCitations(masked, spans)
	restored = c.applyBlacklist(restored, opts.Blacklist, &result)

	result.CleanedText = normalizer.Normalize(restored)
	result.ReductionPct = reductionPct(len(text), len(result.CleanedText))

	if c.analyzer != nil {
		secs, err := c.analyzer.Analyze(ctx, result.CleanedText)
		if err != nil {
			// Section analysis is an optional capability; its failure
			// never blocks the document.
			result.Warnings = append(result.Warnings, fmt.Sprintf("section analysis failed: %v", err))
		} else {
			result.Sections = secs
		}
	}

	if c.logger != nil {
		c.logger.Debug("document cleaned",
			zap.String("system", string(result.System)),
			zap.Int("confidence", result.Confidence),
			zap.Int("patterns_applied", result.PatternsApplied),
			zap.Float64("reduction_pct", result.ReductionPct),
			zap.Int("warnings", len(result.Warnings)),
		)
	}

	return result, nil
}

// resolveSystem picks the cleaning target: the caller's override when
// present, the detector's verdict otherwise.
func (c *Cleaner) resolveSystem(text string, opts Options) (patterns.CourtSystem, int, error) {
	if opts.SystemOverride != "" {
		if !opts.SystemOverride.Valid() {
			return patterns.SystemUnknown, 0, fmt.Errorf("unknown court system override %q", opts.SystemOverride)
		}
		return opts.SystemOverride, 100, nil
	}
	det := c.detector.Detect(text)
	return det.System, det.Confidence, nil
}

// applyPatterns runs an ordered pattern group over text, counting patterns
// that matched and flagging oversized destructive removals.
func (c *Cleaner) applyPatterns(text string, group []*patterns.Pattern, result *Result) string {
	for _, p := range group {
		locs := p.Regexp.FindAllStringIndex(text, -1)
		if len(locs) == 0 {
			continue
		}
		result.PatternsApplied++

		if p.Destructive {
			for _, loc := range locs {
				if removed := loc[1] - loc[0]; removed > c.config.MaxRemovedSpan {
					result.Warnings = append(result.Warnings, fmt.Sprintf(
						"pattern %s removed %d bytes (guard threshold %d); flagged for review",
						p.ID, removed, c.config.MaxRemovedSpan))
				}
			}
		}

		text = p.Regexp.ReplaceAllString(text, p.Replacement)
	}
	return text
}

// applyBlacklist strips caller-supplied terms. Literal terms are removed
// verbatim; "re:"-prefixed terms are compiled per invocation and a term
// that fails to compile becomes a warning, never a per-document failure.
func (c *Cleaner) applyBlacklist(text string, blacklist []string, result *Result) string {
	for _, term := range blacklist {
		if term == "" {
			continue
		}
		if expr, ok := strings.CutPrefix(term, blacklistPatternPrefix); ok {
			re, err := regexp.Compile(expr)
			if err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("blacklist pattern %q: %v", expr, err))
				continue
			}
			text = re.ReplaceAllString(text, "")
			continue
		}
		text = strings.ReplaceAll(text, term, "")
	}
	return text
}

func reductionPct(original, cleaned int) float64 {
	if original == 0 {
		return 0
	}
	return float64(original-cleaned) / float64(original) * 100
}
