package patterns

import (
	"fmt"
	"regexp"
)

// ConfigurationError reports a rule that failed to compile or validate at
// library construction. The process must not serve documents after one of
// these; construction is the only place they can occur.
type ConfigurationError struct {
	RuleID string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("pattern configuration error in %q: %v", e.RuleID, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Library is the immutable, compiled pattern set shared by the detector and
// the cleaner. Construct once at startup and treat as read-only; concurrent
// readers need no synchronization.
type Library struct {
	bySystem   map[CourtSystem][]*Pattern
	universal  []*Pattern
	signatures map[CourtSystem][]*Signature
	total      int
}

// NewLibrary compiles the given rules and detection signatures into a
// Library. Any rule that fails to compile or validate aborts construction
// with a ConfigurationError.
func NewLibrary(rules []Rule, signatures []SignatureRule) (*Library, error) {
	lib := &Library{
		bySystem:   make(map[CourtSystem][]*Pattern),
		universal:  nil,
		signatures: make(map[CourtSystem][]*Signature),
	}

	seen := make(map[string]bool)
	byCategory := make(map[Category][]*Pattern)

	for _, rule := range rules {
		if rule.ID == "" {
			return nil, &ConfigurationError{RuleID: "(unnamed)", Err: fmt.Errorf("rule has no ID")}
		}
		if seen[rule.ID] {
			return nil, &ConfigurationError{RuleID: rule.ID, Err: fmt.Errorf("duplicate rule ID")}
		}
		seen[rule.ID] = true

		for _, sys := range rule.Systems {
			if !sys.Valid() {
				return nil, &ConfigurationError{RuleID: rule.ID, Err: fmt.Errorf("unknown court system %q", sys)}
			}
		}

		re, err := regexp.Compile(rule.Expr)
		if err != nil {
			return nil, &ConfigurationError{RuleID: rule.ID, Err: err}
		}

		p := &Pattern{
			ID:          rule.ID,
			Description: rule.Description,
			Systems:     rule.Systems,
			Regexp:      re,
			Replacement: rule.Replacement,
			Category:    rule.Category,
			Destructive: rule.Destructive,
		}
		byCategory[rule.Category] = append(byCategory[rule.Category], p)
		lib.total++
	}

	// Freeze per-system and universal slices in category order, preserving
	// declaration order within each category (specific rules first).
	for _, cat := range Categories {
		for _, p := range byCategory[cat] {
			if p.Universal() {
				lib.universal = append(lib.universal, p)
				continue
			}
			for _, sys := range p.Systems {
				lib.bySystem[sys] = append(lib.bySystem[sys], p)
			}
		}
	}

	for _, sig := range signatures {
		if sig.ID == "" {
			return nil, &ConfigurationError{RuleID: "(unnamed)", Err: fmt.Errorf("signature has no ID")}
		}
		if seen[sig.ID] {
			return nil, &ConfigurationError{RuleID: sig.ID, Err: fmt.Errorf("duplicate signature ID")}
		}
		seen[sig.ID] = true

		if !sig.System.Valid() || sig.System == SystemGeneric {
			return nil, &ConfigurationError{RuleID: sig.ID, Err: fmt.Errorf("signature for undetectable system %q", sig.System)}
		}

		re, err := regexp.Compile(sig.Expr)
		if err != nil {
			return nil, &ConfigurationError{RuleID: sig.ID, Err: err}
		}
		lib.signatures[sig.System] = append(lib.signatures[sig.System], &Signature{
			ID:     sig.ID,
			System: sig.System,
			Regexp: re,
		})
	}

	return lib, nil
}

// Default builds the library from the built-in rule and signature sets.
// The built-ins are maintained alongside the code, so a compile failure
// here is a programming error; callers still get it as a ConfigurationError
// rather than a panic.
func Default() (*Library, error) {
	return NewLibrary(DefaultRules(), DefaultSignatures())
}

// SystemPatterns returns the ordered system-specific patterns for sys.
// UNKNOWN and systems without a dedicated set fall back to GENERIC, which
// has no dedicated patterns either; the universal group carries the
// generic rules.
func (l *Library) SystemPatterns(sys CourtSystem) []*Pattern {
	return l.bySystem[sys]
}

// UniversalPatterns returns the ordered patterns applied to every document.
func (l *Library) UniversalPatterns() []*Pattern {
	return l.universal
}

// Signatures returns the detection signals for sys.
func (l *Library) Signatures(sys CourtSystem) []*Signature {
	return l.signatures[sys]
}

// Len returns the number of compiled cleaning patterns.
func (l *Library) Len() int { return l.total }
