package patterns

import "regexp"

// CourtSystem identifies the Brazilian electronic filing platform that
// produced a document.
type CourtSystem string

const (
	SystemUnknown CourtSystem = "UNKNOWN"
	SystemPJE     CourtSystem = "PJE"
	SystemESAJ    CourtSystem = "ESAJ"
	SystemEPROC   CourtSystem = "EPROC"
	SystemPROJUDI CourtSystem = "PROJUDI"
	SystemSTF     CourtSystem = "STF"
	SystemSTJ     CourtSystem = "STJ"
	SystemGeneric CourtSystem = "GENERIC"
)

// KnownSystems lists the systems with their own pattern sets, in the fixed
// order the detector scores them. Order matters for determinism.
var KnownSystems = []CourtSystem{
	SystemPJE,
	SystemESAJ,
	SystemEPROC,
	SystemPROJUDI,
	SystemSTF,
	SystemSTJ,
}

// Valid reports whether s is a system the library knows about, including
// the GENERIC fallback. UNKNOWN is not a valid cleaning target; the cleaner
// maps it to GENERIC.
func (s CourtSystem) Valid() bool {
	if s == SystemGeneric {
		return true
	}
	for _, known := range KnownSystems {
		if s == known {
			return true
		}
	}
	return false
}

// Category classifies what kind of platform noise a pattern removes.
// Patterns are applied category by category in the order declared here.
type Category int

const (
	CategorySignature Category = iota
	CategoryWatermark
	CategoryCertification
	CategoryHeaderFooter
	CategoryWhitespace
)

// Categories in application order: specific, content-shaped noise first,
// layout noise last.
var Categories = []Category{
	CategorySignature,
	CategoryWatermark,
	CategoryCertification,
	CategoryHeaderFooter,
	CategoryWhitespace,
}

func (c Category) String() string {
	switch c {
	case CategorySignature:
		return "signature"
	case CategoryWatermark:
		return "watermark"
	case CategoryCertification:
		return "certification"
	case CategoryHeaderFooter:
		return "header_footer"
	case CategoryWhitespace:
		return "whitespace"
	default:
		return "unknown"
	}
}

// Rule is a single cleaning pattern before compilation. Systems lists the
// court systems the rule applies to; an empty list means universal.
type Rule struct {
	ID          string
	Description string
	Systems     []CourtSystem
	Expr        string
	Replacement string
	Category    Category
	Destructive bool
}

// Pattern is a compiled Rule, ready for matching. Immutable after library
// construction.
type Pattern struct {
	ID          string
	Description string
	Systems     []CourtSystem
	Regexp      *regexp.Regexp
	Replacement string
	Category    Category
	Destructive bool
}

// Universal reports whether the pattern applies regardless of the detected
// system.
func (p *Pattern) Universal() bool {
	return len(p.Systems) == 0
}

// SignatureRule is a detection signal before compilation: a marker that a
// particular court system leaves in its documents.
type SignatureRule struct {
	ID     string
	System CourtSystem
	Expr   string
}

// Signature is a compiled SignatureRule.
type Signature struct {
	ID     string
	System CourtSystem
	Regexp *regexp.Regexp
}
