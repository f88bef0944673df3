package sections

import "context"

// Section is one distinct legal document found inside a cleaned text block.
type Section struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Section types produced by the built-in splitter. External analyzers may
// emit types outside this list.
const (
	TypePreamble = "preamble"
	TypePetition = "petition"
	TypeDefense  = "defense"
	TypeRuling   = "ruling"
	TypeDecision = "decision"
	TypeDispatch = "dispatch"
	TypeCert     = "certificate"
	TypeReport   = "report"
	TypeVote     = "vote"
	TypeSummary  = "summary"
)

// Analyzer splits cleaned text into distinct legal document sections. The
// pipeline only defines this contract; implementations range from the
// rule-based splitter in this package to external ML services.
type Analyzer interface {
	Analyze(ctx context.Context, text string) ([]Section, error)
}

// Noop is an Analyzer that performs no splitting.
type Noop struct{}

func (Noop) Analyze(ctx context.Context, text string) ([]Section, error) {
	return nil, nil
}
