// Package sections defines the section-analysis boundary of the cleaning
// pipeline and ships a rule-based splitter that recognizes the standard
// headings of Brazilian legal filings.
package sections

import (
	"context"
	"regexp"
	"strings"
)

var headingRe = regexp.MustCompile(`(?im)^\s*(peti[çc][ãa]o\s+inicial|contesta[çc][ãa]o|senten[çc]a|ac[óo]rd[ãa]o|decis[ãa]o(?:\s+monocr[áa]tica)?|despacho|certid[ãa]o|relat[óo]rio|voto|ementa)\s*$`)

var headingTypes = map[string]string{
	"peticao inicial": TypePetition,
	"contestacao":     TypeDefense,
	"sentenca":        TypeRuling,
	"acordao":         TypeRuling,
	"decisao":         TypeDecision,
	"despacho":        TypeDispatch,
	"certidao":        TypeCert,
	"relatorio":       TypeReport,
	"voto":            TypeVote,
	"ementa":          TypeSummary,
}

var accentFold = strings.NewReplacer(
	"ç", "c", "ã", "a", "á", "a", "â", "a",
	"é", "e", "ê", "e", "í", "i",
	"ó", "o", "ô", "o", "õ", "o", "ú", "u",
)

// RuleBased splits text on recognized legal headings standing alone on a
// line. Text before the first heading becomes a preamble section.
type RuleBased struct{}

// Analyze implements Analyzer. It never fails; text without any recognized
// heading comes back as a single preamble section.
func (RuleBased) Analyze(ctx context.Context, text string) ([]Section, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	locs := headingRe.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return []Section{{Type: TypePreamble, Text: strings.TrimSpace(text)}}, nil
	}

	var out []Section
	if lead := strings.TrimSpace(text[:locs[0][0]]); lead != "" {
		out = append(out, Section{Type: TypePreamble, Text: lead})
	}

	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		heading := text[loc[2]:loc[3]]
		out = append(out, Section{
			Type: headingType(heading),
			Text: strings.TrimSpace(text[loc[0]:end]),
		})
	}
	return out, nil
}

func headingType(heading string) string {
	// The heading regex tolerates runs of whitespace between words; the
	// lookup key wants exactly one space.
	key := accentFold.Replace(strings.ToLower(strings.Join(strings.Fields(heading), " ")))
	// "decisão monocrática" folds to its base heading.
	if strings.HasPrefix(key, "decisao") {
		key = "decisao"
	}
	if t, ok := headingTypes[key]; ok {
		return t
	}
	return TypePreamble
}
