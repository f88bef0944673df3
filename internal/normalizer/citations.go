package normalizer

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Citation token shapes that must survive cleaning byte-for-byte: article
// and paragraph markers, statute numbers, precedent identifiers. Matched
// spans are masked with NUL-delimited placeholders while the surrounding
// text is rewritten, then restored verbatim.
var citationExprs = []*regexp.Regexp{
	// "Art. 5º", "Artigo 5", "art. 93-A"
	regexp.MustCompile(`(?i)\bart(?:igo)?\.?\s?\d+[ºo°]?(?:-[A-Z])?`),
	// "§ 2º", "§§ 1º"
	regexp.MustCompile(`§§?\s?\d+[ºo°]?`),
	// "Lei nº 11.419/2006", "Lei Complementar nº 123"
	regexp.MustCompile(`(?i)\blei\s+(?:complementar\s+)?n[ºo°]?\.?\s?\d{1,3}(?:\.\d{3})*(?:/\d{2,4})?`),
	// "Súmula 331", "Súmula Vinculante nº 13"
	regexp.MustCompile(`(?i)\bs[úu]mula(?:\s+vinculante)?\s+n?[ºo°]?\.?\s?\d+`),
	// "REsp 1.234.567/SP", "ADI 4.277", "HC 124.306/RJ"
	regexp.MustCompile(`\b(?:REsp|AREsp|EREsp|AgRg|AgInt|RE|ARE|AI|ADI|ADC|ADPF|HC|RHC|MS|RMS|CC|EDcl)\s?(?:n[ºo°]?\.?\s?)?\d{1,3}(?:\.\d{3})*(?:/[A-Z]{2})?`),
}

const placeholderMark = "\x00"

// ProtectCitations masks every recognized citation token in text with a
// placeholder and returns the masked text plus the original spans in
// placeholder order. Text must already be free of NUL bytes (FixEncoding
// guarantees that).
func ProtectCitations(text string) (string, []string) {
	type span struct{ start, end int }
	var found []span
	for _, re := range citationExprs {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			found = append(found, span{loc[0], loc[1]})
		}
	}
	if len(found) == 0 {
		return text, nil
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].start != found[j].start {
			return found[i].start < found[j].start
		}
		return found[i].end > found[j].end
	})

	// Merge overlapping spans so each byte is masked at most once.
	merged := found[:1]
	for _, s := range found[1:] {
		last := &merged[len(merged)-1]
		if s.start <= last.end {
			if s.end > last.end {
				last.end = s.end
			}
			continue
		}
		merged = append(merged, s)
	}

	var b strings.Builder
	spans := make([]string, 0, len(merged))
	prev := 0
	for i, s := range merged {
		b.WriteString(text[prev:s.start])
		b.WriteString(placeholderMark)
		b.WriteString(strconv.Itoa(i))
		b.WriteString(placeholderMark)
		spans = append(spans, text[s.start:s.end])
		prev = s.end
	}
	b.WriteString(text[prev:])
	return b.String(), spans
}

// RestoreCitations replaces the placeholders produced by ProtectCitations
// with the original spans.
func RestoreCitations(text string, spans []string) string {
	for i, span := range spans {
		text = strings.Replace(text, placeholderMark+strconv.Itoa(i)+placeholderMark, span, 1)
	}
	return text
}
