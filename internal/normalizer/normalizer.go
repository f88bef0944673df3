// Package normalizer is the post-cleaning pass: it repairs encoding,
// collapses the whitespace debris that pattern removal leaves behind and
// keeps legal citation tokens byte-identical while doing so. Everything
// here is a pure function over strings; no state, no I/O.
package normalizer

import (
	"regexp"
	"strings"
)

var (
	horizontalRuns  = regexp.MustCompile(`[ \t]+`)
	lineEdgeSpace   = regexp.MustCompile(`(?m)^[ \t]+|[ \t]+$`)
	symbolOnlyLines = regexp.MustCompile(`(?m)^\s*[_\-=*]{1,5}\s*$`)
	excessBlanks    = regexp.MustCompile(`\n{3,}`)
	spaceBeforePunc = regexp.MustCompile(`[ \t]+([.,;:!?)])`)
	spaceAfterOpen  = regexp.MustCompile(`\(\s+`)

	crlf = strings.NewReplacer("\r\n", "\n", "\r", "\n")

	// Characters PDF extraction tends to smuggle in: BOM, zero-width
	// joiners, soft hyphens, NUL.
	invisible = strings.NewReplacer(
		"\uFEFF", "",
		"\u200B", "",
		"\u200C", "",
		"\u200D", "",
		"\u00AD", "",
		"\x00", "",
	)
)

// FixEncoding canonicalizes text to clean UTF-8 with LF line endings:
// invalid byte sequences are dropped, non-breaking spaces become regular
// spaces and invisible formatting characters are removed.
func FixEncoding(text string) string {
	text = strings.ToValidUTF8(text, "")
	text = crlf.Replace(text)
	text = strings.ReplaceAll(text, "\u00A0", " ")
	return invisible.Replace(text)
}

// Normalize applies the full post-cleaning pass: encoding repair, horizontal
// whitespace collapse, line trimming, removal of leftover symbol-only lines,
// blank-line limiting and punctuation spacing. Citation tokens present in
// the input come out byte-for-byte unchanged.
func Normalize(text string) string {
	if text == "" {
		return text
	}

	text = FixEncoding(text)
	masked, spans := ProtectCitations(text)

	masked = horizontalRuns.ReplaceAllString(masked, " ")
	masked = lineEdgeSpace.ReplaceAllString(masked, "")

	// Symbol-only lines go before blank-line limiting so the holes they
	// leave are collapsed in the same pass. The reverse order is not
	// idempotent.
	masked = symbolOnlyLines.ReplaceAllString(masked, "")
	masked = excessBlanks.ReplaceAllString(masked, "\n\n")

	masked = spaceBeforePunc.ReplaceAllString(masked, "$1")
	masked = spaceAfterOpen.ReplaceAllString(masked, "(")

	return strings.TrimSpace(RestoreCitations(masked, spans))
}
