package detector

import (
	"strings"
	"testing"

	"github.com/legalworkbench/legal-text-extractor/internal/logger"
	"github.com/legalworkbench/legal-text-extractor/internal/patterns"
)

const pjeSample = `
PODER JUDICIÁRIO
Processo Judicial Eletrônico - PJe

DECISÃO

Defiro o pedido nos termos do Art. 300 do CPC.

Documento assinado por FULANO DE TAL e certificado digitalmente por AC CERTISIGN MÚLTIPLA
Este documento foi gerado pelo usuário 123.456.789-00 em 01/02/2024 10:30:45
Código de verificação: ABCD.1234.EFGH.IJ12
https://pje.trt3.jus.br/processo/validar?codigo=ABCD1234
`

func newTestDetector(t *testing.T) *Detector {
	t.Helper()
	lib, err := patterns.Default()
	if err != nil {
		t.Fatalf("Failed to build library: %v", err)
	}
	return New(lib, DefaultConfig(), logger.Nop())
}

func TestDetect(t *testing.T) {
	det := newTestDetector(t)

	t.Run("EmptyTextIsUnknown", func(t *testing.T) {
		got := det.Detect("")
		if got.System != patterns.SystemUnknown || got.Confidence != 0 {
			t.Errorf("Detect(\"\") = %+v, want UNKNOWN/0", got)
		}
	})

	t.Run("ShortTextIsUnknown", func(t *testing.T) {
		got := det.Detect("short")
		if got.System != patterns.SystemUnknown || got.Confidence != 0 {
			t.Errorf("Detect(short) = %+v, want UNKNOWN/0", got)
		}
	})

	t.Run("PJEDocumentScoresHigh", func(t *testing.T) {
		got := det.Detect(pjeSample)
		if got.System != patterns.SystemPJE {
			t.Fatalf("Detect(pjeSample).System = %s, want PJE (signals: %v)", got.System, got.SignalsMatched)
		}
		if got.Confidence < 80 {
			t.Errorf("Confidence = %d, want >= 80", got.Confidence)
		}
		if len(got.SignalsMatched) == 0 {
			t.Error("No signals recorded for a detected system")
		}
	})

	t.Run("ConfidenceWithinBounds", func(t *testing.T) {
		inputs := []string{"", "short", pjeSample, strings.Repeat("texto jurídico comum sem marcas de sistema. ", 20)}
		for _, in := range inputs {
			got := det.Detect(in)
			if got.Confidence < 0 || got.Confidence > 100 {
				t.Errorf("Confidence %d out of [0,100] for input %q...", got.Confidence, in[:min(len(in), 20)])
			}
		}
	})

	t.Run("SingleSignalIsNotEnough", func(t *testing.T) {
		// Long enough for detection, but only one PJE marker.
		text := "O presente recurso tramita no PJe conforme despacho anterior. " + strings.Repeat("Texto. ", 10)
		got := det.Detect(text)
		if got.System != patterns.SystemUnknown {
			t.Errorf("One signal detected as %s, want UNKNOWN", got.System)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		first := det.Detect(pjeSample)
		for i := 0; i < 10; i++ {
			got := det.Detect(pjeSample)
			if got.System != first.System || got.Confidence != first.Confidence {
				t.Fatalf("Run %d returned %+v, first run %+v", i, got, first)
			}
			if len(got.SignalsMatched) != len(first.SignalsMatched) {
				t.Fatalf("Run %d matched %d signals, first run %d", i, len(got.SignalsMatched), len(first.SignalsMatched))
			}
		}
	})
}

func TestDetectTieBreaking(t *testing.T) {
	text := "alpha beta gamma " + strings.Repeat("preenchimento ", 10)

	t.Run("MoreSpecificSignatureSetWins", func(t *testing.T) {
		lib, err := patterns.NewLibrary(nil, []patterns.SignatureRule{
			{ID: "pje.a", System: patterns.SystemPJE, Expr: `alpha`},
			{ID: "pje.b", System: patterns.SystemPJE, Expr: `beta`},
			{ID: "stj.a", System: patterns.SystemSTJ, Expr: `alpha`},
			{ID: "stj.b", System: patterns.SystemSTJ, Expr: `beta`},
			{ID: "stj.c", System: patterns.SystemSTJ, Expr: `gamma`},
		})
		if err != nil {
			t.Fatalf("NewLibrary: %v", err)
		}
		got := New(lib, DefaultConfig(), logger.Nop()).Detect(text)
		if got.System != patterns.SystemSTJ {
			t.Errorf("Detect = %s, want STJ (larger signature set at equal score)", got.System)
		}
	})

	t.Run("TrueTieIsUnknown", func(t *testing.T) {
		lib, err := patterns.NewLibrary(nil, []patterns.SignatureRule{
			{ID: "pje.a", System: patterns.SystemPJE, Expr: `alpha`},
			{ID: "pje.b", System: patterns.SystemPJE, Expr: `beta`},
			{ID: "esaj.a", System: patterns.SystemESAJ, Expr: `alpha`},
			{ID: "esaj.b", System: patterns.SystemESAJ, Expr: `beta`},
		})
		if err != nil {
			t.Fatalf("NewLibrary: %v", err)
		}
		got := New(lib, DefaultConfig(), logger.Nop()).Detect(text)
		if got.System != patterns.SystemUnknown || got.Confidence != 0 {
			t.Errorf("Detect = %+v, want UNKNOWN/0 on a true tie", got)
		}
	})
}
