package cleaner

import (
	"context"
	"strings"
	"testing"

	"github.com/legalworkbench/legal-text-extractor/internal/detector"
	"github.com/legalworkbench/legal-text-extractor/internal/logger"
	"github.com/legalworkbench/legal-text-extractor/internal/patterns"
	"github.com/legalworkbench/legal-text-extractor/internal/sections"
)

const citation = "(STJ, REsp 1.234.567/SP, Rel. Min. X, j. 01/01/2020)"

const pjeDocument = `PODER JUDICIÁRIO
Processo Judicial Eletrônico - PJe

DECISÃO

Defiro a tutela de urgência requerida, nos termos do Art. 300 do CPC,
observado o precedente ` + citation + `.

Documento assinado por FULANO DE TAL e certificado digitalmente por AC CERTISIGN MÚLTIPLA
Este documento foi gerado pelo usuário 123.456.789-00 em 01/02/2024 10:30:45
Código de verificação: ABCD.1234.EFGH.IJ12
https://pje.trt3.jus.br/processo/validar?codigo=ABCD1234
SHA-256: AB12CD34EF56AB12CD34EF56AB12CD34EF56AB12CD34EF56AB12CD34EF56AB12
`

const esajDocument = `TRIBUNAL DE JUSTIÇA DO ESTADO DE SÃO PAULO - TJSP

SENTENÇA

Julgo procedente o pedido inicial, com fundamento na Lei nº 8.078/90.

Assinado digitalmente por: JUIZ DE DIREITO TITULAR data: 15/03/2024 14:22:10
Código do documento: 1A2B3C4D5E6F7G8H
Conferência de documento digital disponível no portal e-saj
`

func newTestCleaner(t *testing.T, cfg Config, analyzer sections.Analyzer) *Cleaner {
	t.Helper()
	lib, err := patterns.Default()
	if err != nil {
		t.Fatalf("Failed to build library: %v", err)
	}
	det := detector.New(lib, detector.DefaultConfig(), logger.Nop())
	return New(lib, det, analyzer, cfg, logger.Nop())
}

func TestClean(t *testing.T) {
	c := newTestCleaner(t, DefaultConfig(), nil)
	ctx := context.Background()

	t.Run("PJEBoilerplateRemoved", func(t *testing.T) {
		result, err := c.Clean(ctx, pjeDocument, Options{})
		if err != nil {
			t.Fatalf("Clean failed: %v", err)
		}

		if result.System != patterns.SystemPJE {
			t.Fatalf("System = %s, want PJE", result.System)
		}
		if result.Confidence < 80 {
			t.Errorf("Confidence = %d, want >= 80", result.Confidence)
		}

		for _, gone := range []string{
			"Documento assinado por FULANO",
			"gerado pelo usuário",
			"Código de verificação",
			"validar?codigo",
			"SHA-256",
		} {
			if strings.Contains(result.CleanedText, gone) {
				t.Errorf("Boilerplate %q survived cleaning", gone)
			}
		}

		if !strings.Contains(result.CleanedText, citation) {
			t.Errorf("Citation not byte-identical in output:\n%s", result.CleanedText)
		}
		if !strings.Contains(result.CleanedText, "Art. 300") {
			t.Errorf("Article citation mutated:\n%s", result.CleanedText)
		}
		if !strings.Contains(result.CleanedText, "Defiro a tutela de urgência") {
			t.Errorf("Substantive content lost:\n%s", result.CleanedText)
		}

		if result.PatternsApplied == 0 {
			t.Error("PatternsApplied = 0 after removing boilerplate")
		}
		wantReduction := float64(len(pjeDocument)-len(result.CleanedText)) / float64(len(pjeDocument)) * 100
		if result.ReductionPct != wantReduction {
			t.Errorf("ReductionPct = %f, want %f", result.ReductionPct, wantReduction)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		// The separator carries trailing spaces: the line rule must remove
		// it on the first pass, not only after the whitespace pass has
		// bared the anchor for a second run.
		separatorDoc := "Intimem-se as partes.\n--------------   \nCumpra-se o despacho."

		for _, doc := range []string{pjeDocument, esajDocument, separatorDoc} {
			first, err := c.Clean(ctx, doc, Options{})
			if err != nil {
				t.Fatalf("First clean failed: %v", err)
			}
			second, err := c.Clean(ctx, first.CleanedText, Options{})
			if err != nil {
				t.Fatalf("Second clean failed: %v", err)
			}
			if second.CleanedText != first.CleanedText {
				t.Errorf("Pipeline not idempotent:\n first: %q\nsecond: %q", first.CleanedText, second.CleanedText)
			}
		}

		first, err := c.Clean(ctx, separatorDoc, Options{})
		if err != nil {
			t.Fatalf("Clean failed: %v", err)
		}
		if strings.Contains(first.CleanedText, "-----") {
			t.Errorf("Padded separator line survived the first pass: %q", first.CleanedText)
		}
	})

	t.Run("EmptyInput", func(t *testing.T) {
		result, err := c.Clean(ctx, "", Options{})
		if err != nil {
			t.Fatalf("Clean(\"\") failed: %v", err)
		}
		if result.System != patterns.SystemUnknown || result.CleanedText != "" {
			t.Errorf("Clean(\"\") = %+v", result)
		}
	})

	t.Run("MetaPassesThrough", func(t *testing.T) {
		meta := map[string]string{"source_path": "dump/doc1.pdf", "page_count": "12"}
		result, err := c.Clean(ctx, pjeDocument, Options{Meta: meta})
		if err != nil {
			t.Fatalf("Clean failed: %v", err)
		}
		if result.Meta["source_path"] != "dump/doc1.pdf" || result.Meta["page_count"] != "12" {
			t.Errorf("Meta = %v, want pass-through unchanged", result.Meta)
		}
	})
}

func TestCleanOverride(t *testing.T) {
	c := newTestCleaner(t, DefaultConfig(), nil)
	ctx := context.Background()

	t.Run("InvalidOverrideFails", func(t *testing.T) {
		if _, err := c.Clean(ctx, esajDocument, Options{SystemOverride: "TJXX"}); err == nil {
			t.Fatal("Expected error for unknown system override")
		}
	})

	t.Run("OverrideSkipsDetection", func(t *testing.T) {
		result, err := c.Clean(ctx, esajDocument, Options{SystemOverride: patterns.SystemESAJ})
		if err != nil {
			t.Fatalf("Clean failed: %v", err)
		}
		if result.System != patterns.SystemESAJ || result.Confidence != 100 {
			t.Errorf("Override result = %s/%d, want ESAJ/100", result.System, result.Confidence)
		}
	})

	t.Run("WrongOverrideAppliesFewerPatterns", func(t *testing.T) {
		right, err := c.Clean(ctx, esajDocument, Options{SystemOverride: patterns.SystemESAJ})
		if err != nil {
			t.Fatalf("Clean failed: %v", err)
		}
		wrong, err := c.Clean(ctx, esajDocument, Options{SystemOverride: patterns.SystemSTF})
		if err != nil {
			t.Fatalf("Clean failed: %v", err)
		}
		if wrong.PatternsApplied >= right.PatternsApplied {
			t.Errorf("Wrong override applied %d patterns, correct override %d; want fewer",
				wrong.PatternsApplied, right.PatternsApplied)
		}
	})
}

func TestCleanBlacklist(t *testing.T) {
	c := newTestCleaner(t, DefaultConfig(), nil)
	ctx := context.Background()

	t.Run("LiteralTermRemoved", func(t *testing.T) {
		// "Julgo procedente" is substantive content no library rule touches;
		// only the blacklist can remove it.
		result, err := c.Clean(ctx, esajDocument, Options{Blacklist: []string{"Julgo procedente"}})
		if err != nil {
			t.Fatalf("Clean failed: %v", err)
		}
		if strings.Contains(result.CleanedText, "Julgo procedente") {
			t.Error("Blacklisted literal survived")
		}
	})

	t.Run("PatternTermRemoved", func(t *testing.T) {
		result, err := c.Clean(ctx, pjeDocument, Options{Blacklist: []string{`re:Defiro\s+a\s+tutela\s+de\s+urg[êe]ncia`}})
		if err != nil {
			t.Fatalf("Clean failed: %v", err)
		}
		if strings.Contains(result.CleanedText, "Defiro") {
			t.Error("Blacklisted pattern survived")
		}
	})

	t.Run("BlacklistedCitationMayBeRemoved", func(t *testing.T) {
		result, err := c.Clean(ctx, pjeDocument, Options{Blacklist: []string{"REsp 1.234.567/SP"}})
		if err != nil {
			t.Fatalf("Clean failed: %v", err)
		}
		if strings.Contains(result.CleanedText, "REsp 1.234.567/SP") {
			t.Error("Explicitly blacklisted citation survived")
		}
	})

	t.Run("BadPatternIsWarningNotError", func(t *testing.T) {
		result, err := c.Clean(ctx, pjeDocument, Options{Blacklist: []string{"re:unclosed["}})
		if err != nil {
			t.Fatalf("Clean failed on bad blacklist pattern: %v", err)
		}
		found := false
		for _, w := range result.Warnings {
			if strings.Contains(w, "blacklist pattern") {
				found = true
			}
		}
		if !found {
			t.Errorf("No warning recorded for bad blacklist pattern: %v", result.Warnings)
		}
	})
}

func TestCleanDestructiveGuard(t *testing.T) {
	// A tiny guard threshold turns the ESAJ signature bar removal into a
	// flagged destructive span.
	c := newTestCleaner(t, Config{MaxRemovedSpan: 10}, nil)

	result, err := c.Clean(context.Background(), esajDocument, Options{})
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "flagged for review") {
			found = true
		}
	}
	if !found {
		t.Errorf("No destructive-removal warning with 10-byte guard: %v", result.Warnings)
	}
	if !strings.Contains(result.CleanedText, "Julgo procedente") {
		t.Error("Warning should not block the removal pipeline")
	}
}

func TestCleanSections(t *testing.T) {
	c := newTestCleaner(t, DefaultConfig(), sections.RuleBased{})

	result, err := c.Clean(context.Background(), esajDocument, Options{})
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}
	if len(result.Sections) == 0 {
		t.Fatal("No sections produced for a document with a SENTENÇA heading")
	}

	var hasRuling bool
	for _, s := range result.Sections {
		if s.Type == sections.TypeRuling {
			hasRuling = true
		}
	}
	if !hasRuling {
		t.Errorf("Sections = %+v, want a ruling section", result.Sections)
	}
}
