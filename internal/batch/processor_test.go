package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/legalworkbench/legal-text-extractor/internal/cleaner"
	"github.com/legalworkbench/legal-text-extractor/internal/detector"
	"github.com/legalworkbench/legal-text-extractor/internal/logger"
	"github.com/legalworkbench/legal-text-extractor/internal/metrics"
	"github.com/legalworkbench/legal-text-extractor/internal/patterns"
)

const pjePage = `Processo Judicial Eletrônico - PJe. Defiro o pedido liminar.
Este documento foi gerado pelo usuário 123.456.789-00 em 01/02/2024 10:30:45
Código de verificação: ABCD.1234.EFGH.IJ12`

func newTestProcessor(t *testing.T, cfg Config) *Processor {
	t.Helper()
	lib, err := patterns.Default()
	if err != nil {
		t.Fatalf("Failed to build library: %v", err)
	}
	det := detector.New(lib, detector.DefaultConfig(), logger.Nop())
	cl := cleaner.New(lib, det, nil, cleaner.DefaultConfig(), logger.Nop())
	rep := metrics.NewReporter(metrics.DefaultConfig())
	return New(cl, rep, nil, nil, cfg, logger.Nop())
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func TestProcessFileCSV(t *testing.T) {
	p := newTestProcessor(t, Config{Workers: 2})

	csvContent := "source_path,page_count,text\n" +
		"dump/a.pdf,3,\"" + pjePage + "\"\n" +
		"dump/b.pdf,1,curto\n"
	path := writeTempFile(t, "dump.csv", csvContent)

	summary, err := p.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}

	if summary.TotalDocuments != 2 {
		t.Errorf("TotalDocuments = %d, want 2", summary.TotalDocuments)
	}
	if summary.Succeeded != 2 {
		t.Errorf("Succeeded = %d, want 2", summary.Succeeded)
	}
	if summary.Failed != 0 {
		t.Errorf("Failed = %d, want 0", summary.Failed)
	}
	if summary.BySystem[string(patterns.SystemPJE)] != 1 {
		t.Errorf("BySystem = %v, want one PJE document", summary.BySystem)
	}
	// "curto" is below the detection floor.
	if summary.BySystem[string(patterns.SystemUnknown)] != 1 {
		t.Errorf("BySystem = %v, want one UNKNOWN document", summary.BySystem)
	}
	if summary.AvgReductionPct <= 0 {
		t.Errorf("AvgReductionPct = %f, want > 0 after boilerplate removal", summary.AvgReductionPct)
	}
}

func TestProcessFileJSONLines(t *testing.T) {
	p := newTestProcessor(t, Config{Workers: 1})

	path := writeTempFile(t, "dump.jsonl",
		`{"source_path":"dump/a.pdf","page_count":2,"text":"Texto comum de peça processual, sem boilerplate de sistema algum aqui."}`+"\n"+
			`{"source_path":"dump/b.pdf","page_count":1,"text":"Outro documento simples para o processamento em lote."}`+"\n")

	summary, err := p.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if summary.TotalDocuments != 2 || summary.Succeeded != 2 {
		t.Errorf("Summary = %+v, want 2 successful documents", summary)
	}
}

func TestProcessFileBadOverride(t *testing.T) {
	// An invalid per-batch override fails each document individually; the
	// batch itself still completes.
	p := newTestProcessor(t, Config{Workers: 1, SystemOverride: "TJXX"})

	path := writeTempFile(t, "dump.jsonl",
		`{"source_path":"dump/a.pdf","text":"Documento qualquer para o teste de lote."}`+"\n")

	summary, err := p.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if summary.Failed != 1 || summary.Succeeded != 0 {
		t.Errorf("Summary = %+v, want the document counted as failed", summary)
	}
}

func TestProcessFileErrors(t *testing.T) {
	p := newTestProcessor(t, Config{Workers: 1})
	ctx := context.Background()

	t.Run("UnknownFormat", func(t *testing.T) {
		if _, err := p.ProcessFile(ctx, "dump.xml"); err == nil {
			t.Fatal("Expected error for unsupported format")
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := p.ProcessFile(ctx, filepath.Join(t.TempDir(), "nope.csv")); err == nil {
			t.Fatal("Expected error for missing file")
		}
	})

	t.Run("CSVWithoutTextColumn", func(t *testing.T) {
		path := writeTempFile(t, "dump.csv", "id,body\n1,abc\n")
		if _, err := p.ProcessFile(ctx, path); err == nil {
			t.Fatal("Expected error for CSV without a text column")
		}
	})
}

func TestDetectFileFormat(t *testing.T) {
	cases := []struct {
		path string
		want FileFormat
	}{
		{"dump.csv", FormatCSV},
		{"DUMP.CSV", FormatCSV},
		{"dump.json", FormatJSON},
		{"dump.jsonl", FormatJSON},
		{"dump.ndjson", FormatJSON},
		{"dump.parquet", FormatParquet},
		{"dump.txt", FormatUnknown},
		{"dump", FormatUnknown},
	}
	for _, tc := range cases {
		if got := DetectFileFormat(tc.path); got != tc.want {
			t.Errorf("DetectFileFormat(%q) = %s, want %s", tc.path, got, tc.want)
		}
	}
}

func TestStatsSnapshot(t *testing.T) {
	p := newTestProcessor(t, Config{Workers: 1})

	path := writeTempFile(t, "dump.jsonl",
		`{"source_path":"dump/a.pdf","text":"Documento para o instantâneo de estatísticas do lote."}`+"\n")
	if _, err := p.ProcessFile(context.Background(), path); err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}

	stats := p.Stats()
	if stats.TotalDocuments != 1 || stats.Succeeded != 1 {
		t.Errorf("Stats = %+v, want 1 successful document", stats)
	}

	// The snapshot map must be a copy.
	stats.BySystem["x"] = 99
	if p.Stats().BySystem["x"] == 99 {
		t.Error("Stats returned the internal BySystem map")
	}
}
