package batch

import (
	"path/filepath"
	"strings"
	"time"
)

// Config contains batch processing configuration.
type Config struct {
	// Workers bounds the worker pool. Cleaning is CPU-bound; zero means
	// one worker per CPU core.
	Workers int `yaml:"workers" mapstructure:"workers"`
	// ChannelBuffer is the size of the document queue between the reader
	// and the workers.
	ChannelBuffer int `yaml:"channel_buffer" mapstructure:"channel_buffer"`
	// RateLimit caps documents per second across all workers. Zero means
	// unlimited.
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst int     `yaml:"rate_burst" mapstructure:"rate_burst"`
	// SystemOverride forces a court system for the whole batch, for dumps
	// pre-sorted by tribunal. Empty means auto-detect per document.
	SystemOverride string `yaml:"system_override" mapstructure:"system_override"`
	// Blacklist is applied to every document in the batch.
	Blacklist []string `yaml:"blacklist" mapstructure:"blacklist"`
}

// DefaultConfig returns the default batch settings.
func DefaultConfig() Config {
	return Config{
		Workers:       0,
		ChannelBuffer: 256,
		RateLimit:     0,
		RateBurst:     1,
	}
}

// Document is one raw extracted text plus the extractor's bookkeeping
// metadata, which the pipeline passes through uninterpreted.
type Document struct {
	SourcePath string `json:"source_path" parquet:"source_path"`
	PageCount  int64  `json:"page_count" parquet:"page_count"`
	Text       string `json:"text" parquet:"text"`
}

// Summary aggregates one batch run.
type Summary struct {
	TotalDocuments  int64            `json:"total_documents"`
	Succeeded       int64            `json:"succeeded"`
	Failed          int64            `json:"failed"`
	CacheHits       int64            `json:"cache_hits"`
	WithWarnings    int64            `json:"with_warnings"`
	AvgReductionPct float64          `json:"avg_reduction_pct"`
	BySystem        map[string]int64 `json:"by_system"`
	Duration        time.Duration    `json:"duration"`
}

// FileFormat identifies a supported dump format.
type FileFormat string

const (
	FormatCSV     FileFormat = "csv"
	FormatJSON    FileFormat = "json"
	FormatParquet FileFormat = "parquet"
	FormatUnknown FileFormat = "unknown"
)

// DetectFileFormat infers the dump format from the file extension.
func DetectFileFormat(path string) FileFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".json", ".jsonl", ".ndjson":
		return FormatJSON
	case ".parquet":
		return FormatParquet
	default:
		return FormatUnknown
	}
}
