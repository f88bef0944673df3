// Package batch runs the cleaning pipeline over court-system dumps: a
// reader streams documents out of a CSV, JSON-lines or Parquet file into a
// bounded worker pool, each worker cleans independently, and per-document
// failures never abort the rest of the batch.
package batch

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/segmentio/parquet-go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/legalworkbench/legal-text-extractor/internal/cache"
	"github.com/legalworkbench/legal-text-extractor/internal/cleaner"
	"github.com/legalworkbench/legal-text-extractor/internal/logger"
	"github.com/legalworkbench/legal-text-extractor/internal/metrics"
	"github.com/legalworkbench/legal-text-extractor/internal/patterns"
	"github.com/legalworkbench/legal-text-extractor/internal/store"
)

// Processor drives batch cleaning runs. cache and results may be nil; the
// processor then cleans every document and keeps outcomes in memory only.
type Processor struct {
	cleaner  *cleaner.Cleaner
	reporter *metrics.Reporter
	cache    *cache.ResultCache
	results  *store.Store
	config   Config
	logger   *logger.Logger
	limiter  *rate.Limiter

	mu        sync.Mutex
	summary   Summary
	reduction float64
}

// New creates a batch processor.
func New(cl *cleaner.Cleaner, rep *metrics.Reporter, rc *cache.ResultCache, st *store.Store, cfg Config, log *logger.Logger) *Processor {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.ChannelBuffer <= 0 {
		cfg.ChannelBuffer = DefaultConfig().ChannelBuffer
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Processor{
		cleaner:  cl,
		reporter: rep,
		cache:    rc,
		results:  st,
		config:   cfg,
		logger:   log,
		limiter:  limiter,
	}
}

// ProcessFile cleans every document in a dump file and returns the batch
// summary. Cancelling ctx stops the run; documents already dispatched
// finish first.
func (p *Processor) ProcessFile(ctx context.Context, path string) (Summary, error) {
	format := DetectFileFormat(path)
	if format == FormatUnknown {
		return Summary{}, fmt.Errorf("unsupported file format: %s", path)
	}

	p.logger.Info("starting batch run",
		zap.String("file", path),
		zap.String("format", string(format)),
		zap.Int("workers", p.config.Workers),
	)

	p.mu.Lock()
	p.summary = Summary{BySystem: make(map[string]int64)}
	p.reduction = 0
	p.mu.Unlock()

	start := time.Now()

	docs := make(chan Document, p.config.ChannelBuffer)
	readErr := make(chan error, 1)
	go func() {
		defer close(docs)
		readErr <- p.readFile(ctx, path, format, docs)
	}()

	var wg sync.WaitGroup
	for i := 0; i < p.config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, docs)
		}()
	}
	wg.Wait()

	err := <-readErr

	p.mu.Lock()
	summary := p.summary
	summary.BySystem = make(map[string]int64, len(p.summary.BySystem))
	for k, v := range p.summary.BySystem {
		summary.BySystem[k] = v
	}
	if summary.Succeeded > 0 {
		summary.AvgReductionPct = p.reduction / float64(summary.Succeeded)
	}
	p.mu.Unlock()

	summary.Duration = time.Since(start)

	p.logger.Info("batch run completed",
		zap.Int64("total_documents", summary.TotalDocuments),
		zap.Int64("succeeded", summary.Succeeded),
		zap.Int64("failed", summary.Failed),
		zap.Int64("cache_hits", summary.CacheHits),
		zap.Float64("avg_reduction_pct", summary.AvgReductionPct),
		zap.Duration("duration", summary.Duration),
	)

	if err != nil && err != context.Canceled {
		return summary, fmt.Errorf("reading %s: %w", path, err)
	}
	return summary, nil
}

// Stats returns a snapshot of the current (possibly in-flight) summary.
func (p *Processor) Stats() Summary {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.summary
	out.BySystem = make(map[string]int64, len(p.summary.BySystem))
	for k, v := range p.summary.BySystem {
		out.BySystem[k] = v
	}
	if out.Succeeded > 0 {
		out.AvgReductionPct = p.reduction / float64(out.Succeeded)
	}
	return out
}

func (p *Processor) worker(ctx context.Context, docs <-chan Document) {
	for doc := range docs {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if p.limiter != nil {
			if err := p.limiter.Wait(ctx); err != nil {
				return
			}
		}
		p.processOne(ctx, doc)
	}
}

// processOne cleans a single document. Panics and errors are absorbed at
// this boundary: one malformed document must never take the batch down.
func (p *Processor) processOne(ctx context.Context, doc Document) {
	log := p.logger.WithDocument(doc.SourcePath)

	defer func() {
		if r := recover(); r != nil {
			log.Error("panic while cleaning document", zap.Any("panic", r))
			p.record(nil, true, false)
		}
	}()

	if p.cache != nil {
		if cached, err := p.cache.Get(ctx, doc.Text); err != nil {
			log.Warn("cache lookup failed", zap.Error(err))
		} else if cached != nil {
			p.record(cached, false, true)
			return
		}
	}

	result, err := p.cleaner.Clean(ctx, doc.Text, cleaner.Options{
		SystemOverride: patterns.CourtSystem(p.config.SystemOverride),
		Blacklist:      p.config.Blacklist,
		Meta: map[string]string{
			"source_path": doc.SourcePath,
			"page_count":  strconv.FormatInt(doc.PageCount, 10),
		},
	})
	if err != nil {
		log.Warn("document cleaning failed", zap.Error(err))
		p.record(nil, true, false)
		return
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, doc.Text, &result); err != nil {
			log.Warn("cache store failed", zap.Error(err))
		}
	}
	if p.results != nil {
		if err := p.results.Insert(ctx, &result); err != nil {
			log.Warn("result store insert failed", zap.Error(err))
		}
	}

	if p.reporter != nil {
		m := p.reporter.Report(result)
		if m.ConfidenceBand == metrics.BandLow {
			log.Debug("low-confidence detection", zap.Int("confidence", result.Confidence))
		}
	}

	p.record(&result, false, false)
}

func (p *Processor) record(result *cleaner.Result, failed, cacheHit bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.summary.TotalDocuments++
	if failed {
		p.summary.Failed++
		return
	}
	p.summary.Succeeded++
	if cacheHit {
		p.summary.CacheHits++
	}
	if result != nil {
		p.summary.BySystem[string(result.System)]++
		p.reduction += result.ReductionPct
		if len(result.Warnings) > 0 {
			p.summary.WithWarnings++
		}
	}
}

// readFile streams documents from a dump file into out.
func (p *Processor) readFile(ctx context.Context, path string, format FileFormat, out chan<- Document) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open dump file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatCSV:
		return p.readCSV(ctx, file, out)
	case FormatJSON:
		return p.readJSON(ctx, file, out)
	case FormatParquet:
		return p.readParquet(ctx, file, out)
	default:
		return fmt.Errorf("unsupported file format: %s", format)
	}
}

// readCSV expects a header row naming at least a "text" column; the
// optional "source_path" and "page_count" columns are carried through.
func (p *Processor) readCSV(ctx context.Context, file *os.File, out chan<- Document) error {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	textCol, ok := cols["text"]
	if !ok {
		return fmt.Errorf("CSV dump has no \"text\" column")
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			p.logger.Warn("skipping malformed CSV record", zap.Error(err))
			continue
		}
		if textCol >= len(record) {
			continue
		}

		doc := Document{Text: record[textCol]}
		if i, ok := cols["source_path"]; ok && i < len(record) {
			doc.SourcePath = record[i]
		}
		if i, ok := cols["page_count"]; ok && i < len(record) {
			doc.PageCount, _ = strconv.ParseInt(record[i], 10, 64)
		}

		select {
		case out <- doc:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// readJSON reads one JSON document object per line.
func (p *Processor) readJSON(ctx context.Context, file *os.File, out chan<- Document) error {
	decoder := json.NewDecoder(file)
	for {
		var doc Document
		err := decoder.Decode(&doc)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to decode JSON record: %w", err)
		}

		select {
		case out <- doc:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (p *Processor) readParquet(ctx context.Context, file *os.File, out chan<- Document) error {
	reader := parquet.NewReader(file)
	defer reader.Close()

	for {
		var doc Document
		err := reader.Read(&doc)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read Parquet record: %w", err)
		}

		select {
		case out <- doc:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
