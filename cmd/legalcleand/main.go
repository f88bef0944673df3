package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/legalworkbench/legal-text-extractor/internal/batch"
	"github.com/legalworkbench/legal-text-extractor/internal/cache"
	"github.com/legalworkbench/legal-text-extractor/internal/cleaner"
	"github.com/legalworkbench/legal-text-extractor/internal/config"
	"github.com/legalworkbench/legal-text-extractor/internal/detector"
	"github.com/legalworkbench/legal-text-extractor/internal/logger"
	"github.com/legalworkbench/legal-text-extractor/internal/metrics"
	"github.com/legalworkbench/legal-text-extractor/internal/patterns"
	"github.com/legalworkbench/legal-text-extractor/internal/sections"
	"github.com/legalworkbench/legal-text-extractor/internal/status"
	"github.com/legalworkbench/legal-text-extractor/internal/store"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		inputFile   = flag.String("input", "", "Court dump file to process (CSV, JSON lines, or Parquet)")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("legalcleand %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	if *inputFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s --input dump.csv [options]\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	loggerConfig := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}
	if cfg.Logging.File.Enabled {
		loggerConfig.File = &logger.FileConfig{
			Enabled:  cfg.Logging.File.Enabled,
			Path:     cfg.Logging.File.Path,
			MaxSize:  cfg.Logging.File.MaxSize,
			MaxAge:   cfg.Logging.File.MaxAge,
			Compress: cfg.Logging.File.Compress,
		}
	}

	log, err := logger.New(loggerConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting legalcleand",
		zap.String("version", version),
		zap.String("commit", commit),
		zap.String("input", *inputFile),
	)

	// The library must be fully built before any worker starts; this is
	// the pipeline's single initialization barrier.
	library, err := patterns.Default()
	if err != nil {
		log.Fatal("pattern library failed to load", zap.Error(err))
	}
	log.Info("pattern library loaded", zap.Int("patterns", library.Len()))

	det := detector.New(library, cfg.Detector, log.WithComponent("detector"))

	var analyzer sections.Analyzer
	switch cfg.Sections.Analyzer {
	case "rules":
		analyzer = sections.RuleBased{}
	default:
		analyzer = nil
	}

	cl := cleaner.New(library, det, analyzer, cfg.Cleaner, log.WithComponent("cleaner"))
	reporter := metrics.NewReporter(cfg.Metrics)

	var resultCache *cache.ResultCache
	if cfg.Cache.Enabled {
		resultCache, err = cache.New(cfg.Cache, log.WithComponent("cache"))
		if err != nil {
			log.Fatal("failed to initialize result cache", zap.Error(err))
		}
		defer resultCache.Close()
	}

	var resultStore *store.Store
	if cfg.Store.Enabled {
		resultStore, err = store.New(cfg.Store, log.WithComponent("store"))
		if err != nil {
			log.Fatal("failed to initialize result store", zap.Error(err))
		}
		defer resultStore.Close()
	}

	processor := batch.New(cl, reporter, resultCache, resultStore, cfg.Batch, log.WithComponent("batch"))

	var statusServer *status.Server
	if cfg.Status.Enabled {
		statusServer = status.New(cfg.Status, processor, resultCache, resultStore, log.WithComponent("status"))
		go func() {
			if err := statusServer.Start(); err != nil {
				log.Error("status server error", zap.Error(err))
			}
		}()
	}

	// Thresholds are frozen into the constructed components; a config file
	// edit takes effect on the next run.
	_ = config.Watch(cfg, func(*config.Config) {
		log.Info("configuration file changed; restart to apply")
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
		cancel()
	}()

	summary, err := processor.ProcessFile(ctx, *inputFile)
	if err != nil {
		log.Error("batch run failed", zap.Error(err))
	}

	log.Info("run summary",
		zap.Int64("total_documents", summary.TotalDocuments),
		zap.Int64("succeeded", summary.Succeeded),
		zap.Int64("failed", summary.Failed),
		zap.Float64("avg_reduction_pct", summary.AvgReductionPct),
	)

	if statusServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := statusServer.Stop(shutdownCtx); err != nil {
			log.Error("failed to stop status server", zap.Error(err))
		}
	}

	if err != nil {
		os.Exit(1)
	}
}
