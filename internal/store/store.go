// Package store persists per-document cleaning outcomes to PostgreSQL for
// the reporting layer. The cleaning core never writes here; only the batch
// daemon does, after each document completes.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/legalworkbench/legal-text-extractor/internal/cleaner"
	"github.com/legalworkbench/legal-text-extractor/internal/logger"
)

// Config contains database configuration.
type Config struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	DatabaseURL     string        `yaml:"database_url" mapstructure:"database_url"`
	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
}

// DefaultConfig returns the default store settings. Disabled by default.
func DefaultConfig() Config {
	return Config{
		Enabled:         false,
		DatabaseURL:     "postgres://localhost:5432/legalclean?sslmode=disable",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
	}
}

// Record is one persisted cleaning outcome. Cleaned text itself is not
// stored; the exporter owns the text, the store owns the bookkeeping.
type Record struct {
	ID              int64     `db:"id"`
	SourcePath      string    `db:"source_path"`
	TextHash        string    `db:"text_hash"`
	System          string    `db:"system"`
	Confidence      int       `db:"confidence"`
	PatternsApplied int       `db:"patterns_applied"`
	ReductionPct    float64   `db:"reduction_pct"`
	Warnings        string    `db:"warnings"`
	CreatedAt       time.Time `db:"created_at"`
}

// SystemSummary aggregates outcomes per detected system.
type SystemSummary struct {
	System          string  `db:"system" json:"system"`
	Documents       int64   `db:"documents" json:"documents"`
	AvgConfidence   float64 `db:"avg_confidence" json:"avg_confidence"`
	AvgReductionPct float64 `db:"avg_reduction_pct" json:"avg_reduction_pct"`
}

const schema = `
CREATE TABLE IF NOT EXISTS cleaning_results (
	id               BIGSERIAL PRIMARY KEY,
	source_path      TEXT NOT NULL DEFAULT '',
	text_hash        CHAR(64) NOT NULL,
	system           TEXT NOT NULL,
	confidence       INTEGER NOT NULL,
	patterns_applied INTEGER NOT NULL,
	reduction_pct    DOUBLE PRECISION NOT NULL,
	warnings         TEXT NOT NULL DEFAULT '',
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS cleaning_results_system_idx ON cleaning_results (system);
CREATE INDEX IF NOT EXISTS cleaning_results_hash_idx ON cleaning_results (text_hash);
`

// Store handles cleaning result persistence.
type Store struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// New connects to PostgreSQL and ensures the schema exists.
func New(cfg Config, log *logger.Logger) (*Store, error) {
	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	s := &Store{db: db, logger: log}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	log.Info("result store initialized",
		zap.Int("max_open_conns", cfg.MaxOpenConns),
	)
	return s, nil
}

func (s *Store) initialize() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Insert persists one cleaning outcome.
func (s *Store) Insert(ctx context.Context, result *cleaner.Result) error {
	sum := sha256.Sum256([]byte(result.OriginalText))

	query := `
		INSERT INTO cleaning_results
			(source_path, text_hash, system, confidence, patterns_applied, reduction_pct, warnings)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		result.Meta["source_path"],
		hex.EncodeToString(sum[:]),
		string(result.System),
		result.Confidence,
		result.PatternsApplied,
		result.ReductionPct,
		strings.Join(result.Warnings, "\n"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert cleaning result: %w", err)
	}
	return nil
}

// Summaries returns per-system aggregates over everything persisted.
func (s *Store) Summaries(ctx context.Context) ([]SystemSummary, error) {
	query := `
		SELECT system,
		       COUNT(*)           AS documents,
		       AVG(confidence)    AS avg_confidence,
		       AVG(reduction_pct) AS avg_reduction_pct
		FROM cleaning_results
		GROUP BY system
		ORDER BY documents DESC
	`
	var out []SystemSummary
	if err := s.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}
	return out, nil
}

// Close releases the database connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
