// Package status exposes the batch daemon's health and progress over HTTP.
// Operational surface only; it serves JSON for probes and dashboards and
// never touches document text.
package status

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/legalworkbench/legal-text-extractor/internal/batch"
	"github.com/legalworkbench/legal-text-extractor/internal/cache"
	"github.com/legalworkbench/legal-text-extractor/internal/logger"
	"github.com/legalworkbench/legal-text-extractor/internal/store"
)

// Config contains status server configuration.
type Config struct {
	Enabled      bool          `yaml:"enabled" mapstructure:"enabled"`
	Port         int           `yaml:"port" mapstructure:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
}

// DefaultConfig returns the default status server settings.
func DefaultConfig() Config {
	return Config{
		Enabled:      false,
		Port:         8080,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// Server serves /health, /stats and /summaries for a running batch
// processor.
type Server struct {
	processor *batch.Processor
	cache     *cache.ResultCache
	results   *store.Store
	logger    *logger.Logger
	server    *http.Server
}

// New creates a status server over the given processor. rc and st may be
// nil when the result cache or store is disabled.
func New(cfg Config, processor *batch.Processor, rc *cache.ResultCache, st *store.Store, log *logger.Logger) *Server {
	s := &Server{
		processor: processor,
		cache:     rc,
		results:   st,
		logger:    log,
	}

	router := mux.NewRouter()
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	router.HandleFunc("/summaries", s.handleSummaries).Methods(http.MethodGet)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Start blocks serving HTTP until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("status server listening", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	type statsResponse struct {
		Batch batch.Summary `json:"batch"`
		Cache *cache.Stats  `json:"cache,omitempty"`
	}

	resp := statsResponse{Batch: s.processor.Stats()}
	if s.cache != nil {
		cs := s.cache.Stats()
		resp.Cache = &cs
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSummaries serves per-system aggregates from the result store.
func (s *Server) handleSummaries(w http.ResponseWriter, r *http.Request) {
	if s.results == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "result store disabled"})
		return
	}

	summaries, err := s.results.Summaries(r.Context())
	if err != nil {
		s.logger.Error("failed to query summaries", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "summary query failed"})
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
