// Package server exposes projections over HTTP as JSON documents and PNG
// band charts.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/rpgo/networth-projection/internal/calculation"
	"github.com/rpgo/networth-projection/internal/logging"
	"github.com/rpgo/networth-projection/internal/output"
)

// Request limits.
const (
	DefaultMaxPaths = 20000
	DefaultMaxDays  = 50 * calculation.DaysPerYear
	// DefaultMaxSamples bounds PathCount*(HorizonDays+1), about 400 MB of
	// float64 samples per request.
	DefaultMaxSamples = 50_000_000
	maxDemoYears      = 50
)

// Config controls the listener and request limits.
type Config struct {
	// Addr is the listen address; empty means "localhost:0".
	Addr string
	// Workers bounds per-request simulation concurrency. Zero means GOMAXPROCS.
	Workers  int
	MaxPaths int
	MaxDays  int
	// MaxSamples bounds the ensemble size PathCount*(HorizonDays+1).
	MaxSamples int
	ChartTTL   time.Duration
	// MaxCharts bounds the number of cached charts.
	MaxCharts int
}

// Server serves projection JSON and band charts.
type Server struct {
	cfg        Config
	logger     *slog.Logger
	charts     *ChartCache
	httpServer *http.Server
	mu         sync.Mutex
	addr       string
}

// NewServer creates a server. A nil logger discards log output.
func NewServer(cfg Config, logger *slog.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:0"
	}
	if cfg.MaxPaths <= 0 {
		cfg.MaxPaths = DefaultMaxPaths
	}
	if cfg.MaxDays <= 0 {
		cfg.MaxDays = DefaultMaxDays
	}
	if cfg.MaxSamples <= 0 {
		cfg.MaxSamples = DefaultMaxSamples
	}
	return &Server{
		cfg:    cfg,
		logger: logging.NewAdapter(logger).L,
		charts: NewChartCache(cfg.ChartTTL, cfg.MaxCharts),
	}
}

// Addr returns the address the server is listening on.
// Returns empty string if the server hasn't started yet.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Charts returns the server's chart cache.
func (s *Server) Charts() *ChartCache { return s.charts }

// Handler returns the request multiplexer.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("GET /api/projection", s.handleProjection)
	mux.HandleFunc("GET /api/demo", s.handleDemo)
	mux.HandleFunc("GET /api/chart.png", s.handleChart)
	return mux
}

// ListenAndServe starts the HTTP server and blocks until the context is
// cancelled. Returns nil on clean shutdown.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	s.addr = ln.Addr().String()
	s.httpServer = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	httpServer := s.httpServer
	s.mu.Unlock()
	s.logger.Info("server listening", "addr", ln.Addr().String())

	// Graceful shutdown when context is cancelled; done releases the
	// goroutine when Serve fails on its own.
	done := make(chan struct{})
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		select {
		case <-ctx.Done():
		case <-done:
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("server shutdown incomplete", "error", err)
		}
	}()

	err := httpServer.Serve(ln)
	close(done)
	<-shutdownDone
	if errors.Is(err, http.ErrServerClosed) {
		s.logger.Info("server stopped")
		return nil
	}
	return err
}

// projectionQuery is a parsed /api/projection or /api/chart.png request.
type projectionQuery struct {
	params       calculation.SimulationParams
	mode         calculation.SeedMode
	includePaths bool
}

// cacheKey identifies the chart a query renders.
func (q projectionQuery) cacheKey() string {
	return fmt.Sprintf("%+v|%s", q.params, q.mode)
}

// parseProjectionQuery reads simulation parameters from the query string.
// Absent fields take the one-year demo values.
func (s *Server) parseProjectionQuery(values url.Values) (projectionQuery, error) {
	q := projectionQuery{params: calculation.DemoParams(1), mode: calculation.SeedShared}
	p := &q.params

	ints := []struct {
		key string
		dst *int
	}{
		{"paths", &p.PathCount},
		{"days", &p.HorizonDays},
	}
	for _, f := range ints {
		if v := values.Get(f.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return q, fmt.Errorf("invalid %s %q: %w", f.key, v, err)
			}
			*f.dst = n
		}
	}

	if v := values.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return q, fmt.Errorf("invalid seed %q: %w", v, err)
		}
		p.Seed = seed
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"start", &p.StartValue},
		{"drift_mean", &p.DailyDriftMean},
		{"drift_std", &p.DailyDriftStdDev},
		{"return_mean", &p.DailyReturnMean},
		{"return_std", &p.DailyReturnStdDev},
	}
	for _, f := range floats {
		if v := values.Get(f.key); v != "" {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return q, fmt.Errorf("invalid %s %q: %w", f.key, v, err)
			}
			*f.dst = x
		}
	}

	mode, err := calculation.ParseSeedMode(values.Get("seed_mode"))
	if err != nil {
		return q, err
	}
	q.mode = mode

	if v := values.Get("include_paths"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return q, fmt.Errorf("invalid include_paths %q: %w", v, err)
		}
		q.includePaths = b
	}

	if p.PathCount > s.cfg.MaxPaths {
		return q, fmt.Errorf("paths %d exceeds limit %d", p.PathCount, s.cfg.MaxPaths)
	}
	if p.HorizonDays > s.cfg.MaxDays {
		return q, fmt.Errorf("days %d exceeds limit %d", p.HorizonDays, s.cfg.MaxDays)
	}
	if err := p.Validate(); err != nil {
		return q, err
	}
	return q, s.checkSamples(*p)
}

// checkSamples rejects ensembles larger than MaxSamples. Call after Validate
// so the counts are non-negative.
func (s *Server) checkSamples(p calculation.SimulationParams) error {
	samples := int64(p.PathCount) * int64(p.HorizonDays+1)
	if samples > int64(s.cfg.MaxSamples) {
		return fmt.Errorf("paths*(days+1) = %d exceeds limit %d", samples, s.cfg.MaxSamples)
	}
	return nil
}

func (s *Server) project(q projectionQuery) (*calculation.ProjectionResult, error) {
	sim := calculation.NewNetWorthSimulator()
	sim.Workers = s.cfg.Workers
	sim.SeedMode = q.mode
	sim.Logger = logging.NewAdapter(s.logger)
	return sim.Project(q.params)
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseProjectionQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := s.project(q)
	if err != nil {
		s.writeProjectionError(w, err)
		return
	}
	if !q.includePaths {
		result = result.WithoutPaths()
	}
	s.writeJSON(w, result)
}

func (s *Server) handleDemo(w http.ResponseWriter, r *http.Request) {
	years := 1
	if v := r.URL.Query().Get("years"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > maxDemoYears {
			http.Error(w, fmt.Sprintf("years must be an integer between 0 and %d", maxDemoYears), http.StatusBadRequest)
			return
		}
		years = n
	}
	params := calculation.DemoParams(years)
	params.PathCount = min(params.PathCount, s.cfg.MaxPaths)
	if err := s.checkSamples(params); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.project(projectionQuery{params: params, mode: calculation.SeedShared})
	if err != nil {
		s.writeProjectionError(w, err)
		return
	}
	s.writeJSON(w, result.WithoutPaths())
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseProjectionQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	key := q.cacheKey()
	img, ok := s.charts.Get(key)
	if !ok {
		result, err := s.project(q)
		if err != nil {
			s.writeProjectionError(w, err)
			return
		}
		img, err = output.RenderBandChart("Net worth projection", result.QuantileBand, time.Time{})
		if errors.Is(err, output.ErrChartTooShort) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err != nil {
			s.logger.Error("chart render failed", "error", err)
			http.Error(w, "render error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		s.charts.Set(key, img)
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(img)
}

func (s *Server) writeProjectionError(w http.ResponseWriter, err error) {
	if errors.Is(err, calculation.ErrInvalidParameter) || errors.Is(err, calculation.ErrNonFiniteValue) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.logger.Error("projection failed", "error", err)
	http.Error(w, "projection error: "+err.Error(), http.StatusInternalServerError)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
