package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vk/kmpgraph/internal/buildmodel"
	"github.com/vk/kmpgraph/internal/ctxlog"
	"github.com/zishang520/socket.io/v2/socket"
)

// ErrUnknownQuery is returned for malformed query requests.
var ErrUnknownQuery = errors.New("unknown query")

// Transport labels used in metrics.
const (
	SourceHTTP     = "http"
	SourceSocketIO = "socketio"
	SourceLocal    = "local"
)

// DefaultCacheSize is used when Options.CacheSize is not positive.
const DefaultCacheSize = 1024

// Options configures a Server.
type Options struct {
	// CacheSize bounds the number of cached query answers.
	CacheSize int
	// Registry receives the server's metrics and backs /metrics. A fresh
	// registry is created when nil.
	Registry *prometheus.Registry
}

type cacheKey struct {
	epoch      uint64
	generation uint64
	kind       buildmodel.Kind
	name       string
}

// Server answers relation queries against a swappable build model.
type Server struct {
	mu    sync.RWMutex
	model *buildmodel.Model
	// epoch counts SetModel calls; generations of different models are
	// not comparable.
	epoch uint64

	cache    *lru.Cache[cacheKey, []string]
	metrics  *metrics
	registry *prometheus.Registry
	io       *socket.Server
	handler  http.Handler
	ctx      context.Context
}

// New creates a server for model. ctx carries the logger used by request
// handlers.
func New(ctx context.Context, model *buildmodel.Model, opts Options) (*Server, error) {
	size := opts.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[cacheKey, []string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create query cache: %w", err)
	}

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	s := &Server{
		model:    model,
		cache:    cache,
		metrics:  newMetrics(reg),
		registry: reg,
		io:       socket.NewServer(nil, nil),
		ctx:      ctx,
	}
	s.observeModel(model)
	s.io.On("connection", s.onConnection)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/v1/snapshot", s.snapshotHandler)
	mux.HandleFunc("/v1/query", s.queryHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/socket.io/", s.io.ServeHandler(nil))
	s.handler = mux

	return s, nil
}

// Handler returns the HTTP handler serving every endpoint.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Model returns the model currently served.
func (s *Server) Model() *buildmodel.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// SetModel replaces the served model. Cached answers are dropped.
func (s *Server) SetModel(ctx context.Context, model *buildmodel.Model) {
	s.mu.Lock()
	s.model = model
	s.epoch++
	s.mu.Unlock()

	s.cache.Purge()
	s.metrics.reloads.Inc()
	s.observeModel(model)
	ctxlog.FromContext(ctx).Info("🔄 Served build model replaced.", "source_sets", len(model.SourceSets(ctx)))
}

// Query answers one relation query. rawKind is the textual kind, e.g.
// "depends-on-closure"; source labels the transport in metrics.
func (s *Server) Query(ctx context.Context, source, rawKind, name string) ([]string, error) {
	kind, err := buildmodel.ParseKind(rawKind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownQuery, err)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrUnknownQuery)
	}

	s.mu.RLock()
	model, epoch := s.model, s.epoch
	s.mu.RUnlock()

	start := time.Now()
	s.metrics.queries.WithLabelValues(kind.String(), source).Inc()
	defer func() {
		s.metrics.queryDuration.WithLabelValues(kind.String()).Observe(time.Since(start).Seconds())
	}()

	key := cacheKey{epoch: epoch, generation: model.Generation(), kind: kind, name: name}
	if items, ok := s.cache.Get(key); ok {
		s.metrics.cacheHits.Inc()
		return slices.Clone(items), nil
	}

	items, err := model.Query(ctx, kind, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownQuery, err)
	}
	s.cache.Add(key, slices.Clone(items))
	ctxlog.FromContext(ctx).Debug("Answered query.", "kind", kind, "name", name, "source", source, "items", len(items))
	return items, nil
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	logger := ctxlog.FromContext(ctx)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("🩺 Query server starting", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("query server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	logger.Info("🩺 Shutting down query server...")
	s.io.Close(nil)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Query server shutdown failed", "error", err)
		return err
	}
	logger.Debug("Query server shut down gracefully.")
	return nil
}

func (s *Server) observeModel(model *buildmodel.Model) {
	s.metrics.sourceSets.Set(float64(len(model.SourceSets(s.ctx))))
	s.metrics.edges.Set(float64(model.Stats().Edges))
}
