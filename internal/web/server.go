// Package web serves the HTTP API in front of the orchestrator.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kryonis/lazysusan/internal/history"
	"github.com/kryonis/lazysusan/internal/intel"
	"github.com/kryonis/lazysusan/internal/orchestrator"
)

// Server hosts the council API.
type Server struct {
	orch     *orchestrator.Orchestrator
	feed     *intel.Feed
	history  *history.Store
	gatherer prometheus.Gatherer
	log      *zap.Logger
	port     int
	agents   int
	started  time.Time
}

// Config assembles a Server. Feed, History, and Gatherer are optional;
// their endpoints report unavailable when absent.
type Config struct {
	Orchestrator *orchestrator.Orchestrator
	Feed         *intel.Feed
	History      *history.Store
	Gatherer     prometheus.Gatherer
	Logger       *zap.Logger
	Port         int
	AgentCount   int
}

// NewServer creates a Server.
func NewServer(cfg Config) *Server {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		orch:     cfg.Orchestrator,
		feed:     cfg.Feed,
		history:  cfg.History,
		gatherer: cfg.Gatherer,
		log:      log,
		port:     cfg.Port,
		agents:   cfg.AgentCount,
		started:  time.Now(),
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/ask", s.handleAsk)
	mux.HandleFunc("POST /api/upload", s.handleUpload)
	mux.HandleFunc("GET /api/intel", s.handleIntel)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("GET /api/history/{id}", s.handleHistoryGet)
	mux.HandleFunc("GET /api/history/{id}/export", s.handleHistoryExport)
	mux.HandleFunc("GET /health", s.handleHealth)

	if s.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return s.withMiddleware(mux)
}

// Start runs the server until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	server := &http.Server{Addr: addr, Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	s.log.Info("server listening", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

func jsonResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
