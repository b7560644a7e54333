package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hazz-dev/selfmon/internal/config"
	"github.com/hazz-dev/selfmon/monitor"
)

// Server holds the chi router and its dependencies.
type Server struct {
	monitor *monitor.Monitor
	checks  []config.Check
	metrics http.Handler
	router  chi.Router
	logger  *slog.Logger
}

// New creates a new Server and registers all routes. metrics may be nil, in
// which case /metrics is not served.
func New(mon *monitor.Monitor, checks []config.Check, metrics http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		monitor: mon,
		checks:  checks,
		metrics: metrics,
		router:  chi.NewRouter(),
		logger:  logger,
	}
	s.registerRoutes()
	return s
}

// Router returns the chi router (for mounting or testing).
func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) registerRoutes() {
	r := s.router
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	s.monitor.Routes(r)

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/checks", s.handleListChecks)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
}

// --- Response helpers ---

type envelope struct {
	Data  interface{} `json:"data"`
	Error string      `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Data: data})
}

// --- Handlers ---

// handleHealth reports that the daemon itself is serving, without running checks.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

type checkDetail struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Target string `json:"target"`
}

func (s *Server) handleListChecks(w http.ResponseWriter, r *http.Request) {
	details := make([]checkDetail, 0, len(s.checks))
	for _, c := range s.checks {
		details = append(details, checkDetail{Name: c.Name, Type: c.Type, Target: c.Target})
	}
	writeJSON(w, http.StatusOK, details)
}

// --- Middleware ---

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start),
		)
	})
}
