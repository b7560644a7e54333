package monitor

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Route paths.
const (
	PingPath   = "/_monitor/ping"
	StatusPath = "/_monitor/status"
)

// Routes registers the ping and status handlers on r.
func (m *Monitor) Routes(r chi.Router) {
	r.Get(PingPath, m.handlePing)
	r.Get(StatusPath, m.handleStatus)
}

// Handler returns a router serving only the monitor routes.
func (m *Monitor) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	m.Routes(r)
	return r
}

type failure struct {
	Message string `json:"message"`
}

func (m *Monitor) handlePing(w http.ResponseWriter, r *http.Request) {
	pong, err := m.Ping(r.Context())
	if err != nil {
		m.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(pong))
}

func (m *Monitor) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := m.Status(r.Context())
	if err != nil {
		m.fail(w, r, err)
		return
	}
	body, err := json.Marshal(status)
	if err != nil {
		m.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (m *Monitor) fail(w http.ResponseWriter, r *http.Request, err error) {
	m.logger.Error("monitor request failed", "path", r.URL.Path, "error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(failure{Message: err.Error()})
}
