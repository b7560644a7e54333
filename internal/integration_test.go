package integration_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/hazz-dev/selfmon/internal/checker"
	"github.com/hazz-dev/selfmon/internal/config"
	"github.com/hazz-dev/selfmon/internal/server"
	"github.com/hazz-dev/selfmon/internal/telemetry"
	"github.com/hazz-dev/selfmon/monitor"
)

// TestIntegration_FullFlow verifies the complete pipeline:
// YAML config → checker → monitor → server → API
func TestIntegration_FullFlow(t *testing.T) {
	// 1. Start a fake HTTP target service
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer target.Close()

	// 2. Create a SQLite database for the sqlite check
	dbPath := filepath.Join(t.TempDir(), "app.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE jobs (id INTEGER PRIMARY KEY)`); err != nil {
		t.Fatalf("creating table: %v", err)
	}
	db.Close()

	// 3. Parse config
	cfg, err := config.Parse([]byte(fmt.Sprintf(`
app: billing
metadata:
  revision: abc123
  summary: initial import
telemetry:
  metrics: prometheus
checks:
  - name: api
    type: http
    target: %s
  - name: db
    type: sqlite
    target: %s
`, target.URL, dbPath)))
	if err != nil {
		t.Fatalf("parsing config: %v", err)
	}

	// 4. Build checks, telemetry and monitor
	defs, err := checker.NewAll(cfg.Checks)
	if err != nil {
		t.Fatalf("building checks: %v", err)
	}
	defer checker.CloseAll(defs)

	ctx := context.Background()
	tel, err := telemetry.Setup(ctx, cfg.Telemetry, cfg.App)
	if err != nil {
		t.Fatalf("telemetry: %v", err)
	}
	defer tel.Shutdown(ctx)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mon, err := monitor.New(ctx, monitor.Options{
		App:      cfg.App,
		Metadata: monitor.MetadataOptions{Revision: cfg.Metadata.Revision, Summary: cfg.Metadata.Summary},
		Checks:   defs,
	}, monitor.WithLogger(logger), monitor.WithMeter(tel.Meter), monitor.WithTracer(tel.Tracer))
	if err != nil {
		t.Fatalf("monitor: %v", err)
	}

	// 5. Serve through the daemon router
	srv := httptest.NewServer(server.New(mon, cfg.Checks, tel.MetricsHandler, logger).Router())
	defer srv.Close()

	// 6. Ping
	resp, err := http.Get(srv.URL + monitor.PingPath)
	if err != nil {
		t.Fatalf("GET ping: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "pong" {
		t.Fatalf("expected 200 pong, got %d %q", resp.StatusCode, body)
	}

	// 7. Status
	resp, err = http.Get(srv.URL + monitor.StatusPath)
	if err != nil {
		t.Fatalf("GET status: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var status struct {
		App      string `json:"app"`
		Metadata struct {
			Revision string `json:"revision"`
			Summary  string `json:"summary"`
		} `json:"metadata"`
		Checks map[string]map[string]any `json:"checks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if status.App != "billing" {
		t.Errorf("expected app 'billing', got %q", status.App)
	}
	if status.Metadata.Revision != "abc123" || status.Metadata.Summary != "initial import" {
		t.Errorf("unexpected metadata: %+v", status.Metadata)
	}
	if status.Checks["api"]["status"] != float64(200) {
		t.Errorf("expected api status 200, got %v", status.Checks["api"])
	}
	if status.Checks["db"]["tables"] != float64(1) {
		t.Errorf("expected 1 table, got %v", status.Checks["db"])
	}

	// 8. Check metrics were recorded
	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET metrics: %v", err)
	}
	metrics, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(metrics), "monitor_check_total") {
		t.Errorf("expected check counter in metrics, got:\n%s", metrics)
	}
}

// TestIntegration_FailingCheck verifies that a failing dependency turns both
// endpoints into 500 responses naming the check.
func TestIntegration_FailingCheck(t *testing.T) {
	cfg, err := config.Parse([]byte(`
checks:
  - name: db
    type: sqlite
    target: /nonexistent/app.db
`))
	if err != nil {
		t.Fatalf("parsing config: %v", err)
	}
	defs, err := checker.NewAll(cfg.Checks)
	if err != nil {
		t.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mon, err := monitor.New(context.Background(), monitor.Options{
		Metadata: monitor.MetadataOptions{Revision: "abc123", Summary: "initial import"},
		Checks:   defs,
	}, monitor.WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(server.New(mon, cfg.Checks, nil, logger).Router())
	defer srv.Close()

	for _, path := range []string{monitor.PingPath, monitor.StatusPath} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		var failure struct {
			Message string `json:"message"`
		}
		json.NewDecoder(resp.Body).Decode(&failure)
		resp.Body.Close()

		if resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("%s: expected 500, got %d", path, resp.StatusCode)
		}
		if !strings.HasPrefix(failure.Message, `monitor check "db" failed with: `) {
			t.Errorf("%s: unexpected message %q", path, failure.Message)
		}
	}
}
