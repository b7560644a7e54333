package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hazz-dev/selfmon/internal/config"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "*.yml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
	f.Close()
	return f.Name()
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeTemp(t, `
app: "billing"
ping_response: "alive"
metadata:
  revision: "abc123"
  summary: "release 1.2"
workdir: "/srv/billing"
server:
  address: ":9090"
log:
  level: "debug"
  format: "json"
telemetry:
  metrics: "prometheus"
  tracing: "stdout"
checks:
  - name: "api"
    type: "http"
    target: "https://example.com/health"
    expected_status: 204
    headers:
      Authorization: "Bearer token"
  - name: "jobs"
    type: "redis"
    target: "localhost:6379"
    key: "queue:jobs"
    result_schema:
      type: "object"
      properties:
        depth:
          type: "integer"
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App != "billing" {
		t.Errorf("expected app 'billing', got %q", cfg.App)
	}
	if cfg.PingResponse != "alive" {
		t.Errorf("expected ping_response 'alive', got %q", cfg.PingResponse)
	}
	if cfg.Metadata.Revision != "abc123" || cfg.Metadata.Summary != "release 1.2" {
		t.Errorf("unexpected metadata: %+v", cfg.Metadata)
	}
	if cfg.WorkDir != "/srv/billing" {
		t.Errorf("unexpected workdir: %q", cfg.WorkDir)
	}
	if cfg.Server.Address != ":9090" {
		t.Errorf("unexpected address: %q", cfg.Server.Address)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
	if cfg.Telemetry.Metrics != "prometheus" || cfg.Telemetry.Tracing != "stdout" {
		t.Errorf("unexpected telemetry config: %+v", cfg.Telemetry)
	}
	if len(cfg.Checks) != 2 {
		t.Fatalf("expected 2 checks, got %d", len(cfg.Checks))
	}
	if cfg.Checks[0].ExpectedStatus != 204 {
		t.Errorf("expected expected_status 204, got %d", cfg.Checks[0].ExpectedStatus)
	}
	if cfg.Checks[0].Headers["Authorization"] != "Bearer token" {
		t.Errorf("expected Authorization header, got %v", cfg.Checks[0].Headers)
	}
	if cfg.Checks[1].Key != "queue:jobs" {
		t.Errorf("expected key 'queue:jobs', got %q", cfg.Checks[1].Key)
	}
	if cfg.Checks[1].ResultSchema["type"] != "object" {
		t.Errorf("expected result_schema type object, got %v", cfg.Checks[1].ResultSchema)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeTemp(t, `
checks:
  - name: "api"
    type: "http"
    target: "https://example.com/health"
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Checks[0].ExpectedStatus != 200 {
		t.Errorf("expected default expected_status 200, got %d", cfg.Checks[0].ExpectedStatus)
	}
	if cfg.Server.Address != ":8080" {
		t.Errorf("expected default address :8080, got %q", cfg.Server.Address)
	}
	if cfg.WorkDir != "." {
		t.Errorf("expected default workdir '.', got %q", cfg.WorkDir)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("unexpected default log config: %+v", cfg.Log)
	}
	if cfg.Telemetry.Metrics != "none" || cfg.Telemetry.Tracing != "none" {
		t.Errorf("unexpected default telemetry config: %+v", cfg.Telemetry)
	}
	if cfg.PingResponse != "" {
		t.Errorf("ping_response should be left for the monitor to default, got %q", cfg.PingResponse)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	cfg, err := config.Parse([]byte(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Checks) != 0 {
		t.Errorf("expected no checks, got %d", len(cfg.Checks))
	}
}

func TestLoad_MissingName(t *testing.T) {
	path := writeTemp(t, `
checks:
  - type: "http"
    target: "https://example.com"
`)
	_, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error for missing name, got nil")
	}
	if !strings.Contains(err.Error(), "checks[0].name") {
		t.Errorf("error should mention 'checks[0].name': %v", err)
	}
}

func TestLoad_MissingTarget(t *testing.T) {
	path := writeTemp(t, `
checks:
  - name: "api"
    type: "http"
`)
	_, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error for missing target, got nil")
	}
	if !strings.Contains(err.Error(), "checks[0].target") {
		t.Errorf("error should mention 'checks[0].target': %v", err)
	}
}

func TestLoad_InvalidType(t *testing.T) {
	path := writeTemp(t, `
checks:
  - name: "api"
    type: "ftp"
    target: "ftp://example.com"
`)
	_, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error for invalid type, got nil")
	}
	if !strings.Contains(err.Error(), "type") {
		t.Errorf("error should mention 'type': %v", err)
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	path := writeTemp(t, `
log:
  level: "loud"
`)
	_, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error for invalid log level, got nil")
	}
	if !strings.Contains(err.Error(), "log.level") {
		t.Errorf("error should mention 'log.level': %v", err)
	}
}

func TestLoad_InvalidExporter(t *testing.T) {
	path := writeTemp(t, `
telemetry:
  tracing: "prometheus"
`)
	_, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error for invalid tracing exporter, got nil")
	}
	if !strings.Contains(err.Error(), "telemetry.tracing") {
		t.Errorf("error should mention 'telemetry.tracing': %v", err)
	}
}

func TestLoad_DuplicateNamesAllowed(t *testing.T) {
	path := writeTemp(t, `
checks:
  - name: "api"
    type: "http"
    target: "https://example.com"
  - name: "api"
    type: "tcp"
    target: "example.com:80"
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dups := cfg.DuplicateNames()
	if len(dups) != 1 || dups[0] != "api" {
		t.Errorf("expected duplicate 'api', got %v", dups)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestLoad_AllCheckTypes(t *testing.T) {
	path := writeTemp(t, `
checks:
  - name: "http-check"
    type: "http"
    target: "https://example.com"
  - name: "tcp-check"
    type: "tcp"
    target: "example.com:80"
  - name: "ping-check"
    type: "ping"
    target: "8.8.8.8"
  - name: "docker-check"
    type: "docker"
    target: "my-container"
  - name: "sqlite-check"
    type: "sqlite"
    target: "app.db"
  - name: "redis-check"
    type: "redis"
    target: "localhost:6379"
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Checks) != 6 {
		t.Fatalf("expected 6 checks, got %d", len(cfg.Checks))
	}
}

func TestEnv(t *testing.T) {
	vars := map[string]string{
		"PING_RESPONSE": "alive",
		"BUILD_COMMIT":  "deadbeef",
	}
	env := config.Env(func(k string) string { return vars[k] })

	if env.PingResponse != "alive" {
		t.Errorf("expected ping override 'alive', got %q", env.PingResponse)
	}
	if env.Revision != "deadbeef" {
		t.Errorf("expected revision override 'deadbeef', got %q", env.Revision)
	}
	if env.Summary != "" {
		t.Errorf("expected empty summary override, got %q", env.Summary)
	}
}
