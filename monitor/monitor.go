package monitor

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Monitor answers ping and status requests. It is safe for concurrent use and
// never changes after New returns.
type Monitor struct {
	cfg      *Config
	metadata Metadata
	runner   *runner
	stats    func() ProcessStats
	logger   *slog.Logger
}

type settings struct {
	env     Env
	source  RevisionSource
	workDir string
	logger  *slog.Logger
	meter   metric.Meter
	tracer  trace.Tracer
	stats   func() ProcessStats
}

// Option customises New.
type Option func(*settings)

// WithEnv supplies environment-style overrides.
func WithEnv(env Env) Option {
	return func(s *settings) { s.env = env }
}

// WithRevisionSource replaces the git lookup used for unset metadata.
func WithRevisionSource(src RevisionSource) Option {
	return func(s *settings) { s.source = src }
}

// WithWorkDir sets the git working copy metadata is read from. Default is the
// current directory.
func WithWorkDir(dir string) Option {
	return func(s *settings) { s.workDir = dir }
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithMeter records check metrics on meter.
func WithMeter(meter metric.Meter) Option {
	return func(s *settings) { s.meter = meter }
}

// WithTracer wraps each check execution in a span from tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *settings) { s.tracer = tracer }
}

// WithProcessStats replaces the reader of process statistics.
func WithProcessStats(fn func() ProcessStats) Option {
	return func(s *settings) { s.stats = fn }
}

// New validates opts and resolves metadata. A *ValidationError means the
// monitor must not be served.
func New(ctx context.Context, opts Options, options ...Option) (*Monitor, error) {
	s := settings{stats: currentProcess}
	for _, o := range options {
		o(&s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.source == nil {
		s.source = NewGitSource(s.workDir)
	}

	cfg, err := Resolve(opts, s.env)
	if err != nil {
		return nil, err
	}

	r, err := newRunner(s.meter, s.tracer, s.logger)
	if err != nil {
		return nil, fmt.Errorf("creating check instruments: %w", err)
	}

	m := &Monitor{
		cfg:      cfg,
		metadata: ResolveMetadata(ctx, cfg.Metadata, s.source, s.logger),
		runner:   r,
		stats:    s.stats,
		logger:   s.logger,
	}
	m.logger.Info("monitor ready",
		"checks", len(cfg.Checks),
		"revision", m.metadata.Revision,
	)
	return m, nil
}

// Ping runs every check and returns the ping response. A failing check fails
// the ping as well.
func (m *Monitor) Ping(ctx context.Context) (string, error) {
	if _, err := m.runner.run(ctx, m.cfg.Checks); err != nil {
		return "", err
	}
	return m.cfg.PingResponse, nil
}

// Status runs every check and reports them together with process statistics
// and build metadata.
func (m *Monitor) Status(ctx context.Context) (*StatusPayload, error) {
	report, err := m.runner.run(ctx, m.cfg.Checks)
	if err != nil {
		return nil, err
	}
	return assembleStatus(m.cfg, m.stats(), m.metadata, report), nil
}

// Metadata returns the metadata resolved by New.
func (m *Monitor) Metadata() Metadata {
	return m.metadata
}

// Config returns a copy of the resolved configuration.
func (m *Monitor) Config() Config {
	cfg := *m.cfg
	cfg.Checks = append([]CheckDefinition(nil), m.cfg.Checks...)
	return cfg
}

// ResponseSchema returns the JSON schema of a successful status response.
func (m *Monitor) ResponseSchema() Schema {
	return ResponseSchema(m.cfg)
}
