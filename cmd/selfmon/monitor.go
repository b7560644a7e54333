package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hazz-dev/selfmon/internal/checker"
	"github.com/hazz-dev/selfmon/internal/config"
	"github.com/hazz-dev/selfmon/monitor"
)

// buildMonitor builds the configured checks and the monitor serving them.
// The returned definitions must be released with checker.CloseAll.
func buildMonitor(ctx context.Context, cfg *config.Config, logger *slog.Logger, extra ...monitor.Option) (*monitor.Monitor, []monitor.CheckDefinition, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	for _, name := range cfg.DuplicateNames() {
		logger.Warn("duplicate check name, later results overwrite earlier ones", "check", name)
	}

	defs, err := checker.NewAll(cfg.Checks)
	if err != nil {
		return nil, nil, fmt.Errorf("building checks: %w", err)
	}

	opts := monitor.Options{
		App:          cfg.App,
		PingResponse: cfg.PingResponse,
		Metadata: monitor.MetadataOptions{
			Revision: cfg.Metadata.Revision,
			Summary:  cfg.Metadata.Summary,
		},
		Checks: defs,
	}
	options := append([]monitor.Option{
		monitor.WithEnv(config.Env(os.Getenv)),
		monitor.WithWorkDir(cfg.WorkDir),
		monitor.WithLogger(logger),
	}, extra...)

	mon, err := monitor.New(ctx, opts, options...)
	if err != nil {
		checker.CloseAll(defs)
		return nil, nil, err
	}
	return mon, defs, nil
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
