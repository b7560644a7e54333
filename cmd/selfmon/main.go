package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazz-dev/selfmon/internal/checker"
	"github.com/hazz-dev/selfmon/internal/config"
	"github.com/hazz-dev/selfmon/internal/server"
	"github.com/hazz-dev/selfmon/internal/telemetry"
	"github.com/hazz-dev/selfmon/internal/version"
	"github.com/hazz-dev/selfmon/monitor"
)

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "selfmon",
		Short:        "Liveness and status endpoints for a running service",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "config.yml", "config file path")

	root.AddCommand(versionCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(checkCmd())
	root.AddCommand(statusCmd())
	root.AddCommand(schemaCmd())

	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "selfmon %s (commit %s, built %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the ping and status endpoints",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	// 1. Load config
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Log)
	slog.SetDefault(logger)
	logger.Info("config loaded", "checks", len(cfg.Checks))

	// 2. Signal context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// 3. Telemetry
	tel, err := telemetry.Setup(ctx, cfg.Telemetry, serviceName(cfg))
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown", "error", err)
		}
	}()

	// 4. Build monitor
	mon, defs, err := buildMonitor(ctx, cfg, logger,
		monitor.WithMeter(tel.Meter),
		monitor.WithTracer(tel.Tracer),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := checker.CloseAll(defs); err != nil {
			logger.Error("closing checks", "error", err)
		}
	}()

	// 5. Build HTTP server
	srv := server.New(mon, cfg.Checks, tel.MetricsHandler, logger)
	httpServer := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: srv.Router(),
	}

	// 6. Start HTTP server in background
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "address", cfg.Server.Address)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// 7. Wait for signal or server error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("HTTP server: %w", err)
	}

	// 8. Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run all configured checks once and print the results",
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Log)

	mon, defs, err := buildMonitor(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer checker.CloseAll(defs)

	return executeCheck(cmd, mon)
}

func statusCmd() *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Fetch the status report of a running instance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeStatus(cmd, http.DefaultClient, url)
		},
	}
	cmd.Flags().StringVar(&url, "url", "http://localhost:8080", "base URL of the running instance")
	return cmd
}

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the status response",
		RunE:  runSchema,
	}
}

func runSchema(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Log)

	mon, defs, err := buildMonitor(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer checker.CloseAll(defs)

	return writeSchema(cmd.OutOrStdout(), mon)
}

func serviceName(cfg *config.Config) string {
	if cfg.App != "" {
		return cfg.App
	}
	return "selfmon"
}
