// Package telemetry wires OpenTelemetry meter and tracer providers from the
// daemon's telemetry configuration.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/hazz-dev/selfmon/internal/config"
	"github.com/hazz-dev/selfmon/internal/version"
)

// Provider exposes the configured telemetry primitives.
type Provider struct {
	Meter  metric.Meter
	Tracer trace.Tracer

	// MetricsHandler serves the Prometheus exposition format. It is nil
	// unless the prometheus metrics exporter is selected.
	MetricsHandler http.Handler

	meterProvider  *sdkmetric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
}

// Setup builds meter and tracer providers for the selected exporters.
// "none" yields no-op instruments.
func Setup(ctx context.Context, cfg config.TelemetryConfig, serviceName string) (*Provider, error) {
	p := &Provider{
		Meter:  metricnoop.NewMeterProvider().Meter(serviceName),
		Tracer: tracenoop.NewTracerProvider().Tracer(serviceName),
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version.Version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	if cfg.Metrics != "" && cfg.Metrics != "none" {
		reg := promclient.NewRegistry()
		reader, err := newMetricsReader(ctx, cfg.Metrics, reg)
		if err != nil {
			return nil, err
		}
		p.meterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(reader),
		)
		p.Meter = p.meterProvider.Meter(serviceName)

		if cfg.Metrics == "prometheus" {
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			p.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
		}
	}

	if cfg.Tracing != "" && cfg.Tracing != "none" {
		exp, err := newSpanExporter(ctx, cfg.Tracing)
		if err != nil {
			_ = p.Shutdown(ctx)
			return nil, err
		}
		p.tracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithResource(res),
			sdktrace.WithBatcher(exp),
		)
		p.Tracer = p.tracerProvider.Tracer(serviceName)
	}

	return p, nil
}

// Shutdown flushes and stops the providers. It is safe to call on a
// provider built with no exporters.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	if p.tracerProvider != nil {
		if err := p.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}
