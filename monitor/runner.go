package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/hazz-dev/selfmon/monitor"

// RunChecks runs checks one at a time in order. It stops at the first failing
// check and returns a *CheckError naming it; no partial report is returned.
func RunChecks(ctx context.Context, checks []CheckDefinition) (*CheckReport, error) {
	r, err := newRunner(nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return r.run(ctx, checks)
}

type runner struct {
	tracer   trace.Tracer
	total    metric.Int64Counter
	errors   metric.Int64Counter
	duration metric.Float64Histogram
	logger   *slog.Logger
}

func newRunner(meter metric.Meter, tracer trace.Tracer, logger *slog.Logger) (*runner, error) {
	if meter == nil {
		meter = metricnoop.NewMeterProvider().Meter(instrumentationName)
	}
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer(instrumentationName)
	}
	if logger == nil {
		logger = slog.Default()
	}

	total, err := meter.Int64Counter(
		"monitor.check.total",
		metric.WithDescription("Total number of health check executions"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}
	errs, err := meter.Int64Counter(
		"monitor.check.errors",
		metric.WithDescription("Total number of failed health check executions"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram(
		"monitor.check.duration_ms",
		metric.WithDescription("Health check duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &runner{
		tracer:   tracer,
		total:    total,
		errors:   errs,
		duration: duration,
		logger:   logger,
	}, nil
}

func (r *runner) run(ctx context.Context, checks []CheckDefinition) (*CheckReport, error) {
	report := NewCheckReport()
	for _, def := range checks {
		result, err := r.runOne(ctx, def)
		if err != nil {
			return nil, &CheckError{Name: def.Name, Err: err}
		}
		report.Set(def.Name, result)
	}
	return report, nil
}

func (r *runner) runOne(ctx context.Context, def CheckDefinition) (any, error) {
	attrs := metric.WithAttributes(attribute.String("check.name", def.Name))
	ctx, span := r.tracer.Start(ctx, "monitor.check",
		trace.WithAttributes(attribute.String("check.name", def.Name)),
	)
	defer span.End()

	start := time.Now()
	result, err := invoke(ctx, def.Check)
	elapsed := time.Since(start)

	r.total.Add(ctx, 1, attrs)
	r.duration.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)

	if err != nil {
		r.errors.Add(ctx, 1, attrs)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.Debug("check failed", "check", def.Name, "duration", elapsed, "error", err)
		return nil, err
	}
	r.logger.Debug("check passed", "check", def.Name, "duration", elapsed)
	return result, nil
}

// invoke turns a panicking check into a failed one.
func invoke(ctx context.Context, c Check) (result any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return c.Run(ctx)
}
