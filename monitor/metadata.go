package monitor

import (
	"context"
	"log/slog"
)

// NotAvailable stands in for metadata that could not be resolved.
const NotAvailable = "n/a"

// Metadata identifies the build that is running.
type Metadata struct {
	Revision string `json:"revision"`
	Summary  string `json:"summary"`
}

// RevisionSource looks up the current revision id and its one-line summary.
type RevisionSource interface {
	Revision(ctx context.Context) (string, error)
	Summary(ctx context.Context) (string, error)
}

// ResolveMetadata fills each field from opts, falling back to src and then to
// NotAvailable. The fields are resolved independently and failures are only
// logged.
func ResolveMetadata(ctx context.Context, opts MetadataOptions, src RevisionSource, logger *slog.Logger) Metadata {
	if logger == nil {
		logger = slog.Default()
	}
	return Metadata{
		Revision: resolveField(ctx, logger, "revision", opts.Revision, src, RevisionSource.Revision),
		Summary:  resolveField(ctx, logger, "summary", opts.Summary, src, RevisionSource.Summary),
	}
}

func resolveField(
	ctx context.Context,
	logger *slog.Logger,
	field, configured string,
	src RevisionSource,
	lookup func(RevisionSource, context.Context) (string, error),
) string {
	if configured != "" {
		return configured
	}
	if src == nil {
		return NotAvailable
	}
	v, err := lookup(src, ctx)
	if err != nil {
		logger.Debug("metadata unavailable", "field", field, "error", err)
		return NotAvailable
	}
	if v == "" {
		return NotAvailable
	}
	return v
}
