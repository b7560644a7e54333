package monitor

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// DefaultPingResponse is answered by ping when nothing else is configured.
const DefaultPingResponse = "pong"

// MetadataOptions overrides build metadata. Empty fields are resolved from
// the working copy.
type MetadataOptions struct {
	Revision string
	Summary  string
}

// Options is the raw monitor configuration. Empty strings and nil slices mean
// "not set".
type Options struct {
	// App is reported as "app" in the status payload and omitted when empty.
	App          string
	PingResponse string
	Metadata     MetadataOptions
	Checks       []CheckDefinition
}

// Env holds environment-style overrides. Each one applies only when the
// matching Options field is empty.
type Env struct {
	PingResponse string
	Revision     string
	Summary      string
}

// Config is a validated, fully defaulted Options value.
type Config struct {
	App          string
	PingResponse string
	Metadata     MetadataOptions
	Checks       []CheckDefinition
}

// ValidationError reports the first invalid field of an Options value.
type ValidationError struct {
	// Path locates the field, e.g. "checks[2].run".
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid monitor config: %s %s", e.Path, e.Reason)
}

// Resolve validates opts and applies defaults and env overrides. It performs
// no I/O.
func Resolve(opts Options, env Env) (*Config, error) {
	cfg := &Config{
		App:          opts.App,
		PingResponse: firstNonEmpty(opts.PingResponse, env.PingResponse, DefaultPingResponse),
		Metadata: MetadataOptions{
			Revision: firstNonEmpty(opts.Metadata.Revision, env.Revision),
			Summary:  firstNonEmpty(opts.Metadata.Summary, env.Summary),
		},
		Checks: make([]CheckDefinition, 0, len(opts.Checks)),
	}

	for i, def := range opts.Checks {
		if def.Name == "" {
			return nil, required(i, "name")
		}
		if def.Check == nil {
			return nil, required(i, "run")
		}
		if def.ResultSchema == nil {
			return nil, required(i, "resultSchema")
		}
		if _, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(map[string]any(def.ResultSchema))); err != nil {
			return nil, &ValidationError{
				Path:   fmt.Sprintf("checks[%d].resultSchema", i),
				Reason: fmt.Sprintf("is not a valid schema: %v", err),
			}
		}
		cfg.Checks = append(cfg.Checks, def)
	}

	return cfg, nil
}

func required(i int, field string) *ValidationError {
	return &ValidationError{Path: fmt.Sprintf("checks[%d].%s", i, field), Reason: "is required"}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
