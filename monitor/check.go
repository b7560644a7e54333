package monitor

import (
	"context"
	"fmt"
)

// Check performs one health verification. The returned value is reported
// under the check's name and must be JSON-serialisable.
type Check interface {
	Run(ctx context.Context) (any, error)
}

// CheckFunc adapts an ordinary function to Check.
type CheckFunc func(ctx context.Context) (any, error)

// Run calls f(ctx).
func (f CheckFunc) Run(ctx context.Context) (any, error) {
	return f(ctx)
}

// Schema is a JSON schema document.
type Schema map[string]any

// CheckDefinition names a Check and declares the shape of its result.
//
// Names should be unique. When two definitions share a name the later result
// replaces the earlier one in the report.
type CheckDefinition struct {
	Name         string
	Check        Check
	ResultSchema Schema
}

// CheckError reports the check that failed a run.
type CheckError struct {
	Name string
	Err  error
}

func (e *CheckError) Error() string {
	return fmt.Sprintf(`monitor check "%s" failed with: %s`, e.Name, e.Err.Error())
}

func (e *CheckError) Unwrap() error {
	return e.Err
}
