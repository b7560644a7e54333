// Package checker provides the built-in health checks configurable from YAML.
package checker

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/hazz-dev/selfmon/internal/config"
	"github.com/hazz-dev/selfmon/monitor"
)

// New returns the monitor check definition for the given check configuration.
// The result schema defaults to the one declared for the check's type.
func New(c config.Check) (monitor.CheckDefinition, error) {
	var chk monitor.Check
	switch c.Type {
	case "http":
		chk = newHTTPChecker(c)
	case "tcp":
		chk = newTCPChecker(c)
	case "ping":
		chk = newPingChecker(c)
	case "docker":
		chk = newDockerChecker(c)
	case "sqlite":
		chk = newSQLiteChecker(c)
	case "redis":
		r, err := newRedisChecker(c)
		if err != nil {
			return monitor.CheckDefinition{}, err
		}
		chk = r
	default:
		return monitor.CheckDefinition{}, fmt.Errorf("unknown checker type %q", c.Type)
	}

	schema := monitor.Schema(c.ResultSchema)
	if schema == nil {
		schema = DefaultSchema(c.Type)
	}
	return monitor.CheckDefinition{Name: c.Name, Check: chk, ResultSchema: schema}, nil
}

// NewAll builds definitions for every check, in order.
func NewAll(checks []config.Check) ([]monitor.CheckDefinition, error) {
	defs := make([]monitor.CheckDefinition, 0, len(checks))
	for i, c := range checks {
		def, err := New(c)
		if err != nil {
			return nil, fmt.Errorf("checks[%d]: %w", i, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// CloseAll releases resources held by checks that keep connections open.
func CloseAll(defs []monitor.CheckDefinition) error {
	var errs []error
	for _, def := range defs {
		if c, ok := def.Check.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing check %q: %w", def.Name, err))
			}
		}
	}
	return errors.Join(errs...)
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
