package checker

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/hazz-dev/selfmon/internal/command"
	"github.com/hazz-dev/selfmon/internal/config"
	"github.com/hazz-dev/selfmon/monitor"
)

type pingChecker struct {
	cfg      config.Check
	executor command.Executor
}

func newPingChecker(c config.Check) *pingChecker {
	return &pingChecker{cfg: c, executor: command.OS{}}
}

// NewPingCheckerWithExecutor creates a ping checker with a custom executor (for testing).
func NewPingCheckerWithExecutor(c config.Check, exec command.Executor) monitor.Check {
	return &pingChecker{cfg: c, executor: exec}
}

var rttRegex = regexp.MustCompile(`time=(\d+\.?\d*)\s*ms`)

func (c *pingChecker) Run(ctx context.Context) (any, error) {
	stdout, _, err := c.executor.Run(ctx, "", "ping", "-c", "1", c.cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("ping %s: %v", c.cfg.Target, err)
	}

	matches := rttRegex.FindSubmatch(stdout)
	if matches == nil {
		return nil, fmt.Errorf("could not parse RTT from ping output")
	}

	ms, err := strconv.ParseFloat(string(matches[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("parsing RTT %q: %w", matches[1], err)
	}
	return map[string]any{"rtt_ms": ms}, nil
}
