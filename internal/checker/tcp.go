package checker

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/hazz-dev/selfmon/internal/config"
)

type tcpChecker struct {
	cfg config.Check
}

func newTCPChecker(c config.Check) *tcpChecker {
	return &tcpChecker{cfg: c}
}

func (c *tcpChecker) Run(ctx context.Context) (any, error) {
	start := time.Now()

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", c.cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("dial tcp %s: %v", c.cfg.Target, err)
	}
	conn.Close()

	return map[string]any{
		"address":     c.cfg.Target,
		"response_ms": millis(time.Since(start)),
	}, nil
}
