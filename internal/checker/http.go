package checker

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hazz-dev/selfmon/internal/config"
)

type httpChecker struct {
	cfg    config.Check
	client *http.Client
}

func newHTTPChecker(c config.Check) *httpChecker {
	return &httpChecker{cfg: c, client: &http.Client{}}
}

func (c *httpChecker) Run(ctx context.Context) (any, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, v := range c.cfg.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	resp.Body.Close()

	expected := c.cfg.ExpectedStatus
	if expected == 0 {
		expected = http.StatusOK
	}
	if resp.StatusCode != expected {
		return nil, fmt.Errorf("expected status %d, got %d", expected, resp.StatusCode)
	}

	return map[string]any{
		"status":      resp.StatusCode,
		"response_ms": millis(time.Since(start)),
	}, nil
}
