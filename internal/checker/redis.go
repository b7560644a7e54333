package checker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hazz-dev/selfmon/internal/config"
)

// redisChecker pings a Redis server and, when a key is configured, reports
// the length of the list stored there as the queue depth.
type redisChecker struct {
	cfg    config.Check
	client *redis.Client
}

func newRedisChecker(c config.Check) (*redisChecker, error) {
	opts := &redis.Options{Addr: c.Target}
	if strings.Contains(c.Target, "://") {
		parsed, err := redis.ParseURL(c.Target)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	}
	return &redisChecker{cfg: c, client: redis.NewClient(opts)}, nil
}

func (c *redisChecker) Run(ctx context.Context) (any, error) {
	start := time.Now()

	pong, err := c.client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	result := map[string]any{"ping": pong}

	if c.cfg.Key != "" {
		depth, err := c.client.LLen(ctx, c.cfg.Key).Result()
		if err != nil {
			return nil, fmt.Errorf("redis llen %s: %w", c.cfg.Key, err)
		}
		result["depth"] = depth
	}

	result["response_ms"] = millis(time.Since(start))
	return result, nil
}

func (c *redisChecker) Close() error {
	return c.client.Close()
}
