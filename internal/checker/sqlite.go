package checker

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hazz-dev/selfmon/internal/config"
)

// sqliteChecker verifies that a SQLite database file can be opened and read.
type sqliteChecker struct {
	cfg config.Check
}

func newSQLiteChecker(c config.Check) *sqliteChecker {
	return &sqliteChecker{cfg: c}
}

func (c *sqliteChecker) Run(ctx context.Context) (any, error) {
	start := time.Now()

	// sql.Open would create a missing file.
	if _, err := os.Stat(c.cfg.Target); err != nil {
		return nil, fmt.Errorf("opening sqlite at %q: %w", c.cfg.Target, err)
	}

	db, err := sql.Open("sqlite", c.cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite at %q: %w", c.cfg.Target, err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA query_only=ON"); err != nil {
		return nil, fmt.Errorf("applying pragma: %w", err)
	}

	var version string
	var tables int64
	err = db.QueryRowContext(ctx,
		`SELECT sqlite_version(), (SELECT COUNT(*) FROM sqlite_master WHERE type = 'table')`,
	).Scan(&version, &tables)
	if err != nil {
		return nil, fmt.Errorf("querying %q: %w", c.cfg.Target, err)
	}

	return map[string]any{
		"version":     version,
		"tables":      tables,
		"response_ms": millis(time.Since(start)),
	}, nil
}
