// Package command runs external programs behind an interface so callers can
// substitute them in tests.
package command

import (
	"context"
	"errors"
	"os/exec"
)

// Executor runs a command in dir and returns what it printed.
type Executor interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout, stderr []byte, err error)
}

// OS is the Executor backed by os/exec. An empty dir runs in the current
// working directory.
type OS struct{}

func (OS) Run(ctx context.Context, dir, name string, args ...string) (stdout, stderr []byte, err error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	stdout, err = cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr = exitErr.Stderr
	}
	return stdout, stderr, err
}
