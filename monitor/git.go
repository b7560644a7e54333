package monitor

import (
	"context"
	"fmt"
	"strings"

	"github.com/hazz-dev/selfmon/internal/command"
)

// GitSource reads metadata from the git working copy at Dir.
type GitSource struct {
	Dir      string
	Executor command.Executor
}

// NewGitSource returns a GitSource that shells out to the git binary.
func NewGitSource(dir string) *GitSource {
	return &GitSource{Dir: dir, Executor: command.OS{}}
}

// Revision returns the commit hash of HEAD.
func (g *GitSource) Revision(ctx context.Context) (string, error) {
	return g.git(ctx, "rev-parse", "HEAD")
}

// Summary returns the subject line of the last commit.
func (g *GitSource) Summary(ctx context.Context) (string, error) {
	return g.git(ctx, "log", "--pretty=format:%s", "-n", "1")
}

func (g *GitSource) git(ctx context.Context, args ...string) (string, error) {
	exec := g.Executor
	if exec == nil {
		exec = command.OS{}
	}
	stdout, stderr, err := exec.Run(ctx, g.Dir, "git", args...)
	if err != nil {
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			return "", fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return strings.TrimSpace(string(stdout)), nil
}
