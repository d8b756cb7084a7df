package integrations

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// GitRunner executes git commands in a working directory.
type GitRunner struct {
	workDir string
}

// NewGitRunner creates a GitRunner for the given directory.
func NewGitRunner(workDir string) *GitRunner {
	return &GitRunner{workDir: workDir}
}

// Clone makes a shallow, single-branch clone of url into dest. dest must not
// exist or must be empty.
func (g *GitRunner) Clone(ctx context.Context, url, dest string) error {
	_, err := g.run(ctx, "clone", "--depth", "1", "--single-branch", "--quiet", url, dest)
	return err
}

// Head returns the commit hash checked out in the working directory.
func (g *GitRunner) Head(ctx context.Context) (string, error) {
	out, err := g.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (g *GitRunner) run(ctx context.Context, args ...string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("git: no subcommand provided")
	}
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.workDir
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("git %s: %s", args[0], strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return string(out), nil
}
