package integrations

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGitRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()

	cmds := [][]string{
		{"git", "init"},
		{"git", "config", "user.email", "test@test.com"},
		{"git", "config", "user.name", "Test"},
	}

	for _, args := range cmds {
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "cmd %v failed: %s", args, string(out))
	}

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pkg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pkg", "foo.py"), []byte("def f():\n    return 1\n"), 0o644))
	cmd := exec.Command("git", "add", ".")
	cmd.Dir = dir
	require.NoError(t, cmd.Run())

	cmd = exec.Command("git", "commit", "-m", "initial commit")
	cmd.Dir = dir
	require.NoError(t, cmd.Run())

	return dir
}

func TestGitRunnerCloneAndHead(t *testing.T) {
	repo := setupGitRepo(t)
	dest := filepath.Join(t.TempDir(), "clone")

	require.NoError(t, NewGitRunner(t.TempDir()).Clone(context.Background(), "file://"+repo, dest))
	assert.FileExists(t, filepath.Join(dest, "pkg", "foo.py"))

	want, err := NewGitRunner(repo).Head(context.Background())
	require.NoError(t, err)
	got, err := NewGitRunner(dest).Head(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Len(t, got, 40)
}

func TestGitRunnerCloneFailure(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	err := NewGitRunner(t.TempDir()).Clone(context.Background(), "file:///definitely/not/a/repo", filepath.Join(t.TempDir(), "x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git clone")
}

func TestGitRunnerNoSubcommand(t *testing.T) {
	_, err := NewGitRunner(t.TempDir()).run(context.Background())
	assert.EqualError(t, err, "git: no subcommand provided")
}
