package integrations

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

var remotePrefixes = []string{"http://", "https://", "ssh://", "git://", "file://", "git@"}

// IsRemote reports whether input names a git remote rather than a local path.
func IsRemote(input string) bool {
	for _, p := range remotePrefixes {
		if strings.HasPrefix(input, p) {
			return true
		}
	}
	return false
}

// Canonicalize returns the absolute, symlink-resolved form of path. When
// symlinks cannot be resolved the absolute path is returned as is.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// Source is an input tree ready to be mirrored.
type Source struct {
	// Root is the canonical directory to walk.
	Root string
	// Remote is the URL the tree was cloned from, if any.
	Remote string
	// Commit is the cloned HEAD. Empty for local inputs.
	Commit string

	tmpDir string
}

// Acquire resolves input into a local directory. Remote inputs are cloned
// into a temporary directory that Close removes; local inputs must be
// existing directories.
func Acquire(ctx context.Context, input string) (*Source, error) {
	if !IsRemote(input) {
		root, err := Canonicalize(input)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", input, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("input %s is not a directory", input)
		}
		return &Source{Root: root}, nil
	}

	tmp, err := os.MkdirTemp("", "archmirror-clone-")
	if err != nil {
		return nil, fmt.Errorf("clone %s: %w", input, err)
	}
	dest := filepath.Join(tmp, repoName(input))
	if err := NewGitRunner(tmp).Clone(ctx, input, dest); err != nil {
		os.RemoveAll(tmp)
		return nil, fmt.Errorf("clone %s: %w", input, err)
	}
	src := &Source{Remote: input, tmpDir: tmp}
	if src.Root, err = Canonicalize(dest); err != nil {
		src.Close()
		return nil, err
	}
	if src.Commit, err = NewGitRunner(dest).Head(ctx); err != nil {
		log.Printf("integrations: reading HEAD of %s: %v", input, err)
	}
	return src, nil
}

// Close removes a cloned tree. It is a no-op for local inputs.
func (s *Source) Close() error {
	if s == nil || s.tmpDir == "" {
		return nil
	}
	err := os.RemoveAll(s.tmpDir)
	s.tmpDir = ""
	return err
}

// repoName derives a directory name from a clone URL so the mirror's tree
// header reads like the repository.
func repoName(url string) string {
	name := strings.TrimRight(url, "/")
	if i := strings.LastIndexAny(name, "/:"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".git")
	if name == "" || name == "." || name == ".." {
		return "repo"
	}
	return name
}
