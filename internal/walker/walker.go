// Package walker enumerates the files of a source tree and renders a pruned
// ASCII view of it.
package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/julianshen/archmirror/internal/segment"
)

// Classifier resolves a path to a language. segment.Registry satisfies it.
type Classifier interface {
	Lookup(path string) (segment.Language, bool)
}

// File is a regular file found under the walk root.
type File struct {
	Path      string // absolute
	Rel       string // relative to the root, slash separated
	Language  segment.Language
	Supported bool
}

// Options tunes a walk.
type Options struct {
	// OnError is called for directories that cannot be read. The walk skips
	// them and continues. Nil means ignore.
	OnError func(path string, err error)
}

// Walk returns every regular file under root, at any depth. No directory is
// excluded. Traversal uses an explicit stack so deep trees do not grow the
// goroutine stack. Files are returned in traversal order.
func Walk(root string, classify Classifier, opts Options) ([]File, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	var files []File
	stack := []string{root}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			if opts.OnError != nil {
				opts.OnError(dir, err)
			}
			continue
		}

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			switch {
			case entry.IsDir():
				stack = append(stack, path)
			case entry.Type().IsRegular():
				rel, err := filepath.Rel(root, path)
				if err != nil {
					return nil, err
				}
				f := File{Path: path, Rel: filepath.ToSlash(rel)}
				if classify != nil {
					f.Language, f.Supported = classify.Lookup(path)
				}
				files = append(files, f)
			}
		}
	}
	return files, nil
}

// Supported filters files down to the ones with a segmenter.
func Supported(files []File) []File {
	out := make([]File, 0, len(files))
	for _, f := range files {
		if f.Supported {
			out = append(out, f)
		}
	}
	return out
}

// SortByRel orders files by relative path.
func SortByRel(files []File) {
	sort.Slice(files, func(i, j int) bool { return files[i].Rel < files[j].Rel })
}
