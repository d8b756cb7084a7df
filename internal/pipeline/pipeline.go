// Package pipeline runs a whole mirror pass: it allocates the output root,
// walks the input tree, segments every supported file on a bounded worker
// pool and aggregates the results.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/julianshen/archmirror/internal/cache"
	"github.com/julianshen/archmirror/internal/segment"
	"github.com/julianshen/archmirror/internal/summary"
	"github.com/julianshen/archmirror/internal/walker"
)

// Options configures a run.
type Options struct {
	// Root is the existing directory to mirror.
	Root string
	// OutputParent is where the output root is created. Empty means the
	// parent of Root, making the output a sibling of the input.
	OutputParent string
	// Concurrency caps simultaneous file units. Zero or less means
	// runtime.GOMAXPROCS(0).
	Concurrency int
	Order       summary.Order
	// Registry is the dispatch table. Nil means segment.DefaultRegistry().
	Registry *segment.Registry
	// Cache memoizes segmenter output across runs. Optional.
	Cache                *cache.Cache
	TolerateSyntaxErrors bool
	// Progress receives one line per stage. Nil means silent.
	Progress io.Writer

	// readFile loads a source file; nil means os.ReadFile.
	readFile func(name string) ([]byte, error)
}

// Result summarizes a completed run.
type Result struct {
	Root       string
	OutputRoot string
	Discovered int
	Classified int
	Processed  int
	Cached     int
	Failed     int
	Languages  map[string]int
	Failures   []*FileError
	Duration   time.Duration
}

// Skipped is the number of discovered files without a segmenter.
func (r *Result) Skipped() int {
	return r.Discovered - r.Classified
}

// Run mirrors opts.Root. Only a bad root or a failure to create the output
// root (or its summary files) is returned as an error; every file-level
// failure is recorded in the error log and in Result.Failures.
//
// File units are not cancellable: once started, a run processes every
// classified file. ctx only carries values to the units.
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	registry := opts.Registry
	if registry == nil {
		registry = segment.DefaultRegistry()
	}
	segmenters, err := buildSegmenters(opts.TolerateSyntaxErrors)
	if err != nil {
		return nil, err
	}

	parent := opts.OutputParent
	if parent == "" {
		parent = filepath.Dir(root)
	}
	outRoot, err := AllocateOutputRoot(parent)
	if err != nil {
		return nil, err
	}
	agg, err := summary.Open(outRoot, opts.Order)
	if err != nil {
		return nil, fmt.Errorf("output root %s: %w", outRoot, err)
	}

	progress(opts.Progress, "scanning %s...", root)
	agg.Tree(strings.TrimRight(walker.RenderTree(root), "\n"))

	files, err := walker.Walk(root, registry, walker.Options{
		OnError: func(path string, err error) {
			log.Printf("pipeline: skipping unreadable directory %q: %v", path, err)
		},
	})
	if err != nil {
		agg.Close()
		return nil, fmt.Errorf("walk: %w", err)
	}

	result := &Result{
		Root:       root,
		OutputRoot: outRoot,
		Discovered: len(files),
		Languages:  make(map[string]int),
	}

	work := make([]walker.File, 0, len(files))
	for _, f := range walker.Supported(files) {
		if within(f.Path, outRoot) {
			continue
		}
		work = append(work, f)
	}
	result.Classified = len(work)

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	progress(opts.Progress, "segmenting %d of %d files with %d workers...", len(work), len(files), concurrency)

	readFile := opts.readFile
	if readFile == nil {
		readFile = os.ReadFile
	}
	unit := &unit{
		readFile:   readFile,
		outRoot:    outRoot,
		segmenters: segmenters,
		cache:      opts.Cache,
		agg:        agg,
	}
	unitCtx := context.WithoutCancel(ctx)

	p := pool.New().WithMaxGoroutines(concurrency)
	var mu sync.Mutex
	for _, f := range work {
		f := f
		p.Go(func() {
			out := unit.process(unitCtx, f)
			mu.Lock()
			defer mu.Unlock()
			if out.err != nil {
				result.Failed++
				result.Failures = append(result.Failures, out.err)
				return
			}
			result.Processed++
			result.Languages[f.Language.String()]++
			if out.cached {
				result.Cached++
			}
		})
	}
	p.Wait()

	if _, err := agg.Close(); err != nil {
		log.Printf("pipeline: closing summary files: %v", err)
	}

	sort.Slice(result.Failures, func(i, j int) bool { return result.Failures[i].Rel < result.Failures[j].Rel })
	result.Duration = time.Since(start)
	progress(opts.Progress, "done: %d processed, %d failed, %d skipped -> %s",
		result.Processed, result.Failed, result.Skipped(), outRoot)
	return result, nil
}

func buildSegmenters(tolerant bool) (map[segment.Language]segment.Segmenter, error) {
	var opts []segment.Option
	if tolerant {
		opts = append(opts, segment.WithSyntaxErrorsTolerated())
	}
	out := make(map[segment.Language]segment.Segmenter)
	for _, lang := range segment.Languages() {
		seg, err := segment.New(lang, opts...)
		if err != nil {
			return nil, fmt.Errorf("segmenter %s: %w", lang, err)
		}
		out[lang] = seg
	}
	return out, nil
}

// within reports whether path is dir or below it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func progress(w io.Writer, format string, args ...any) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, "archmirror: "+format+"\n", args...)
}
