package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/julianshen/archmirror/internal/cache"
	"github.com/julianshen/archmirror/internal/segment"
	"github.com/julianshen/archmirror/internal/summary"
	"github.com/julianshen/archmirror/internal/walker"
)

// unit holds what every file unit shares. All fields are read-only after
// construction; agg and cache are safe for concurrent use.
type unit struct {
	readFile   func(name string) ([]byte, error)
	outRoot    string
	segmenters map[segment.Language]segment.Segmenter
	cache      *cache.Cache
	agg        *summary.Aggregator
}

type outcome struct {
	cached bool
	err    *FileError
}

// process reads, segments, mirrors and summarizes one file. Failures are
// written to the error log and returned; they never reach sibling units.
func (u *unit) process(ctx context.Context, f walker.File) outcome {
	text, cached, ferr := u.simplify(ctx, f)
	if ferr == nil {
		ferr = u.mirror(f, text)
	}
	if ferr != nil {
		u.agg.Error(ferr.Error())
		return outcome{err: ferr}
	}
	u.agg.Entry(f.Rel, text)
	return outcome{cached: cached}
}

func (u *unit) simplify(ctx context.Context, f walker.File) (string, bool, *FileError) {
	source, err := u.readFile(f.Path)
	if err != nil {
		return "", false, &FileError{Kind: KindRead, Path: f.Path, Rel: f.Rel, Err: err}
	}

	var key cache.Key
	if u.cache != nil {
		key = cache.KeyFor(f.Language.String(), segment.RulesVersion, source)
		text, ok, err := u.cache.Get(key)
		if err != nil {
			log.Printf("pipeline: cache lookup for %s: %v", f.Rel, err)
		} else if ok {
			return text, true, nil
		}
	}

	seg, ok := u.segmenters[f.Language]
	if !ok {
		return "", false, &FileError{Kind: KindParse, Path: f.Path, Rel: f.Rel,
			Err: fmt.Errorf("no segmenter for %s", f.Language)}
	}
	text, err := seg.Simplify(ctx, source)
	if err != nil {
		return "", false, &FileError{Kind: KindParse, Path: f.Path, Rel: f.Rel, Err: err}
	}

	if u.cache != nil {
		if err := u.cache.Put(key, text); err != nil {
			log.Printf("pipeline: cache store for %s: %v", f.Rel, err)
		}
	}
	return text, false, nil
}

func (u *unit) mirror(f walker.File, text string) *FileError {
	dest := filepath.Join(u.outRoot, filepath.FromSlash(f.Rel))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return &FileError{Kind: KindMkdir, Path: f.Path, Rel: f.Rel, Err: err}
	}
	if err := os.WriteFile(dest, []byte(text), 0o644); err != nil {
		return &FileError{Kind: KindWrite, Path: f.Path, Rel: f.Rel, Err: err}
	}
	return nil
}
