// internal/output/formatter.go
package output

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianshen/archmirror/internal/pipeline"
)

// Report is the end-of-run record printed after the join barrier.
type Report struct {
	Input      string         `json:"input" yaml:"input"`
	Remote     string         `json:"remote,omitempty" yaml:"remote,omitempty"`
	Commit     string         `json:"commit,omitempty" yaml:"commit,omitempty"`
	Root       string         `json:"root" yaml:"root"`
	OutputRoot string         `json:"output_root" yaml:"output_root"`
	Discovered int            `json:"discovered" yaml:"discovered"`
	Skipped    int            `json:"skipped" yaml:"skipped"`
	Processed  int            `json:"processed" yaml:"processed"`
	Cached     int            `json:"cached" yaml:"cached"`
	Failed     int            `json:"failed" yaml:"failed"`
	Languages  map[string]int `json:"languages,omitempty" yaml:"languages,omitempty"`
	Failures   []Failure      `json:"failures,omitempty" yaml:"failures,omitempty"`
	DurationMs int64          `json:"duration_ms" yaml:"duration_ms"`
}

// Failure is one file-level error in a Report.
type Failure struct {
	Kind  string `json:"kind" yaml:"kind"`
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

// NewReport flattens a pipeline result. input is what the user passed on the
// command line; remote and commit are empty for local trees.
func NewReport(input, remote, commit string, res *pipeline.Result) *Report {
	r := &Report{
		Input:      input,
		Remote:     remote,
		Commit:     commit,
		Root:       res.Root,
		OutputRoot: res.OutputRoot,
		Discovered: res.Discovered,
		Skipped:    res.Skipped(),
		Processed:  res.Processed,
		Cached:     res.Cached,
		Failed:     res.Failed,
		Languages:  res.Languages,
		DurationMs: res.Duration.Milliseconds(),
	}
	for _, fe := range res.Failures {
		r.Failures = append(r.Failures, Failure{
			Kind:  fe.Kind.String(),
			Path:  fe.Rel,
			Error: fe.Err.Error(),
		})
	}
	return r
}

// Duration returns the run time.
func (r *Report) Duration() time.Duration {
	return time.Duration(r.DurationMs) * time.Millisecond
}

// sortedLanguages returns language ids in a stable order.
func (r *Report) sortedLanguages() []string {
	ids := make([]string, 0, len(r.Languages))
	for id := range r.Languages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Formatter formats a Report into output bytes.
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// NewFormatter returns the formatter registered under name.
func NewFormatter(name string) (Formatter, error) {
	switch strings.ToLower(name) {
	case "", "markdown", "md":
		return NewMarkdownFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	case "yaml", "yml":
		return NewYAMLFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown report format %q (want markdown, json or yaml)", name)
	}
}
