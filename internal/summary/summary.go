// Package summary owns the consolidated summary document and the error log
// of a run. A single writer goroutine drains a channel of records, so each
// append lands whole and no two appends interleave.
package summary

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const (
	// SummaryFile is the consolidated document under the output root.
	SummaryFile = "summary.txt"
	// ErrorFile is the append-only failure log under the output root.
	ErrorFile = "error.txt"
	// HeaderPrefix starts the header line of each summary entry.
	HeaderPrefix = "File: "
)

// Separator closes every summary entry.
var Separator = strings.Repeat("=", 80)

// Order decides how file entries are laid out in the summary.
type Order string

const (
	// OrderCompletion writes entries as workers finish them.
	OrderCompletion Order = "completion"
	// OrderPath buffers entries and writes them sorted by relative path on
	// Close.
	OrderPath Order = "path"
)

// ParseOrder validates an order name. Empty means OrderCompletion.
func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderCompletion:
		return OrderCompletion, nil
	case OrderPath:
		return OrderPath, nil
	default:
		return "", fmt.Errorf("unknown summary order %q (want %q or %q)", s, OrderCompletion, OrderPath)
	}
}

type recordKind int

const (
	recordTree recordKind = iota
	recordEntry
	recordError
)

type record struct {
	kind recordKind
	rel  string
	text string
}

// Stats counts what reached each sink.
type Stats struct {
	Entries       int
	Errors        int
	WriteFailures int
}

// Aggregator is the shared sink of a run. Tree, Entry and Error may be
// called from any goroutine until Close.
type Aggregator struct {
	order   Order
	records chan record
	done    chan struct{}

	summary *os.File
	errs    *os.File

	closeOnce sync.Once
	stats     Stats
	closeErr  error
}

// Open creates the summary and error files under dir and starts the writer.
func Open(dir string, order Order) (*Aggregator, error) {
	if order == "" {
		order = OrderCompletion
	}
	summaryFile, err := os.OpenFile(filepath.Join(dir, SummaryFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open summary: %w", err)
	}
	errFile, err := os.OpenFile(filepath.Join(dir, ErrorFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		summaryFile.Close()
		return nil, fmt.Errorf("open error log: %w", err)
	}

	a := &Aggregator{
		order:   order,
		records: make(chan record, 64),
		done:    make(chan struct{}),
		summary: summaryFile,
		errs:    errFile,
	}
	go a.run()
	return a, nil
}

// Tree appends the rendered directory tree.
func (a *Aggregator) Tree(tree string) {
	a.records <- record{kind: recordTree, text: tree}
}

// Entry appends one processed file.
func (a *Aggregator) Entry(rel, text string) {
	a.records <- record{kind: recordEntry, rel: rel, text: text}
}

// Error appends one file-level failure line.
func (a *Aggregator) Error(line string) {
	a.records <- record{kind: recordError, text: line}
}

// Close drains pending records, flushes buffered entries, closes both files
// and returns what was written. Calling it more than once is safe.
func (a *Aggregator) Close() (Stats, error) {
	a.closeOnce.Do(func() {
		close(a.records)
		<-a.done
	})
	return a.stats, a.closeErr
}

func (a *Aggregator) run() {
	defer close(a.done)

	var pending []record
	for rec := range a.records {
		switch rec.kind {
		case recordTree:
			a.writeSummary("", rec.text+"\n")
		case recordEntry:
			if a.order == OrderPath {
				pending = append(pending, rec)
				continue
			}
			a.writeSummary(rec.rel, formatEntry(rec.rel, rec.text))
		case recordError:
			a.writeError(rec.text)
		}
	}

	sort.SliceStable(pending, func(i, j int) bool { return pending[i].rel < pending[j].rel })
	for _, rec := range pending {
		a.writeSummary(rec.rel, formatEntry(rec.rel, rec.text))
	}

	for _, f := range []*os.File{a.summary, a.errs} {
		if err := f.Close(); err != nil && a.closeErr == nil {
			a.closeErr = err
		}
	}
}

// writeSummary appends one block with a single unbuffered write, so an I/O
// failure surfaces here and is recorded in the error log instead.
func (a *Aggregator) writeSummary(rel, block string) {
	if _, err := a.summary.WriteString(block); err != nil {
		a.stats.WriteFailures++
		what := "directory tree"
		if rel != "" {
			what = rel
		}
		a.writeError(fmt.Sprintf("write: %s: summary append: %v", what, err))
		return
	}
	if rel != "" {
		a.stats.Entries++
	}
}

func (a *Aggregator) writeError(line string) {
	line = strings.TrimRight(line, "\n")
	if _, err := a.errs.WriteString(line + "\n"); err != nil {
		a.stats.WriteFailures++
		if a.closeErr == nil {
			a.closeErr = fmt.Errorf("error log append: %w", err)
		}
		return
	}
	a.stats.Errors++
}

func formatEntry(rel, text string) string {
	var b strings.Builder
	b.WriteString(HeaderPrefix)
	b.WriteString(rel)
	b.WriteString("\n\n")
	b.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(Separator)
	b.WriteString("\n\n")
	return b.String()
}
