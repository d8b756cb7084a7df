package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/julianshen/archmirror/internal/pipeline"
)

var (
	okStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#81C784"})
	warnStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#E57373"})
	pathStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"})
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// completionLine is the last line printed after a run. Styling is only
// applied when writing to a terminal.
func completionLine(res *pipeline.Result, styled bool) string {
	status := fmt.Sprintf("mirrored %d files", res.Processed)
	failures := fmt.Sprintf("%d failed", res.Failed)
	path := res.OutputRoot
	if !styled {
		return fmt.Sprintf("%s, %s -> %s", status, failures, path)
	}
	if res.Failed > 0 {
		failures = warnStyle.Render(failures)
	}
	return fmt.Sprintf("%s, %s -> %s", okStyle.Render(status), failures, pathStyle.Render(path))
}
