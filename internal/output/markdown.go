// internal/output/markdown.go
package output

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter outputs a Report as human-readable Markdown.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format renders the Report as Markdown.
func (f *MarkdownFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("## Mirror of %s\n\n", report.Input))
	if report.Remote != "" {
		b.WriteString(fmt.Sprintf("Cloned from `%s`", report.Remote))
		if report.Commit != "" {
			b.WriteString(fmt.Sprintf(" at `%s`", shortHash(report.Commit)))
		}
		b.WriteString("\n\n")
	}
	b.WriteString(fmt.Sprintf("Output: `%s`\n\n", report.OutputRoot))

	b.WriteString("| Files | Count |\n|---|---|\n")
	b.WriteString(fmt.Sprintf("| discovered | %d |\n", report.Discovered))
	b.WriteString(fmt.Sprintf("| skipped | %d |\n", report.Skipped))
	b.WriteString(fmt.Sprintf("| processed | %d |\n", report.Processed))
	b.WriteString(fmt.Sprintf("| cached | %d |\n", report.Cached))
	b.WriteString(fmt.Sprintf("| failed | %d |\n", report.Failed))

	if len(report.Languages) > 0 {
		b.WriteString("\n## Languages\n\n")
		for _, id := range report.sortedLanguages() {
			b.WriteString(fmt.Sprintf("- %s: %d\n", id, report.Languages[id]))
		}
	}

	if len(report.Failures) > 0 {
		b.WriteString("\n## Failures\n\n")
		for i, fl := range report.Failures {
			b.WriteString(fmt.Sprintf("%d. **%s** `%s`: %s\n", i+1, fl.Kind, fl.Path, fl.Error))
		}
	}

	fileLabel := "files"
	if report.Processed == 1 {
		fileLabel = "file"
	}
	b.WriteString(fmt.Sprintf("\n---\n*Mirrored %d %s in %s*\n",
		report.Processed, fileLabel, report.Duration().Round(100*time.Millisecond)))

	return []byte(b.String()), nil
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
