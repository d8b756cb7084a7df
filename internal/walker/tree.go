package walker

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// noiseDirs are left out of the rendered tree only. Walk still descends into
// them, so source files inside are processed.
var noiseDirs = map[string]bool{
	".git":             true,
	".hg":              true,
	".svn":             true,
	"node_modules":     true,
	"bower_components": true,
	"vendor":           true,
	"__pycache__":      true,
	".pytest_cache":    true,
	".mypy_cache":      true,
	".tox":             true,
	".venv":            true,
	"venv":             true,
	"target":           true,
	"build":            true,
	"dist":             true,
	"out":              true,
	"bin":              true,
	"obj":              true,
	"coverage":         true,
	"htmlcov":          true,
	".nyc_output":      true,
	".idea":            true,
	".vscode":          true,
	".gradle":          true,
	".next":            true,
	".nuxt":            true,
	".cache":           true,
}

// IsNoiseDir reports whether name is excluded from the rendered tree.
func IsNoiseDir(name string) bool {
	return noiseDirs[name]
}

const (
	branchMid  = "├── "
	branchLast = "└── "
	indentMid  = "│   "
	indentLast = "    "
)

// RenderTree draws root as an ASCII tree. Entries are sorted by name at each
// level, directories carry a trailing slash and noise directories are
// omitted. Unreadable directories render as leaves.
func RenderTree(root string) string {
	var b strings.Builder
	name := filepath.Base(filepath.Clean(root))
	b.WriteString(name)
	b.WriteString("/\n")
	renderDir(&b, root, "")
	return b.String()
}

func renderDir(b *strings.Builder, dir, prefix string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	visible := entries[:0]
	for _, entry := range entries {
		if entry.IsDir() && noiseDirs[entry.Name()] {
			continue
		}
		visible = append(visible, entry)
	}
	sort.Slice(visible, func(i, j int) bool { return visible[i].Name() < visible[j].Name() })

	for i, entry := range visible {
		last := i == len(visible)-1
		branch, next := branchMid, indentMid
		if last {
			branch, next = branchLast, indentLast
		}

		b.WriteString(prefix)
		b.WriteString(branch)
		b.WriteString(entry.Name())
		if entry.IsDir() {
			b.WriteString("/\n")
			renderDir(b, filepath.Join(dir, entry.Name()), prefix+next)
			continue
		}
		b.WriteByte('\n')
	}
}
