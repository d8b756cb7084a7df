package segment

import (
	"path/filepath"
	"sort"
	"strings"
)

// extensions is the dispatch table: file extension to language identifier.
// Identifiers without a segmenter (c, ruby, ...) are listed so they can be
// recognised, but Lookup treats them exactly like an unknown extension.
var extensions = map[string]string{
	".py":    "python",
	".pyi":   "python",
	".js":    "javascript",
	".mjs":   "javascript",
	".cjs":   "javascript",
	".jsx":   "javascript",
	".ts":    "typescript",
	".mts":   "typescript",
	".cts":   "typescript",
	".tsx":   "tsx",
	".java":  "java",
	".kt":    "kotlin",
	".kts":   "kotlin",
	".rs":    "rust",
	".go":    "go",
	".c":     "c",
	".h":     "c",
	".cc":    "cpp",
	".cpp":   "cpp",
	".cs":    "csharp",
	".rb":    "ruby",
	".scala": "scala",
	".lua":   "lua",
	".pl":    "perl",
	".php":   "php",
	".ex":    "elixir",
	".exs":   "elixir",
	".cobol": "cobol",
}

// Mapping is one row of the dispatch table.
type Mapping struct {
	Extension  string
	LanguageID string
	Supported  bool
}

// Registry resolves file paths to languages. The zero value is not usable;
// construct one with DefaultRegistry. A Registry is read-only once handed
// to a pipeline and safe for concurrent Lookup calls.
type Registry struct {
	extensions map[string]string
}

// DefaultRegistry returns a Registry populated with the built-in dispatch
// table.
func DefaultRegistry() *Registry {
	r := &Registry{extensions: make(map[string]string, len(extensions))}
	for ext, id := range extensions {
		r.extensions[ext] = id
	}
	return r
}

// Map adds or replaces the language for an extension. The extension may be
// given with or without its leading dot.
func (r *Registry) Map(ext, languageID string) {
	ext = normalizeExt(ext)
	if ext == "" {
		return
	}
	r.extensions[ext] = strings.ToLower(strings.TrimSpace(languageID))
}

// Lookup returns the language for path. The second result is false when the
// extension is unknown or its language has no segmenter.
func (r *Registry) Lookup(path string) (Language, bool) {
	if r == nil {
		return Unknown, false
	}
	id, ok := r.extensions[normalizeExt(filepath.Ext(path))]
	if !ok {
		return Unknown, false
	}
	return ParseLanguage(id)
}

// Mappings returns the dispatch table sorted by extension.
func (r *Registry) Mappings() []Mapping {
	out := make([]Mapping, 0, len(r.extensions))
	for ext, id := range r.extensions {
		_, supported := ParseLanguage(id)
		out = append(out, Mapping{Extension: ext, LanguageID: id, Supported: supported})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Extension < out[j].Extension })
	return out
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
