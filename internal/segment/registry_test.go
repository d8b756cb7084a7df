package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		path string
		want Language
		ok   bool
	}{
		{"src/app.py", Python, true},
		{"src/App.PY", Python, true},
		{"web/index.js", JavaScript, true},
		{"web/view.jsx", JavaScript, true},
		{"web/main.ts", TypeScript, true},
		{"web/App.tsx", TSX, true},
		{"Main.java", Java, true},
		{"build.gradle.kts", Kotlin, true},
		{"lib.rs", Rust, true},
		{"cmd/main.go", Go, true},
		// Known extension, no segmenter.
		{"native/io.c", Unknown, false},
		{"app.rb", Unknown, false},
		// Unknown extension.
		{"notes.txt", Unknown, false},
		{"Makefile", Unknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := r.Lookup(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistryMap(t *testing.T) {
	r := DefaultRegistry()
	_, ok := r.Lookup("tool.pyw")
	require.False(t, ok)

	r.Map("pyw", "Python")
	got, ok := r.Lookup("tool.pyw")
	require.True(t, ok)
	assert.Equal(t, Python, got)

	r.Map(".", "python")
	r.Map("", "python")
	_, ok = r.Lookup("noext")
	assert.False(t, ok)
}

func TestRegistryMapDoesNotLeakIntoDefaults(t *testing.T) {
	r := DefaultRegistry()
	r.Map(".txt", "python")

	_, ok := DefaultRegistry().Lookup("notes.txt")
	assert.False(t, ok)
}

func TestNilRegistryLookup(t *testing.T) {
	var r *Registry
	_, ok := r.Lookup("a.py")
	assert.False(t, ok)
}

func TestRegistryMappings(t *testing.T) {
	mappings := DefaultRegistry().Mappings()
	require.NotEmpty(t, mappings)
	for i := 1; i < len(mappings); i++ {
		assert.Less(t, mappings[i-1].Extension, mappings[i].Extension)
	}

	byExt := make(map[string]Mapping, len(mappings))
	for _, m := range mappings {
		byExt[m.Extension] = m
	}
	assert.True(t, byExt[".rs"].Supported)
	assert.Equal(t, "rust", byExt[".rs"].LanguageID)
	assert.False(t, byExt[".php"].Supported)
}

func TestLanguageString(t *testing.T) {
	assert.Equal(t, "python", Python.String())
	assert.Equal(t, "tsx", TSX.String())
	assert.Equal(t, "unknown", Unknown.String())
	assert.True(t, Go.Supported())
	assert.False(t, Unknown.Supported())
}

func TestParseLanguage(t *testing.T) {
	for _, lang := range Languages() {
		got, ok := ParseLanguage(lang.String())
		require.True(t, ok, lang.String())
		assert.Equal(t, lang, got)
	}
	_, ok := ParseLanguage("cobol")
	assert.False(t, ok)
}
