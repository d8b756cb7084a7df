package walker

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTree(t *testing.T) {
	root := filepath.Join(t.TempDir(), "proj")
	writeFile(t, root, "b.py", "")
	writeFile(t, root, "a/z.go", "")
	writeFile(t, root, "a/y/x.rs", "")
	writeFile(t, root, "c.txt", "")

	want := "proj/\n" +
		"├── a/\n" +
		"│   ├── y/\n" +
		"│   │   └── x.rs\n" +
		"│   └── z.go\n" +
		"├── b.py\n" +
		"└── c.txt\n"
	assert.Equal(t, want, RenderTree(root))
}

func TestRenderTreeExcludesNoiseDirs(t *testing.T) {
	root := filepath.Join(t.TempDir(), "proj")
	writeFile(t, root, "src/main.py", "")
	writeFile(t, root, "node_modules/dep/index.js", "")
	writeFile(t, root, ".git/HEAD", "")
	writeFile(t, root, "build/gen.py", "")
	writeFile(t, root, "src/__pycache__/main.pyc", "")

	out := RenderTree(root)
	for name := range noiseDirs {
		assert.NotContains(t, out, name+"/", name)
	}
	want := "proj/\n" +
		"└── src/\n" +
		"    └── main.py\n"
	assert.Equal(t, want, out)
}

func TestRenderTreeKeepsNoiseFileNames(t *testing.T) {
	root := filepath.Join(t.TempDir(), "proj")
	writeFile(t, root, "build", "not a directory\n")

	assert.Equal(t, "proj/\n└── build\n", RenderTree(root))
}

func TestRenderTreeEmptyRoot(t *testing.T) {
	root := t.TempDir()
	assert.Equal(t, filepath.Base(root)+"/\n", RenderTree(root))
}

func TestIsNoiseDir(t *testing.T) {
	assert.True(t, IsNoiseDir(".git"))
	assert.True(t, IsNoiseDir("node_modules"))
	assert.False(t, IsNoiseDir("src"))
}
