package summary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestAggregatorWritesTreeEntriesAndErrors(t *testing.T) {
	dir := t.TempDir()
	agg, err := Open(dir, OrderCompletion)
	require.NoError(t, err)

	agg.Tree("proj/\n└── a.py")
	agg.Entry("a.py", "def f():\n    pass\n")
	agg.Error("read: /proj/b.rs: permission denied")

	stats, err := agg.Close()
	require.NoError(t, err)
	assert.Equal(t, Stats{Entries: 1, Errors: 1}, stats)

	want := "proj/\n└── a.py\n" +
		"File: a.py\n\n" +
		"def f():\n    pass\n" +
		Separator + "\n\n"
	assert.Equal(t, want, readFile(t, filepath.Join(dir, SummaryFile)))
	assert.Equal(t, "read: /proj/b.rs: permission denied\n", readFile(t, filepath.Join(dir, ErrorFile)))
}

func TestAggregatorEntriesNeverInterleave(t *testing.T) {
	dir := t.TempDir()
	agg, err := Open(dir, OrderCompletion)
	require.NoError(t, err)

	const n = 50
	body := strings.Repeat("line\n", 200)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			agg.Entry(fmt.Sprintf("f%02d.py", i), body)
		}(i)
	}
	wg.Wait()
	stats, err := agg.Close()
	require.NoError(t, err)
	assert.Equal(t, n, stats.Entries)

	content := readFile(t, filepath.Join(dir, SummaryFile))
	blocks := strings.Split(content, Separator+"\n\n")
	require.Len(t, blocks, n+1)
	assert.Equal(t, "", blocks[n])
	blocks = blocks[:n]
	for _, block := range blocks {
		require.True(t, strings.HasPrefix(block, HeaderPrefix), block[:20])
		header, rest, ok := strings.Cut(block, "\n\n")
		require.True(t, ok)
		assert.Regexp(t, `^File: f\d\d\.py$`, header)
		assert.Equal(t, body, rest)
	}
}

func TestAggregatorPathOrder(t *testing.T) {
	dir := t.TempDir()
	agg, err := Open(dir, OrderPath)
	require.NoError(t, err)

	agg.Tree("root/")
	agg.Entry("z/last.py", "z\n")
	agg.Entry("a/first.py", "a\n")
	agg.Entry("m/mid.py", "m\n")
	_, err = agg.Close()
	require.NoError(t, err)

	content := readFile(t, filepath.Join(dir, SummaryFile))
	assert.True(t, strings.HasPrefix(content, "root/\n"))
	first := strings.Index(content, "File: a/first.py")
	mid := strings.Index(content, "File: m/mid.py")
	last := strings.Index(content, "File: z/last.py")
	require.True(t, first > 0 && mid > 0 && last > 0)
	assert.Less(t, first, mid)
	assert.Less(t, mid, last)
}

func TestAggregatorRecordsFailedSummaryWrites(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	dir := t.TempDir()
	require.NoError(t, os.Symlink("/dev/full", filepath.Join(dir, SummaryFile)))

	agg, err := Open(dir, OrderCompletion)
	require.NoError(t, err)
	agg.Tree("proj/")
	agg.Entry("a.py", "a = 1\n")
	stats, err := agg.Close()
	require.NoError(t, err)

	assert.Equal(t, Stats{Entries: 0, Errors: 2, WriteFailures: 2}, stats)
	errLog := readFile(t, filepath.Join(dir, ErrorFile))
	assert.Contains(t, errLog, "write: directory tree: summary append: ")
	assert.Contains(t, errLog, "write: a.py: summary append: ")
}

func TestAggregatorCloseTwice(t *testing.T) {
	agg, err := Open(t.TempDir(), "")
	require.NoError(t, err)
	_, err = agg.Close()
	require.NoError(t, err)
	_, err = agg.Close()
	require.NoError(t, err)
}

func TestOpenFailsWithoutDirectory(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"), OrderCompletion)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open summary")
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    Order
		wantErr bool
	}{
		{"", OrderCompletion, false},
		{"completion", OrderCompletion, false},
		{" PATH ", OrderPath, false},
		{"random", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOrder(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}
