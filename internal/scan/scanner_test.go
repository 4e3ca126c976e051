package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestScanNonexistentRootReturnsEmpty(t *testing.T) {
	s := New()
	assert.Empty(t, s.Scan(filepath.Join(t.TempDir(), "missing")))
	assert.Empty(t, s.Scan(""))
}

func TestScanFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.csv"))
	writeFile(t, filepath.Join(dir, "b.xlsx"))
	writeFile(t, filepath.Join(dir, "c.txt"))
	writeFile(t, filepath.Join(dir, "nested", "deep", "d.csv"))

	files := New().Scan(dir)
	assert.Len(t, files, 3)
	for _, f := range files {
		assert.NotContains(t, f, "c.txt")
	}
}

func TestScanCaseInsensitiveExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "UPPER.CSV"))
	writeFile(t, filepath.Join(dir, "Mixed.XlsX"))

	files := New().Scan(dir)
	assert.Len(t, files, 2)
}

func TestScanRootIsFileReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "a.csv")
	writeFile(t, f)
	assert.Empty(t, New().Scan(f))
}

func TestMatchPath(t *testing.T) {
	s := New()
	assert.True(t, s.MatchPath("/some/where/report.csv"))
	assert.True(t, s.MatchPath("/some/where/Report.XLSX"))
	assert.False(t, s.MatchPath("/some/where/report.xls"))
	assert.False(t, s.MatchPath("/some/where/notes.md"))
}

func TestCustomPatterns(t *testing.T) {
	s := New("*.tsv")
	assert.True(t, s.MatchPath("data.tsv"))
	assert.False(t, s.MatchPath("data.csv"))
}
