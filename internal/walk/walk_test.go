// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package walk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, fs afero.Fs, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, fs.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, afero.WriteFile(fs, p, []byte("%PDF-1.4"), 0o644))
	}
}

func TestCandidates(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs,
		"/lib/therighteousmind.pdf",
		"/lib/notes.txt",
		"/lib/psych/Dark_triad.PDF",
		"/lib/psych/deep/nested/lucifer effect.Pdf",
		"/lib/psych/pdf",
		"/lib/psych/archive.pdf.zip",
		"/other/outside.pdf",
	)

	got, err := Candidates(fs, "/lib")
	require.NoError(t, err)

	assert.Equal(t, []Candidate{
		{Dir: "/lib/psych", Name: "Dark_triad.PDF"},
		{Dir: "/lib/psych/deep/nested", Name: "lucifer effect.Pdf"},
		{Dir: "/lib", Name: "therighteousmind.pdf"},
	}, got)
}

func TestCandidates_EmptyDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/empty", 0o755))

	got, err := Candidates(fs, "/empty")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCandidates_MissingRoot(t *testing.T) {
	_, err := Candidates(afero.NewMemMapFs(), "/does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestCandidates_RootIsFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/book.pdf")

	_, err := Candidates(fs, "/book.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestCandidates_OsFs(t *testing.T) {
	dir := t.TempDir()
	fs := afero.NewOsFs()
	writeFiles(t, fs, filepath.Join(dir, "a", "book.pdf"), filepath.Join(dir, "b.txt"))

	got, err := Candidates(fs, dir)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, filepath.Join(dir, "a", "book.pdf"), got[0].Path())
}

func TestCandidates_SymlinkedRoot(t *testing.T) {
	dir := t.TempDir()
	fs := afero.NewOsFs()
	writeFiles(t, fs, filepath.Join(dir, "real", "a.pdf"))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(filepath.Join(dir, "real"), link))

	got, err := Candidates(fs, link)
	require.NoError(t, err)
	assert.Equal(t, []Candidate{{Dir: link, Name: "a.pdf"}}, got)
}

func TestCandidates_SymlinkedFiles(t *testing.T) {
	dir := t.TempDir()
	fs := afero.NewOsFs()
	writeFiles(t, fs,
		filepath.Join(dir, "store", "b.pdf"),
		filepath.Join(dir, "real", "a.pdf"),
	)
	realDir := filepath.Join(dir, "real")
	require.NoError(t, os.Symlink(filepath.Join(dir, "store", "b.pdf"), filepath.Join(realDir, "b.pdf")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing.pdf"), filepath.Join(realDir, "dangling.pdf")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "store"), filepath.Join(realDir, "store-link.pdf")))

	got, err := Candidates(fs, realDir)
	require.NoError(t, err)
	assert.Equal(t, []Candidate{
		{Dir: realDir, Name: "a.pdf"},
		{Dir: realDir, Name: "b.pdf"},
	}, got)
}

func TestCandidateParts(t *testing.T) {
	c := Candidate{Dir: "/lib", Name: "the_basics.PDF"}
	assert.Equal(t, "the_basics", c.Title())
	assert.Equal(t, ".PDF", c.Ext())
	assert.Equal(t, "/lib/the_basics.PDF", c.Path())
}

func TestIsPDF(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"book.pdf", true},
		{"BOOK.PDF", true},
		{"book.Pdf", true},
		{".pdf", true},
		{"pdf", false},
		{"book.pdf.bak", false},
		{"book.txt", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPDF(tt.name), tt.name)
	}
}
