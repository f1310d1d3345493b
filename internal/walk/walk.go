// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package walk finds the PDF files under a directory tree.
package walk

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

const pdfExt = ".pdf"

// Candidate is one PDF file found by the walk.
type Candidate struct {
	Dir  string
	Name string
}

// Path returns the full path of the file.
func (c Candidate) Path() string { return filepath.Join(c.Dir, c.Name) }

// Ext returns the extension as written on disk (".pdf", ".PDF", ...).
func (c Candidate) Ext() string { return c.Name[len(c.Name)-len(pdfExt):] }

// Title returns the filename without its extension.
func (c Candidate) Title() string { return c.Name[:len(c.Name)-len(pdfExt)] }

// IsPDF reports whether name ends in .pdf, ignoring case.
func IsPDF(name string) bool {
	return len(name) >= len(pdfExt) && strings.EqualFold(name[len(name)-len(pdfExt):], pdfExt)
}

// Candidates walks root recursively and returns every PDF file, sorted by
// path. The walk finishes before the caller renames anything, so renamed
// files are never visited twice. Entries that cannot be read are skipped.
//
// A root that is a symlink to a directory is followed, and symlinks to
// regular PDF files are returned. Symlinked subdirectories are not entered.
// Candidates are always reported under root as given.
func Candidates(fs afero.Fs, root string) ([]Candidate, error) {
	info, err := fs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("directory does not exist: %s", root)
		}
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", root)
	}

	walkRoot, err := resolveRoot(fs, root)
	if err != nil {
		return nil, err
	}

	var found []Candidate
	err = afero.Walk(fs, walkRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !IsPDF(info.Name()) {
			return nil
		}
		if !isRegular(fs, path, info) {
			return nil
		}
		rel, err := filepath.Rel(walkRoot, filepath.Dir(path))
		if err != nil {
			return nil
		}
		found = append(found, Candidate{Dir: filepath.Join(root, rel), Name: info.Name()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Path() < found[j].Path() })
	return found, nil
}

// resolveRoot returns the directory afero.Walk should start from. The walk
// uses Lstat, so a symlinked root on the OS filesystem is resolved first.
func resolveRoot(fs afero.Fs, root string) (string, error) {
	if _, ok := fs.(*afero.OsFs); !ok {
		return root, nil
	}
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", root, err)
	}
	return resolved, nil
}

// isRegular reports whether the entry is a regular file, following a
// symlink to its target.
func isRegular(fs afero.Fs, path string, info os.FileInfo) bool {
	if info.Mode().IsRegular() {
		return true
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return false
	}
	target, err := fs.Stat(path)
	return err == nil && target.Mode().IsRegular()
}
