// Package scanner renders a project directory as an indented text tree.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const indentUnit = "    "

// excludedDirs are skipped wherever they appear. Names starting with "."
// are skipped separately for both files and directories.
var excludedDirs = map[string]struct{}{
	"node_modules": {},
	"venv":         {},
	".venv":        {},
	"__pycache__":  {},
	"build":        {},
	"dist":         {},
	".git":         {},
}

// Scanner walks directory trees on an afero filesystem.
type Scanner struct {
	fs afero.Fs
}

// New returns a Scanner reading from fs.
func New(fs afero.Fs) *Scanner {
	return &Scanner{fs: fs}
}

// Scan renders root as one line per retained directory ("name/") and file.
// A directory line is indented four spaces per level below root; its files
// follow one level deeper, then its subdirectories are visited in order.
// Any read error aborts the scan and nothing is returned.
func (s *Scanner) Scan(root string) (string, error) {
	var lines []string
	if err := s.walk(filepath.Clean(root), 0, &lines); err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Scanner) walk(dir string, depth int, lines *[]string) error {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}
	indent := strings.Repeat(indentUnit, depth)
	*lines = append(*lines, indent+baseName(dir)+"/")

	var subdirs []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		switch s.kindOf(filepath.Join(dir, name), e) {
		case dirLink:
			// directory symlinks are not followed
		case dirReal:
			if _, skip := excludedDirs[name]; !skip {
				subdirs = append(subdirs, filepath.Join(dir, name))
			}
		default:
			*lines = append(*lines, indent+indentUnit+name)
		}
	}
	for _, sub := range subdirs {
		if err := s.walk(sub, depth+1, lines); err != nil {
			return err
		}
	}
	return nil
}

type entryKind int

const (
	notDir entryKind = iota
	dirReal
	dirLink
)

func (s *Scanner) kindOf(path string, fi os.FileInfo) entryKind {
	if fi.IsDir() {
		return dirReal
	}
	if fi.Mode()&os.ModeSymlink == 0 {
		return notDir
	}
	// dangling links are listed like files
	if target, err := s.fs.Stat(path); err == nil && target.IsDir() {
		return dirLink
	}
	return notDir
}

func baseName(dir string) string {
	name := filepath.Base(dir)
	if name == string(filepath.Separator) {
		return ""
	}
	return name
}
