// Package scan enumerates data files under a directory tree. Only files whose
// extension matches the allow-list (csv and xlsx by default) are returned.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"statdesk/internal/log"

	"github.com/gobwas/glob"
)

// DefaultPatterns matches the data formats the backend engine accepts.
var DefaultPatterns = []string{"*.csv", "*.xlsx"}

// Scanner matches file names against a set of glob patterns,
// case-insensitively on the base name.
type Scanner struct {
	patterns []glob.Glob
}

// New compiles a Scanner from glob patterns. With no arguments the default
// allow-list is used. Invalid patterns are skipped with a warning rather
// than rejected; the allow-list is configuration, not user input.
func New(patterns ...string) *Scanner {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	s := &Scanner{}
	for _, p := range patterns {
		g, err := glob.Compile(strings.ToLower(p))
		if err != nil {
			log.Warnf("ignoring invalid file pattern %q: %v", p, err)
			continue
		}
		s.patterns = append(s.patterns, g)
	}
	return s
}

// MatchPath reports whether the file name matches the allow-list.
func (s *Scanner) MatchPath(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	for _, g := range s.patterns {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Scan walks root recursively and returns matching file paths in traversal
// order. An empty or nonexistent root yields an empty result, not an error:
// the directory box may legitimately be blank or stale. Unreadable subtrees
// are skipped.
func (s *Scanner) Scan(root string) []string {
	if root == "" {
		return nil
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Debugf("skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if s.MatchPath(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		log.Warnf("scan of %s aborted: %v", root, err)
	}
	return files
}
