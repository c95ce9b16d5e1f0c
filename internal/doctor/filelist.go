package doctor

import (
	"os"
	"path/filepath"
	"strings"
)

// FileList accumulates files discovered under a fixed set of prefixes. A
// fresh accumulator is built for each check invocation; it is never shared
// across checks or runs.
type FileList struct {
	prefixes []string
	exists   func(string) bool
	found    []string
	seen     map[string]bool
}

// NewFileList returns an accumulator scanning the given prefixes. A nil
// exists falls back to an os.Stat probe.
func NewFileList(prefixes []string, exists func(string) bool) *FileList {
	if exists == nil {
		exists = func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		}
	}
	return &FileList{
		prefixes: prefixes,
		exists:   exists,
		seen:     make(map[string]bool),
	}
}

// Find records every existing join of a prefix and a relative fragment,
// prefix-major: all fragments are probed under the first prefix before
// moving to the next. Hits accumulate in discovery order, deduplicated.
func (l *FileList) Find(relPaths ...string) {
	for _, prefix := range l.prefixes {
		for _, rel := range relPaths {
			path := filepath.Join(prefix, rel)
			if l.seen[path] || !l.exists(path) {
				continue
			}
			l.seen[path] = true
			l.found = append(l.found, path)
		}
	}
}

// Found returns the accumulated paths in discovery order.
func (l *FileList) Found() []string {
	return l.found
}

// Empty reports whether nothing was found.
func (l *FileList) Empty() bool {
	return len(l.found) == 0
}

// AllUnder reports whether every accumulated path resolves under root once
// symlinks are followed. Paths that cannot be resolved count as outside.
// An empty list is vacuously under any root.
func (l *FileList) AllUnder(root string) bool {
	canonRoot, err := canonicalPath(root)
	if err != nil {
		return false
	}
	for _, f := range l.found {
		p, err := canonicalPath(f)
		if err != nil {
			return false
		}
		if p != canonRoot && !strings.HasPrefix(p, canonRoot+string(filepath.Separator)) {
			return false
		}
	}
	return true
}

func canonicalPath(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(resolved)
}
