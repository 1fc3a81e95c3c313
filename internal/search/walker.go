package search

import (
	"os"
	"path/filepath"
	"strings"

	"draftdesk/internal/model"
)

const (
	// maxWalkDepth bounds recursion below each search root.
	maxWalkDepth = 3
	// maxFileSizeBytes skips files too large to preview usefully.
	maxFileSizeBytes int64 = 10 * 1024 * 1024
)

var excludedDirs = map[string]struct{}{
	"node_modules": {},
	"vendor":       {},
	"__pycache__":  {},
	"venv":         {},
	"target":       {},
}

func shouldSkipEntry(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, ok := excludedDirs[name]
	return ok
}

// walker collects match records under a single root. Enumeration order is
// whatever os.ReadDir produces; results are never sorted, so callers must
// treat match order as unstable.
type walker struct {
	query     string
	fileTypes map[string]struct{}
	limit     int
	matches   []model.MatchRecord
}

func (w *walker) full() bool {
	return w.limit > 0 && len(w.matches) >= w.limit
}

// walkDir visits one directory level. Unreadable directories and files are
// skipped silently; they reduce the result set but never fail the walk.
func (w *walker) walkDir(dir string, depth int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if w.full() {
			return
		}
		name := entry.Name()
		if shouldSkipEntry(name) {
			continue
		}
		fullPath := filepath.Join(dir, name)

		if entry.IsDir() {
			if depth < maxWalkDepth {
				w.walkDir(fullPath, depth+1)
			}
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}
		if !hasAllowedExtension(name, w.fileTypes) {
			continue
		}
		w.visitFile(fullPath, entry)
	}
}

func (w *walker) visitFile(fullPath string, entry os.DirEntry) {
	info, err := entry.Info()
	if err != nil {
		return
	}
	if info.Size() > maxFileSizeBytes {
		return
	}

	raw, err := os.ReadFile(fullPath)
	if err != nil {
		return
	}
	content, err := DecodeText(raw)
	if err != nil {
		// unreadable encoding is a per-file condition, not a search failure
		return
	}

	ok, preview := MatchContent(content, w.query)
	if !ok {
		return
	}
	w.matches = append(w.matches, model.MatchRecord{
		Path:      fullPath,
		Ext:       strings.ToLower(filepath.Ext(fullPath)),
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
		Preview:   preview,
	})
}
