package search

import (
	"path/filepath"
	"strings"
)

// DefaultFileTypes is the built-in set of email-like extensions used when a
// caller supplies none.
func DefaultFileTypes() []string {
	return []string{".eml", ".msg", ".txt", ".md", ".html", ".json", ".csv", ".log"}
}

// NormalizeFileTypes lower-cases the allowed extensions into a set. Entries
// missing the leading dot are tolerated and normalized.
func NormalizeFileTypes(fileTypes []string) map[string]struct{} {
	if len(fileTypes) == 0 {
		fileTypes = DefaultFileTypes()
	}
	set := make(map[string]struct{}, len(fileTypes))
	for _, ft := range fileTypes {
		ft = strings.ToLower(strings.TrimSpace(ft))
		if ft == "" {
			continue
		}
		if !strings.HasPrefix(ft, ".") {
			ft = "." + ft
		}
		set[ft] = struct{}{}
	}
	return set
}

// hasAllowedExtension reports whether name's extension, lower-cased and
// including the leading dot, is in the allowed set.
func hasAllowedExtension(name string, allowed map[string]struct{}) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	_, ok := allowed[ext]
	return ok
}
