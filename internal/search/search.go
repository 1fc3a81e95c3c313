// Package search implements the bounded recursive content search used to
// mine email-drafting context from local directories: a case-insensitive
// substring matcher with line previews, an extension allow-list, a
// depth-bounded walker, and a multi-root orchestrator that caps results.
//
// Every invocation is a fresh computation. No state is shared between
// calls, so concurrent searches need no coordination.
package search

import (
	"context"
	"os"
	"path/filepath"

	"draftdesk/internal/model"
)

// MaxMatches caps the combined match list of one search invocation.
const MaxMatches = 50

// Service runs multi-root searches. The zero value is usable.
type Service struct{}

// NewService returns a search service.
func NewService() *Service {
	return &Service{}
}

// Search walks each root in order, accumulating matches for query across
// files whose extension is in fileTypes (the built-in set when empty).
//
// A root that does not exist or cannot be entered contributes zero matches
// without aborting the remaining roots, and still appears in RootsSearched.
// The walk stops once MaxMatches records have been collected. ctx is
// consulted between roots only; an individual walk runs to completion.
//
// The only outright failures are programming errors: an empty query or an
// empty root list.
func (s *Service) Search(ctx context.Context, query string, roots []string, fileTypes []string) (model.SearchResult, error) {
	if query == "" {
		return model.SearchResult{}, model.ErrEmptyQuery
	}
	if len(roots) == 0 {
		return model.SearchResult{}, model.ErrNoRoots
	}

	w := &walker{
		query:     query,
		fileTypes: NormalizeFileTypes(fileTypes),
		limit:     MaxMatches,
	}

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			break
		}
		if w.full() {
			break
		}
		absRoot, err := filepath.Abs(root)
		if err != nil {
			continue
		}
		info, err := os.Stat(absRoot)
		if err != nil || !info.IsDir() {
			continue
		}
		w.walkDir(absRoot, 0)
	}

	matches := CapMatches(w.matches, MaxMatches)
	return model.SearchResult{
		Query:           query,
		RootsSearched:   append([]string(nil), roots...),
		Matches:         matches,
		TotalMatchCount: len(matches),
	}, nil
}
