package search

import (
	"strings"

	"draftdesk/internal/model"
)

// maxPreviewLines caps the preview attached to a match record.
const maxPreviewLines = 3

// MatchContent tests decoded file content against a query, case-insensitively.
// When the content matches it also returns up to three line previews whose
// trimmed text contains the query, in first-occurrence order. Line numbers
// are 1-based. The function has no side effects.
func MatchContent(content, query string) (bool, []model.PreviewLine) {
	loweredQuery := strings.ToLower(query)
	if loweredQuery == "" {
		return false, nil
	}
	if !strings.Contains(strings.ToLower(content), loweredQuery) {
		return false, nil
	}

	var preview []model.PreviewLine
	for i, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if !strings.Contains(strings.ToLower(trimmed), loweredQuery) {
			continue
		}
		preview = append(preview, model.PreviewLine{
			LineNumber: i + 1,
			LineText:   trimmed,
		})
		if len(preview) == maxPreviewLines {
			break
		}
	}
	return true, preview
}
