package search

import "draftdesk/internal/model"

// MaxContextFiles caps the subset of matches forwarded to prompt
// construction, bounding the payload sent to the generation API.
const MaxContextFiles = 10

// CapMatches truncates matches to limit, preserving discovery order.
func CapMatches(matches []model.MatchRecord, limit int) []model.MatchRecord {
	if limit <= 0 || len(matches) <= limit {
		return matches
	}
	return matches[:limit]
}

// ContextSubset returns the matches eligible for downstream analysis and
// prompt construction, capped at MaxContextFiles.
func ContextSubset(matches []model.MatchRecord) []model.MatchRecord {
	return CapMatches(matches, MaxContextFiles)
}
