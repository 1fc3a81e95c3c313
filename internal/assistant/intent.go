package assistant

import (
	"regexp"

	"draftdesk/internal/model"
)

// Free-text intent classification. Patterns are deliberately loose; the
// fallback is generic chat, which still produces a useful reply.
var (
	draftPattern  = regexp.MustCompile(`(?i)\b(write|draft|compose|reply|respond|follow\s*up)\b.*\b(email|mail|message|reply)\b|\bemail\s+(to|for)\b`)
	searchPattern = regexp.MustCompile(`(?i)^\s*(find|search|look\s+for|locate|show\s+me)\b`)
	infoPattern   = regexp.MustCompile(`(?i)\b(system\s+info|what\s+system|which\s+os|environment|version)\b`)
)

// Classify maps a chat message to an intent.
func Classify(input string) model.Intent {
	switch {
	case draftPattern.MatchString(input):
		return model.IntentDraftEmail
	case searchPattern.MatchString(input):
		return model.IntentSearch
	case infoPattern.MatchString(input):
		return model.IntentInfo
	default:
		return model.IntentChat
	}
}
