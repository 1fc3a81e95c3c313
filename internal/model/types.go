package model

import "time"

// PreviewLine is a single matched line from a file, 1-based.
type PreviewLine struct {
	LineNumber int    `json:"line_number"`
	LineText   string `json:"line_text"`
}

// MatchRecord is evidence that a file's content contains a query string.
// Records are immutable once constructed and owned by the caller that
// requested the search.
type MatchRecord struct {
	Path      string        `json:"path"`
	Ext       string        `json:"ext"`
	SizeBytes int64         `json:"size_bytes"`
	ModTime   time.Time     `json:"mod_time"`
	Preview   []PreviewLine `json:"preview"`
}

// SearchResult is the outcome of one multi-root search invocation.
// RootsSearched always echoes the caller's full root list, matched or not.
type SearchResult struct {
	Query           string        `json:"query"`
	RootsSearched   []string      `json:"roots_searched"`
	Matches         []MatchRecord `json:"matches"`
	TotalMatchCount int           `json:"total_match_count"`
}

// MailMessage is a summary of one message mined from a mail client or an
// .eml directory.
type MailMessage struct {
	Subject string `json:"subject"`
	Sender  string `json:"sender"`
	Snippet string `json:"snippet"`
}

// ContextProfile summarizes matched context files for prompt construction.
type ContextProfile struct {
	Recipients []string `json:"recipients"`
	Greetings  []string `json:"greetings"`
	SignOffs   []string `json:"sign_offs"`
	ToneHints  []string `json:"tone_hints"`
	Sources    []string `json:"sources"`
}

// Intent is the classified purpose of a free-text chat message.
type Intent string

const (
	IntentDraftEmail Intent = "draft_email"
	IntentSearch     Intent = "search"
	IntentInfo       Intent = "info"
	IntentChat       Intent = "chat"
)

// DraftResult is the outcome of one email-drafting turn.
type DraftResult struct {
	Text        string   `json:"text"`
	UsedContext bool     `json:"used_context"`
	Sources     []string `json:"sources"`
}
