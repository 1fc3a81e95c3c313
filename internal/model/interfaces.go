package model

import "context"

// Generator produces text from a prompt. Implemented by the Mistral client;
// tests substitute a canned implementation.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Searcher runs a multi-root content search. Implemented by the search core.
type Searcher interface {
	Search(ctx context.Context, query string, roots []string, fileTypes []string) (SearchResult, error)
}

// MailProvider mines recent messages from a platform mail client.
type MailProvider interface {
	RecentMessages(ctx context.Context, max int) ([]MailMessage, error)
}
