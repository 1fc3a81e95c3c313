package model

import "errors"

var (
	// ErrEmptyQuery is returned when a search is invoked without a query.
	ErrEmptyQuery = errors.New("query is required")
	// ErrNoRoots is returned when a search is invoked with no roots.
	ErrNoRoots = errors.New("at least one search root is required")
	// ErrUnreadableText marks content that decodes under neither the
	// primary nor the fallback encoding.
	ErrUnreadableText = errors.New("content is not decodable text")
	// ErrUnsupportedPlatform is returned by the mail-client provider on
	// platforms without a scriptable Outlook installation.
	ErrUnsupportedPlatform = errors.New("mail client integration is not supported on this platform")
)

// ProviderError describes a failure reported by (or on the way to) the
// text-generation provider.
type ProviderError struct {
	Code       string
	Message    string
	Retryable  bool
	StatusCode int
	Cause      error
}

func (e *ProviderError) Error() string {
	if e == nil {
		return ""
	}
	return e.Code + ": " + e.Message
}

func (e *ProviderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
