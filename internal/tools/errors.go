package tools

import (
	"errors"

	"draftdesk/internal/model"
	"draftdesk/internal/protocol"
)

// ToolError is a structured tool failure surfaced to callers as a payload,
// not as a transport error.
type ToolError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

func (e *ToolError) Error() string {
	return e.Code + ": " + e.Message
}

func missingField(message string) *ToolError {
	return &ToolError{Code: protocol.ErrorCodeMissingField, Message: message}
}

func invalidField(message string) *ToolError {
	return &ToolError{Code: protocol.ErrorCodeInvalidField, Message: message}
}

// mapError folds provider and sentinel errors into tool error codes.
func mapError(err error) *ToolError {
	var provErr *model.ProviderError
	if errors.As(err, &provErr) {
		return &ToolError{
			Code:      provErr.Code,
			Message:   provErr.Message,
			Retryable: provErr.Retryable,
		}
	}
	switch {
	case errors.Is(err, model.ErrEmptyQuery):
		return missingField("query is required")
	case errors.Is(err, model.ErrNoRoots):
		return missingField("at least one search root is required")
	}
	return &ToolError{Code: protocol.ErrorCodeInternal, Message: err.Error()}
}
