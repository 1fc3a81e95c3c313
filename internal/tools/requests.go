package tools

import (
	"bytes"
	"encoding/json"
	"fmt"

	"draftdesk/internal/protocol"
)

// Request is the closed set of tool invocations. Every variant carries its
// own typed arguments; dispatch is a type switch in Catalog.Execute, so an
// unhandled variant fails at compile time instead of at lookup time.
type Request interface {
	ToolName() string
}

type ReadFileRequest struct {
	Path     string `json:"path"`
	MaxBytes int64  `json:"max_bytes,omitempty"`
}

type ListDirRequest struct {
	Path string `json:"path"`
}

type SearchFilesRequest struct {
	Query     string   `json:"query"`
	Roots     []string `json:"roots,omitempty"`
	FileTypes []string `json:"file_types,omitempty"`
}

type SystemInfoRequest struct{}

type AnalyzePatternsRequest struct {
	Query string   `json:"query"`
	Roots []string `json:"roots,omitempty"`
}

type DraftEmailRequest struct {
	Instruction string `json:"instruction"`
	UseContext  bool   `json:"use_context"`
}

func (ReadFileRequest) ToolName() string        { return protocol.ToolNameReadFile }
func (ListDirRequest) ToolName() string         { return protocol.ToolNameListDir }
func (SearchFilesRequest) ToolName() string     { return protocol.ToolNameSearchFiles }
func (SystemInfoRequest) ToolName() string      { return protocol.ToolNameSystemInfo }
func (AnalyzePatternsRequest) ToolName() string { return protocol.ToolNameAnalyzePatterns }
func (DraftEmailRequest) ToolName() string      { return protocol.ToolNameDraftEmail }

// DecodeRequest maps a wire tool name plus raw JSON arguments onto the
// matching variant. Unknown argument keys are rejected.
func DecodeRequest(name string, args json.RawMessage) (Request, *ToolError) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	switch name {
	case protocol.ToolNameReadFile:
		var req ReadFileRequest
		if err := decodeStrict(args, &req); err != nil {
			return nil, invalidField(err.Error())
		}
		return req, nil
	case protocol.ToolNameListDir:
		var req ListDirRequest
		if err := decodeStrict(args, &req); err != nil {
			return nil, invalidField(err.Error())
		}
		return req, nil
	case protocol.ToolNameSearchFiles:
		var req SearchFilesRequest
		if err := decodeStrict(args, &req); err != nil {
			return nil, invalidField(err.Error())
		}
		return req, nil
	case protocol.ToolNameSystemInfo:
		var req SystemInfoRequest
		if err := decodeStrict(args, &req); err != nil {
			return nil, invalidField(err.Error())
		}
		return req, nil
	case protocol.ToolNameAnalyzePatterns:
		var req AnalyzePatternsRequest
		if err := decodeStrict(args, &req); err != nil {
			return nil, invalidField(err.Error())
		}
		return req, nil
	case protocol.ToolNameDraftEmail:
		var req DraftEmailRequest
		if err := decodeStrict(args, &req); err != nil {
			return nil, invalidField(err.Error())
		}
		return req, nil
	}
	return nil, &ToolError{
		Code:    protocol.ErrorCodeUnknownTool,
		Message: fmt.Sprintf("unknown tool %q", name),
	}
}

func decodeStrict(raw json.RawMessage, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
