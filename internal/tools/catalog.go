// Package tools exposes the assistant's capabilities as a fixed catalog of
// named tools with typed arguments. The catalog is closed: adding a tool
// means adding a Request variant and a case to Execute.
package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode/utf8"

	"draftdesk/internal/assistant"
	"draftdesk/internal/model"
	"draftdesk/internal/protocol"
	"draftdesk/internal/search"
)

const defaultMaxReadBytes = 10 << 20

// Catalog executes tool requests against the injected collaborators.
type Catalog struct {
	Assistant *assistant.Assistant
	Searcher  model.Searcher

	Roots     []string
	FileTypes []string
}

// Result is a successful tool invocation: human-readable text plus an
// optional structured payload.
type Result struct {
	Text       string `json:"text"`
	Structured any    `json:"structured,omitempty"`
}

// Definition describes one catalog entry for listing surfaces.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// Execute dispatches a request to its handler. Validation failures and
// handler failures come back as *ToolError, never as a panic or a transport
// error.
func (c *Catalog) Execute(ctx context.Context, req Request) (Result, *ToolError) {
	switch r := req.(type) {
	case ReadFileRequest:
		return c.readFile(r)
	case ListDirRequest:
		return c.listDir(r)
	case SearchFilesRequest:
		return c.searchFiles(ctx, r)
	case SystemInfoRequest:
		return systemInfo(), nil
	case AnalyzePatternsRequest:
		return c.analyzePatterns(ctx, r)
	case DraftEmailRequest:
		return c.draftEmail(ctx, r)
	}
	return Result{}, &ToolError{
		Code:    protocol.ErrorCodeInternal,
		Message: fmt.Sprintf("unhandled request type %T", req),
	}
}

func (c *Catalog) readFile(req ReadFileRequest) (Result, *ToolError) {
	if strings.TrimSpace(req.Path) == "" {
		return Result{}, missingField("path is required")
	}
	if req.MaxBytes < 0 {
		return Result{}, invalidField("max_bytes must not be negative")
	}
	limit := req.MaxBytes
	if limit == 0 || limit > defaultMaxReadBytes {
		limit = defaultMaxReadBytes
	}

	path := filepath.Clean(req.Path)
	info, err := os.Stat(path)
	if err != nil {
		return Result{}, statError(path, err)
	}
	if info.IsDir() {
		return Result{}, invalidField(fmt.Sprintf("%s is a directory", path))
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Result{}, statError(path, err)
	}
	truncated := false
	if int64(len(raw)) > limit {
		raw = trimPartialRune(raw[:limit])
		truncated = true
	}
	text, err := search.DecodeText(raw)
	if err != nil {
		return Result{}, invalidField(fmt.Sprintf("%s is not a text file", path))
	}

	return Result{
		Text: text,
		Structured: map[string]any{
			"path":       path,
			"size_bytes": info.Size(),
			"truncated":  truncated,
		},
	}, nil
}

func (c *Catalog) listDir(req ListDirRequest) (Result, *ToolError) {
	if strings.TrimSpace(req.Path) == "" {
		return Result{}, missingField("path is required")
	}
	path := filepath.Clean(req.Path)
	entries, err := os.ReadDir(path)
	if err != nil {
		return Result{}, statError(path, err)
	}

	type dirEntry struct {
		Name      string `json:"name"`
		IsDir     bool   `json:"is_dir"`
		SizeBytes int64  `json:"size_bytes"`
	}
	listed := make([]dirEntry, 0, len(entries))
	var b strings.Builder
	fmt.Fprintf(&b, "%s contains %d entries:\n", path, len(entries))
	for _, entry := range entries {
		var size int64
		if info, infoErr := entry.Info(); infoErr == nil && !entry.IsDir() {
			size = info.Size()
		}
		listed = append(listed, dirEntry{Name: entry.Name(), IsDir: entry.IsDir(), SizeBytes: size})
		if entry.IsDir() {
			fmt.Fprintf(&b, "- %s/\n", entry.Name())
		} else {
			fmt.Fprintf(&b, "- %s (%d bytes)\n", entry.Name(), size)
		}
	}
	return Result{
		Text:       strings.TrimRight(b.String(), "\n"),
		Structured: map[string]any{"path": path, "entries": listed},
	}, nil
}

func (c *Catalog) searchFiles(ctx context.Context, req SearchFilesRequest) (Result, *ToolError) {
	if strings.TrimSpace(req.Query) == "" {
		return Result{}, missingField("query is required")
	}
	roots := req.Roots
	if len(roots) == 0 {
		roots = c.Roots
	}
	fileTypes := req.FileTypes
	if len(fileTypes) == 0 {
		fileTypes = c.FileTypes
	}
	res, err := c.Searcher.Search(ctx, req.Query, roots, fileTypes)
	if err != nil {
		return Result{}, mapError(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d file(s) matching %q.\n", res.TotalMatchCount, res.Query)
	for _, m := range res.Matches {
		fmt.Fprintf(&b, "- %s\n", m.Path)
	}
	return Result{
		Text:       strings.TrimRight(b.String(), "\n"),
		Structured: res,
	}, nil
}

func systemInfo() Result {
	hostname, _ := os.Hostname()
	wd, _ := os.Getwd()
	info := map[string]any{
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"cpus":       runtime.NumCPU(),
		"go_version": runtime.Version(),
		"hostname":   hostname,
		"workdir":    wd,
	}
	return Result{
		Text: fmt.Sprintf("os=%s arch=%s cpus=%d host=%s go=%s workdir=%s",
			runtime.GOOS, runtime.GOARCH, runtime.NumCPU(), hostname, runtime.Version(), wd),
		Structured: info,
	}
}

func (c *Catalog) analyzePatterns(ctx context.Context, req AnalyzePatternsRequest) (Result, *ToolError) {
	if strings.TrimSpace(req.Query) == "" {
		return Result{}, missingField("query is required")
	}
	profile, err := c.Assistant.AnalyzePatterns(ctx, req.Query, req.Roots)
	if err != nil {
		return Result{}, mapError(err)
	}
	return Result{
		Text:       formatProfile(profile),
		Structured: profile,
	}, nil
}

func (c *Catalog) draftEmail(ctx context.Context, req DraftEmailRequest) (Result, *ToolError) {
	if strings.TrimSpace(req.Instruction) == "" {
		return Result{}, missingField("instruction is required")
	}
	draft, err := c.Assistant.Draft(ctx, req.Instruction, req.UseContext)
	if err != nil {
		return Result{}, mapError(err)
	}
	return Result{
		Text:       draft.Text,
		Structured: draft,
	}, nil
}

func formatProfile(p model.ContextProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyzed %d file(s).\n", len(p.Sources))
	if len(p.Recipients) > 0 {
		fmt.Fprintf(&b, "Correspondents: %s\n", strings.Join(p.Recipients, ", "))
	}
	if len(p.Greetings) > 0 {
		fmt.Fprintf(&b, "Greetings: %s\n", strings.Join(p.Greetings, ", "))
	}
	if len(p.SignOffs) > 0 {
		fmt.Fprintf(&b, "Sign-offs: %s\n", strings.Join(p.SignOffs, ", "))
	}
	if len(p.ToneHints) > 0 {
		fmt.Fprintf(&b, "Tone: %s\n", strings.Join(p.ToneHints, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

// trimPartialRune drops a trailing UTF-8 sequence left incomplete by byte
// truncation, so the tail cannot fall through to the single-byte decode
// fallback as mojibake. Content that was not valid UTF-8 before the cut is
// returned unchanged.
func trimPartialRune(raw []byte) []byte {
	if utf8.Valid(raw) {
		return raw
	}
	for i := 1; i < utf8.UTFMax && i < len(raw); i++ {
		if utf8.Valid(raw[:len(raw)-i]) {
			return raw[:len(raw)-i]
		}
	}
	return raw
}

func statError(path string, err error) *ToolError {
	switch {
	case os.IsNotExist(err):
		return &ToolError{Code: protocol.ErrorCodeFileNotFound, Message: fmt.Sprintf("%s does not exist", path)}
	case os.IsPermission(err):
		return &ToolError{Code: protocol.ErrorCodePermissionDenied, Message: fmt.Sprintf("%s is not readable", path)}
	}
	return &ToolError{Code: protocol.ErrorCodeInternal, Message: err.Error()}
}

// Definitions lists the catalog in a stable order.
func Definitions() []Definition {
	return []Definition{
		{
			Name:        protocol.ToolNameReadFile,
			Description: "Read a text file and return its decoded content.",
			InputSchema: objectSchema(map[string]any{
				"path":      map[string]any{"type": "string"},
				"max_bytes": map[string]any{"type": "integer", "minimum": 0},
			}, "path"),
		},
		{
			Name:        protocol.ToolNameListDir,
			Description: "List the entries of a directory.",
			InputSchema: objectSchema(map[string]any{
				"path": map[string]any{"type": "string"},
			}, "path"),
		},
		{
			Name:        protocol.ToolNameSearchFiles,
			Description: "Recursively search files under the configured roots for a substring.",
			InputSchema: objectSchema(map[string]any{
				"query":      map[string]any{"type": "string"},
				"roots":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"file_types": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			}, "query"),
		},
		{
			Name:        protocol.ToolNameSystemInfo,
			Description: "Report host platform details.",
			InputSchema: objectSchema(map[string]any{}, ""),
		},
		{
			Name:        protocol.ToolNameAnalyzePatterns,
			Description: "Derive writing-style and correspondent patterns from matching files.",
			InputSchema: objectSchema(map[string]any{
				"query": map[string]any{"type": "string"},
				"roots": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			}, "query"),
		},
		{
			Name:        protocol.ToolNameDraftEmail,
			Description: "Draft an email, optionally grounded in gathered personal context.",
			InputSchema: objectSchema(map[string]any{
				"instruction": map[string]any{"type": "string"},
				"use_context": map[string]any{"type": "boolean"},
			}, "instruction"),
		},
	}
}

func objectSchema(properties map[string]any, required string) map[string]any {
	schema := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if required != "" {
		schema["required"] = []string{required}
	}
	return schema
}
