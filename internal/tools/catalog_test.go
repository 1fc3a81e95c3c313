package tools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"draftdesk/internal/assistant"
	"draftdesk/internal/model"
	"draftdesk/internal/protocol"
	"draftdesk/internal/search"
)

type fixedGenerator struct {
	reply string
}

func (g fixedGenerator) Generate(context.Context, string) (string, error) {
	return g.reply, nil
}

func newTestCatalog(t *testing.T) (*Catalog, string) {
	t.Helper()
	root := t.TempDir()
	searcher := search.NewService()
	a := assistant.New(searcher, fixedGenerator{reply: "Hello,\n\nDraft body.\n\nBest"}, nil, []string{root}, []string{".txt"}, nil)
	return &Catalog{
		Assistant: a,
		Searcher:  searcher,
		Roots:     []string{root},
		FileTypes: []string{".txt"},
	}, root
}

func TestDecodeRequest_Variants(t *testing.T) {
	req, toolErr := DecodeRequest(protocol.ToolNameSearchFiles, json.RawMessage(`{"query":"budget","roots":["/tmp"]}`))
	if toolErr != nil {
		t.Fatalf("decode failed: %v", toolErr)
	}
	sf, ok := req.(SearchFilesRequest)
	if !ok {
		t.Fatalf("unexpected request type %T", req)
	}
	if sf.Query != "budget" || len(sf.Roots) != 1 {
		t.Fatalf("unexpected decoded request %+v", sf)
	}

	if _, toolErr = DecodeRequest("draftdesk.bogus", nil); toolErr == nil || toolErr.Code != protocol.ErrorCodeUnknownTool {
		t.Fatalf("expected UNKNOWN_TOOL, got %v", toolErr)
	}

	if _, toolErr = DecodeRequest(protocol.ToolNameReadFile, json.RawMessage(`{"path":"a","nope":1}`)); toolErr == nil || toolErr.Code != protocol.ErrorCodeInvalidField {
		t.Fatalf("expected INVALID_FIELD for unknown key, got %v", toolErr)
	}
}

func TestExecute_ReadFile(t *testing.T) {
	cat, root := newTestCatalog(t)
	path := filepath.Join(root, "note.txt")
	if err := os.WriteFile(path, []byte("hello draftdesk"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, toolErr := cat.Execute(context.Background(), ReadFileRequest{Path: path})
	if toolErr != nil {
		t.Fatalf("read_file failed: %v", toolErr)
	}
	if res.Text != "hello draftdesk" {
		t.Fatalf("unexpected content %q", res.Text)
	}

	if _, toolErr = cat.Execute(context.Background(), ReadFileRequest{}); toolErr == nil || toolErr.Code != protocol.ErrorCodeMissingField {
		t.Fatalf("expected MISSING_FIELD, got %v", toolErr)
	}
	if _, toolErr = cat.Execute(context.Background(), ReadFileRequest{Path: filepath.Join(root, "absent.txt")}); toolErr == nil || toolErr.Code != protocol.ErrorCodeFileNotFound {
		t.Fatalf("expected FILE_NOT_FOUND, got %v", toolErr)
	}
	if _, toolErr = cat.Execute(context.Background(), ReadFileRequest{Path: root}); toolErr == nil || toolErr.Code != protocol.ErrorCodeInvalidField {
		t.Fatalf("expected INVALID_FIELD for directory, got %v", toolErr)
	}
}

func TestExecute_ReadFile_Truncation(t *testing.T) {
	cat, root := newTestCatalog(t)
	path := filepath.Join(root, "big.txt")
	if err := os.WriteFile(path, []byte(strings.Repeat("a", 100)), 0o644); err != nil {
		t.Fatal(err)
	}

	res, toolErr := cat.Execute(context.Background(), ReadFileRequest{Path: path, MaxBytes: 10})
	if toolErr != nil {
		t.Fatalf("read_file failed: %v", toolErr)
	}
	if len(res.Text) != 10 {
		t.Fatalf("expected 10 bytes, got %d", len(res.Text))
	}
	structured, ok := res.Structured.(map[string]any)
	if !ok || structured["truncated"] != true {
		t.Fatalf("expected truncated flag, got %+v", res.Structured)
	}
}

func TestExecute_ReadFile_TruncationKeepsRuneBoundary(t *testing.T) {
	cat, root := newTestCatalog(t)
	path := filepath.Join(root, "accents.txt")
	// "abcé": the cut at 4 bytes lands inside the two-byte é
	if err := os.WriteFile(path, []byte("abc\xc3\xa9"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, toolErr := cat.Execute(context.Background(), ReadFileRequest{Path: path, MaxBytes: 4})
	if toolErr != nil {
		t.Fatalf("read_file failed: %v", toolErr)
	}
	if res.Text != "abc" {
		t.Fatalf("expected split rune trimmed, got %q", res.Text)
	}
}

func TestExecute_ReadFile_Binary(t *testing.T) {
	cat, root := newTestCatalog(t)
	path := filepath.Join(root, "blob.txt")
	if err := os.WriteFile(path, []byte{0x00, 0x01, 0x02}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, toolErr := cat.Execute(context.Background(), ReadFileRequest{Path: path}); toolErr == nil || toolErr.Code != protocol.ErrorCodeInvalidField {
		t.Fatalf("expected INVALID_FIELD for binary content, got %v", toolErr)
	}
}

func TestExecute_ListDir(t *testing.T) {
	cat, root := newTestCatalog(t)
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	res, toolErr := cat.Execute(context.Background(), ListDirRequest{Path: root})
	if toolErr != nil {
		t.Fatalf("list_dir failed: %v", toolErr)
	}
	if !strings.Contains(res.Text, "a.txt") || !strings.Contains(res.Text, "sub/") {
		t.Fatalf("listing missing entries:\n%s", res.Text)
	}

	if _, toolErr = cat.Execute(context.Background(), ListDirRequest{Path: filepath.Join(root, "absent")}); toolErr == nil || toolErr.Code != protocol.ErrorCodeFileNotFound {
		t.Fatalf("expected FILE_NOT_FOUND, got %v", toolErr)
	}
}

func TestExecute_SearchFiles(t *testing.T) {
	cat, root := newTestCatalog(t)
	if err := os.WriteFile(filepath.Join(root, "budget.txt"), []byte("q3 budget review"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, toolErr := cat.Execute(context.Background(), SearchFilesRequest{Query: "budget"})
	if toolErr != nil {
		t.Fatalf("search_files failed: %v", toolErr)
	}
	if !strings.Contains(res.Text, "budget.txt") {
		t.Fatalf("result missing match:\n%s", res.Text)
	}
	sr, ok := res.Structured.(model.SearchResult)
	if !ok || sr.TotalMatchCount != 1 {
		t.Fatalf("unexpected structured result %+v", res.Structured)
	}

	if _, toolErr = cat.Execute(context.Background(), SearchFilesRequest{Query: "   "}); toolErr == nil || toolErr.Code != protocol.ErrorCodeMissingField {
		t.Fatalf("expected MISSING_FIELD for blank query, got %v", toolErr)
	}
}

func TestExecute_SystemInfo(t *testing.T) {
	cat, _ := newTestCatalog(t)
	res, toolErr := cat.Execute(context.Background(), SystemInfoRequest{})
	if toolErr != nil {
		t.Fatalf("system_info failed: %v", toolErr)
	}
	if !strings.Contains(res.Text, "os=") || !strings.Contains(res.Text, "arch=") {
		t.Fatalf("unexpected system info %q", res.Text)
	}
}

func TestExecute_DraftEmail(t *testing.T) {
	cat, _ := newTestCatalog(t)
	res, toolErr := cat.Execute(context.Background(), DraftEmailRequest{Instruction: "write to Dan", UseContext: false})
	if toolErr != nil {
		t.Fatalf("draft_email failed: %v", toolErr)
	}
	if !strings.Contains(res.Text, "Draft body.") {
		t.Fatalf("unexpected draft %q", res.Text)
	}

	if _, toolErr = cat.Execute(context.Background(), DraftEmailRequest{}); toolErr == nil || toolErr.Code != protocol.ErrorCodeMissingField {
		t.Fatalf("expected MISSING_FIELD, got %v", toolErr)
	}
}

func TestExecute_AnalyzePatterns(t *testing.T) {
	cat, root := newTestCatalog(t)
	if err := os.WriteFile(filepath.Join(root, "mail.txt"), []byte("Hi Dan\nproject notes\nBest regards,"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, toolErr := cat.Execute(context.Background(), AnalyzePatternsRequest{Query: "project"})
	if toolErr != nil {
		t.Fatalf("analyze_patterns failed: %v", toolErr)
	}
	profile, ok := res.Structured.(model.ContextProfile)
	if !ok || len(profile.Sources) != 1 {
		t.Fatalf("unexpected profile %+v", res.Structured)
	}

	if _, toolErr = cat.Execute(context.Background(), AnalyzePatternsRequest{}); toolErr == nil || toolErr.Code != protocol.ErrorCodeMissingField {
		t.Fatalf("expected MISSING_FIELD, got %v", toolErr)
	}
}

func TestDefinitions_CoverCatalog(t *testing.T) {
	defs := Definitions()
	want := []string{
		protocol.ToolNameReadFile,
		protocol.ToolNameListDir,
		protocol.ToolNameSearchFiles,
		protocol.ToolNameSystemInfo,
		protocol.ToolNameAnalyzePatterns,
		protocol.ToolNameDraftEmail,
	}
	if len(defs) != len(want) {
		t.Fatalf("expected %d definitions, got %d", len(want), len(defs))
	}
	for i, def := range defs {
		if def.Name != want[i] {
			t.Fatalf("definition %d = %q, want %q", i, def.Name, want[i])
		}
	}
}
