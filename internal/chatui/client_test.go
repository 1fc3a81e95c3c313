package chatui

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"draftdesk/internal/assistant"
	"draftdesk/internal/httpd"
	"draftdesk/internal/protocol"
	"draftdesk/internal/search"
	"draftdesk/internal/tools"
)

type cannedGenerator struct{}

func (cannedGenerator) Generate(context.Context, string) (string, error) {
	return "canned reply", nil
}

func newBackend(t *testing.T) (*Client, string) {
	t.Helper()
	root := t.TempDir()
	searcher := search.NewService()
	a := assistant.New(searcher, cannedGenerator{}, nil, []string{root}, []string{".txt"}, nil)
	srv := httpd.NewServer(httpd.ServerOptions{
		Assistant: a,
		Catalog: &tools.Catalog{
			Assistant: a,
			Searcher:  searcher,
			Roots:     []string{root},
			FileTypes: []string{".txt"},
		},
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return NewClient(ts.URL), root
}

func TestClientChat(t *testing.T) {
	client, _ := newBackend(t)

	reply, err := client.Chat(context.Background(), "hello there", false)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if reply.Reply != "canned reply" {
		t.Fatalf("unexpected reply %+v", reply)
	}
}

func TestClientListTools(t *testing.T) {
	client, _ := newBackend(t)

	defs, err := client.ListTools(context.Background())
	if err != nil {
		t.Fatalf("ListTools failed: %v", err)
	}
	if len(defs) != 6 {
		t.Fatalf("expected 6 tools, got %d", len(defs))
	}
}

func TestClientCallTool(t *testing.T) {
	client, root := newBackend(t)
	if err := os.WriteFile(filepath.Join(root, "plan.txt"), []byte("quarterly plan"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := client.CallTool(context.Background(), protocol.ToolNameSearchFiles, map[string]any{"query": "plan"})
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	if !strings.Contains(res.Text, "plan.txt") {
		t.Fatalf("unexpected result %q", res.Text)
	}
}

func TestClientCallTool_ErrorPayload(t *testing.T) {
	client, _ := newBackend(t)

	_, err := client.CallTool(context.Background(), "draftdesk.bogus", nil)
	if err == nil {
		t.Fatal("expected error for unknown tool")
	}
	if !strings.Contains(err.Error(), protocol.ErrorCodeUnknownTool) {
		t.Fatalf("error should carry the code, got %v", err)
	}
}

func TestClientHealth(t *testing.T) {
	client, _ := newBackend(t)
	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health failed: %v", err)
	}
}
