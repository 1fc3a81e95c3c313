package search

import (
	"strconv"
	"testing"

	"draftdesk/internal/model"
)

func TestMatchContent_PreviewCapAndOrder(t *testing.T) {
	content := "alpha one\nbeta\nalpha two\nalpha three\nalpha four\n"
	ok, preview := MatchContent(content, "alpha")
	if !ok {
		t.Fatal("expected match")
	}
	if len(preview) != 3 {
		t.Fatalf("expected preview capped at 3, got %d", len(preview))
	}
	wantLines := []int{1, 3, 4}
	wantText := []string{"alpha one", "alpha two", "alpha three"}
	for i, p := range preview {
		if p.LineNumber != wantLines[i] || p.LineText != wantText[i] {
			t.Fatalf("preview[%d] = %+v, want {%d %q}", i, p, wantLines[i], wantText[i])
		}
	}
}

func TestMatchContent_TrimsWhitespaceAndCR(t *testing.T) {
	ok, preview := MatchContent("  padded match line \r\n", "match")
	if !ok || len(preview) != 1 {
		t.Fatalf("expected one preview, got ok=%t n=%d", ok, len(preview))
	}
	if preview[0].LineText != "padded match line" {
		t.Fatalf("expected trimmed preview text, got %q", preview[0].LineText)
	}
}

func TestMatchContent_NoMatch(t *testing.T) {
	ok, preview := MatchContent("nothing here", "absent")
	if ok || preview != nil {
		t.Fatalf("expected no match, got ok=%t preview=%v", ok, preview)
	}
}

func TestMatchContent_EmptyQuery(t *testing.T) {
	if ok, _ := MatchContent("anything", ""); ok {
		t.Fatal("empty query must not match")
	}
}

func TestHasAllowedExtension(t *testing.T) {
	allowed := NormalizeFileTypes([]string{".TXT", "md", " .eml "})
	cases := map[string]bool{
		"note.txt":   true,
		"NOTE.TXT":   true,
		"readme.md":  true,
		"mail.eml":   true,
		"binary.exe": false,
		"noext":      false,
	}
	for name, want := range cases {
		if got := hasAllowedExtension(name, allowed); got != want {
			t.Fatalf("hasAllowedExtension(%q) = %t, want %t", name, got, want)
		}
	}
}

func TestDecodeText_FallbackAndBinary(t *testing.T) {
	if s, err := DecodeText([]byte("plain utf8")); err != nil || s != "plain utf8" {
		t.Fatalf("utf8 decode failed: %q %v", s, err)
	}

	// 0xE9 is é in Windows-1252 and invalid as a standalone UTF-8 byte.
	s, err := DecodeText([]byte{'c', 'a', 'f', 0xE9})
	if err != nil {
		t.Fatalf("cp1252 fallback failed: %v", err)
	}
	if s != "café" {
		t.Fatalf("unexpected fallback decode %q", s)
	}

	if _, err := DecodeText([]byte{'a', 0x00, 'b'}); err == nil {
		t.Fatal("expected NUL bytes to be unreadable")
	}
}

func TestContextSubset_Cap(t *testing.T) {
	matches := make([]model.MatchRecord, MaxContextFiles+5)
	for i := range matches {
		matches[i].Path = "f" + strconv.Itoa(i)
	}
	subset := ContextSubset(matches)
	if len(subset) != MaxContextFiles {
		t.Fatalf("expected subset capped at %d, got %d", MaxContextFiles, len(subset))
	}
	if subset[0].Path != "f0" {
		t.Fatalf("expected discovery order preserved, got %q first", subset[0].Path)
	}
}
