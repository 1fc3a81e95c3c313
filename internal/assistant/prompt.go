package assistant

import (
	"fmt"
	"strings"

	"draftdesk/internal/model"
)

// BuildDraftPrompt assembles the generation prompt. profile is nil in
// context-free mode. Prompt assembly is deterministic so tests can assert
// on exact output.
func BuildDraftPrompt(instruction string, profile *model.ContextProfile) string {
	var b strings.Builder
	b.WriteString("You are an assistant that drafts professional emails.\n\n")
	fmt.Fprintf(&b, "Task: %s\n", strings.TrimSpace(instruction))

	if profile != nil {
		b.WriteString("\nContext gathered from the user's files and mail:\n")
		writeProfileList(&b, "Known correspondents", profile.Recipients)
		writeProfileList(&b, "Greetings the user favors", profile.Greetings)
		writeProfileList(&b, "Sign-offs the user favors", profile.SignOffs)
		writeProfileList(&b, "Tone hints", profile.ToneHints)
		if len(profile.Sources) > 0 {
			fmt.Fprintf(&b, "- Derived from %d file(s)\n", len(profile.Sources))
		}
		b.WriteString("\nMatch the user's established tone and conventions.\n")
	} else {
		b.WriteString("\nNo personal context is available; use a neutral professional tone.\n")
	}

	b.WriteString("Return only the email text, no commentary.\n")
	return b.String()
}

// BuildChatPrompt wraps a generic (non-drafting) chat turn.
func BuildChatPrompt(message string) string {
	return "You are a concise assistant for an email-drafting tool. Answer briefly.\n\nUser: " +
		strings.TrimSpace(message) + "\n"
}

func writeProfileList(b *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", label, strings.Join(values, ", "))
}
