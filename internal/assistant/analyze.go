package assistant

import (
	"io"
	"os"
	"regexp"
	"strings"

	"draftdesk/internal/model"
	"draftdesk/internal/search"
)

// maxAnalyzeBytes caps how much of a matched file is read for analysis.
const maxAnalyzeBytes = 256 * 1024

var (
	greetingPattern = regexp.MustCompile(`(?im)^\s*(hi|hello|hey|dear|good\s+(?:morning|afternoon|evening))\s+([A-Z][\w.-]*)`)
	signOffPattern  = regexp.MustCompile(`(?im)^\s*(best regards|kind regards|warm regards|best|regards|thanks|thank you|cheers|sincerely)\s*,?\s*$`)
	headerPattern   = regexp.MustCompile(`(?im)^(?:to|from|cc):\s*(.+)$`)
)

// Analyzer derives a ContextProfile from matched files and mined mail
// messages. Fixtures, when set, short-circuit analysis for a recipient name
// found in the instruction; they exist for tests and demos, not as baked-in
// behavior.
type Analyzer struct {
	Fixtures map[string]model.ContextProfile
}

// Analyze summarizes at most search.MaxContextFiles matches plus any mail
// messages into relationship/style metadata for prompt construction.
func (a *Analyzer) Analyze(matches []model.MatchRecord, mailMsgs []model.MailMessage) model.ContextProfile {
	profile := model.ContextProfile{}
	seen := map[string]map[string]struct{}{
		"recipient": {},
		"greeting":  {},
		"signoff":   {},
		"tone":      {},
	}
	add := func(kind string, target *[]string, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		key := strings.ToLower(value)
		if _, ok := seen[kind][key]; ok {
			return
		}
		seen[kind][key] = struct{}{}
		*target = append(*target, value)
	}

	for _, m := range search.ContextSubset(matches) {
		profile.Sources = append(profile.Sources, m.Path)
		text := fileText(m)

		for _, g := range greetingPattern.FindAllStringSubmatch(text, -1) {
			add("greeting", &profile.Greetings, g[1])
			add("recipient", &profile.Recipients, g[2])
		}
		for _, s := range signOffPattern.FindAllStringSubmatch(text, -1) {
			add("signoff", &profile.SignOffs, s[1])
		}
		for _, h := range headerPattern.FindAllStringSubmatch(text, -1) {
			add("recipient", &profile.Recipients, strings.TrimSpace(h[1]))
		}
		if strings.Contains(text, "!") {
			add("tone", &profile.ToneHints, "enthusiastic")
		}
		if signOffPattern.MatchString(text) && !strings.Contains(text, "!") {
			add("tone", &profile.ToneHints, "professional")
		}
	}

	for _, msg := range mailMsgs {
		add("recipient", &profile.Recipients, msg.Sender)
	}

	return profile
}

// FixtureFor looks up a configured fixture whose key appears in the
// instruction, case-insensitively.
func (a *Analyzer) FixtureFor(instruction string) (model.ContextProfile, bool) {
	lowered := strings.ToLower(instruction)
	for name, profile := range a.Fixtures {
		if name != "" && strings.Contains(lowered, strings.ToLower(name)) {
			return profile, true
		}
	}
	return model.ContextProfile{}, false
}

// fileText returns the decoded content of a matched file for pattern
// mining. Preview lines only carry the lines containing the query, so
// greetings and sign-offs elsewhere in the file would be invisible without
// the full read. Falls back to the preview when the file cannot be read.
func fileText(m model.MatchRecord) string {
	f, err := os.Open(m.Path)
	if err != nil {
		return previewText(m)
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, maxAnalyzeBytes))
	if err != nil {
		return previewText(m)
	}
	text, err := search.DecodeText(raw)
	if err != nil {
		return previewText(m)
	}
	return text
}

func previewText(m model.MatchRecord) string {
	lines := make([]string, 0, len(m.Preview))
	for _, p := range m.Preview {
		lines = append(lines, p.LineText)
	}
	return strings.Join(lines, "\n")
}
