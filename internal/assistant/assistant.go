// Package assistant implements the email-drafting brain: intent
// classification over free chat text, context analysis of matched files,
// prompt construction, and the draft flow that ties search and generation
// together.
package assistant

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"

	"draftdesk/internal/model"
)

// Assistant wires the search core, the mail-context provider, and the
// text generator. All collaborators are injected; there is no package
// state.
type Assistant struct {
	Searcher  model.Searcher
	Generator model.Generator
	Mail      model.MailProvider
	Analyzer  *Analyzer

	Roots     []string
	FileTypes []string
	Logger    *log.Logger
}

// ChatReply is one assistant turn for the chat surface.
type ChatReply struct {
	Reply   string       `json:"reply"`
	Intent  model.Intent `json:"intent"`
	Sources []string     `json:"sources,omitempty"`
}

func New(searcher model.Searcher, generator model.Generator, mail model.MailProvider, roots, fileTypes []string, logger *log.Logger) *Assistant {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	return &Assistant{
		Searcher:  searcher,
		Generator: generator,
		Mail:      mail,
		Analyzer:  &Analyzer{},
		Roots:     roots,
		FileTypes: fileTypes,
		Logger:    logger,
	}
}

// Chat handles one free-text turn: classify, then route to the drafting
// flow, a context search, system info, or plain generation.
func (a *Assistant) Chat(ctx context.Context, message string, useContext bool) (ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return ChatReply{}, fmt.Errorf("message is required")
	}

	intent := Classify(message)
	a.Logger.Debug("classified chat turn", "intent", intent)

	switch intent {
	case model.IntentDraftEmail:
		draft, err := a.Draft(ctx, message, useContext)
		if err != nil {
			return ChatReply{}, err
		}
		return ChatReply{Reply: draft.Text, Intent: intent, Sources: draft.Sources}, nil

	case model.IntentSearch:
		res, err := a.searchContext(ctx, searchQuery(message))
		if err != nil {
			return ChatReply{}, err
		}
		return ChatReply{
			Reply:   formatSearchReply(res),
			Intent:  intent,
			Sources: matchPaths(res.Matches),
		}, nil

	case model.IntentInfo:
		return ChatReply{Reply: systemInfoText(), Intent: intent}, nil

	default:
		text, err := a.Generator.Generate(ctx, BuildChatPrompt(message))
		if err != nil {
			return ChatReply{}, err
		}
		return ChatReply{Reply: text, Intent: intent}, nil
	}
}

// Draft produces an email for instruction. With useContext, matched files
// and recent mail feed a ContextProfile into the prompt; without it the
// prompt is context-free.
func (a *Assistant) Draft(ctx context.Context, instruction string, useContext bool) (model.DraftResult, error) {
	if strings.TrimSpace(instruction) == "" {
		return model.DraftResult{}, fmt.Errorf("instruction is required")
	}

	var profile *model.ContextProfile
	var sources []string
	if useContext {
		p := a.gatherContext(ctx, instruction)
		profile = &p
		sources = p.Sources
	}

	text, err := a.Generator.Generate(ctx, BuildDraftPrompt(instruction, profile))
	if err != nil {
		return model.DraftResult{}, err
	}
	return model.DraftResult{
		Text:        text,
		UsedContext: useContext,
		Sources:     sources,
	}, nil
}

// AnalyzePatterns runs a context search and returns the derived profile
// without generating anything. Backs the analyze tool.
func (a *Assistant) AnalyzePatterns(ctx context.Context, query string, roots []string) (model.ContextProfile, error) {
	if len(roots) == 0 {
		roots = a.Roots
	}
	res, err := a.Searcher.Search(ctx, query, roots, a.FileTypes)
	if err != nil {
		return model.ContextProfile{}, err
	}
	return a.Analyzer.Analyze(res.Matches, a.recentMail(ctx)), nil
}

func (a *Assistant) gatherContext(ctx context.Context, instruction string) model.ContextProfile {
	if a.Analyzer != nil {
		if fixture, ok := a.Analyzer.FixtureFor(instruction); ok {
			return fixture
		}
	}

	res, err := a.searchContext(ctx, contextQuery(instruction))
	if err != nil {
		// per-search failure degrades to a context-free draft
		a.Logger.Warn("context search failed", "err", err)
		return model.ContextProfile{}
	}
	return a.Analyzer.Analyze(res.Matches, a.recentMail(ctx))
}

func (a *Assistant) searchContext(ctx context.Context, query string) (model.SearchResult, error) {
	return a.Searcher.Search(ctx, query, a.Roots, a.FileTypes)
}

func (a *Assistant) recentMail(ctx context.Context) []model.MailMessage {
	if a.Mail == nil {
		return nil
	}
	msgs, err := a.Mail.RecentMessages(ctx, 10)
	if err != nil {
		a.Logger.Debug("mail context unavailable", "err", err)
		return nil
	}
	return msgs
}

// searchQuery turns a search-intent sentence into a content query. The
// leading verb phrase the classifier matched on ("find", "look for", ...)
// is stripped; the remainder is reduced the same way drafting context is,
// since the full sentence rarely appears verbatim in any file.
func searchQuery(message string) string {
	stripped := strings.TrimSpace(searchPattern.ReplaceAllString(message, ""))
	if stripped == "" {
		return message
	}
	return contextQuery(stripped)
}

// contextQuery reduces an instruction to the longest words most likely to
// appear in related files; the full sentence rarely matches anything.
func contextQuery(instruction string) string {
	best := ""
	for _, word := range strings.Fields(instruction) {
		word = strings.Trim(word, ".,!?\"'")
		if len(word) > len(best) {
			best = word
		}
	}
	if best == "" {
		return instruction
	}
	return best
}

func formatSearchReply(res model.SearchResult) string {
	if len(res.Matches) == 0 {
		return fmt.Sprintf("No files matched %q.", res.Query)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d file(s) matching %q:\n", len(res.Matches), res.Query)
	for _, m := range res.Matches {
		fmt.Fprintf(&b, "- %s\n", m.Path)
	}
	return strings.TrimRight(b.String(), "\n")
}

func matchPaths(matches []model.MatchRecord) []string {
	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, m.Path)
	}
	return paths
}

func systemInfoText() string {
	hostname, _ := os.Hostname()
	wd, _ := os.Getwd()
	return fmt.Sprintf("os=%s arch=%s host=%s go=%s workdir=%s",
		runtime.GOOS, runtime.GOARCH, hostname, runtime.Version(), wd)
}
