package mailclient

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"draftdesk/internal/model"
)

const snippetRuneLimit = 200

// EmlDirProvider reads .eml files from a directory. It exists so the mail
// context feature works (and is testable) without a desktop mail client.
type EmlDirProvider struct {
	Dir string
}

func NewEmlDirProvider(dir string) *EmlDirProvider {
	return &EmlDirProvider{Dir: dir}
}

// RecentMessages parses up to max .eml files, newest first by mtime.
// Unparseable files are skipped.
func (p *EmlDirProvider) RecentMessages(ctx context.Context, max int) ([]model.MailMessage, error) {
	if max <= 0 {
		max = defaultRecentLimit
	}
	entries, err := os.ReadDir(p.Dir)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		path  string
		mtime int64
	}
	candidates := make([]candidate, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".eml") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{
			path:  filepath.Join(p.Dir, entry.Name()),
			mtime: info.ModTime().UnixNano(),
		})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].mtime > candidates[j].mtime })

	messages := make([]model.MailMessage, 0, max)
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return messages, err
		}
		msg, ok := parseEmlFile(c.path)
		if !ok {
			continue
		}
		messages = append(messages, msg)
		if len(messages) == max {
			break
		}
	}
	return messages, nil
}

func parseEmlFile(path string) (model.MailMessage, bool) {
	f, err := os.Open(path)
	if err != nil {
		return model.MailMessage{}, false
	}
	defer func() {
		_ = f.Close()
	}()

	parsed, err := mail.ReadMessage(f)
	if err != nil {
		return model.MailMessage{}, false
	}

	sender := parsed.Header.Get("From")
	if addr, err := mail.ParseAddress(sender); err == nil {
		if addr.Name != "" {
			sender = addr.Name
		} else {
			sender = addr.Address
		}
	}

	return model.MailMessage{
		Subject: parsed.Header.Get("Subject"),
		Sender:  sender,
		Snippet: bodySnippet(parsed),
	}, true
}

// bodySnippet extracts the first text part of the message body, truncated
// to snippetRuneLimit runes.
func bodySnippet(msg *mail.Message) string {
	contentType := msg.Header.Get("Content-Type")
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return truncateSnippet(readAllString(msg.Body))
	}

	boundary := params["boundary"]
	if boundary == "" {
		return ""
	}
	reader := multipart.NewReader(msg.Body, boundary)
	for {
		part, err := reader.NextPart()
		if err != nil {
			return ""
		}
		partType, _, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
		if err == nil && strings.HasPrefix(partType, "text/plain") {
			return truncateSnippet(readAllString(part))
		}
	}
}

func readAllString(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 64*1024))
	if err != nil {
		return ""
	}
	return string(raw)
}

func truncateSnippet(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) > snippetRuneLimit {
		return string(runes[:snippetRuneLimit])
	}
	return s
}
