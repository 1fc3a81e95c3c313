// Package mailclient mines recent messages for drafting context, either
// from a scriptable Outlook installation or from a directory of .eml files.
package mailclient

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"draftdesk/internal/model"
)

const defaultRecentLimit = 10

// outlookAppleScript emits one line per message as subject<TAB>sender.
const outlookAppleScript = `
tell application "Microsoft Outlook"
	set out to ""
	set msgs to messages of inbox
	repeat with i from 1 to (count of msgs)
		if i > %d then exit repeat
		set m to item i of msgs
		set out to out & (subject of m) & tab & (sender of m as string) & linefeed
	end repeat
	return out
end tell`

// outlookPowerShell mirrors the AppleScript output format via the Outlook
// COM object model.
const outlookPowerShell = `
$outlook = New-Object -ComObject Outlook.Application
$inbox = $outlook.GetNamespace("MAPI").GetDefaultFolder(6)
$inbox.Items | Select-Object -First %d | ForEach-Object {
  "{0}` + "`t" + `{1}" -f $_.Subject, $_.SenderName
}`

// OutlookProvider shells out to the platform mail client. It carries no
// state; each call runs a fresh script.
type OutlookProvider struct{}

func NewOutlookProvider() *OutlookProvider {
	return &OutlookProvider{}
}

// RecentMessages returns up to max inbox summaries. Platforms without a
// scriptable Outlook return ErrUnsupportedPlatform.
func (p *OutlookProvider) RecentMessages(ctx context.Context, max int) ([]model.MailMessage, error) {
	if max <= 0 {
		max = defaultRecentLimit
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "osascript", "-e", fmt.Sprintf(outlookAppleScript, max))
	case "windows":
		cmd = exec.CommandContext(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", fmt.Sprintf(outlookPowerShell, max))
	default:
		return nil, model.ErrUnsupportedPlatform
	}

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("query mail client: %w", err)
	}
	return parseScriptOutput(string(out), max), nil
}

func parseScriptOutput(out string, max int) []model.MailMessage {
	messages := make([]model.MailMessage, 0, max)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		subject, sender, _ := strings.Cut(line, "\t")
		messages = append(messages, model.MailMessage{
			Subject: strings.TrimSpace(subject),
			Sender:  strings.TrimSpace(sender),
		})
		if len(messages) == max {
			break
		}
	}
	return messages
}
