// Package chatui implements the interactive chat terminal over a running
// draftdesk server. Free text becomes chat turns; slash commands hit the
// tool endpoints directly.
package chatui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"draftdesk/internal/protocol"
	"draftdesk/internal/ui"
)

type Options struct {
	BaseURL    string
	UseContext bool
}

// Run connects to the server and starts the chat program.
func Run(ctx context.Context, opts Options) error {
	client := NewClient(opts.BaseURL)
	if err := client.Health(ctx); err != nil {
		return fmt.Errorf("server not reachable at %s: %w", client.BaseURL, err)
	}
	p := tea.NewProgram(initialModel(ctx, client, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type replyMsg struct {
	output string
	err    error
	quit   bool
	clear  bool
	toggle bool
}

type chatModel struct {
	client     *Client
	ctx        context.Context
	viewport   viewport.Model
	textInput  textinput.Model
	spinner    spinner.Model
	messages   []string
	banner     []string
	useContext bool
	isLoading  bool
	ready      bool
	width      int
	height     int
}

func initialModel(ctx context.Context, client *Client, opts Options) chatModel {
	ti := textinput.New()
	ti.Placeholder = "Describe the email you need, or type /help..."
	ti.Focus()
	ti.CharLimit = 1000
	ti.Width = 80

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ui.ClrBrand)

	banner := []string{
		ui.Info("draftdesk", "connected to "+client.BaseURL),
		ui.Dim("Toggle personal context with ctrl+t. Type /help for commands."),
	}

	return chatModel{
		client:     client,
		ctx:        ctx,
		textInput:  ti,
		spinner:    s,
		messages:   append([]string(nil), banner...),
		banner:     banner,
		useContext: opts.UseContext,
	}
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	m.textInput, tiCmd = m.textInput.Update(msg)
	m.spinner, spCmd = m.spinner.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlT:
			m.useContext = !m.useContext
			m.appendMessage(ui.Dim("Personal context ") + ui.ContextBadge(m.useContext))
			return m, nil
		case tea.KeyEnter:
			if m.isLoading {
				return m, nil
			}
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}
			m.textInput.SetValue("")
			m.appendMessage(ui.Prompt("draftdesk") + input)
			m.isLoading = true
			return m, tea.Batch(m.processInputCmd(input), m.spinner.Tick)
		}

	case tea.WindowSizeMsg:
		m.applyWindowSize(msg.Width, msg.Height)

	case replyMsg:
		m.isLoading = false
		if msg.quit {
			return m, tea.Quit
		}
		if msg.clear {
			m.messages = append([]string(nil), m.banner...)
			m.refreshViewport()
			return m, nil
		}
		if msg.toggle {
			m.useContext = !m.useContext
			m.appendMessage(ui.Dim("Personal context ") + ui.ContextBadge(m.useContext))
			return m, nil
		}
		if msg.err != nil {
			m.appendMessage(ui.Errorf("%v", msg.err))
		} else if msg.output != "" {
			m.appendMessage(msg.output)
		}
		return m, nil
	}

	m.viewport, vpCmd = m.viewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

func (m chatModel) View() string {
	if !m.ready {
		return "\n  Connecting..."
	}

	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if m.isLoading {
		b.WriteString(m.spinner.View() + " ")
	} else {
		b.WriteString(ui.Prompt("draftdesk"))
	}
	b.WriteString(m.textInput.View())
	b.WriteString("\n")
	b.WriteString(ui.ContextBadge(m.useContext) + ui.Dim("  ctrl+t toggle  /help commands"))
	return b.String()
}

func (m *chatModel) appendMessage(text string) {
	m.messages = append(m.messages, text)
	m.refreshViewport()
}

func (m *chatModel) refreshViewport() {
	m.viewport.SetContent(strings.Join(m.messages, "\n\n"))
	m.viewport.GotoBottom()
}

func (m *chatModel) applyWindowSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width = width
	m.height = height

	vpWidth := maxInt(width-2, 1)
	m.textInput.Width = maxInt(width-16, 1)

	// input row + status row
	vpHeight := maxInt(height-2, 1)

	if !m.ready {
		m.viewport = viewport.New(vpWidth, vpHeight)
		m.viewport.SetContent(strings.Join(m.messages, "\n\n"))
		m.ready = true
		return
	}
	m.viewport.Width = vpWidth
	m.viewport.Height = vpHeight
}

func (m *chatModel) processInputCmd(input string) tea.Cmd {
	useContext := m.useContext
	return func() tea.Msg {
		if strings.HasPrefix(input, "/") {
			return m.runCommand(input, useContext)
		}
		reply, err := m.client.Chat(m.ctx, input, useContext)
		if err != nil {
			return replyMsg{err: err}
		}
		out := reply.Reply
		if len(reply.Sources) > 0 {
			out += "\n" + ui.Dim("Sources: "+strings.Join(reply.Sources, ", "))
		}
		return replyMsg{output: out}
	}
}

func (m *chatModel) runCommand(input string, useContext bool) tea.Msg {
	cmd, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "/quit", "/exit":
		return replyMsg{quit: true}
	case "/clear":
		return replyMsg{clear: true}
	case "/context":
		return replyMsg{toggle: true}
	case "/help":
		return replyMsg{output: formatHelp()}
	case "/tools":
		defs, err := m.client.ListTools(m.ctx)
		if err != nil {
			return replyMsg{err: err}
		}
		var b strings.Builder
		for _, d := range defs {
			fmt.Fprintf(&b, "  %s  %s\n", ui.Keyword.Render(d.Name), ui.Muted.Render(d.Description))
		}
		return replyMsg{output: strings.TrimRight(b.String(), "\n")}
	case "/search":
		if rest == "" {
			return replyMsg{err: fmt.Errorf("usage: /search <query>")}
		}
		res, err := m.client.CallTool(m.ctx, protocol.ToolNameSearchFiles, map[string]any{"query": rest})
		if err != nil {
			return replyMsg{err: err}
		}
		return replyMsg{output: res.Text}
	case "/draft":
		if rest == "" {
			return replyMsg{err: fmt.Errorf("usage: /draft <instruction>")}
		}
		res, err := m.client.CallTool(m.ctx, protocol.ToolNameDraftEmail, map[string]any{
			"instruction": rest,
			"use_context": useContext,
		})
		if err != nil {
			return replyMsg{err: err}
		}
		return replyMsg{output: res.Text}
	}
	return replyMsg{err: fmt.Errorf("unknown command %s, type /help", cmd)}
}

func formatHelp() string {
	var b strings.Builder
	b.WriteString(ui.Brand.Render("Commands:\n"))
	fmt.Fprintf(&b, "  %s  %s\n", ui.Keyword.Render("/help"), ui.Muted.Render("Show help"))
	fmt.Fprintf(&b, "  %s  %s\n", ui.Keyword.Render("/quit"), ui.Muted.Render("Exit the chat"))
	fmt.Fprintf(&b, "  %s  %s\n", ui.Keyword.Render("/clear"), ui.Muted.Render("Clear chat history"))
	fmt.Fprintf(&b, "  %s  %s\n", ui.Keyword.Render("/context"), ui.Muted.Render("Toggle personal context"))
	fmt.Fprintf(&b, "  %s  %s\n", ui.Keyword.Render("/tools"), ui.Muted.Render("List available tools"))
	fmt.Fprintf(&b, "  %s  %s\n", ui.Keyword.Render("/search <query>"), ui.Muted.Render("Search your files"))
	fmt.Fprintf(&b, "  %s  %s\n", ui.Keyword.Render("/draft <instruction>"), ui.Muted.Render("Draft an email directly"))
	b.WriteString(ui.Dim("  Any other text is a chat turn; ctrl+t toggles personal context."))
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
