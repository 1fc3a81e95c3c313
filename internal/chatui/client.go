package chatui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"draftdesk/internal/assistant"
	"draftdesk/internal/protocol"
	"draftdesk/internal/tools"
)

// Client talks to a running draftdesk server over its JSON API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "http://" + protocol.DefaultListenAddr
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// Chat sends one chat turn.
func (c *Client) Chat(ctx context.Context, message string, useContext bool) (assistant.ChatReply, error) {
	var reply assistant.ChatReply
	err := c.postJSON(ctx, protocol.ChatPath, map[string]any{
		"message":     message,
		"use_context": useContext,
	}, &reply)
	return reply, err
}

// ListTools fetches the tool catalog.
func (c *Client) ListTools(ctx context.Context) ([]tools.Definition, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+protocol.ToolsListPath, nil)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Tools []tools.Definition `json:"tools"`
	}
	if err := c.do(req, &payload); err != nil {
		return nil, err
	}
	return payload.Tools, nil
}

// CallTool invokes one tool by name. A tool-level failure is returned as an
// error built from the payload's code and message.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (*tools.Result, error) {
	var payload struct {
		Result *tools.Result    `json:"result"`
		Error  *tools.ToolError `json:"error"`
	}
	body := map[string]any{"name": name}
	if len(args) > 0 {
		body["arguments"] = args
	}
	if err := c.postJSON(ctx, protocol.ToolsCallPath, body, &payload); err != nil {
		return nil, err
	}
	if payload.Error != nil {
		return nil, payload.Error
	}
	if payload.Result == nil {
		return nil, fmt.Errorf("server returned neither result nor error")
	}
	return payload.Result, nil
}

// Health probes the server.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+protocol.HealthPath, nil)
	if err != nil {
		return err
	}
	var payload map[string]string
	return c.do(req, &payload)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, dst any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, dst)
}

func (c *Client) do(req *http.Request, dst any) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}
	return json.Unmarshal(raw, dst)
}
