// Package mistral is a minimal chat-completions client for the Mistral API,
// covering only the generation call the assistant needs. There are no
// retries; transient failures surface as retryable provider errors and the
// caller decides what to do.
package mistral

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"draftdesk/internal/model"
)

const (
	defaultBaseURL   = "https://api.mistral.ai"
	defaultTimeout   = 60 * time.Second
	DefaultChatModel = "mistral-small-latest"
)

type Client struct {
	APIKey           string
	BaseURL          string
	HTTPClient       *http.Client
	DefaultChatModel string
}

func NewClient(baseURL, apiKey string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		APIKey:           strings.TrimSpace(apiKey),
		BaseURL:          baseURL,
		HTTPClient:       &http.Client{Timeout: defaultTimeout},
		DefaultChatModel: DefaultChatModel,
	}
}

// GenerateOptions tunes one completion call. Zero values fall back to the
// client defaults.
type GenerateOptions struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate satisfies model.Generator with client defaults.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	return c.GenerateWithOptions(ctx, prompt, GenerateOptions{})
}

func (c *Client) GenerateWithOptions(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	apiKey := strings.TrimSpace(c.APIKey)
	if apiKey == "" {
		return "", &model.ProviderError{
			Code:      "MISTRAL_AUTH",
			Message:   "missing Mistral API key",
			Retryable: false,
		}
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", &model.ProviderError{Code: "MISTRAL_FAILED", Message: "prompt is empty", Retryable: false}
	}

	modelName := strings.TrimSpace(opts.Model)
	if modelName == "" {
		modelName = strings.TrimSpace(c.DefaultChatModel)
	}
	if modelName == "" {
		modelName = DefaultChatModel
	}

	reqBody := chatRequest{
		Model:     modelName,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: opts.MaxTokens,
	}
	if opts.Temperature > 0 {
		reqBody.Temperature = &opts.Temperature
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", &model.ProviderError{Code: "MISTRAL_FAILED", Message: "failed to marshal chat request", Retryable: false, Cause: err}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &model.ProviderError{Code: "MISTRAL_FAILED", Message: "failed to build chat request", Retryable: false, Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", &model.ProviderError{Code: "MISTRAL_FAILED", Message: "chat request failed", Retryable: true, Cause: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &model.ProviderError{Code: "MISTRAL_FAILED", Message: "failed to read chat response", Retryable: true, StatusCode: resp.StatusCode, Cause: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		message := strings.TrimSpace(string(bodyBytes))
		if message == "" {
			message = fmt.Sprintf("mistral chat returned status %d", resp.StatusCode)
		}
		return "", mapProviderError(resp.StatusCode, message)
	}

	var parsed chatResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return "", &model.ProviderError{Code: "MISTRAL_FAILED", Message: "failed to decode chat response", Retryable: false, Cause: err}
	}
	if len(parsed.Choices) == 0 {
		return "", &model.ProviderError{Code: "MISTRAL_FAILED", Message: "chat response had no choices", Retryable: false}
	}
	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", &model.ProviderError{Code: "MISTRAL_FAILED", Message: "chat response had no text content", Retryable: false}
	}
	return text, nil
}

func mapProviderError(statusCode int, message string) error {
	pe := &model.ProviderError{
		Code:       "MISTRAL_FAILED",
		Message:    message,
		Retryable:  false,
		StatusCode: statusCode,
	}

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		pe.Code = "MISTRAL_AUTH"
		pe.Retryable = false
	case statusCode == http.StatusTooManyRequests:
		pe.Code = "MISTRAL_RATE_LIMIT"
		pe.Retryable = true
	case statusCode >= http.StatusInternalServerError:
		pe.Retryable = true
	case statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError:
		pe.Retryable = false
	default:
		pe.Retryable = true
	}

	return pe
}
