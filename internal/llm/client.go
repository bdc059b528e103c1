// Package llm is a client for OpenAI-compatible chat completions endpoints.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"daylog/internal/apperr"
)

// DefaultMaxTokens caps the completion length of categorization replies.
const DefaultMaxTokens = 1024

// Client is a client for interacting with a chat completions API.
type Client struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
	client    *http.Client
}

// NewClient creates a new LLM client.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		APIKey:    apiKey,
		Model:     model,
		MaxTokens: DefaultMaxTokens,
		client:    http.DefaultClient,
	}
}

// ChatMessage represents a single message in a chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents the request payload for chat completions.
type ChatRequest struct {
	Model     string        `json:"model"`
	Messages  []ChatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

// ChatChoice represents a single choice in the chat response.
type ChatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// ChatResponse represents the response from the chat completions API.
type ChatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Choices []ChatChoice `json:"choices"`
}

// HasAPIKey reports whether a key is configured.
func (c *Client) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// Complete sends prompt as a single user message and returns the text of
// the first choice.
//
// Status 401 maps to apperr.ErrCategorizationAuth, 429 to
// apperr.ErrCategorizationRateLimited and any other non-200 status to
// *apperr.StatusError. A reply without text is
// apperr.ErrCategorizationResponseInvalid.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return c.send(ctx, prompt, c.MaxTokens)
}

// Validate checks the configured key with a minimal request.
func (c *Client) Validate(ctx context.Context) error {
	_, err := c.send(ctx, "Hi", 16)
	return err
}

func (c *Client) send(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if !c.HasAPIKey() {
		return "", apperr.ErrCredentialMissing
	}

	url := fmt.Sprintf("%s/v1/chat/completions", c.BaseURL)

	payload := ChatRequest{
		Model: c.Model,
		Messages: []ChatMessage{
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return "", apperr.ErrCategorizationAuth
	case http.StatusTooManyRequests:
		return "", apperr.ErrCategorizationRateLimited
	default:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &apperr.StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %w", apperr.ErrCategorizationResponseInvalid, err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", apperr.ErrCategorizationResponseInvalid)
	}
	content := chatResp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: empty message content", apperr.ErrCategorizationResponseInvalid)
	}

	return content, nil
}
