// Package llm talks to an OpenAI-compatible chat completions endpoint.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ErrNotConfigured is returned when no API key is set
var ErrNotConfigured = errors.New("language model API key is not configured")

// Message is one chat turn
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer produces a reply for a conversation
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Config for the OpenAI client. An empty BaseURL keeps the library default.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Option customises the underlying transport
type Option func(*openai.ClientConfig)

// WithHTTPClient routes requests through hc
func WithHTTPClient(hc *http.Client) Option {
	return func(c *openai.ClientConfig) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

// Client is a Completer backed by go-openai
type Client struct {
	api     *openai.Client
	apiKey  string
	model   string
	timeout time.Duration
}

// NewClient builds a Client from cfg
func NewClient(cfg Config, opts ...Option) *Client {
	apiKey := strings.TrimSpace(cfg.APIKey)
	clientCfg := openai.DefaultConfig(apiKey)
	if baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); baseURL != "" {
		clientCfg.BaseURL = baseURL
	}
	for _, opt := range opts {
		opt(&clientCfg)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Model == "" {
		cfg.Model = openai.GPT3Dot5Turbo
	}
	return &Client{
		api:     openai.NewClientWithConfig(clientCfg),
		apiKey:  apiKey,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
}

// Complete sends messages and returns the first choice's content
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("completion api error (status %d): %s", apiErr.HTTPStatusCode, apiErr.Message)
		}
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion api returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
