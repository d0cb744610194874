package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"bookflow/internal/config"
)

// RequestError tags transport, timeout, and non-2xx completion failures so
// callers can distinguish them from local errors.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("llm request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Client wraps an OpenAI-compatible chat completion endpoint (OpenRouter by
// default). Constructed once and injected so pipeline logic tests without a
// live endpoint.
type Client struct {
	llm     *openai.LLM
	timeout time.Duration
}

func New(cfg *config.LLMConfig) (*Client, error) {
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(strings.TrimPrefix(cfg.Key, "Bearer ")),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize llm client: %v", err)
	}
	return &Client{
		llm:     llm,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}, nil
}

// Complete sends one system+user exchange and returns the completion text.
// The call blocks until a result or failure is known, bounded by the
// configured timeout.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextContent{Text: system}},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: user}},
		},
	}

	res, err := c.llm.GenerateContent(ctx, messages,
		llms.WithTemperature(0.7),
		llms.WithMaxTokens(4096),
	)
	if err != nil {
		return "", &RequestError{Err: err}
	}
	if len(res.Choices) == 0 {
		return "", &RequestError{Err: errors.New("empty completion response")}
	}
	return res.Choices[0].Content, nil
}

// Truncate caps text at max bytes without splitting a rune.
func Truncate(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
