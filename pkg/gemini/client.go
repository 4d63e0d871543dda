package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"resume-agent-backend/pkg/logger"
)

const (
	defaultModel = "gemini-2.0-flash"

	// how long a key sits out after hitting a quota error
	rateLimitCooldown = 60 * time.Second
)

var (
	ErrNoKeys         = errors.New("gemini: no API keys configured")
	ErrAllKeysLimited = errors.New("gemini: all API keys are rate-limited")
	ErrEmptyResponse  = errors.New("gemini: empty response from model")
)

// Options configures generation behavior.
type Options struct {
	Model       string
	Temperature float32
	MaxTokens   int32
}

// Client wraps the Google GenAI client with a rotating pool of API keys.
// When a key hits a quota error it is benched for a cooldown period and
// the next key in the pool takes over.
type Client struct {
	opts Options

	mu      sync.Mutex
	keys    []*apiKey
	current int
}

type apiKey struct {
	value       string
	limitedTill time.Time
}

// NewClient creates a Client over the given key pool.
func NewClient(keys []string, opts Options) (*Client, error) {
	pool := make([]*apiKey, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			pool = append(pool, &apiKey{value: k})
		}
	}
	if len(pool) == 0 {
		return nil, ErrNoKeys
	}

	if strings.TrimSpace(opts.Model) == "" {
		opts.Model = defaultModel
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 8192
	}

	return &Client{opts: opts, keys: pool}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.opts.Model
}

// KeyCount returns the size of the key pool.
func (c *Client) KeyCount() int {
	return len(c.keys)
}

// Generate sends the prompt to Gemini and returns the concatenated text output.
// A non-empty systemInstruction is attached as the system prompt.
func (c *Client) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("gemini: prompt must not be empty")
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.opts.Temperature),
		MaxOutputTokens: c.opts.MaxTokens,
	}
	if si := strings.TrimSpace(systemInstruction); si != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: si}},
		}
	}

	// Try each key at most once per call.
	for attempt := 0; attempt < len(c.keys); attempt++ {
		key, err := c.nextKey()
		if err != nil {
			return "", err
		}

		output, err := c.generateWithKey(ctx, key.value, prompt, cfg)
		if err == nil {
			return output, nil
		}
		if !isQuotaError(err) {
			return "", err
		}

		c.benchKey(key)
		logger.Log.Warn("gemini key rate-limited, rotating",
			"cooldown", rateLimitCooldown.String(),
			"remaining_keys", c.availableKeys())
	}

	return "", ErrAllKeysLimited
}

func (c *Client) generateWithKey(ctx context.Context, key, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("gemini: create client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, c.opts.Model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", ErrEmptyResponse
	}
	return output, nil
}

// nextKey returns the next available key in round-robin order.
func (c *Client) nextKey() (*apiKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for i := 0; i < len(c.keys); i++ {
		idx := (c.current + i) % len(c.keys)
		if now.After(c.keys[idx].limitedTill) {
			c.current = (idx + 1) % len(c.keys)
			return c.keys[idx], nil
		}
	}
	return nil, ErrAllKeysLimited
}

func (c *Client) benchKey(key *apiKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key.limitedTill = time.Now().Add(rateLimitCooldown)
}

func (c *Client) availableKeys() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	count := 0
	for _, k := range c.keys {
		if now.After(k.limitedTill) {
			count++
		}
	}
	return count
}

// isQuotaError detects rate-limit / quota-exhaustion responses.
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "rate limit")
}
