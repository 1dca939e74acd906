package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"taskpilot/backend/config"
)

const openRouterURL = "https://openrouter.ai/api/v1/chat/completions"

// Client calls an OpenAI-compatible chat-completion API and caches
// successful structured results per (operation, model, input). The
// cache has no eviction and no TTL: a client instance lives for one
// session, so duplicate requests are deduplicated and staleness is an
// accepted tradeoff.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client

	mu    sync.Mutex
	cache map[cacheKey]string
	usage map[string]int
}

type cacheKey struct {
	op    string
	model string
	input string
}

func New(apiKey string) *Client {
	return &Client{
		BaseURL:    openRouterURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		cache:      make(map[cacheKey]string),
		usage:      make(map[string]int),
	}
}

// Usage returns how many completion calls were issued per model.
func (c *Client) Usage() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int, len(c.usage))
	for m, n := range c.usage {
		out[m] = n
	}
	return out
}

func (c *Client) cached(key cacheKey) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.cache[key]
	return v, ok
}

func (c *Client) store(key cacheKey, raw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = raw
}

type completionRequest struct {
	Model       string              `json:"model"`
	Messages    []completionMessage `json:"messages"`
	Temperature float64             `json:"temperature"`
	MaxTokens   int                 `json:"max_tokens"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete issues one chat-completion request and returns the raw
// response text. Callers are responsible for extracting JSON from it.
func (c *Client) complete(ctx context.Context, model Model, system, user string, temperature float64, maxTokens int) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("OPENROUTER_API_KEY not set")
	}

	body := completionRequest{
		Model: string(model),
		Messages: []completionMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("X-Title", "taskpilot")

	c.mu.Lock()
	c.usage[string(model)]++
	c.mu.Unlock()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var res completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	content := res.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("no content in choice")
	}

	config.Logger.Debugf("completion from %s: %d bytes", model, len(content))
	return content, nil
}
