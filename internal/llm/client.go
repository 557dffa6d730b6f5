// Package llm sends composed prompts to a chat-completion provider.
package llm

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"scanner-rag/internal/models"
)

const (
	ProviderGroq   = "Groq"
	ProviderOpenAI = "OpenAI"

	groqBaseURL   = "https://api.groq.com/openai/v1/chat/completions"
	openaiBaseURL = "https://api.openai.com/v1/chat/completions"

	temperature = 0.2
	maxTokens   = 1024

	DefaultTimeout = 30 * time.Second
)

// Generator produces an answer for a composed prompt. The returned text is
// always displayable: on failure it is a provider-tagged error message shown
// to the user as the assistant's reply. The error return only signals that
// the text must not be cached.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Provider() string
	Model() string
}

// Client is a chat-completion client for one of the two interchangeable
// providers. The provider decides the endpoint; request and response shapes
// are identical.
type Client struct {
	provider string
	apiKey   string
	model    string
	baseURL  string
	client   *http.Client
}

func NewClient(provider, apiKey, model string, timeout time.Duration) *Client {
	baseURL := groqBaseURL
	if provider == ProviderOpenAI {
		baseURL = openaiBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		provider: provider,
		apiKey:   apiKey,
		model:    model,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) Provider() string { return c.provider }

func (c *Client) Model() string { return c.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends the fixed system instruction plus the prompt as the user
// turn and returns the raw completion text. Network, timeout, and HTTP
// failures return a provider-tagged error string so the end user sees the
// failure instead of a silent drop. Failures are never retried.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: models.SystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return c.tagged(err), err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return c.tagged(err), err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return c.tagged(err), err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error().Int("status", resp.StatusCode).Str("provider", c.provider).Msg("Chat completion request failed")
		err := fmt.Errorf("request failed: %d, %s", resp.StatusCode, string(body))
		return c.tagged(err), err
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return c.tagged(err), err
	}
	if len(result.Choices) == 0 {
		err := fmt.Errorf("empty response")
		return c.tagged(err), err
	}
	return result.Choices[0].Message.Content, nil
}

func (c *Client) tagged(err error) string {
	return fmt.Sprintf("[%s API Error] %v", c.provider, err)
}

// CacheKey hashes prompt+model into a session response-cache key. Identical
// prompts against the same model are served from cache within a session.
func CacheKey(prompt, model string) string {
	sum := md5.Sum([]byte(prompt + model))
	return hex.EncodeToString(sum[:])
}

// WithBaseURL overrides the provider endpoint. Used by tests and
// OpenAI-compatible proxies.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}
