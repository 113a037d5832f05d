package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// systemMessage is the system message for the financial analyst persona
const systemMessage = "You are a helpful financial analyst assistant."

// FallbackPrefix starts the explanation stored when the completion call fails
const FallbackPrefix = "Could not generate explanation: "

// ErrNoChoices is returned when the API answers without any completion
var ErrNoChoices = errors.New("no response choices returned")

// Client is an OpenAI-compatible chat completion client (OpenRouter by default)
type Client struct {
	endpoint string
	apiKey   string
	model    string
	timeout  time.Duration
	client   *http.Client
}

// NewClient creates a new LLM client. endpoint is the API base, e.g. https://openrouter.ai/api/v1
func NewClient(endpoint, apiKey, model string) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		model:    model,
		client: &http.Client{
			// No client timeout; callers bound requests with a context
			Transport: transport,
		},
	}
}

// WithTimeout bounds each Explain call. Zero means no bound beyond the caller's context.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.timeout = d
	return c
}

// Model returns the configured model identifier
func (c *Client) Model() string {
	return c.model
}

// Message represents a chat message
type Message struct {
	Role    string `json:"role"` // "system", "user", or "assistant"
	Content string `json:"content"`
}

// ChatRequest represents an OpenAI chat completion request.
// Zero Temperature/MaxTokens are omitted so the provider defaults apply.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// ChatResponse represents an OpenAI chat completion response
type ChatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int     `json:"index"`
		Message Message `json:"message"`
		Finish  string  `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	// OpenRouter reports some upstream failures with a 200 and an error body
	Error *struct {
		Code    interface{} `json:"code"`
		Message string      `json:"message"`
	} `json:"error,omitempty"`
}

// ChatCompletion sends a chat completion request and returns the first choice's content
func (c *Client) ChatCompletion(ctx context.Context, messages []Message) (string, error) {
	reqBody := ChatRequest{
		Model:    c.model,
		Messages: messages,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("API error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", ErrNoChoices
	}

	return chatResp.Choices[0].Message.Content, nil
}

// Analyze sends the prompt under the analyst system message
func (c *Client) Analyze(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	messages := []Message{
		{
			Role:    "system",
			Content: systemMessage,
		},
		{
			Role:    "user",
			Content: prompt,
		},
	}

	return c.ChatCompletion(ctx, messages)
}

// Explain is Analyze with the failure folded into the text: any error yields
// "Could not generate explanation: <error>". ok reports whether the API answered.
func (c *Client) Explain(ctx context.Context, prompt string) (explanation string, ok bool) {
	text, err := c.Analyze(ctx, prompt)
	if err != nil {
		return Fallback(err), false
	}
	return text, true
}

// Fallback renders the explanation stored in place of a failed completion
func Fallback(err error) string {
	return FallbackPrefix + err.Error()
}

// IsFallback reports whether an explanation is a failure placeholder
func IsFallback(explanation string) bool {
	return strings.HasPrefix(explanation, FallbackPrefix)
}
