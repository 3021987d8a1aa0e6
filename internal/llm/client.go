// Package llm integrates an OpenAI-compatible chat completions API
// (Groq) with the QR code service, exposing a function-calling
// assistant for natural language management of QR codes.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Message is a single chat message exchanged with the model.
type Message struct {
	Role         string        `json:"role"`
	Content      string        `json:"content"`
	FunctionCall *FunctionCall `json:"function_call,omitempty"`
}

// FunctionCall is the model's request to invoke one of the advertised functions.
// Arguments is a JSON-encoded object.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Function describes a callable function advertised to the model.
type Function struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

type chatRequest struct {
	Model        string     `json:"model"`
	Messages     []Message  `json:"messages"`
	Functions    []Function `json:"functions,omitempty"`
	FunctionCall string     `json:"function_call,omitempty"`
	Temperature  float64    `json:"temperature"`
	MaxTokens    int        `json:"max_tokens"`
	TopP         float64    `json:"top_p"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client is an HTTP client for an OpenAI-compatible chat completions endpoint.
// The model name can be swapped at runtime.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string

	mu    sync.RWMutex
	model string
}

// NewClient creates a chat completions client.
// baseURL is the API base (e.g. https://api.groq.com/openai/v1).
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
	}
}

// Model returns the model name currently in use.
func (c *Client) Model() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

// SetModel swaps the model used for subsequent completions.
func (c *Client) SetModel(model string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.model = model
}

// CreateChatCompletion sends the conversation to the model and returns its reply.
// The advertised functions let the model respond with a function call instead of text.
func (c *Client) CreateChatCompletion(ctx context.Context, messages []Message, functions []Function) (*Message, error) {
	const op = "llm.Client.CreateChatCompletion"

	payload := chatRequest{
		Model:       c.Model(),
		Messages:    messages,
		Functions:   functions,
		Temperature: 0.7,
		MaxTokens:   1024,
		TopP:        1,
	}
	if len(functions) > 0 {
		payload.FunctionCall = "auto"
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to marshal request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", op, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%s: unexpected status %d: %s", op, resp.StatusCode, string(data))
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%s: failed to decode response: %w", op, err)
	}

	if result.Error != nil {
		return nil, fmt.Errorf("%s: api error: %s", op, result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("%s: response contains no choices", op)
	}

	return &result.Choices[0].Message, nil
}
