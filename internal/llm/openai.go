package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
)

// OpenAIClient calls an OpenAI-compatible chat completions endpoint such as
// vLLM, Ollama or Llama Stack.
type OpenAIClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewOpenAIClient creates a client for the endpoint at baseURL, for example
// "http://localhost:11434/v1".
func NewOpenAIClient(baseURL, apiKey, model string) *OpenAIClient {
	return NewOpenAIClientWithHTTPClient(baseURL, apiKey, model, &http.Client{Timeout: 120 * time.Second})
}

// NewOpenAIClientWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewOpenAIClientWithHTTPClient(baseURL, apiKey, model string, httpClient *http.Client) *OpenAIClient {
	return &OpenAIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// CallModel posts one chat completion at temperature 0.
func (c *OpenAIClient) CallModel(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("llm: invalid endpoint: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", domain.Errorf(domain.CodeTransportError, "llm: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", domain.Errorf(domain.CodeTransportError, "llm: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", domain.Errorf(domain.CodeTransportError, "llm: decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", domain.Errorf(domain.CodeTransportError, "llm: response has no choices")
	}
	return out.Choices[0].Message.Content, nil
}
