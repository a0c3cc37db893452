package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/1adityakadam/financial-calculators/internal/session"
)

const ollamaEndpoint = "http://localhost:11434/api/chat"

// OllamaRequest is the request body for the Ollama chat API.
type OllamaRequest struct {
	Model    string              `json:"model"`
	Messages []map[string]string `json:"messages"`
	Stream   bool                `json:"stream"`
}

// OllamaResponse is the response from the Ollama chat API.
type OllamaResponse struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Message   struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

// Ollama generates answers from a local Ollama instance, useful for
// offline development.
type Ollama struct {
	deps  Deps
	model string
	url   string
}

// NewOllama returns an Ollama client against the default local endpoint.
func NewOllama(deps Deps, model string) *Ollama {
	if model == "" {
		model = "llama3:latest"
	}
	return &Ollama{deps: deps, model: model, url: ollamaEndpoint}
}

func (o *Ollama) Name() string { return "ollama" }

// Generate sends the system prompt and history to Ollama.
func (o *Ollama) Generate(ctx context.Context, systemPrompt string, history []session.Message) (string, error) {
	ctx, span := startSpan(ctx, o.deps, "ollama_api_call")
	defer span.End()

	start := time.Now()

	reqMessages := make([]map[string]string, 0, len(history)+1)
	reqMessages = append(reqMessages, map[string]string{
		"role": "system", "content": systemPrompt,
	})
	for _, msg := range history {
		reqMessages = append(reqMessages, map[string]string{
			"role": msg.Role, "content": msg.Content,
		})
	}

	reqBody := OllamaRequest{
		Model:    o.model,
		Messages: reqMessages,
		Stream:   false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("content-type", "application/json")

	resp, err := o.deps.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error: %s - %s", resp.Status, string(body))
	}

	var apiResp OllamaResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	o.deps.recordDuration(ctx, start)

	return apiResp.Message.Content, nil
}
