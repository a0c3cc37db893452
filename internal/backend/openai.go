package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/1adityakadam/financial-calculators/internal/session"
)

const openAIEndpoint = "https://api.openai.com/v1/chat/completions"

// OpenAIRequest is the request body for OpenAI chat completions.
type OpenAIRequest struct {
	Model       string              `json:"model"`
	Messages    []map[string]string `json:"messages"`
	Temperature float64             `json:"temperature"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
}

// OpenAIResponse is the response from OpenAI chat completions.
type OpenAIResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage map[string]interface{} `json:"usage"`
}

// OpenAI generates finance answers through the OpenAI chat API.
type OpenAI struct {
	deps   Deps
	model  string
	apiKey string
}

// NewOpenAI returns an OpenAI client. The API key falls back to the
// OPENAI_API_KEY environment variable when empty.
func NewOpenAI(deps Deps, model, apiKey string) *OpenAI {
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	return &OpenAI{deps: deps, model: model, apiKey: apiKey}
}

func (o *OpenAI) Name() string { return "openai" }

// Generate sends the system prompt and history to OpenAI and returns the
// first choice.
func (o *OpenAI) Generate(ctx context.Context, systemPrompt string, history []session.Message) (string, error) {
	ctx, span := startSpan(ctx, o.deps, "openai_api_call")
	defer span.End()

	start := time.Now()

	if o.apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	reqMessages := make([]map[string]string, 0, len(history)+1)
	reqMessages = append(reqMessages, map[string]string{
		"role": "system", "content": systemPrompt,
	})
	for _, msg := range history {
		reqMessages = append(reqMessages, map[string]string{
			"role": msg.Role, "content": msg.Content,
		})
	}

	reqBody := OpenAIRequest{
		Model:       o.model,
		Messages:    reqMessages,
		Temperature: 0.7,
		MaxTokens:   500,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIEndpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
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

	var apiResp OpenAIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	o.deps.recordDuration(ctx, start)
	o.deps.recordUsage(ctx, apiResp.Usage)

	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}
	return apiResp.Choices[0].Message.Content, nil
}
