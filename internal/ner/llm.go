package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const entityPrompt = `Extract named entities from the resume text below.
Return ONLY a JSON array, no prose, where each element is an object with
"text" (the exact span) and "label" (one of PERSON, ORG, PRODUCT, GPE).

Resume text:
`

// LLMRecognizer performs entity recognition through an OpenAI-compatible
// chat completion endpoint. It trades latency and an API dependency for much
// better ORG/PRODUCT recall than the in-process model.
type LLMRecognizer struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewLLMRecognizer creates a recognizer that calls an OpenAI-compatible API
func NewLLMRecognizer(baseURL, apiKey, model string) *LLMRecognizer {
	return &LLMRecognizer{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Entities asks the model for labelled spans in the given text
func (r *LLMRecognizer) Entities(ctx context.Context, text string) ([]Entity, error) {
	if text == "" {
		return nil, nil
	}

	reqBody := chatRequest{
		Model: r.model,
		Messages: []chatMessage{
			{Role: "user", Content: entityPrompt + text},
		},
		Temperature: 0,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		r.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("entity request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("entity request failed: status %d: %s", resp.StatusCode, truncateBody(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if chatResp.Error != nil {
		return nil, fmt.Errorf("entity request failed: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("entity request returned no choices")
	}

	return parseEntityJSON(chatResp.Choices[0].Message.Content)
}

// parseEntityJSON parses the model output, tolerating markdown code fences
func parseEntityJSON(content string) ([]Entity, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var entities []Entity
	if err := json.Unmarshal([]byte(content), &entities); err != nil {
		return nil, fmt.Errorf("model returned malformed entity JSON: %w", err)
	}

	// Drop entries the model left incomplete
	filtered := entities[:0]
	for _, e := range entities {
		if e.Text != "" && e.Label != "" {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

func truncateBody(body []byte) string {
	const max = 200
	if len(body) <= max {
		return string(body)
	}
	return string(body[:max]) + "..."
}
