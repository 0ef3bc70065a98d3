package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

type AnthropicSummarizer struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewAnthropicSummarizer(apiKey, model string) (*AnthropicSummarizer, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}

	if model == "" {
		model = "claude-3-5-haiku-20241022"
	}

	return &AnthropicSummarizer{
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://api.anthropic.com/v1/messages",
		client:  &http.Client{},
	}, nil
}

func (s *AnthropicSummarizer) Name() string {
	return "anthropic"
}

// SetBaseURL allows overriding the API endpoint (useful for tests)
func (s *AnthropicSummarizer) SetBaseURL(url string) {
	s.baseURL = url
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
	MaxTokens int                `json:"max_tokens"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text,omitempty"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *AnthropicSummarizer) Summarize(ctx context.Context, transcript []Turn) (Extraction, error) {
	reqBody := anthropicRequest{
		Model:  s.model,
		System: extractionInstruction,
		Messages: []anthropicMessage{
			{Role: "user", Content: buildTranscript(transcript)},
		},
		MaxTokens: 1024,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return Extraction{}, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return Extraction{}, err
	}

	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("content-type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Extraction{}, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return Extraction{}, fmt.Errorf("anthropic api error: %s", string(body))
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return Extraction{}, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if apiResp.Error != nil {
		return Extraction{}, fmt.Errorf("anthropic error: %s", apiResp.Error.Message)
	}

	var raw string
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			raw += block.Text
		}
	}

	return parseExtraction(raw)
}
