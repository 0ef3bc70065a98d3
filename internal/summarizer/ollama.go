package summarizer

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/ollama/ollama/api"
)

type OllamaSummarizer struct {
	client *api.Client
	model  string
}

func NewOllamaSummarizer(model string) (*OllamaSummarizer, error) {
	if model == "" {
		model = "llama3.2"
	}

	baseURL := "http://localhost:11434"
	if envURL := os.Getenv("OLLAMA_HOST"); envURL != "" {
		baseURL = envURL
	}
	uri, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host: %w", err)
	}

	return &OllamaSummarizer{
		client: api.NewClient(uri, http.DefaultClient),
		model:  model,
	}, nil
}

func (s *OllamaSummarizer) Name() string {
	return "ollama"
}

func (s *OllamaSummarizer) Summarize(ctx context.Context, transcript []Turn) (Extraction, error) {
	req := &api.ChatRequest{
		Model: s.model,
		Messages: []api.Message{
			{Role: "system", Content: extractionInstruction},
			{Role: "user", Content: buildTranscript(transcript)},
		},
		Stream: new(bool), // false
	}

	var raw string
	err := s.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		raw += resp.Message.Content
		return nil
	})
	if err != nil {
		return Extraction{}, fmt.Errorf("ollama chat failed: %w", err)
	}

	return parseExtraction(raw)
}
