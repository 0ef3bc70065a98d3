package summarizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiSummarizer struct {
	client *genai.Client
	model  string
}

func NewGeminiSummarizer(apiKey, model string) (*GeminiSummarizer, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if model == "" {
		model = "gemini-1.5-flash-latest"
	}

	return &GeminiSummarizer{
		client: client,
		model:  model,
	}, nil
}

func (s *GeminiSummarizer) Name() string {
	return "gemini"
}

func (s *GeminiSummarizer) Summarize(ctx context.Context, transcript []Turn) (Extraction, error) {
	model := s.client.GenerativeModel(s.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(extractionInstruction)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(buildTranscript(transcript)))
	if err != nil {
		return Extraction{}, fmt.Errorf("gemini completion failed: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return Extraction{}, fmt.Errorf("no candidates returned")
	}

	var raw string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			raw += string(text)
		}
	}

	return parseExtraction(raw)
}
