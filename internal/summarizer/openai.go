package summarizer

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAISummarizer struct {
	client *openai.Client
	model  string
}

func NewOpenAISummarizer(apiKey, baseURL, model string) (*OpenAISummarizer, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAISummarizer{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

func (s *OpenAISummarizer) Name() string {
	return "openai"
}

func (s *OpenAISummarizer) Summarize(ctx context.Context, transcript []Turn) (Extraction, error) {
	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: extractionInstruction},
				{Role: openai.ChatMessageRoleUser, Content: buildTranscript(transcript)},
			},
		},
	)
	if err != nil {
		return Extraction{}, fmt.Errorf("openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Extraction{}, fmt.Errorf("no choices returned")
	}

	return parseExtraction(resp.Choices[0].Message.Content)
}
