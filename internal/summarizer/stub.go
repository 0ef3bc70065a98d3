package summarizer

import "context"

// StubSummarizer returns a fixed extraction for testing and offline use.
type StubSummarizer struct {
	Result Extraction
	Err    error
}

func NewStubSummarizer() *StubSummarizer {
	return &StubSummarizer{
		Result: Extraction{
			Summary:        "Talked about favorite foods.",
			ProfileUpdates: map[string]string{},
			Facts: []CandidateFact{
				{Category: "food", Content: "Likes ramen", Confidence: 0.9},
			},
		},
	}
}

func (s *StubSummarizer) Name() string {
	return "stub"
}

func (s *StubSummarizer) Summarize(ctx context.Context, transcript []Turn) (Extraction, error) {
	if s.Err != nil {
		return Extraction{}, s.Err
	}
	return s.Result, nil
}
