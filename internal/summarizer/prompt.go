package summarizer

import (
	"encoding/json"
	"fmt"
	"strings"
)

const extractionInstruction = `You are a memory extraction assistant. Given a conversation transcript,
produce a JSON object with exactly these keys:
  "summary": one or two sentences describing what the conversation was about,
  "profileUpdates": an object of stable user attributes learned this session (empty object if none),
  "facts": an array of {"category", "content", "confidence"} objects, where
    category is a short lowercase noun, content is a single concrete statement
    about the user, and confidence is a number between 0 and 1.

Only include facts the user actually stated or clearly implied. Do not
include health, financial, credential, or precise address information.
Respond with the JSON object only, no surrounding text.`

// buildTranscript renders turns as role-prefixed lines for the model.
func buildTranscript(transcript []Turn) string {
	var b strings.Builder
	for _, t := range transcript {
		b.WriteString(t.Role)
		b.WriteString(": ")
		b.WriteString(t.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// parseExtraction decodes a model response into an Extraction. Models
// wrap JSON in code fences or prose often enough that the parser cuts
// the response down to its outermost object before unmarshaling.
func parseExtraction(raw string) (Extraction, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if i := strings.LastIndex(text, "```"); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return Extraction{}, fmt.Errorf("no JSON object in response")
	}

	var ext Extraction
	if err := json.Unmarshal([]byte(text[start:end+1]), &ext); err != nil {
		return Extraction{}, fmt.Errorf("parse extraction: %w", err)
	}
	if ext.ProfileUpdates == nil {
		ext.ProfileUpdates = map[string]string{}
	}
	return ext, nil
}
