package quizgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"quizforge/internal/domain"
)

// generatedQuestion is the shape each element of the LLM's JSON array must
// have. Unknown extra fields are ignored; missing or malformed required
// fields are rejected.
type generatedQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// ParseQuestions turns the model's free-form text output into validated
// questions. The model is asked for a bare JSON array but routinely wraps
// it in prose or markdown fences, so the outermost [...] block is located
// first and strictly unmarshalled. Every failure mode — no JSON block,
// malformed JSON, wrong shape — comes back as a generation error; raw
// model output is never interpreted any other way.
func ParseQuestions(raw string) ([]domain.Question, error) {
	cleaned := strings.TrimSpace(raw)

	// Reasoning models prepend their chain of thought in <think> tags.
	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd != -1 && thinkEnd > thinkStart {
			cleaned = cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):]
			cleaned = strings.TrimSpace(cleaned)
		}
	}

	jsonStart := strings.Index(cleaned, "[")
	jsonEnd := strings.LastIndex(cleaned, "]")
	if jsonStart == -1 || jsonEnd == -1 || jsonEnd <= jsonStart {
		return nil, domain.NewGenerationError(fmt.Errorf("no JSON array found in LLM response"))
	}

	var parsed []generatedQuestion
	if err := json.Unmarshal([]byte(cleaned[jsonStart:jsonEnd+1]), &parsed); err != nil {
		return nil, domain.NewGenerationError(fmt.Errorf("failed to unmarshal LLM response: %w", err))
	}

	if len(parsed) == 0 {
		return nil, domain.NewGenerationError(fmt.Errorf("LLM response contained no questions"))
	}

	questions := make([]domain.Question, 0, len(parsed))
	for i, p := range parsed {
		question := domain.Question{
			Text:    p.Question,
			Options: p.Options,
			Answer:  p.Answer,
		}
		if err := question.Validate(); err != nil {
			return nil, domain.NewGenerationError(fmt.Errorf("question %d has an invalid shape: %w", i, err))
		}
		questions = append(questions, question)
	}

	return questions, nil
}
