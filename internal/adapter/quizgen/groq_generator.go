package quizgen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const promptTemplate = `Generate %d multiple choice questions based on the following content:

%s

Format:
[
  {
    "question": "Your question here?",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "answer": "Correct Option"
  }
]

Respond with the JSON array only.`

// GroqQuestionGenerator implements domain.QuestionGenerator against any
// OpenAI-compatible chat completion endpoint via the langchaingo client.
type GroqQuestionGenerator struct {
	llm        llms.Model
	timeout    time.Duration
	maxRetries int
}

// NewGroqQuestionGenerator creates a generator from config. The returned
// generator applies the configured timeout per call and retries transport
// failures a bounded number of times; parse failures are never retried
// because the same input produces the same unparsable output.
func NewGroqQuestionGenerator(llmCfg config.LLMConfig) (domain.QuestionGenerator, error) {
	if llmCfg.APIKey == "" {
		return nil, fmt.Errorf("LLM API key cannot be empty")
	}
	if llmCfg.Model == "" {
		return nil, fmt.Errorf("LLM model name cannot be empty")
	}

	opts := []openai.Option{
		openai.WithToken(llmCfg.APIKey),
		openai.WithModel(llmCfg.Model),
		openai.WithHTTPClient(&http.Client{Timeout: llmCfg.Timeout}),
	}
	if llmCfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(llmCfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return &GroqQuestionGenerator{
		llm:        llm,
		timeout:    llmCfg.Timeout,
		maxRetries: llmCfg.MaxRetries,
	}, nil
}

// Generate implements domain.QuestionGenerator.
func (g *GroqQuestionGenerator) Generate(ctx context.Context, text string, numQuestions int) ([]domain.Question, error) {
	l := logger.Get()
	prompt := fmt.Sprintf(promptTemplate, numQuestions, text)

	raw, err := g.callLLM(ctx, prompt)
	if err != nil {
		return nil, err
	}

	questions, err := ParseQuestions(raw)
	if err != nil {
		l.Error("Failed to parse LLM response into questions",
			zap.Error(err),
			zap.Int("response_length", len(raw)))
		return nil, err
	}

	l.Info("Generated questions from LLM",
		zap.Int("requested", numQuestions),
		zap.Int("generated", len(questions)))
	return questions, nil
}

func (g *GroqQuestionGenerator) callLLM(ctx context.Context, prompt string) (string, error) {
	l := logger.Get()

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		response, err := llms.GenerateFromSinglePrompt(callCtx, g.llm, prompt, llms.WithTemperature(0.7))
		cancel()

		if err == nil {
			return response, nil
		}

		if errors.Is(err, context.DeadlineExceeded) {
			l.Error("LLM request timed out", zap.Error(err), zap.Int("attempt", attempt))
			return "", domain.NewGenerationTimeoutError(err)
		}
		if ctx.Err() != nil {
			return "", domain.NewGenerationError(ctx.Err())
		}

		lastErr = err
		l.Warn("LLM call failed, retrying",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Int("max_retries", g.maxRetries))
	}

	return "", domain.NewGenerationError(fmt.Errorf("LLM call failed after %d attempts: %w", g.maxRetries+1, lastErr))
}
