package domain

import "context"

// TextExtractor defines the interface for pulling plain text out of an
// uploaded document. Implementations fail with CodeExtractionFailed when
// the bytes are not a readable PDF or yield no text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// QuestionGenerator defines the interface for turning a text excerpt into
// multiple-choice questions via an external LLM. Implementations own the
// parsing of the model's free-form output into strict Question values and
// fail with CodeGenerationFailed when the response cannot be parsed, which
// is distinct from a transport failure.
type QuestionGenerator interface {
	Generate(ctx context.Context, text string, numQuestions int) ([]Question, error)
}
