package domain

import (
	"time"
)

// OptionsPerQuestion is the option count every generated question carries.
const OptionsPerQuestion = 4

// Question is a single multiple-choice question. Options are
// order-significant and Answer must equal one of them. Questions are
// immutable once generated.
type Question struct {
	Text    string
	Options []string
	Answer  string
}

// Validate validates the question shape
func (q *Question) Validate() error {
	if q.Text == "" {
		return NewInvalidInputError("question text is required")
	}
	if len(q.Options) != OptionsPerQuestion {
		return NewInvalidInputError("question must have exactly 4 options")
	}
	for _, opt := range q.Options {
		if q.Answer == opt {
			return nil
		}
	}
	return NewInvalidInputError("answer must match one of the options")
}

// Quiz is an ordered set of generated questions. Quizzes are append-only:
// once created they are never mutated, and question order is the basis for
// the positional question identifiers students submit against.
type Quiz struct {
	ID          string
	Title       string
	Description string
	CreatedBy   string
	CourseID    string
	Questions   []Question
	CreatedAt   time.Time
}

// NewQuiz creates a new Quiz instance
func NewQuiz(title, description, createdBy, courseID string, questions []Question) *Quiz {
	return &Quiz{
		Title:       title,
		Description: description,
		CreatedBy:   createdBy,
		CourseID:    courseID,
		Questions:   questions,
		CreatedAt:   time.Now(),
	}
}

// Validate validates the quiz
func (q *Quiz) Validate() error {
	if q.CreatedBy == "" {
		return NewInvalidInputError("creator is required")
	}
	if len(q.Questions) == 0 {
		return NewInvalidInputError("at least one question is required")
	}
	for i := range q.Questions {
		if err := q.Questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SanitizedQuestion is a question as a student may see it: the correct
// answer is stripped and the position in the quiz serves as its identifier.
type SanitizedQuestion struct {
	Index   int
	Text    string
	Options []string
}

// Sanitized returns the quiz's questions with every answer removed,
// in their original order. This is the only question shape that may
// cross the student-facing read boundary.
func (q *Quiz) Sanitized() []SanitizedQuestion {
	sanitized := make([]SanitizedQuestion, 0, len(q.Questions))
	for i, question := range q.Questions {
		sanitized = append(sanitized, SanitizedQuestion{
			Index:   i,
			Text:    question.Text,
			Options: question.Options,
		})
	}
	return sanitized
}
