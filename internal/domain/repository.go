package domain

import "context"

// QuizSummary is the listing projection of a quiz: enough to pick one,
// without its questions.
type QuizSummary struct {
	ID             string
	CourseID       string
	Title          string
	Description    string
	QuestionsCount int
}

// QuizRepository defines the interface for quiz persistence.
// The store is append-only: quizzes are created once and never updated.
type QuizRepository interface {
	// SaveQuiz persists a new quiz, assigning its ID and creation time.
	SaveQuiz(ctx context.Context, quiz *Quiz) error

	// GetQuizByID retrieves a quiz by its ID. Returns (nil, nil) when no
	// quiz matches.
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)

	// GetLatestQuiz returns the most recently created quiz, or (nil, nil)
	// when the store is empty.
	GetLatestQuiz(ctx context.Context) (*Quiz, error)

	// ListQuizzes returns summaries of all quizzes, newest first,
	// optionally filtered by course.
	ListQuizzes(ctx context.Context, courseID string) ([]QuizSummary, error)
}

// ResultRepository defines the interface for graded submission persistence
type ResultRepository interface {
	// SaveResult persists a graded submission, assigning its ID.
	SaveResult(ctx context.Context, result *QuizResult) error

	// HasSubmission reports whether the student has already submitted the
	// given quiz.
	HasSubmission(ctx context.Context, studentID, quizID string) (bool, error)
}
