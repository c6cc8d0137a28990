package domain

import "time"

// QuizResult is a persisted, graded submission: one student's answer set
// for one quiz, together with the grading outcome at submission time.
type QuizResult struct {
	ID          string
	QuizID      string
	StudentID   string
	Answers     map[string]string
	Score       int
	Total       int
	Percentage  float64
	Details     []GradedAnswer
	SubmittedAt time.Time
}

// NewQuizResult creates a new QuizResult from a graded submission
func NewQuizResult(quizID, studentID string, answers map[string]string, graded *GradedResult) *QuizResult {
	return &QuizResult{
		QuizID:      quizID,
		StudentID:   studentID,
		Answers:     answers,
		Score:       graded.Score,
		Total:       graded.Total,
		Percentage:  graded.Percentage,
		Details:     graded.Answers,
		SubmittedAt: time.Now(),
	}
}
