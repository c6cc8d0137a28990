package dto

import "time"

// QuestionResponse is the staff-facing question shape, answers included.
type QuestionResponse struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// UploadQuizResponse is returned to staff after a successful generation.
// It is the only surface that carries correct answers.
type UploadQuizResponse struct {
	Message string             `json:"message"`
	Quiz    []QuestionResponse `json:"quiz"`
	QuizID  string             `json:"quiz_id"`
}

// SanitizedQuestionResponse is the student-facing question shape. It never
// carries an answer field; the question's position in the quiz is its id.
type SanitizedQuestionResponse struct {
	QuestionID string   `json:"question_id"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
}

// StudentQuizResponse wraps the sanitized questions of one quiz.
type StudentQuizResponse struct {
	QuizID    string                      `json:"quiz_id"`
	Title     string                      `json:"title"`
	Questions []SanitizedQuestionResponse `json:"questions"`
}

// QuizSummaryResponse is one entry of the student quiz listing.
type QuizSummaryResponse struct {
	QuizID         string `json:"quiz_id"`
	CourseID       string `json:"course_id"`
	QuestionsCount int    `json:"questions_count"`
	Title          string `json:"title"`
	Description    string `json:"description"`
}

// QuizListResponse wraps the quiz listing.
type QuizListResponse struct {
	Quizzes []QuizSummaryResponse `json:"quizzes"`
}

// SubmitQuizRequest is the student submission payload. Keys of Answers are
// question indexes as decimal strings, values the selected option text.
type SubmitQuizRequest struct {
	Answers map[string]string `json:"answers"`
}

// GradedAnswerResponse is the per-question verdict in a submit response.
type GradedAnswerResponse struct {
	QuestionID    string `json:"question_id"`
	QuestionText  string `json:"question_text"`
	StudentAnswer string `json:"student_answer,omitempty"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}

// SubmitQuizResponse is the graded outcome returned on submission.
type SubmitQuizResponse struct {
	Results    []GradedAnswerResponse `json:"results"`
	Score      int                    `json:"score"`
	Total      int                    `json:"total"`
	Percentage float64                `json:"percentage"`
}

// HealthResponse reports liveness of the service and its backing stores.
type HealthResponse struct {
	Status string    `json:"status"`
	DB     string    `json:"db"`
	Cache  string    `json:"cache"`
	Time   time.Time `json:"time"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
