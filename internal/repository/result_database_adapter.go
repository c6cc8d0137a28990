package repository

import (
	"context"
	"fmt"
	"time"

	"quizforge/internal/domain"
	"quizforge/internal/repository/models"
	"quizforge/internal/util"

	"github.com/jmoiron/sqlx"
)

// ResultDatabaseAdapter implements domain.ResultRepository using sqlx.DB
type ResultDatabaseAdapter struct {
	db *sqlx.DB
}

// NewResultDatabaseAdapter creates a new instance of ResultDatabaseAdapter
func NewResultDatabaseAdapter(db *sqlx.DB) domain.ResultRepository {
	return &ResultDatabaseAdapter{db: db}
}

func toModelResult(result *domain.QuizResult) *models.QuizResult {
	if result == nil {
		return nil
	}
	details := make(models.GradedDetailList, 0, len(result.Details))
	for _, d := range result.Details {
		details = append(details, models.GradedDetailRecord{
			QuestionIndex: d.QuestionIndex,
			QuestionText:  d.QuestionText,
			Selected:      d.Selected,
			Correct:       d.Correct,
			IsCorrect:     d.IsCorrect,
		})
	}
	return &models.QuizResult{
		ID:          result.ID,
		QuizID:      result.QuizID,
		StudentID:   result.StudentID,
		Answers:     models.AnswerMap(result.Answers),
		Score:       result.Score,
		Total:       result.Total,
		Percentage:  result.Percentage,
		Details:     details,
		SubmittedAt: result.SubmittedAt,
	}
}

// SaveResult implements domain.ResultRepository
func (a *ResultDatabaseAdapter) SaveResult(ctx context.Context, result *domain.QuizResult) error {
	modelResult := toModelResult(result)
	if modelResult == nil {
		return fmt.Errorf("cannot save nil result")
	}
	modelResult.ID = util.NewULID()
	if modelResult.SubmittedAt.IsZero() {
		modelResult.SubmittedAt = time.Now()
	}

	query := `INSERT INTO quiz_results (
		id, quiz_id, student_id, answers, score, total_questions, percentage, details, submitted_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9
	)`

	answersValue, err := modelResult.Answers.Value()
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}
	detailsValue, err := modelResult.Details.Value()
	if err != nil {
		return fmt.Errorf("failed to encode details: %w", err)
	}

	_, err = a.db.ExecContext(ctx, query,
		modelResult.ID,
		modelResult.QuizID,
		modelResult.StudentID,
		answersValue,
		modelResult.Score,
		modelResult.Total,
		modelResult.Percentage,
		detailsValue,
		modelResult.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz result: %w", err)
	}

	result.ID = modelResult.ID
	result.SubmittedAt = modelResult.SubmittedAt
	return nil
}

// HasSubmission implements domain.ResultRepository
func (a *ResultDatabaseAdapter) HasSubmission(ctx context.Context, studentID, quizID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM quiz_results WHERE student_id = :1 AND quiz_id = :2`

	if err := a.db.GetContext(ctx, &count, query, studentID, quizID); err != nil {
		return false, fmt.Errorf("failed to check existing submission: %w", err)
	}
	return count > 0, nil
}
