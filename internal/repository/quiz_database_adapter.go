package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"quizforge/internal/domain"
	"quizforge/internal/repository/models"
	"quizforge/internal/util"

	"github.com/jmoiron/sqlx"
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.DB
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

func toDomainQuiz(modelQuiz *models.Quiz) *domain.Quiz {
	if modelQuiz == nil {
		return nil
	}
	questions := make([]domain.Question, 0, len(modelQuiz.Questions))
	for _, q := range modelQuiz.Questions {
		questions = append(questions, domain.Question{
			Text:    q.Question,
			Options: q.Options,
			Answer:  q.Answer,
		})
	}
	return &domain.Quiz{
		ID:          modelQuiz.ID,
		Title:       modelQuiz.Title,
		Description: modelQuiz.Description.String,
		CreatedBy:   modelQuiz.CreatedBy,
		CourseID:    modelQuiz.CourseID.String,
		Questions:   questions,
		CreatedAt:   modelQuiz.CreatedAt,
	}
}

func toModelQuiz(quiz *domain.Quiz) *models.Quiz {
	if quiz == nil {
		return nil
	}
	questions := make(models.QuestionList, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions = append(questions, models.QuestionRecord{
			Question: q.Text,
			Options:  q.Options,
			Answer:   q.Answer,
		})
	}
	return &models.Quiz{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: util.StringToNullString(quiz.Description),
		CreatedBy:   quiz.CreatedBy,
		CourseID:    util.StringToNullString(quiz.CourseID),
		Questions:   questions,
		CreatedAt:   quiz.CreatedAt,
	}
}

const quizColumns = `
	id "id",
	title "title",
	description "description",
	created_by "created_by",
	course_id "course_id",
	questions "questions",
	created_at "created_at"`

// SaveQuiz implements domain.QuizRepository. The store is append-only:
// this is the only write the adapter supports.
func (a *QuizDatabaseAdapter) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	modelQuiz := toModelQuiz(quiz)
	if modelQuiz == nil {
		return fmt.Errorf("cannot save nil quiz")
	}
	modelQuiz.ID = util.NewULID()
	modelQuiz.CreatedAt = time.Now()

	query := `INSERT INTO quizzes (
		id, title, description, created_by, course_id, questions, created_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7
	)`

	questionsValue, err := modelQuiz.Questions.Value()
	if err != nil {
		return fmt.Errorf("failed to encode questions: %w", err)
	}

	_, err = a.db.ExecContext(ctx, query,
		modelQuiz.ID,
		modelQuiz.Title,
		modelQuiz.Description,
		modelQuiz.CreatedBy,
		modelQuiz.CourseID,
		questionsValue,
		modelQuiz.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}

	quiz.ID = modelQuiz.ID
	quiz.CreatedAt = modelQuiz.CreatedAt
	return nil
}

// GetQuizByID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	var modelQuiz models.Quiz
	query := `SELECT ` + quizColumns + `
	FROM quizzes
	WHERE id = :1`

	err := a.db.GetContext(ctx, &modelQuiz, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}
	return toDomainQuiz(&modelQuiz), nil
}

// GetLatestQuiz implements domain.QuizRepository. Recency is creation
// order; the ULID breaks ties within one timestamp.
func (a *QuizDatabaseAdapter) GetLatestQuiz(ctx context.Context) (*domain.Quiz, error) {
	var modelQuiz models.Quiz
	query := `SELECT ` + quizColumns + `
	FROM quizzes
	ORDER BY created_at DESC, id DESC
	FETCH FIRST 1 ROWS ONLY`

	err := a.db.GetContext(ctx, &modelQuiz, query)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest quiz: %w", err)
	}
	return toDomainQuiz(&modelQuiz), nil
}

// ListQuizzes implements domain.QuizRepository
func (a *QuizDatabaseAdapter) ListQuizzes(ctx context.Context, courseID string) ([]domain.QuizSummary, error) {
	query := `SELECT ` + quizColumns + `
	FROM quizzes`
	args := []interface{}{}
	if courseID != "" {
		query += ` WHERE course_id = :1`
		args = append(args, courseID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	var modelQuizzes []models.Quiz
	if err := a.db.SelectContext(ctx, &modelQuizzes, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	summaries := make([]domain.QuizSummary, 0, len(modelQuizzes))
	for i := range modelQuizzes {
		m := &modelQuizzes[i]
		summaries = append(summaries, domain.QuizSummary{
			ID:             m.ID,
			CourseID:       m.CourseID.String,
			Title:          m.Title,
			Description:    m.Description.String,
			QuestionsCount: len(m.Questions),
		})
	}
	return summaries, nil
}
