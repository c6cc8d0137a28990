package service

import (
	"context"
	"encoding/json"
	"strconv"

	"quizforge/internal/cache"
	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/logger"
	"quizforge/internal/validation"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	// GenerateFromPDF runs the full staff pipeline: extract, truncate,
	// generate, persist. The returned response includes answers and is
	// staff-only.
	GenerateFromPDF(ctx context.Context, pdfData []byte, createdBy, courseID, title, description string) (*dto.UploadQuizResponse, error)

	// GetLatestQuiz returns the most recently created quiz, sanitized.
	GetLatestQuiz(ctx context.Context) (*dto.StudentQuizResponse, error)

	// GetQuizByID returns one quiz, sanitized.
	GetQuizByID(ctx context.Context, quizID string) (*dto.StudentQuizResponse, error)

	// ListQuizzes returns quiz summaries, optionally filtered by course.
	ListQuizzes(ctx context.Context, courseID string) (*dto.QuizListResponse, error)

	// SubmitQuiz grades a student's answers and persists the result.
	SubmitQuiz(ctx context.Context, quizID, studentID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
}

// quizService implements QuizService
type quizService struct {
	quizRepo   domain.QuizRepository
	resultRepo domain.ResultRepository
	extractor  domain.TextExtractor
	generator  domain.QuestionGenerator
	cache      domain.Cache
	validator  *validation.Validator
	cfg        *config.Config
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	quizRepo domain.QuizRepository,
	resultRepo domain.ResultRepository,
	extractor domain.TextExtractor,
	generator domain.QuestionGenerator,
	cacheAdapter domain.Cache,
	cfg *config.Config,
) QuizService {
	return &quizService{
		quizRepo:   quizRepo,
		resultRepo: resultRepo,
		extractor:  extractor,
		generator:  generator,
		cache:      cacheAdapter,
		validator:  validation.NewValidator(),
		cfg:        cfg,
	}
}

// truncateRunes bounds the text sent to the LLM. The cut is deliberate and
// lossy: generation quality degrades for large documents and that is
// accepted in exchange for bounded cost and latency. Rune-based so a
// multi-byte character is never split.
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// GenerateFromPDF implements QuizService
func (s *quizService) GenerateFromPDF(ctx context.Context, pdfData []byte, createdBy, courseID, title, description string) (*dto.UploadQuizResponse, error) {
	l := logger.Get()

	text, err := s.extractor.Extract(ctx, pdfData)
	if err != nil {
		return nil, err
	}

	excerpt := truncateRunes(text, s.cfg.Generation.TextLimit)
	l.Info("Extracted text from PDF",
		zap.Int("extracted_runes", len([]rune(text))),
		zap.Int("excerpt_runes", len([]rune(excerpt))))

	questions, err := s.generator.Generate(ctx, excerpt, s.cfg.Generation.NumQuestions)
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = "Untitled Quiz"
	}
	quiz := domain.NewQuiz(title, description, createdBy, courseID, questions)
	if err := quiz.Validate(); err != nil {
		return nil, domain.NewGenerationError(err)
	}

	if err := s.quizRepo.SaveQuiz(ctx, quiz); err != nil {
		return nil, domain.NewInternalError("Failed to save quiz", err)
	}

	// The latest-quiz cache entry is stale the moment a new quiz lands.
	if err := s.cache.Delete(ctx, latestQuizKey()); err != nil {
		l.Warn("Failed to invalidate latest quiz cache", zap.Error(err))
	}

	l.Info("Quiz generated",
		zap.String("quiz_id", quiz.ID),
		zap.String("created_by", createdBy),
		zap.String("course_id", courseID),
		zap.Int("questions", len(quiz.Questions)))

	questionResponses := make([]dto.QuestionResponse, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questionResponses = append(questionResponses, dto.QuestionResponse{
			Question: q.Text,
			Options:  q.Options,
			Answer:   q.Answer,
		})
	}

	return &dto.UploadQuizResponse{
		Message: "Quiz generated successfully!",
		Quiz:    questionResponses,
		QuizID:  quiz.ID,
	}, nil
}

func latestQuizKey() string {
	return cache.GenerateCacheKey("quiz", "sanitized", cache.LatestQuizIdentifier)
}

func sanitizedQuizKey(quizID string) string {
	return cache.GenerateCacheKey("quiz", "sanitized", quizID)
}

func toStudentQuizResponse(quiz *domain.Quiz) *dto.StudentQuizResponse {
	sanitized := quiz.Sanitized()
	questions := make([]dto.SanitizedQuestionResponse, 0, len(sanitized))
	for _, q := range sanitized {
		questions = append(questions, dto.SanitizedQuestionResponse{
			QuestionID: strconv.Itoa(q.Index),
			Question:   q.Text,
			Options:    q.Options,
		})
	}
	return &dto.StudentQuizResponse{
		QuizID:    quiz.ID,
		Title:     quiz.Title,
		Questions: questions,
	}
}

func (s *quizService) cachedStudentQuiz(ctx context.Context, key string) *dto.StudentQuizResponse {
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		if err != domain.ErrCacheMiss {
			logger.Get().Warn("Cache read failed", zap.Error(err), zap.String("key", key))
		}
		return nil
	}
	var resp dto.StudentQuizResponse
	if err := json.Unmarshal([]byte(cached), &resp); err != nil {
		logger.Get().Warn("Dropping undecodable cache entry", zap.Error(err), zap.String("key", key))
		return nil
	}
	return &resp
}

func (s *quizService) cacheStudentQuiz(ctx context.Context, key string, resp *dto.StudentQuizResponse) {
	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), s.cfg.Cache.QuizTTL); err != nil {
		logger.Get().Warn("Cache write failed", zap.Error(err), zap.String("key", key))
	}
}

// GetLatestQuiz implements QuizService
func (s *quizService) GetLatestQuiz(ctx context.Context) (*dto.StudentQuizResponse, error) {
	if cached := s.cachedStudentQuiz(ctx, latestQuizKey()); cached != nil {
		return cached, nil
	}

	quiz, err := s.quizRepo.GetLatestQuiz(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get latest quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewError(domain.CodeQuizNotFound, "No quiz available", nil)
	}

	resp := toStudentQuizResponse(quiz)
	s.cacheStudentQuiz(ctx, latestQuizKey(), resp)
	return resp, nil
}

// GetQuizByID implements QuizService
func (s *quizService) GetQuizByID(ctx context.Context, quizID string) (*dto.StudentQuizResponse, error) {
	if errs := s.validator.ValidateQuizID(quizID); len(errs) > 0 {
		return nil, errs
	}

	if cached := s.cachedStudentQuiz(ctx, sanitizedQuizKey(quizID)); cached != nil {
		return cached, nil
	}

	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	resp := toStudentQuizResponse(quiz)
	s.cacheStudentQuiz(ctx, sanitizedQuizKey(quizID), resp)
	return resp, nil
}

// ListQuizzes implements QuizService
func (s *quizService) ListQuizzes(ctx context.Context, courseID string) (*dto.QuizListResponse, error) {
	summaries, err := s.quizRepo.ListQuizzes(ctx, courseID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quizzes", err)
	}

	quizzes := make([]dto.QuizSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		quizzes = append(quizzes, dto.QuizSummaryResponse{
			QuizID:         summary.ID,
			CourseID:       summary.CourseID,
			QuestionsCount: summary.QuestionsCount,
			Title:          summary.Title,
			Description:    summary.Description,
		})
	}
	return &dto.QuizListResponse{Quizzes: quizzes}, nil
}

// SubmitQuiz implements QuizService. Each accepted submission creates one
// result row; a second submission by the same student for the same quiz
// is rejected rather than overwritten or appended.
func (s *quizService) SubmitQuiz(ctx context.Context, quizID, studentID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	if errs := s.validator.ValidateQuizID(quizID); len(errs) > 0 {
		return nil, errs
	}
	if errs := s.validator.ValidateSubmission(req.Answers); len(errs) > 0 {
		return nil, errs
	}

	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	exists, err := s.resultRepo.HasSubmission(ctx, studentID, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to check existing submission", err)
	}
	if exists {
		return nil, domain.NewDuplicateSubmissionError(studentID, quizID)
	}

	graded := domain.Grade(quiz, req.Answers)

	result := domain.NewQuizResult(quizID, studentID, req.Answers, graded)
	if err := s.resultRepo.SaveResult(ctx, result); err != nil {
		return nil, domain.NewInternalError("Failed to save quiz result", err)
	}

	logger.Get().Info("Quiz submitted",
		zap.String("quiz_id", quizID),
		zap.String("student_id", studentID),
		zap.Int("score", graded.Score),
		zap.Int("total", graded.Total))

	results := make([]dto.GradedAnswerResponse, 0, len(graded.Answers))
	for _, a := range graded.Answers {
		results = append(results, dto.GradedAnswerResponse{
			QuestionID:    strconv.Itoa(a.QuestionIndex),
			QuestionText:  a.QuestionText,
			StudentAnswer: a.Selected,
			CorrectAnswer: a.Correct,
			IsCorrect:     a.IsCorrect,
		})
	}

	return &dto.SubmitQuizResponse{
		Results:    results,
		Score:      graded.Score,
		Total:      graded.Total,
		Percentage: graded.Percentage,
	}, nil
}
