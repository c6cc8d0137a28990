package handler

import (
	"io"

	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/logger"
	"quizforge/internal/middleware"
	"quizforge/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// StaffUploadQuiz handles POST /staff/quiz/upload. It expects a multipart
// form with a "pdf" file part and a "course_id" field; "title" and
// "description" are optional.
// The response includes the correct answers and must stay behind the staff
// role gate.
func (h *QuizHandler) StaffUploadQuiz(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("pdf")
	if err != nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("pdf")}
	}

	courseID := c.FormValue("course_id")
	if courseID == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("course_id")}
	}
	title := c.FormValue("title")
	description := c.FormValue("description")

	file, err := fileHeader.Open()
	if err != nil {
		return domain.NewInvalidInputError("Could not open uploaded file")
	}
	defer file.Close()

	pdfData, err := io.ReadAll(file)
	if err != nil {
		return domain.NewInvalidInputError("Could not read uploaded file")
	}

	userID, _ := c.Locals(middleware.UserIDKey).(string)

	logger.Get().Info("Quiz upload received",
		zap.String("user_id", userID),
		zap.String("course_id", courseID),
		zap.String("filename", fileHeader.Filename),
		zap.Int("size_bytes", len(pdfData)))

	resp, err := h.service.GenerateFromPDF(c.Context(), pdfData, userID, courseID, title, description)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// StudentGetLatestQuiz handles GET /student/quiz/upload/get.
func (h *QuizHandler) StudentGetLatestQuiz(c *fiber.Ctx) error {
	resp, err := h.service.GetLatestQuiz(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// StudentListQuizzes handles GET /student/quizzes. An optional course_id
// query parameter narrows the listing.
func (h *QuizHandler) StudentListQuizzes(c *fiber.Ctx) error {
	resp, err := h.service.ListQuizzes(c.Context(), c.Query("course_id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// StudentGetQuiz handles GET /student/quiz/:id.
func (h *QuizHandler) StudentGetQuiz(c *fiber.Ctx) error {
	resp, err := h.service.GetQuizByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// StudentSubmitQuiz handles POST /student/quiz/:id/submit.
func (h *QuizHandler) StudentSubmitQuiz(c *fiber.Ctx) error {
	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Request body must be JSON with an answers object")
	}

	studentID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || studentID == "" {
		return domain.NewForbiddenError("Submission requires an authenticated student")
	}

	resp, err := h.service.SubmitQuiz(c.Context(), c.Params("id"), studentID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
