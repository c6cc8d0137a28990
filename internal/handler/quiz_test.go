package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/handler"
	"quizforge/internal/logger"
	"quizforge/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	_ = logger.Initialize(config.LoggerConfig{Level: "debug", Env: "test"})
}

// Manual mock for service.QuizService using function fields
type mockQuizService struct {
	GenerateFromPDFFunc func(ctx context.Context, pdfData []byte, createdBy, courseID, title, description string) (*dto.UploadQuizResponse, error)
	GetLatestQuizFunc   func(ctx context.Context) (*dto.StudentQuizResponse, error)
	GetQuizByIDFunc     func(ctx context.Context, quizID string) (*dto.StudentQuizResponse, error)
	ListQuizzesFunc     func(ctx context.Context, courseID string) (*dto.QuizListResponse, error)
	SubmitQuizFunc      func(ctx context.Context, quizID, studentID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
}

func (m *mockQuizService) GenerateFromPDF(ctx context.Context, pdfData []byte, createdBy, courseID, title, description string) (*dto.UploadQuizResponse, error) {
	return m.GenerateFromPDFFunc(ctx, pdfData, createdBy, courseID, title, description)
}

func (m *mockQuizService) GetLatestQuiz(ctx context.Context) (*dto.StudentQuizResponse, error) {
	return m.GetLatestQuizFunc(ctx)
}

func (m *mockQuizService) GetQuizByID(ctx context.Context, quizID string) (*dto.StudentQuizResponse, error) {
	return m.GetQuizByIDFunc(ctx, quizID)
}

func (m *mockQuizService) ListQuizzes(ctx context.Context, courseID string) (*dto.QuizListResponse, error) {
	return m.ListQuizzesFunc(ctx, courseID)
}

func (m *mockQuizService) SubmitQuiz(ctx context.Context, quizID, studentID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	return m.SubmitQuizFunc(ctx, quizID, studentID, req)
}

const testQuizID = "01HZYX0123456789ABCDEFGHJK"

// setUser stands in for the auth middleware in tests
func setUser(userID, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.UserIDKey, userID)
		c.Locals(middleware.UserRoleKey, role)
		return c.Next()
	}
}

func newTestApp(svc *mockQuizService, userID, role string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := handler.NewQuizHandler(svc)

	app.Post("/staff/quiz/upload", setUser(userID, role), h.StaffUploadQuiz)
	app.Get("/student/quiz/upload/get", setUser(userID, role), h.StudentGetLatestQuiz)
	app.Get("/student/quizzes", setUser(userID, role), h.StudentListQuizzes)
	app.Get("/student/quiz/:id", setUser(userID, role), h.StudentGetQuiz)
	app.Post("/student/quiz/:id/submit", setUser(userID, role), h.StudentSubmitQuiz)
	return app
}

func multipartUpload(t *testing.T, fields map[string]string, withPDF bool) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	if withPDF {
		part, err := writer.CreateFormFile("pdf", "lecture.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 fake content"))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestStaffUploadQuiz(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotCourseID, gotCreatedBy, gotTitle string
		svc := &mockQuizService{
			GenerateFromPDFFunc: func(ctx context.Context, pdfData []byte, createdBy, courseID, title, description string) (*dto.UploadQuizResponse, error) {
				gotCreatedBy, gotCourseID, gotTitle = createdBy, courseID, title
				assert.NotEmpty(t, pdfData)
				return &dto.UploadQuizResponse{
					Message: "Quiz generated successfully!",
					QuizID:  testQuizID,
					Quiz: []dto.QuestionResponse{
						{Question: "Q1", Options: []string{"A", "B", "C", "D"}, Answer: "B"},
					},
				}, nil
			},
		}
		app := newTestApp(svc, "staff-1", dto.RoleStaff)

		body, contentType := multipartUpload(t, map[string]string{"course_id": "CS101", "title": "Week 3"}, true)
		req := httptest.NewRequest("POST", "/staff/quiz/upload", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "staff-1", gotCreatedBy)
		assert.Equal(t, "CS101", gotCourseID)
		assert.Equal(t, "Week 3", gotTitle)

		var uploadResp dto.UploadQuizResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&uploadResp))
		assert.Equal(t, testQuizID, uploadResp.QuizID)
		assert.Equal(t, "B", uploadResp.Quiz[0].Answer)
	})

	t.Run("Missing PDF", func(t *testing.T) {
		app := newTestApp(&mockQuizService{}, "staff-1", dto.RoleStaff)

		body, contentType := multipartUpload(t, map[string]string{"course_id": "CS101"}, false)
		req := httptest.NewRequest("POST", "/staff/quiz/upload", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Missing Course ID", func(t *testing.T) {
		app := newTestApp(&mockQuizService{}, "staff-1", dto.RoleStaff)

		body, contentType := multipartUpload(t, nil, true)
		req := httptest.NewRequest("POST", "/staff/quiz/upload", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Generation Failure Maps To 502", func(t *testing.T) {
		svc := &mockQuizService{
			GenerateFromPDFFunc: func(ctx context.Context, pdfData []byte, createdBy, courseID, title, description string) (*dto.UploadQuizResponse, error) {
				return nil, domain.NewGenerationError(errors.New("model unavailable"))
			},
		}
		app := newTestApp(svc, "staff-1", dto.RoleStaff)

		body, contentType := multipartUpload(t, map[string]string{"course_id": "CS101"}, true)
		req := httptest.NewRequest("POST", "/staff/quiz/upload", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})
}

func TestStudentGetLatestQuiz(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &mockQuizService{
			GetLatestQuizFunc: func(ctx context.Context) (*dto.StudentQuizResponse, error) {
				return &dto.StudentQuizResponse{
					QuizID: testQuizID,
					Title:  "Week 3",
					Questions: []dto.SanitizedQuestionResponse{
						{QuestionID: "0", Question: "Q1", Options: []string{"A", "B", "C", "D"}},
					},
				}, nil
			},
		}
		app := newTestApp(svc, "student-1", dto.RoleStudent)

		resp, err := app.Test(httptest.NewRequest("GET", "/student/quiz/upload/get", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var quizResp dto.StudentQuizResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&quizResp))
		assert.Equal(t, testQuizID, quizResp.QuizID)
		assert.Len(t, quizResp.Questions, 1)
	})

	t.Run("No Quiz Yet", func(t *testing.T) {
		svc := &mockQuizService{
			GetLatestQuizFunc: func(ctx context.Context) (*dto.StudentQuizResponse, error) {
				return nil, domain.NewError(domain.CodeQuizNotFound, "No quiz available", nil)
			},
		}
		app := newTestApp(svc, "student-1", dto.RoleStudent)

		resp, err := app.Test(httptest.NewRequest("GET", "/student/quiz/upload/get", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestStudentListQuizzes(t *testing.T) {
	svc := &mockQuizService{
		ListQuizzesFunc: func(ctx context.Context, courseID string) (*dto.QuizListResponse, error) {
			assert.Equal(t, "CS101", courseID)
			return &dto.QuizListResponse{
				Quizzes: []dto.QuizSummaryResponse{
					{QuizID: testQuizID, CourseID: "CS101", Title: "Week 3", QuestionsCount: 10},
				},
			}, nil
		},
	}
	app := newTestApp(svc, "student-1", dto.RoleStudent)

	resp, err := app.Test(httptest.NewRequest("GET", "/student/quizzes?course_id=CS101", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var listResp dto.QuizListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listResp))
	require.Len(t, listResp.Quizzes, 1)
	assert.Equal(t, 10, listResp.Quizzes[0].QuestionsCount)
}

func TestStudentGetQuiz(t *testing.T) {
	t.Run("Not Found", func(t *testing.T) {
		svc := &mockQuizService{
			GetQuizByIDFunc: func(ctx context.Context, quizID string) (*dto.StudentQuizResponse, error) {
				return nil, domain.NewQuizNotFoundError(quizID)
			},
		}
		app := newTestApp(svc, "student-1", dto.RoleStudent)

		resp, err := app.Test(httptest.NewRequest("GET", "/student/quiz/"+testQuizID, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		svc := &mockQuizService{
			GetQuizByIDFunc: func(ctx context.Context, quizID string) (*dto.StudentQuizResponse, error) {
				return nil, domain.ValidationErrors{domain.NewInvalidFormatError("quiz_id", quizID)}
			},
		}
		app := newTestApp(svc, "student-1", dto.RoleStudent)

		resp, err := app.Test(httptest.NewRequest("GET", "/student/quiz/not-a-ulid", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestStudentSubmitQuiz(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotStudentID string
		svc := &mockQuizService{
			SubmitQuizFunc: func(ctx context.Context, quizID, studentID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
				gotStudentID = studentID
				assert.Equal(t, testQuizID, quizID)
				assert.Equal(t, map[string]string{"0": "B", "1": "C"}, req.Answers)
				return &dto.SubmitQuizResponse{
					Score: 1, Total: 2, Percentage: 50.0,
					Results: []dto.GradedAnswerResponse{
						{QuestionID: "0", IsCorrect: true, StudentAnswer: "B", CorrectAnswer: "B"},
						{QuestionID: "1", IsCorrect: false, StudentAnswer: "C", CorrectAnswer: "D"},
					},
				}, nil
			},
		}
		app := newTestApp(svc, "student-1", dto.RoleStudent)

		payload := `{"answers":{"0":"B","1":"C"}}`
		req := httptest.NewRequest("POST", "/student/quiz/"+testQuizID+"/submit", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "student-1", gotStudentID)

		var submitResp dto.SubmitQuizResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&submitResp))
		assert.Equal(t, 1, submitResp.Score)
		assert.Equal(t, 50.0, submitResp.Percentage)
	})

	t.Run("Malformed Body", func(t *testing.T) {
		app := newTestApp(&mockQuizService{}, "student-1", dto.RoleStudent)

		req := httptest.NewRequest("POST", "/student/quiz/"+testQuizID+"/submit", bytes.NewBufferString("not json"))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Duplicate Submission Maps To 409", func(t *testing.T) {
		svc := &mockQuizService{
			SubmitQuizFunc: func(ctx context.Context, quizID, studentID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
				return nil, domain.NewDuplicateSubmissionError(studentID, quizID)
			},
		}
		app := newTestApp(svc, "student-1", dto.RoleStudent)

		payload := `{"answers":{"0":"B"}}`
		req := httptest.NewRequest("POST", "/student/quiz/"+testQuizID+"/submit", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("No Authenticated User", func(t *testing.T) {
		app := newTestApp(&mockQuizService{}, "", dto.RoleStudent)

		payload := `{"answers":{"0":"B"}}`
		req := httptest.NewRequest("POST", "/student/quiz/"+testQuizID+"/submit", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
