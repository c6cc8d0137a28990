package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// QuestionList stores a quiz's ordered questions as a JSON document in a
// CLOB column. Order in the JSON array is the positional question order.
type QuestionList []QuestionRecord

// QuestionRecord is the stored shape of one question, answer included.
type QuestionRecord struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// Value implements the driver.Valuer interface
func (q QuestionList) Value() (driver.Value, error) {
	if q == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (q *QuestionList) Scan(value interface{}) error {
	if value == nil {
		*q = QuestionList{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("QuestionList Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*q = QuestionList{}
		return nil
	}
	return json.Unmarshal(bytesToParse, q)
}

// AnswerMap stores a submission's answers (index string -> option) as JSON.
type AnswerMap map[string]string

// Value implements the driver.Valuer interface
func (a AnswerMap) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	jsonData, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (a *AnswerMap) Scan(value interface{}) error {
	if value == nil {
		*a = AnswerMap{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("AnswerMap Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*a = AnswerMap{}
		return nil
	}
	return json.Unmarshal(bytesToParse, a)
}

// GradedDetailList stores the per-question verdicts of a graded
// submission as JSON.
type GradedDetailList []GradedDetailRecord

// GradedDetailRecord is the stored shape of one graded answer.
type GradedDetailRecord struct {
	QuestionIndex int    `json:"question_index"`
	QuestionText  string `json:"question_text"`
	Selected      string `json:"selected,omitempty"`
	Correct       string `json:"correct"`
	IsCorrect     bool   `json:"is_correct"`
}

// Value implements the driver.Valuer interface
func (d GradedDetailList) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (d *GradedDetailList) Scan(value interface{}) error {
	if value == nil {
		*d = GradedDetailList{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("GradedDetailList Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*d = GradedDetailList{}
		return nil
	}
	return json.Unmarshal(bytesToParse, d)
}

// Quiz is the quizzes table row.
type Quiz struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	CreatedBy   string         `db:"created_by"`
	CourseID    sql.NullString `db:"course_id"`
	Questions   QuestionList   `db:"questions"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizResult is the quiz_results table row.
type QuizResult struct {
	ID          string           `db:"id"`
	QuizID      string           `db:"quiz_id"`
	StudentID   string           `db:"student_id"`
	Answers     AnswerMap        `db:"answers"`
	Score       int              `db:"score"`
	Total       int              `db:"total_questions"`
	Percentage  float64          `db:"percentage"`
	Details     GradedDetailList `db:"details"`
	SubmittedAt time.Time        `db:"submitted_at"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
