package validation

import (
	"strconv"
	"strings"

	"quizforge/internal/domain"
	"quizforge/internal/util"
)

// MaxAnswers caps the size of a submission payload. A quiz never has more
// questions than this, so anything larger is a malformed client request.
const MaxAnswers = 100

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateQuizID validates the quiz id path parameter. A malformed id is
// reported as a format error (400), distinct from a missing quiz (404).
func (v *Validator) ValidateQuizID(quizID string) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(quizID) == "" {
		errs = append(errs, domain.NewMissingFieldError("quiz_id"))
	} else if !util.IsValidULID(quizID) {
		errs = append(errs, domain.NewInvalidFormatError("quiz_id", quizID))
	}

	return errs
}

// ValidateSubmission validates the answers mapping of a submit request:
// keys must be non-negative decimal indexes, values non-empty options.
func (v *Validator) ValidateSubmission(answers map[string]string) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if answers == nil {
		errs = append(errs, domain.NewMissingFieldError("answers"))
		return errs
	}
	if len(answers) > MaxAnswers {
		errs = append(errs, domain.NewInvalidFormatError("answers", "too many entries"))
		return errs
	}

	for key, value := range answers {
		if idx, err := strconv.Atoi(key); err != nil || idx < 0 {
			errs = append(errs, domain.NewInvalidFormatError("answers", key))
			continue
		}
		if strings.TrimSpace(value) == "" {
			errs = append(errs, domain.NewMissingFieldError("answers["+key+"]"))
		}
	}

	return errs
}
