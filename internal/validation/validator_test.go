package validation

import (
	"strconv"
	"testing"

	"quizforge/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestValidateQuizID(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateQuizID(util.NewULID()))

	errs := v.ValidateQuizID("")
	assert.Len(t, errs, 1)
	assert.Equal(t, "quiz_id", errs[0].Field)

	errs = v.ValidateQuizID("not-a-ulid")
	assert.Len(t, errs, 1)

	// Right length, invalid alphabet.
	errs = v.ValidateQuizID("0123456789012345678901234!")
	assert.Len(t, errs, 1)
}

func TestValidateSubmission(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateSubmission(map[string]string{"0": "Option A", "9": "Option B"}))

	assert.NotEmpty(t, v.ValidateSubmission(nil))

	errs := v.ValidateSubmission(map[string]string{"abc": "Option A"})
	assert.Len(t, errs, 1)

	errs = v.ValidateSubmission(map[string]string{"-1": "Option A"})
	assert.Len(t, errs, 1)

	errs = v.ValidateSubmission(map[string]string{"0": "   "})
	assert.Len(t, errs, 1)
}

func TestValidateSubmissionTooLarge(t *testing.T) {
	v := NewValidator()

	answers := make(map[string]string)
	for i := 0; i <= MaxAnswers; i++ {
		answers[strconv.Itoa(i)] = "A"
	}
	assert.NotEmpty(t, v.ValidateSubmission(answers))
}
