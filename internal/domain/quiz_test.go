package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizedStripsAnswers(t *testing.T) {
	quiz := &Quiz{
		ID: "quiz1",
		Questions: []Question{
			{Text: "Q1", Options: []string{"A", "B", "C", "D"}, Answer: "B"},
			{Text: "Q2", Options: []string{"W", "X", "Y", "Z"}, Answer: "Z"},
		},
	}

	sanitized := quiz.Sanitized()
	require.Len(t, sanitized, 2)

	assert.Equal(t, 0, sanitized[0].Index)
	assert.Equal(t, "Q1", sanitized[0].Text)
	assert.Equal(t, []string{"A", "B", "C", "D"}, sanitized[0].Options)
	assert.Equal(t, 1, sanitized[1].Index)
	assert.Equal(t, "Q2", sanitized[1].Text)

	// No answer may survive serialization of the sanitized shape.
	raw, err := json.Marshal(sanitized)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "answer")
	assert.NotContains(t, string(raw), "Answer")
}

func TestSanitizedEmptyQuiz(t *testing.T) {
	quiz := &Quiz{ID: "empty"}
	assert.Empty(t, quiz.Sanitized())
}

func TestSanitizedHandlesDegenerateOptions(t *testing.T) {
	quiz := &Quiz{
		Questions: []Question{
			{Text: "Q1", Options: nil, Answer: "secret"},
		},
	}

	sanitized := quiz.Sanitized()
	require.Len(t, sanitized, 1)
	assert.Empty(t, sanitized[0].Options)

	raw, err := json.Marshal(sanitized)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
}

func TestQuestionValidate(t *testing.T) {
	valid := Question{Text: "Q", Options: []string{"A", "B", "C", "D"}, Answer: "A"}
	assert.NoError(t, valid.Validate())

	missingText := Question{Options: []string{"A", "B", "C", "D"}, Answer: "A"}
	assert.Error(t, missingText.Validate())

	threeOptions := Question{Text: "Q", Options: []string{"A", "B", "C"}, Answer: "A"}
	assert.Error(t, threeOptions.Validate())

	answerNotAnOption := Question{Text: "Q", Options: []string{"A", "B", "C", "D"}, Answer: "E"}
	assert.Error(t, answerNotAnOption.Validate())
}

func TestQuizValidate(t *testing.T) {
	quiz := NewQuiz("Title", "", "staff1", "CS101", []Question{
		{Text: "Q", Options: []string{"A", "B", "C", "D"}, Answer: "A"},
	})
	assert.NoError(t, quiz.Validate())

	noQuestions := NewQuiz("Title", "", "staff1", "", nil)
	assert.Error(t, noQuestions.Validate())

	noCreator := NewQuiz("Title", "", "", "", []Question{
		{Text: "Q", Options: []string{"A", "B", "C", "D"}, Answer: "A"},
	})
	assert.Error(t, noCreator.Validate())
}
