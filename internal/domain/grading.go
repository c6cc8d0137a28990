package domain

import "strconv"

// GradedAnswer is the verdict for a single question. Selected is empty
// when the student gave no answer for that index.
type GradedAnswer struct {
	QuestionIndex int
	QuestionText  string
	Selected      string
	Correct       string
	IsCorrect     bool
}

// GradedResult is the full breakdown of one submission against one quiz.
// It is derived state: always recomputed from the quiz and the answers,
// never stored on its own.
type GradedResult struct {
	Answers    []GradedAnswer
	Score      int
	Total      int
	Percentage float64
}

// Grade compares a submitted answer set against the quiz's stored correct
// answers. Questions are matched positionally: the answer for question i is
// looked up under the key strconv.Itoa(i), and a missing key means "no
// answer", not an error. Correctness is exact string equality over whatever
// is stored, nothing fuzzier. Grade is a pure function of its inputs and
// persists nothing.
func Grade(quiz *Quiz, answers map[string]string) *GradedResult {
	result := &GradedResult{
		Answers: make([]GradedAnswer, 0, len(quiz.Questions)),
		Total:   len(quiz.Questions),
	}

	for i, question := range quiz.Questions {
		selected := answers[strconv.Itoa(i)]
		isCorrect := selected != "" && selected == question.Answer
		if isCorrect {
			result.Score++
		}
		result.Answers = append(result.Answers, GradedAnswer{
			QuestionIndex: i,
			QuestionText:  question.Text,
			Selected:      selected,
			Correct:       question.Answer,
			IsCorrect:     isCorrect,
		})
	}

	if result.Total > 0 {
		result.Percentage = 100 * float64(result.Score) / float64(result.Total)
	}
	return result
}
