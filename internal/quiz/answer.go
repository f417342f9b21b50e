package quiz

import (
	"strings"

	"github.com/tmorita/studycoach/internal/quizgen"
)

// CheckAnswer compares the learner's input against the correct answer.
// Returns true if the answer is correct.
//
// Normalization rules:
// - Whitespace is trimmed
// - Comparison is case-insensitive
// - For multiple choice: the input must be the correct choice label,
//   or the full text of the correct choice
// - For free-form: the input is matched against the answer text
func CheckAnswer(learnerAnswer string, question *quizgen.Question) bool {
	learnerAnswer = strings.TrimSpace(learnerAnswer)
	if learnerAnswer == "" {
		return false
	}

	if strings.EqualFold(learnerAnswer, strings.TrimSpace(question.Answer)) {
		return true
	}

	// Typing out the correct option's text also counts.
	if question.HasChoices() {
		if text, ok := question.Choices[question.Answer]; ok {
			return strings.EqualFold(learnerAnswer, strings.TrimSpace(text))
		}
	}

	return false
}
