// Package quizgen turns extracted study material into a validated set of
// quiz questions via an LLM provider.
package quizgen

import "sort"

// Question is one generated quiz question ready for display.
type Question struct {
	// Topic is the subject area the model assigned, e.g. "Pharmacology".
	// Empty when the model omitted it; sessions log such answers under
	// the "unclassified" bucket.
	Topic string

	// Text is the question prompt shown to the learner.
	Text string

	// Choices maps answer labels ("A".."E") to option text. Nil or empty
	// for free-form questions.
	Choices map[string]string

	// Answer is the correct answer: a label when Choices is present,
	// free-form text otherwise.
	Answer string

	// Explanation is shown after the learner answers.
	Explanation string
}

// HasChoices reports whether this is a multiple-choice question.
func (q *Question) HasChoices() bool {
	return len(q.Choices) > 0
}

// Labels returns the choice labels in sorted order. Generated labels are
// single letters, so lexical order matches presentation order.
func (q *Question) Labels() []string {
	labels := make([]string, 0, len(q.Choices))
	for label := range q.Choices {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// ProblemSet is the ordered question sequence produced for one quiz
// session. Immutable after creation.
type ProblemSet []Question
