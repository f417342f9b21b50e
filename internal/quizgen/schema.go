package quizgen

import "github.com/tmorita/studycoach/internal/llm"

// questionRecordDefinition is the JSON Schema for a single question
// record. The "choices" key is optional: one generation call may mix
// multiple-choice and free-form records.
var questionRecordDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"topic": map[string]any{
			"type":        "string",
			"description": "Short subject-area name for this question",
		},
		"question": map[string]any{
			"type":        "string",
			"description": "The question text shown to the learner",
		},
		"choices": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "string"},
			"description":          "Answer options keyed by label (A-E). Omit for free-form questions.",
		},
		"correct": map[string]any{
			"type":        "string",
			"description": "The correct answer: a choice label, or the answer text for free-form questions",
		},
		"explanation": map[string]any{
			"type":        "string",
			"description": "Brief explanation of the correct answer",
		},
	},
	"required": []any{"question", "correct"},
}

// QuestionListSchema is sent with generation requests so providers with
// native structured output produce the right shape. The decoder never
// assumes it was honored.
var QuestionListSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "An array of quiz questions generated from study material",
	Definition: map[string]any{
		"type":  "array",
		"items": questionRecordDefinition,
	},
}
