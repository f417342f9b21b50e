package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an educational AI that writes exam-style quiz questions from study material.

Rules:
- Write questions only from the content of the provided material. Do not invent facts.
- Prefer multiple-choice questions with five options labeled A through E and exactly one correct answer. Use a free-form answer only when choices would not make sense.
- Wrong options should be ones a student with gaps in their knowledge would plausibly pick.
- Output only a JSON array. No prose, no markdown fences.
- Do not put newlines inside JSON keys or values.
- Keep each choice to a single self-contained sentence.
- Keep each explanation under 100 words.
- Write formulas as plain text. No LaTeX, no $ notation, and never use backslashes.`

// buildUserMessage constructs the generation request body: the target
// count, the exact output shape, and a bounded prefix of the material.
func buildUserMessage(material string, n, maxChars int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create %d quiz questions from the material below.\n\n", n)

	b.WriteString("Give every question a short \"topic\" naming its subject area, e.g. \"Pharmacokinetics\" or \"Organic Chemistry\".\n\n")

	b.WriteString(`Output format:
[
  {
    "topic": "...",
    "question": "...",
    "choices": {
      "A": "...",
      "B": "...",
      "C": "...",
      "D": "...",
      "E": "..."
    },
    "correct": "A",
    "explanation": "..."
  }
]

Material:
`)
	b.WriteString(truncate(material, maxChars))

	return b.String()
}

// truncate caps s at max characters. This is a hard character cap, not a
// token-aware one; it only has to keep the request inside the model's
// context window.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
