package quizgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// DecodeError indicates the model produced output that could not be
// turned into a usable problem set. It carries the full raw text so the
// caller can log a diagnosable message instead of a bare parse error.
type DecodeError struct {
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode quiz questions: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// rawQuestion mirrors the JSON record shape the prompt requests.
type rawQuestion struct {
	Topic       string            `json:"topic"`
	Question    string            `json:"question"`
	Choices     map[string]string `json:"choices"`
	Correct     string            `json:"correct"`
	Explanation string            `json:"explanation"`
}

// Decode parses the model's raw output into a ProblemSet.
//
// The model is not contractually bound to emit a bare JSON array, so
// decoding is staged: strip any markdown code fences, try a direct parse,
// then fall back to the substring between the first '[' and the last ']'.
// Elements violating the record invariants are dropped rather than fatal;
// a result with no surviving questions is a DecodeError.
func Decode(raw string) (ProblemSet, error) {
	cleaned := stripFences(raw)

	elements, err := parseArray(cleaned)
	if err != nil {
		start := strings.Index(cleaned, "[")
		end := strings.LastIndex(cleaned, "]")
		if start == -1 || end == -1 || end <= start {
			return nil, &DecodeError{Raw: raw, Err: fmt.Errorf("no JSON array found: %w", err)}
		}

		elements, err = parseArray(cleaned[start : end+1])
		if err != nil {
			return nil, &DecodeError{Raw: raw, Err: err}
		}
	}

	set := make(ProblemSet, 0, len(elements))
	for _, el := range elements {
		q, ok := validateRecord(el)
		if !ok {
			continue
		}
		set = append(set, q)
	}

	if len(set) == 0 {
		return nil, &DecodeError{Raw: raw, Err: errors.New("no valid questions recovered")}
	}
	return set, nil
}

// stripFences removes leading/trailing markdown code fence delimiters
// (```json ... ```) the model may have wrapped the payload in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	// Drop the opening fence line, including any language tag.
	if i := strings.Index(s, "\n"); i != -1 {
		s = s[i+1:]
	} else {
		s = strings.TrimLeft(s, "`")
	}

	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "`")
	return strings.TrimSpace(s)
}

func parseArray(s string) ([]json.RawMessage, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(s), &elements); err != nil {
		return nil, err
	}
	return elements, nil
}

// validateRecord checks one array element against the record schema and
// the semantic invariants. Invalid elements are dropped, not fatal.
func validateRecord(el json.RawMessage) (Question, bool) {
	var parsed any
	if err := json.Unmarshal(el, &parsed); err != nil {
		return Question{}, false
	}
	if err := recordSchema().Validate(parsed); err != nil {
		return Question{}, false
	}

	var raw rawQuestion
	if err := json.Unmarshal(el, &raw); err != nil {
		return Question{}, false
	}

	q := Question{
		Topic:       strings.TrimSpace(raw.Topic),
		Text:        strings.TrimSpace(raw.Question),
		Choices:     raw.Choices,
		Answer:      strings.TrimSpace(raw.Correct),
		Explanation: strings.TrimSpace(raw.Explanation),
	}

	if q.Text == "" || q.Answer == "" {
		return Question{}, false
	}

	// With a choice set, the correct answer must be one of its labels.
	if q.HasChoices() {
		if _, ok := q.Choices[q.Answer]; !ok {
			return Question{}, false
		}
	}

	return q, true
}

var (
	recordSchemaOnce     sync.Once
	compiledRecordSchema *jsonschema.Schema
)

// recordSchema returns the compiled record schema, compiling it on first
// use. The definition is a package constant, so compilation cannot fail
// at runtime; a failure here is a programming error.
func recordSchema() *jsonschema.Schema {
	recordSchemaOnce.Do(func() {
		defBytes, err := json.Marshal(questionRecordDefinition)
		if err != nil {
			panic(fmt.Sprintf("marshal question record schema: %v", err))
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			panic(fmt.Sprintf("parse question record schema: %v", err))
		}

		c := jsonschema.NewCompiler()
		const url = "schema://quiz-question.json"
		if err := c.AddResource(url, def); err != nil {
			panic(fmt.Sprintf("add question record schema: %v", err))
		}
		compiled, err := c.Compile(url)
		if err != nil {
			panic(fmt.Sprintf("compile question record schema: %v", err))
		}
		compiledRecordSchema = compiled
	})
	return compiledRecordSchema
}
