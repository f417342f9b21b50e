package quizgen

import (
	"errors"
	"strings"
	"testing"
)

const validArray = `[
  {
    "topic": "Pharmacokinetics",
    "question": "Which process describes drug movement from the gut into the bloodstream?",
    "choices": {"A": "Absorption", "B": "Distribution", "C": "Metabolism", "D": "Excretion", "E": "Binding"},
    "correct": "A",
    "explanation": "Absorption moves a drug from its administration site into circulation."
  },
  {
    "topic": "Pharmacokinetics",
    "question": "Name the organ primarily responsible for first-pass metabolism.",
    "correct": "liver",
    "explanation": "Orally absorbed drugs pass through the liver before reaching systemic circulation."
  }
]`

func TestDecodeBareArray(t *testing.T) {
	set, err := Decode(validArray)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("len(set) = %d, want 2", len(set))
	}

	if got := set[0].Topic; got != "Pharmacokinetics" {
		t.Errorf("set[0].Topic = %q", got)
	}
	if !set[0].HasChoices() {
		t.Error("set[0].HasChoices() = false, want true")
	}
	if got := set[0].Answer; got != "A" {
		t.Errorf("set[0].Answer = %q, want A", got)
	}
	if set[1].HasChoices() {
		t.Error("set[1].HasChoices() = true, want false (free-form)")
	}
}

func TestDecodeFencedArray(t *testing.T) {
	fenced := "```json\n" + validArray + "\n```"
	set, err := Decode(fenced)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("len(set) = %d, want 2", len(set))
	}
}

func TestDecodeFencedWithoutLanguageTag(t *testing.T) {
	fenced := "```\n" + validArray + "\n```"
	set, err := Decode(fenced)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("len(set) = %d, want 2", len(set))
	}
}

func TestDecodeProseWrappedArray(t *testing.T) {
	wrapped := "Sure! Here are your questions:\n" + validArray + "\nLet me know if you need more."
	set, err := Decode(wrapped)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("len(set) = %d, want 2", len(set))
	}
}

func TestDecodeNoArray(t *testing.T) {
	_, err := Decode("no brackets here")
	if err == nil {
		t.Fatal("Decode() error = nil, want *DecodeError")
	}

	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error type = %T, want *DecodeError", err)
	}
	if de.Raw != "no brackets here" {
		t.Errorf("DecodeError.Raw = %q", de.Raw)
	}
}

func TestDecodeMalformedInsideBrackets(t *testing.T) {
	_, err := Decode(`prefix [ this is not json ] suffix`)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error = %v, want *DecodeError", err)
	}
}

func TestDecodeDropsCorrectLabelNotInChoices(t *testing.T) {
	raw := `[
	  {"question": "Pick one.", "choices": {"A": "yes", "B": "no"}, "correct": "Z"},
	  {"question": "Pick another.", "choices": {"A": "up", "B": "down"}, "correct": "B"}
	]`
	set, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(set) != 1 {
		t.Fatalf("len(set) = %d, want 1 (record with out-of-set label dropped)", len(set))
	}
	if set[0].Answer != "B" {
		t.Errorf("survivor Answer = %q, want B", set[0].Answer)
	}
}

func TestDecodeDropsMissingRequiredFields(t *testing.T) {
	raw := `[
	  {"topic": "Chemistry"},
	  {"question": "   ", "correct": "A", "choices": {"A": "x"}},
	  {"question": "Real question?", "correct": "answer text"}
	]`
	set, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(set) != 1 {
		t.Fatalf("len(set) = %d, want 1", len(set))
	}
	if set[0].Text != "Real question?" {
		t.Errorf("survivor Text = %q", set[0].Text)
	}
}

func TestDecodeDropsWrongTypes(t *testing.T) {
	raw := `[
	  {"question": 42, "correct": "A"},
	  {"question": "ok?", "correct": "fine"}
	]`
	set, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(set) != 1 {
		t.Fatalf("len(set) = %d, want 1", len(set))
	}
}

func TestDecodeAllInvalid(t *testing.T) {
	_, err := Decode(`[{"topic": "orphan"}, {"correct": "A"}]`)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error = %v, want *DecodeError", err)
	}
	if !strings.Contains(de.Err.Error(), "no valid questions recovered") {
		t.Errorf("DecodeError.Err = %v", de.Err)
	}
}

func TestDecodeEmptyArray(t *testing.T) {
	_, err := Decode(`[]`)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error = %v, want *DecodeError", err)
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `[1]`, `[1]`},
		{"json tag", "```json\n[1]\n```", `[1]`},
		{"no tag", "```\n[1]\n```", `[1]`},
		{"surrounding whitespace", "  \n```json\n[1]\n```  \n", `[1]`},
		{"single line", "```[1]```", `[1]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.in); got != tt.want {
				t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLabelsSorted(t *testing.T) {
	q := Question{Choices: map[string]string{"C": "c", "A": "a", "B": "b"}}
	labels := q.Labels()
	want := []string{"A", "B", "C"}
	if len(labels) != len(want) {
		t.Fatalf("len(labels) = %d", len(labels))
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels[%d] = %q, want %q", i, labels[i], want[i])
		}
	}
}
