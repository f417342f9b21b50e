package quiz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tmorita/studycoach/internal/quizgen"
	"github.com/tmorita/studycoach/internal/store"
)

// memRepo is an in-memory EventRepo capturing appended results.
type memRepo struct {
	store.EventRepo
	results []store.ResultEventData
	failing bool
}

func (m *memRepo) AppendResult(_ context.Context, data store.ResultEventData) error {
	if m.failing {
		return errors.New("disk full")
	}
	m.results = append(m.results, data)
	return nil
}

func threeQuestions() quizgen.ProblemSet {
	return quizgen.ProblemSet{
		{
			Topic:   "Anatomy",
			Text:    "Which chamber pumps blood into the aorta?",
			Choices: map[string]string{"A": "Left ventricle", "B": "Right atrium"},
			Answer:  "A",
		},
		{
			Topic:  "Geography",
			Text:   "What is the capital of France?",
			Answer: "Paris",
		},
		{
			// No topic: logged under the unclassified bucket.
			Text:    "Pick B.",
			Choices: map[string]string{"A": "no", "B": "yes"},
			Answer:  "B",
		},
	}
}

func TestSessionWalkthrough(t *testing.T) {
	repo := &memRepo{}
	s := NewSession(threeQuestions(), repo)
	ctx := context.Background()

	if s.ID == "" {
		t.Error("session ID is empty")
	}
	if s.Phase() != PhaseAwaitingAnswer {
		t.Fatalf("initial phase = %v", s.Phase())
	}

	// Q1: correct by label, case-insensitive.
	res, err := s.Submit(ctx, " a ")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !res.Correct {
		t.Error("Q1 judged incorrect, want correct")
	}
	if s.Phase() != PhaseAnswered {
		t.Fatalf("phase after submit = %v", s.Phase())
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}

	// Q2: free-form, case-insensitive with surrounding whitespace.
	res, err = s.Submit(ctx, "paris ")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !res.Correct {
		t.Error("Q2 judged incorrect, want correct")
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}

	// Q3: wrong answer.
	res, err = s.Submit(ctx, "A")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if res.Correct {
		t.Error("Q3 judged correct, want incorrect")
	}
	if res.Answer != "B" {
		t.Errorf("Result.Answer = %q, want B", res.Answer)
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}

	if s.Phase() != PhaseCompleted {
		t.Fatalf("final phase = %v, want PhaseCompleted", s.Phase())
	}
	if s.Current() != nil {
		t.Error("Current() after completion is non-nil")
	}
	if s.Answered() != 3 || s.Correct() != 2 {
		t.Errorf("Answered() = %d, Correct() = %d, want 3 and 2", s.Answered(), s.Correct())
	}

	// One event per answer, in order, with topic fallback.
	if len(repo.results) != 3 {
		t.Fatalf("logged %d events, want 3", len(repo.results))
	}
	wantTopics := []string{"Anatomy", "Geography", UnclassifiedTopic}
	wantCorrect := []bool{true, true, false}
	for i := range repo.results {
		if repo.results[i].Topic != wantTopics[i] {
			t.Errorf("event %d topic = %q, want %q", i, repo.results[i].Topic, wantTopics[i])
		}
		if repo.results[i].Correct != wantCorrect[i] {
			t.Errorf("event %d correct = %v, want %v", i, repo.results[i].Correct, wantCorrect[i])
		}
		if repo.results[i].Timestamp.IsZero() {
			t.Errorf("event %d has zero timestamp", i)
		}
	}
}

func TestSessionDoubleSubmit(t *testing.T) {
	repo := &memRepo{}
	s := NewSession(threeQuestions(), repo)
	ctx := context.Background()

	if _, err := s.Submit(ctx, "A"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	_, err := s.Submit(ctx, "B")
	var it *ErrInvalidTransition
	if !errors.As(err, &it) {
		t.Fatalf("second Submit() error = %v, want *ErrInvalidTransition", err)
	}
	if len(repo.results) != 1 {
		t.Errorf("logged %d events after double submit, want 1", len(repo.results))
	}
}

func TestSessionAdvanceBeforeAnswer(t *testing.T) {
	s := NewSession(threeQuestions(), &memRepo{})
	var it *ErrInvalidTransition
	if err := s.Advance(); !errors.As(err, &it) {
		t.Fatalf("Advance() error = %v, want *ErrInvalidTransition", err)
	}
	if s.Index() != 0 {
		t.Errorf("Index() = %d after failed advance, want 0", s.Index())
	}
}

func TestSessionSubmitAfterCompletion(t *testing.T) {
	repo := &memRepo{}
	s := NewSession(quizgen.ProblemSet{{Text: "q", Answer: "a"}}, repo)
	ctx := context.Background()

	if _, err := s.Submit(ctx, "a"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}

	_, err := s.Submit(ctx, "a")
	var it *ErrInvalidTransition
	if !errors.As(err, &it) {
		t.Fatalf("Submit() after completion error = %v, want *ErrInvalidTransition", err)
	}
	if len(repo.results) != 1 {
		t.Errorf("logged %d events, want 1", len(repo.results))
	}
}

func TestSessionEmptySet(t *testing.T) {
	s := NewSession(nil, &memRepo{})
	if s.Phase() != PhaseCompleted {
		t.Fatalf("empty set phase = %v, want PhaseCompleted", s.Phase())
	}
	if s.Current() != nil {
		t.Error("Current() on empty set is non-nil")
	}
}

func TestSessionRestart(t *testing.T) {
	repo := &memRepo{}
	s := NewSession(threeQuestions(), repo)
	ctx := context.Background()

	if _, err := s.Submit(ctx, "A"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}

	s.Restart()
	if s.Phase() != PhaseAwaitingAnswer || s.Index() != 0 {
		t.Fatalf("after Restart: phase = %v, index = %d", s.Phase(), s.Index())
	}
	if s.Answered() != 0 || s.Correct() != 0 {
		t.Errorf("after Restart: Answered() = %d, Correct() = %d", s.Answered(), s.Correct())
	}

	// The log is append-only: the restarted pass adds new events.
	if _, err := s.Submit(ctx, "B"); err != nil {
		t.Fatalf("Submit() after restart error = %v", err)
	}
	if len(repo.results) != 2 {
		t.Errorf("logged %d events across passes, want 2", len(repo.results))
	}
}

func TestSessionLogFailure(t *testing.T) {
	repo := &memRepo{failing: true}
	s := NewSession(threeQuestions(), repo)

	_, err := s.Submit(context.Background(), "A")
	if err == nil {
		t.Fatal("Submit() error = nil with failing repo")
	}
	// The answer did not take: the question can be retried.
	if s.Phase() != PhaseAwaitingAnswer {
		t.Errorf("phase after failed log = %v, want PhaseAwaitingAnswer", s.Phase())
	}
	if s.Answered() != 0 {
		t.Errorf("Answered() = %d after failed log, want 0", s.Answered())
	}
}

func TestCheckAnswer(t *testing.T) {
	mc := &quizgen.Question{
		Choices: map[string]string{"A": "Left ventricle", "B": "Right atrium"},
		Answer:  "A",
	}
	free := &quizgen.Question{Answer: "mitochondria"}

	tests := []struct {
		name  string
		q     *quizgen.Question
		input string
		want  bool
	}{
		{"label exact", mc, "A", true},
		{"label lowercase", mc, "a", true},
		{"label padded", mc, " A ", true},
		{"wrong label", mc, "B", false},
		{"choice text", mc, "left ventricle", true},
		{"wrong choice text", mc, "Right atrium", false},
		{"empty", mc, "   ", false},
		{"free exact", free, "mitochondria", true},
		{"free case and space", free, " Mitochondria ", true},
		{"free wrong", free, "ribosome", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckAnswer(tt.input, tt.q); got != tt.want {
				t.Errorf("CheckAnswer(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSessionFixedClock(t *testing.T) {
	repo := &memRepo{}
	s := NewSession(threeQuestions(), repo)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	s.now = func() time.Time { return fixed }

	if _, err := s.Submit(context.Background(), "A"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !repo.results[0].Timestamp.Equal(fixed) {
		t.Errorf("event timestamp = %v, want %v", repo.results[0].Timestamp, fixed)
	}
}
