// Package quiz runs a quiz session over a generated problem set,
// logging each answer as an append-only result event.
package quiz

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tmorita/studycoach/internal/quizgen"
	"github.com/tmorita/studycoach/internal/store"
)

// Phase represents the current phase of a session.
type Phase int

const (
	PhaseAwaitingAnswer Phase = iota // Current question shown, no answer yet
	PhaseAnswered                    // Answer judged, feedback available
	PhaseCompleted                   // All questions answered
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingAnswer:
		return "awaiting-answer"
	case PhaseAnswered:
		return "answered"
	case PhaseCompleted:
		return "completed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// UnclassifiedTopic is the bucket for answers to questions the model
// left without a topic.
const UnclassifiedTopic = "unclassified"

// ErrInvalidTransition is returned when an operation is called in a
// phase that does not allow it. The session state is unchanged and
// nothing is logged.
type ErrInvalidTransition struct {
	Op    string
	Phase Phase
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("cannot %s in phase %s", e.Op, e.Phase)
}

// Result holds the judgment of one submitted answer.
type Result struct {
	Correct     bool
	Answer      string // the correct answer
	Explanation string
}

// Session walks a learner through one problem set.
//
// Each question accepts exactly one answer, and each answer appends
// exactly one result event. Sessions are not safe for concurrent use.
type Session struct {
	ID       string
	Set      quizgen.ProblemSet
	repo     store.EventRepo
	index    int
	phase    Phase
	answered int
	correct  int
	now      func() time.Time
}

// NewSession starts a session over set, logging results to repo.
// An empty set starts already completed.
func NewSession(set quizgen.ProblemSet, repo store.EventRepo) *Session {
	s := &Session{
		ID:   uuid.New().String(),
		Set:  set,
		repo: repo,
		now:  time.Now,
	}
	if len(set) == 0 {
		s.phase = PhaseCompleted
	}
	return s
}

// Phase returns the current session phase.
func (s *Session) Phase() Phase { return s.phase }

// Index returns the zero-based position of the current question.
func (s *Session) Index() int { return s.index }

// Current returns the question awaiting or holding an answer, or nil
// once the session is completed.
func (s *Session) Current() *quizgen.Question {
	if s.phase == PhaseCompleted {
		return nil
	}
	return &s.Set[s.index]
}

// Submit judges the learner's answer to the current question and logs
// a result event. Valid only in PhaseAwaitingAnswer; submitting twice
// for one question is an ErrInvalidTransition and logs nothing.
func (s *Session) Submit(ctx context.Context, answer string) (*Result, error) {
	if s.phase != PhaseAwaitingAnswer {
		return nil, &ErrInvalidTransition{Op: "submit", Phase: s.phase}
	}

	q := &s.Set[s.index]
	correct := CheckAnswer(answer, q)

	topic := q.Topic
	if topic == "" {
		topic = UnclassifiedTopic
	}

	if err := s.repo.AppendResult(ctx, store.ResultEventData{
		Topic:     topic,
		Correct:   correct,
		Timestamp: s.now(),
	}); err != nil {
		return nil, fmt.Errorf("log result: %w", err)
	}

	s.phase = PhaseAnswered
	s.answered++
	if correct {
		s.correct++
	}

	return &Result{
		Correct:     correct,
		Answer:      q.Answer,
		Explanation: q.Explanation,
	}, nil
}

// Advance moves past an answered question to the next one, or to
// PhaseCompleted after the last. Valid only in PhaseAnswered.
func (s *Session) Advance() error {
	if s.phase != PhaseAnswered {
		return &ErrInvalidTransition{Op: "advance", Phase: s.phase}
	}

	s.index++
	if s.index >= len(s.Set) {
		s.phase = PhaseCompleted
	} else {
		s.phase = PhaseAwaitingAnswer
	}
	return nil
}

// Restart rewinds to the first question with all answer flags cleared.
// The result log is append-only: events from the previous pass remain.
func (s *Session) Restart() {
	s.index = 0
	s.answered = 0
	s.correct = 0
	if len(s.Set) == 0 {
		s.phase = PhaseCompleted
	} else {
		s.phase = PhaseAwaitingAnswer
	}
}

// Answered returns how many questions have been answered this pass.
func (s *Session) Answered() int { return s.answered }

// Correct returns how many answers were correct this pass.
func (s *Session) Correct() int { return s.correct }
