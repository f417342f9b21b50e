package store

import (
	"context"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is only meaningful with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAppendAndAllResults(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []ResultEventData{
		{Topic: "Pharmacokinetics", Correct: true},
		{Topic: "Pharmacokinetics", Correct: false},
		{Topic: "unclassified", Correct: true},
	}
	for _, ev := range events {
		if err := repo.AppendResult(ctx, ev); err != nil {
			t.Fatalf("append result: %v", err)
		}
	}

	got, err := repo.AllResults(ctx)
	if err != nil {
		t.Fatalf("all results: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}

	// Insertion order preserved.
	for i, ev := range got {
		if ev.Topic != events[i].Topic {
			t.Errorf("result %d: topic = %q, want %q", i, ev.Topic, events[i].Topic)
		}
		if ev.Correct != events[i].Correct {
			t.Errorf("result %d: correct = %t, want %t", i, ev.Correct, events[i].Correct)
		}
		if ev.ID <= 0 {
			t.Errorf("result %d: expected positive id, got %d", i, ev.ID)
		}
	}
}

func TestAppendResultPreservesTimestamp(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)
	if err := repo.AppendResult(ctx, ResultEventData{Topic: "Biochem", Correct: true, Timestamp: ts}); err != nil {
		t.Fatalf("append result: %v", err)
	}

	got, err := repo.AllResults(ctx)
	if err != nil {
		t.Fatalf("all results: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if !got[0].Timestamp.Equal(ts) {
		t.Errorf("timestamp = %v, want %v", got[0].Timestamp, ts)
	}
}

func TestRecentResults(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	topics := []string{"A", "B", "C", "D"}
	for _, topic := range topics {
		if err := repo.AppendResult(ctx, ResultEventData{Topic: topic, Correct: true}); err != nil {
			t.Fatalf("append result: %v", err)
		}
	}

	got, err := repo.RecentResults(ctx, 2)
	if err != nil {
		t.Fatalf("recent results: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	// Newest first.
	if got[0].Topic != "D" || got[1].Topic != "C" {
		t.Errorf("expected [D C], got [%s %s]", got[0].Topic, got[1].Topic)
	}
}

func TestCountResults(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	count, err := repo.CountResults(ctx)
	if err != nil {
		t.Fatalf("count results: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 results in fresh store, got %d", count)
	}

	for i := 0; i < 5; i++ {
		if err := repo.AppendResult(ctx, ResultEventData{Topic: "T", Correct: i%2 == 0}); err != nil {
			t.Fatalf("append result: %v", err)
		}
	}

	count, err = repo.CountResults(ctx)
	if err != nil {
		t.Fatalf("count results: %v", err)
	}
	if count != 5 {
		t.Errorf("expected 5 results, got %d", count)
	}
}

func TestLLMEventRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "gemini",
		Model:        "gemini-2.0-flash",
		Purpose:      "quiz-gen",
		InputTokens:  1200,
		OutputTokens: 450,
		LatencyMs:    830,
		Success:      true,
	})
	if err != nil {
		t.Fatalf("append LLM event: %v", err)
	}

	err = repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "gemini",
		Model:        "gemini-2.0-flash",
		Purpose:      "coaching",
		Success:      false,
		ErrorMessage: "rate limited",
	})
	if err != nil {
		t.Fatalf("append LLM event: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 10})
	if err != nil {
		t.Fatalf("query LLM events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	// Newest first.
	if events[0].Purpose != "coaching" {
		t.Errorf("expected coaching event first, got %q", events[0].Purpose)
	}
	if events[0].Success {
		t.Error("expected failed event")
	}
	if events[0].ErrorMessage != "rate limited" {
		t.Errorf("error message = %q", events[0].ErrorMessage)
	}
	if events[1].InputTokens != 1200 || events[1].OutputTokens != 450 {
		t.Errorf("token counts = %d/%d, want 1200/450", events[1].InputTokens, events[1].OutputTokens)
	}
}

func TestQueryLLMEventsLimit(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "mock", Model: "mock", Purpose: "quiz-gen", Success: true,
		})
		if err != nil {
			t.Fatalf("append LLM event: %v", err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 3})
	if err != nil {
		t.Fatalf("query LLM events: %v", err)
	}
	if len(events) != 3 {
		t.Errorf("expected 3 events, got %d", len(events))
	}
}
