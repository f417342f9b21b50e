package store

import (
	"context"
	"time"
)

// TimeLayout is the timestamp format stored in the database.
const TimeLayout = "2006-01-02 15:04:05"

// ResultEventData captures one answer judgment for appending to the log.
type ResultEventData struct {
	// Topic is the question's topic. Callers pass the "unclassified"
	// sentinel when the generated record carried no topic.
	Topic string

	// Correct is the judgment for this answer.
	Correct bool

	// Timestamp is the event time. Zero value means "now".
	Timestamp time.Time
}

// ResultEvent is one immutable row of the result log.
type ResultEvent struct {
	ID        int64
	Timestamp time.Time
	Topic     string
	Correct   bool
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMEvent is one recorded LLM request.
type LLMEvent struct {
	ID           int64
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit int // max results (0 = unlimited)
}

// EventRepo provides append and query access to the event log.
// Both tables are append-only: there are no update or delete operations.
type EventRepo interface {
	// AppendResult records one answer judgment. Exactly one row per call.
	AppendResult(ctx context.Context, data ResultEventData) error

	// AllResults returns the full result history in insertion order.
	AllResults(ctx context.Context) ([]ResultEvent, error)

	// RecentResults returns the n most recent results, newest first.
	RecentResults(ctx context.Context, n int) ([]ResultEvent, error)

	// CountResults returns the total number of result rows.
	CountResults(ctx context.Context) (int, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)
}
