package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// eventRepo implements EventRepo over the raw database handle.
type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendResult(ctx context.Context, data ResultEventData) error {
	ts := data.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	correct := 0
	if data.Correct {
		correct = 1
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO results (timestamp, topic, is_correct) VALUES (?, ?, ?)`,
		ts.Format(TimeLayout), data.Topic, correct,
	)
	if err != nil {
		return fmt.Errorf("append result: %w", err)
	}
	return nil
}

func (r *eventRepo) AllResults(ctx context.Context) ([]ResultEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, timestamp, topic, is_correct FROM results ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func (r *eventRepo) RecentResults(ctx context.Context, n int) ([]ResultEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, timestamp, topic, is_correct FROM results ORDER BY id DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent results: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func (r *eventRepo) CountResults(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM results`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count results: %w", err)
	}
	return count, nil
}

func scanResults(rows *sql.Rows) ([]ResultEvent, error) {
	var events []ResultEvent
	for rows.Next() {
		var (
			ev      ResultEvent
			ts      string
			correct int
		)
		if err := rows.Scan(&ev.ID, &ts, &ev.Topic, &correct); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		t, err := time.ParseInLocation(TimeLayout, ts, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp %q: %w", ts, err)
		}
		ev.Timestamp = t
		ev.Correct = correct != 0
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return events, nil
}
