package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const defaultListLimit = 50

// Entry is one journaled disposition.
type Entry struct {
	RunID       string
	Hash        string
	Keep        string
	Source      string
	Action      string
	Destination string
	Size        int64
	RecordedAt  time.Time
}

// RunEntry is one journaled run.
type RunEntry struct {
	ID              string
	StartedAt       time.Time
	FinishedAt      time.Time
	SourceDir       string
	MoveDir         string
	Outcome         string
	Error           string
	DuplicateGroups int
	Removed         int
	Moved           int
	Bytes           int64
}

// ListDispositions returns the most recent dispositions, newest first.
// When runID is set only that run's dispositions are returned.
func (s *Store) ListDispositions(ctx context.Context, runID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	query := `SELECT run_id, hash, keep_path, source_path, action, destination, size_bytes, recorded_at
        FROM dispositions`
	args := []any{}
	if runID != "" {
		query += ` WHERE run_id = ?`
		args = append(args, runID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query dispositions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry       Entry
			destination sql.NullString
			recordedAt  string
		)
		if err := rows.Scan(&entry.RunID, &entry.Hash, &entry.Keep, &entry.Source, &entry.Action,
			&destination, &entry.Size, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan disposition: %w", err)
		}
		entry.Destination = destination.String
		entry.RecordedAt = parseTime(recordedAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dispositions: %w", err)
	}
	return entries, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, source_dir, move_dir, outcome, error_message,
            duplicate_groups, removed, moved, bytes
        FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunEntry
	for rows.Next() {
		var run RunEntry
		var startedAt string
		var finishedAt, moveDir, outcome, errMsg sql.NullString
		if err := rows.Scan(&run.ID, &startedAt, &finishedAt, &run.SourceDir, &moveDir, &outcome, &errMsg,
			&run.DuplicateGroups, &run.Removed, &run.Moved, &run.Bytes); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt = parseTime(startedAt)
		run.FinishedAt = parseTime(finishedAt.String)
		run.MoveDir = moveDir.String
		run.Outcome = outcome.String
		run.Error = errMsg.String
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// timeLayout is fixed width so stored timestamps sort as text in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var nowFunc = time.Now

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
