package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"dedup/internal/resolver"
)

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("journal path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// RunInfo describes a run as it starts.
type RunInfo struct {
	ID        string
	SourceDir string
	MoveDir   string
}

// Run journals the dispositions of one resolver run. It satisfies
// resolver.Recorder.
type Run struct {
	store *Store
	id    string
}

var _ resolver.Recorder = (*Run)(nil)

// BeginRun inserts a run row and returns its recorder.
func (s *Store) BeginRun(ctx context.Context, info RunInfo) (*Run, error) {
	if strings.TrimSpace(info.ID) == "" {
		return nil, errors.New("run id required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, source_dir, move_dir) VALUES (?, ?, ?, ?)`,
		info.ID,
		formatTime(nowFunc()),
		info.SourceDir,
		nullableString(info.MoveDir),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return &Run{store: s, id: info.ID}, nil
}

// ID returns the run identifier.
func (r *Run) ID() string {
	return r.id
}

// RecordDisposition appends one disposition to the run.
func (r *Run) RecordDisposition(ctx context.Context, d resolver.Disposition) error {
	_, err := r.store.db.ExecContext(ctx,
		`INSERT INTO dispositions (
            run_id, hash, keep_path, source_path, action, destination, size_bytes, recorded_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.id,
		d.Hash,
		d.Keep,
		d.Source,
		string(d.Action),
		nullableString(d.Destination),
		d.Size,
		formatTime(nowFunc()),
	)
	if err != nil {
		return fmt.Errorf("insert disposition: %w", err)
	}
	return nil
}

// Finish stores the run's terminal outcome and counts.
func (r *Run) Finish(ctx context.Context, summary resolver.Summary, runErr error) error {
	var message any
	if runErr != nil {
		message = runErr.Error()
	}
	_, err := r.store.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, outcome = ?, error_message = ?,
            duplicate_groups = ?, removed = ?, moved = ?, bytes = ?
        WHERE id = ?`,
		formatTime(nowFunc()),
		string(summary.Outcome),
		message,
		summary.DuplicateGroups,
		summary.Removed,
		summary.Moved,
		summary.Bytes,
		r.id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}
