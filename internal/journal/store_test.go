package journal_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"dedup/internal/journal"
	"dedup/internal/resolver"
	"dedup/internal/testsupport"
)

func TestOpenCreatesSchema(t *testing.T) {
	store := testsupport.MustOpenJournal(t, filepath.Join(t.TempDir(), "nested", "journal.db"))

	runs, err := store.ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected empty journal, got %d runs", len(runs))
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "journal.db")

	store, err := journal.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	run, err := store.BeginRun(ctx, journal.RunInfo{ID: "run-1", SourceDir: "/media"})
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if err := run.RecordDisposition(ctx, resolver.Disposition{
		Hash: "abc", Keep: "Sent/a.jpg", Source: "/media/Inbox/a.jpg", Action: resolver.ActionRemoved, Size: 10,
	}); err != nil {
		t.Fatalf("RecordDisposition: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := testsupport.MustOpenJournal(t, path)
	entries, err := reopened.ListDispositions(ctx, "", 0)
	if err != nil {
		t.Fatalf("ListDispositions: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after reopen, got %d", len(entries))
	}
}

func TestRunLifecycle(t *testing.T) {
	ctx := context.Background()
	store := testsupport.MustOpenJournal(t, filepath.Join(t.TempDir(), "journal.db"))

	run, err := store.BeginRun(ctx, journal.RunInfo{ID: "run-42", SourceDir: "/media", MoveDir: "/dupes"})
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if run.ID() != "run-42" {
		t.Fatalf("unexpected run id %q", run.ID())
	}

	dispositions := []resolver.Disposition{
		{Hash: "h1", Keep: "Sent/a.jpg", Source: "/media/Inbox/a.jpg", Action: resolver.ActionMoved, Destination: "/dupes/a.jpg", Size: 100},
		{Hash: "h2", Keep: "x/b.jpg", Source: "/media/y/b.jpg", Action: resolver.ActionMoved, Destination: "/dupes/b.jpg", Size: 50},
	}
	for _, d := range dispositions {
		if err := run.RecordDisposition(ctx, d); err != nil {
			t.Fatalf("RecordDisposition: %v", err)
		}
	}

	summary := resolver.Summary{DuplicateGroups: 2, Moved: 2, Bytes: 150, Outcome: resolver.OutcomeAborted}
	if err := run.Finish(ctx, summary, errors.New("invalid drop path")); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	entries, err := store.ListDispositions(ctx, "run-42", 10)
	if err != nil {
		t.Fatalf("ListDispositions: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Hash != "h2" || entries[1].Hash != "h1" {
		t.Fatalf("expected newest first, got %+v", entries)
	}
	if entries[0].Destination != "/dupes/b.jpg" || entries[0].Action != "moved" || entries[0].Size != 50 {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
	if entries[0].RecordedAt.IsZero() {
		t.Fatal("expected recorded timestamp")
	}

	runs, err := store.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.Outcome != "aborted" || got.Error != "invalid drop path" {
		t.Fatalf("unexpected outcome: %+v", got)
	}
	if got.Moved != 2 || got.Bytes != 150 || got.DuplicateGroups != 2 || got.MoveDir != "/dupes" {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if got.FinishedAt.IsZero() {
		t.Fatal("expected finished timestamp")
	}
}

func TestListDispositionsRespectsLimit(t *testing.T) {
	ctx := context.Background()
	store := testsupport.MustOpenJournal(t, filepath.Join(t.TempDir(), "journal.db"))
	run, err := store.BeginRun(ctx, journal.RunInfo{ID: "r", SourceDir: "/m"})
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := run.RecordDisposition(ctx, resolver.Disposition{Hash: "h", Keep: "k", Source: "s", Action: resolver.ActionRemoved}); err != nil {
			t.Fatalf("RecordDisposition: %v", err)
		}
	}
	entries, err := store.ListDispositions(ctx, "", 3)
	if err != nil {
		t.Fatalf("ListDispositions: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Destination != "" {
		t.Fatalf("expected empty destination for removals, got %q", entries[0].Destination)
	}
}

func TestBeginRunRequiresID(t *testing.T) {
	store := testsupport.MustOpenJournal(t, filepath.Join(t.TempDir(), "journal.db"))
	if _, err := store.BeginRun(context.Background(), journal.RunInfo{SourceDir: "/m"}); err == nil {
		t.Fatal("expected error for empty run id")
	}
}

func TestBeginRunRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := testsupport.MustOpenJournal(t, filepath.Join(t.TempDir(), "journal.db"))
	if _, err := store.BeginRun(ctx, journal.RunInfo{ID: "a", SourceDir: "/m"}); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if _, err := store.BeginRun(ctx, journal.RunInfo{ID: "a", SourceDir: "/m"}); err == nil {
		t.Fatal("expected duplicate run id to be rejected")
	}
}
