package testsupport

import (
	"context"
	"log/slog"
	"sync"
)

// LoggedRecord is a captured log line.
type LoggedRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]slog.Value
}

// LogRecorder is a slog.Handler that keeps every record for assertions.
type LogRecorder struct {
	mu      *sync.Mutex
	records *[]LoggedRecord
	attrs   []slog.Attr
}

// NewLogRecorder returns a recorder and a debug-level logger writing to it.
func NewLogRecorder() (*LogRecorder, *slog.Logger) {
	rec := &LogRecorder{mu: &sync.Mutex{}, records: &[]LoggedRecord{}}
	return rec, slog.New(rec)
}

func (r *LogRecorder) Enabled(context.Context, slog.Level) bool { return true }

func (r *LogRecorder) Handle(_ context.Context, record slog.Record) error {
	entry := LoggedRecord{Level: record.Level, Message: record.Message, Attrs: map[string]slog.Value{}}
	for _, attr := range r.attrs {
		entry.Attrs[attr.Key] = attr.Value.Resolve()
	}
	record.Attrs(func(attr slog.Attr) bool {
		entry.Attrs[attr.Key] = attr.Value.Resolve()
		return true
	})
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.records = append(*r.records, entry)
	return nil
}

func (r *LogRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *r
	clone.attrs = append(append([]slog.Attr{}, r.attrs...), attrs...)
	return &clone
}

func (r *LogRecorder) WithGroup(string) slog.Handler { return r }

// Records returns a copy of the captured records.
func (r *LogRecorder) Records() []LoggedRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]LoggedRecord, len(*r.records))
	copy(out, *r.records)
	return out
}

// WithMessage returns the captured records whose message equals msg.
func (r *LogRecorder) WithMessage(msg string) []LoggedRecord {
	var out []LoggedRecord
	for _, rec := range r.Records() {
		if rec.Message == msg {
			out = append(out, rec)
		}
	}
	return out
}

// CountAtLeast returns how many records were logged at level or above.
func (r *LogRecorder) CountAtLeast(level slog.Level) int {
	n := 0
	for _, rec := range r.Records() {
		if rec.Level >= level {
			n++
		}
	}
	return n
}
