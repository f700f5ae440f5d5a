package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dedup/internal/fileutil"
	"dedup/internal/logging"
	"dedup/internal/manifest"
)

// Options controls where drop candidates are resolved and what happens to them.
type Options struct {
	// SourceDir is the root relative manifest paths are resolved against.
	SourceDir string
	// MoveDir relocates drop candidates instead of removing them when set.
	MoveDir string
	DryRun  bool
}

// Action names what happened to a drop candidate.
type Action string

const (
	ActionRemoved   Action = "removed"
	ActionMoved     Action = "moved"
	ActionPreviewed Action = "previewed"
)

// Disposition records the outcome for one drop candidate.
type Disposition struct {
	Hash        string
	Keep        string
	Source      string
	Action      Action
	Destination string
	Size        int64
}

// Recorder receives every disposition performed outside dry-run mode.
type Recorder interface {
	RecordDisposition(ctx context.Context, d Disposition) error
}

// Outcome is the terminal state of a run.
type Outcome string

const (
	OutcomeDone    Outcome = "done"
	OutcomeAborted Outcome = "aborted"
)

// Summary aggregates the counts of a run.
type Summary struct {
	Records         int
	Groups          int
	DuplicateGroups int
	Kept            int
	Warnings        int
	Removed         int
	Moved           int
	Previewed       int
	Bytes           int64
	Outcome         Outcome
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRecorder sends dispositions to rec.
func WithRecorder(rec Recorder) Option {
	return func(r *Resolver) {
		r.recorder = rec
	}
}

// Resolver runs the keep/drop policy over a manifest.
type Resolver struct {
	opts     Options
	logger   *slog.Logger
	recorder Recorder
}

// New constructs a Resolver. A nil logger discards output.
func New(opts Options, logger *slog.Logger, options ...Option) (*Resolver, error) {
	if strings.TrimSpace(opts.SourceDir) == "" {
		return nil, fmt.Errorf("%w: source directory required", ErrInvalidConfig)
	}
	r := &Resolver{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "resolver"),
	}
	for _, opt := range options {
		opt(r)
	}
	return r, nil
}

// CheckMoveDir verifies the relocation directory exists. It is a no-op when
// no move directory is configured.
func (r *Resolver) CheckMoveDir() error {
	if r.opts.MoveDir == "" {
		return nil
	}
	if !fileutil.IsDir(r.opts.MoveDir) {
		err := &InvalidMoveDirError{Path: r.opts.MoveDir}
		r.logger.Error("invalid move directory", logging.String("path", r.opts.MoveDir))
		return err
	}
	return nil
}

// Run parses the manifest from in and resolves every duplicate group in
// manifest order. The returned summary reflects the work done up to the
// point of any failure.
func (r *Resolver) Run(ctx context.Context, in io.Reader) (Summary, error) {
	summary := Summary{Outcome: OutcomeAborted}

	if err := r.CheckMoveDir(); err != nil {
		return summary, err
	}

	records, err := manifest.Parse(in)
	if err != nil {
		var parseErr *manifest.ParseError
		if errors.As(err, &parseErr) {
			r.logger.Error("invalid input line",
				logging.Int("line", parseErr.Line),
				logging.String("text", parseErr.Text),
			)
			return summary, fmt.Errorf("%w: %w", ErrInputFormat, err)
		}
		return summary, fmt.Errorf("read manifest: %w", err)
	}
	summary.Records = len(records)

	groups := manifest.GroupByHash(records)
	summary.Groups = len(groups)
	r.logger.Debug("manifest grouped",
		logging.Int("records", len(records)),
		logging.Int("groups", len(groups)),
	)

	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		res, ok := Resolve(group)
		if !ok {
			continue
		}
		summary.DuplicateGroups++
		summary.Kept++
		if res.Warn {
			summary.Warnings++
		}
		r.announce(ctx, res)

		sizes, err := r.Validate(res)
		if err != nil {
			return summary, err
		}
		if err := r.dispose(ctx, res, sizes, &summary); err != nil {
			return summary, err
		}
	}

	if summary.DuplicateGroups == 0 {
		r.logger.Info("no duplicates found", logging.Int("records", summary.Records))
	}
	summary.Outcome = OutcomeDone
	return summary, nil
}

func (r *Resolver) announce(ctx context.Context, res Resolution) {
	level := slog.LevelInfo
	if res.Warn {
		level = slog.LevelWarn
	}
	keepMsg, dropMsg := "keeping file", "dropping files"
	if r.opts.DryRun {
		keepMsg, dropMsg = "would keep file (dry run)", "would drop files (dry run)"
	}

	keepAttrs := []logging.Attr{
		logging.String(logging.FieldHash, res.Hash),
		logging.String("path", res.Keep.Path),
	}
	dropAttrs := []logging.Attr{
		logging.String(logging.FieldHash, res.Hash),
		logging.Strings("paths", res.DropPaths()),
	}
	if res.Warn {
		reason := logging.String("reason", "keeping Sent copy over files outside Sent")
		keepAttrs = append(keepAttrs, reason)
		dropAttrs = append(dropAttrs, reason)
	}
	r.logger.Log(ctx, level, keepMsg, logging.Args(keepAttrs...)...)
	r.logger.Log(ctx, level, dropMsg, logging.Args(dropAttrs...)...)
}

// SourcePath resolves a manifest path against the source root. Absolute
// manifest paths are used as is.
func (r *Resolver) SourcePath(record manifest.Record) string {
	p := filepath.FromSlash(record.Path)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(r.opts.SourceDir, p)
}

// Validate checks that every drop candidate of res is an existing regular
// file that is not the keeper under another spelling, and returns their
// sizes in drop order. The keeper itself is not required to exist.
func (r *Resolver) Validate(res Resolution) ([]int64, error) {
	keepPath := r.SourcePath(res.Keep)
	keepInfo, _ := os.Stat(keepPath)

	sizes := make([]int64, len(res.Drop))
	for i, record := range res.Drop {
		full := r.SourcePath(record)
		info, err := fileutil.RegularFile(full)
		if err != nil {
			r.logger.Error("invalid file path",
				logging.String(logging.FieldHash, res.Hash),
				logging.String("path", full),
				logging.Int("line", record.Line),
			)
			return nil, &InvalidDropPathError{Path: full, Err: err}
		}
		if full == keepPath || (keepInfo != nil && os.SameFile(keepInfo, info)) {
			r.logger.Error("drop path resolves to the kept file",
				logging.String(logging.FieldHash, res.Hash),
				logging.String("path", full),
				logging.String("keep", keepPath),
				logging.Int("line", record.Line),
			)
			return nil, &InvalidDropPathError{Path: full, Err: ErrDropIsKeeper}
		}
		sizes[i] = info.Size()
	}
	return sizes, nil
}

func (r *Resolver) dispose(ctx context.Context, res Resolution, sizes []int64, summary *Summary) error {
	for i, record := range res.Drop {
		d := Disposition{
			Hash:   res.Hash,
			Keep:   res.Keep.Path,
			Source: r.SourcePath(record),
			Size:   sizes[i],
		}
		if r.opts.MoveDir != "" {
			d.Destination = filepath.Join(r.opts.MoveDir, record.Name())
		}

		if r.opts.DryRun {
			d.Action = ActionPreviewed
			if d.Destination == "" {
				r.logger.Info("would remove (dry run)", logging.String("path", d.Source))
			} else {
				r.logger.Info("would move (dry run)",
					logging.String("path", d.Source),
					logging.String("destination", d.Destination),
				)
			}
			summary.Previewed++
			continue
		}

		if d.Destination == "" {
			r.logger.Info("removing", logging.String("path", d.Source))
			if err := os.Remove(d.Source); err != nil {
				return fmt.Errorf("%w: remove %s: %w", ErrDisposal, d.Source, err)
			}
			d.Action = ActionRemoved
			summary.Removed++
		} else {
			r.logger.Info("moving",
				logging.String("path", d.Source),
				logging.String("destination", d.Destination),
			)
			if err := fileutil.Move(d.Source, d.Destination); err != nil {
				return fmt.Errorf("%w: move %s to %s: %w", ErrDisposal, d.Source, d.Destination, err)
			}
			d.Action = ActionMoved
			summary.Moved++
		}
		summary.Bytes += d.Size

		if r.recorder != nil {
			if err := r.recorder.RecordDisposition(ctx, d); err != nil {
				r.logger.Warn("failed to journal disposition",
					logging.String("path", d.Source),
					logging.Error(err),
				)
			}
		}
	}
	return nil
}
