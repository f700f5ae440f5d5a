package exiftime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"dedup/internal/logging"
)

const (
	// NameLayout is the receive-time layout embedded in WhatsApp file names.
	NameLayout = "2006-01-02 at 3.04.05 PM"
	// ExifLayout is the EXIF DateTimeOriginal layout.
	ExifLayout = "2006:01:02 15:04:05"
	// DefaultTag is written to Make and Model when none is configured.
	DefaultTag = "WhatsApp"
)

// exiftool cannot update video files, so only images are matched.
var namePattern = regexp.MustCompile(`^WhatsApp Image (?P<timestamp>[^(]+)( \(\d+\))?\.jpeg$`)

// ErrInvalidTimestamp reports a WhatsApp file name whose time does not parse.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// ParseName extracts the receive time from a WhatsApp image file name. ok is
// false when the name is not a WhatsApp image name at all.
func ParseName(name string) (ts time.Time, ok bool, err error) {
	match := namePattern.FindStringSubmatch(name)
	if match == nil {
		return time.Time{}, false, nil
	}
	raw := match[namePattern.SubexpIndex("timestamp")]
	ts, err = time.Parse(NameLayout, raw)
	if err != nil {
		return time.Time{}, true, fmt.Errorf("%w %q: %w", ErrInvalidTimestamp, raw, err)
	}
	return ts, true, nil
}

// Options configures a Patcher.
type Options struct {
	Binary string
	Make   string
	Model  string
	DryRun bool
}

// Option customizes a Patcher.
type Option func(*Patcher)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(p *Patcher) {
		if exec != nil {
			p.exec = exec
		}
	}
}

// WithTagReader injects a custom EXIF reader (primarily for tests).
func WithTagReader(reader TagReader) Option {
	return func(p *Patcher) {
		if reader != nil {
			p.tags = reader
		}
	}
}

// Patcher writes capture timestamps derived from file names.
type Patcher struct {
	opts   Options
	exec   Executor
	tags   TagReader
	logger *slog.Logger
}

// Report counts what a directory scan did.
type Report struct {
	Scanned int
	Updated int
	Skipped int
	Invalid int
}

// New constructs a Patcher.
func New(opts Options, logger *slog.Logger, options ...Option) (*Patcher, error) {
	opts.Binary = strings.TrimSpace(opts.Binary)
	if opts.Binary == "" {
		return nil, errors.New("exiftool binary required")
	}
	if strings.TrimSpace(opts.Make) == "" {
		opts.Make = DefaultTag
	}
	if strings.TrimSpace(opts.Model) == "" {
		opts.Model = DefaultTag
	}
	p := &Patcher{
		opts:   opts,
		exec:   commandExecutor{},
		tags:   exifReader{},
		logger: logging.NewComponentLogger(logger, "exiftime"),
	}
	for _, opt := range options {
		opt(p)
	}
	return p, nil
}

// ProcessDir patches every WhatsApp image directly inside dir, in name
// order. Per-file problems are logged and skipped; a failed exiftool write
// stops the scan.
func (p *Patcher) ProcessDir(ctx context.Context, dir string) (Report, error) {
	var report Report

	p.logger.Debug("scanning directory", logging.String("dir", dir))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return report, fmt.Errorf("read directory: %w", err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Scanned++
		name := entry.Name()

		ts, ok, err := ParseName(name)
		if !ok {
			p.logger.Warn("skipping file: unrecognised file name", logging.String("file", name))
			report.Skipped++
			continue
		}

		full := filepath.Join(dir, name)
		// Stat follows symlinks so links to regular files are patched.
		info, statErr := os.Stat(full)
		if statErr != nil || !info.Mode().IsRegular() {
			p.logger.Warn("skipping file: not a regular file", logging.String("file", name))
			report.Skipped++
			continue
		}

		if err != nil {
			p.logger.Error("invalid timestamp", logging.String("file", name), logging.Error(err))
			report.Invalid++
			continue
		}

		updated, err := p.update(ctx, full, name, ts)
		if err != nil {
			p.logger.Error("failed to run exiftool", logging.String("file", name), logging.Error(err))
			return report, err
		}
		if updated {
			report.Updated++
		} else {
			report.Skipped++
		}
	}
	return report, nil
}

func (p *Patcher) update(ctx context.Context, path, name string, ts time.Time) (bool, error) {
	tags, err := p.tags.ReadTags(path)
	if err != nil {
		p.logger.Error("skipping file: unreadable EXIF", logging.String("file", name), logging.Error(err))
		return false, nil
	}

	if tags.DateTimeOriginal != "" {
		p.logger.Warn("skipping file: timestamp already set",
			logging.String("file", name),
			logging.String("timestamp", tags.DateTimeOriginal),
		)
		return false, nil
	}
	if (tags.Make != "" && tags.Make != p.opts.Make) || (tags.Model != "" && tags.Model != p.opts.Model) {
		p.logger.Error("skipping file: make/model already set",
			logging.String("file", name),
			logging.String("make", tags.Make),
			logging.String("model", tags.Model),
		)
		return false, nil
	}

	stamp := ts.Format(ExifLayout)
	if p.opts.DryRun {
		p.logger.Info("would update timestamp (dry run)",
			logging.String("file", name),
			logging.String("timestamp", stamp),
		)
		return true, nil
	}

	p.logger.Info("updating timestamp",
		logging.String("file", name),
		logging.String("timestamp", stamp),
	)
	if _, err := p.exec.Output(ctx, p.opts.Binary, writeTagsArgs(path, stamp, p.opts.Make, p.opts.Model)); err != nil {
		return false, err
	}
	return true, nil
}
