package exiftime

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
)

var (
	// ErrToolMissing reports that the exiftool binary could not be started.
	ErrToolMissing = errors.New("exiftool not found")
	// ErrToolFailed reports that exiftool ran and exited unsuccessfully.
	ErrToolFailed = errors.New("exiftool failed")
)

// Executor abstracts command execution for testability.
type Executor interface {
	Output(ctx context.Context, binary string, args []string) ([]byte, error)
}

type commandExecutor struct{}

func (commandExecutor) Output(ctx context.Context, binary string, args []string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, binary, args...).Output() //nolint:gosec
	if err == nil {
		return out, nil
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", ErrToolMissing, err)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		detail := strings.TrimSpace(string(exitErr.Stderr))
		if detail == "" {
			return nil, fmt.Errorf("%w: %w", ErrToolFailed, err)
		}
		return nil, fmt.Errorf("%w: %w: %s", ErrToolFailed, err, detail)
	}
	return nil, fmt.Errorf("run %s: %w", binary, err)
}

func writeTagsArgs(path, timestamp, makeTag, model string) []string {
	return []string{
		"-EXIF:DateTimeOriginal=" + timestamp,
		"-EXIF:Make=" + makeTag,
		"-EXIF:Model=" + model,
		path,
	}
}
