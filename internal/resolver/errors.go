package resolver

import (
	"errors"
	"fmt"

	"dedup/internal/manifest"
)

var (
	ErrInputFormat     = errors.New("input format error")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrInvalidDropPath = errors.New("invalid drop path")
	ErrDisposal        = errors.New("disposal failed")

	// ErrDropIsKeeper is wrapped by InvalidDropPathError when a drop
	// candidate names the same file as its group's keeper.
	ErrDropIsKeeper = errors.New("same file as kept copy")
)

// Exit codes reported to the invoking shell, one per failure category.
const (
	ExitSuccess         = 0
	ExitFailure         = 1
	ExitInvalidConfig   = 2
	ExitInputFormat     = 3
	ExitInvalidDropPath = 4
)

// InvalidMoveDirError reports a relocation directory that does not exist.
type InvalidMoveDirError struct {
	Path string
}

func (e *InvalidMoveDirError) Error() string {
	return fmt.Sprintf("invalid move directory %q", e.Path)
}

func (e *InvalidMoveDirError) Is(target error) bool { return target == ErrInvalidConfig }

// InvalidDropPathError reports a drop candidate that is not an existing
// regular file, or that is the keeper of its group.
type InvalidDropPathError struct {
	Path string
	Err  error
}

func (e *InvalidDropPathError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid file path %q", e.Path)
	}
	return fmt.Sprintf("invalid file path %q: %v", e.Path, e.Err)
}

func (e *InvalidDropPathError) Is(target error) bool { return target == ErrInvalidDropPath }

func (e *InvalidDropPathError) Unwrap() error { return e.Err }

// ExitCode maps a run error to its exit category.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInvalidConfig):
		return ExitInvalidConfig
	case errors.Is(err, ErrInputFormat), errors.Is(err, manifest.ErrInvalidLine):
		return ExitInputFormat
	case errors.Is(err, ErrInvalidDropPath):
		return ExitInvalidDropPath
	default:
		return ExitFailure
	}
}
