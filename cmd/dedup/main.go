package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dedup/internal/deps"
	"dedup/internal/exiftime"
	"dedup/internal/resolver"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmd := newRootCommand()
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps command errors to process exit codes. The timestamps command
// keeps its own codes: 1 for a missing exiftool and 2 when exiftool fails.
func exitCode(err error) int {
	switch {
	case err == nil:
		return resolver.ExitSuccess
	case errors.Is(err, deps.ErrMissingBinary), errors.Is(err, exiftime.ErrToolMissing):
		return resolver.ExitFailure
	case errors.Is(err, exiftime.ErrToolFailed):
		return exitToolFailed
	default:
		return resolver.ExitCode(err)
	}
}

const exitToolFailed = 2
