package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"dedup/internal/config"
	"dedup/internal/journal"
	"dedup/internal/logging"
	"dedup/internal/resolver"
	"dedup/internal/runlock"
)

type runFlags struct {
	source    string
	move      string
	dryRun    bool
	noJournal bool
	summary   bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run <manifest|->",
		Short: "Resolve duplicates listed in a hash manifest",
		Long: `Resolve duplicates listed in a hash manifest.

Each manifest line has the form "<hash> (<path>)". Files sharing a hash form a
group; one file per group is kept and the rest are removed, or moved into the
--move directory. Copies in a "Sent" directory are preferred, then the
alphabetically first file name. Pass "-" to read the manifest from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}
			if err := applyRunFlags(cmd, cfg, &flags); err != nil {
				return fmt.Errorf("%w: %w", resolver.ErrInvalidConfig, err)
			}

			in, closeInput, err := openManifest(cmd, args[0])
			if err != nil {
				return err
			}
			defer closeInput()

			logger, err := ctx.logger(cmd, cfg)
			if err != nil {
				return err
			}
			runID := uuid.NewString()
			logger = logger.With(logging.String(logging.FieldRunID, runID))

			opts := resolver.Options{
				SourceDir: cfg.Paths.SourceDir,
				MoveDir:   cfg.Paths.MoveDir,
				DryRun:    cfg.Run.DryRun,
			}

			var resolverOpts []resolver.Option
			var journalRun *journal.Run
			if !opts.DryRun {
				if err := cfg.EnsureStateDir(); err != nil {
					return err
				}
				lock, err := runlock.Acquire(cfg.LockPath())
				if err != nil {
					return err
				}
				defer func() {
					if err := lock.Release(); err != nil {
						logger.Warn("failed to release run lock", logging.Error(err))
					}
				}()

				if cfg.Journal.Enabled {
					store, err := journal.Open(cmd.Context(), cfg.Journal.Path)
					if err != nil {
						return err
					}
					defer store.Close()
					journalRun, err = store.BeginRun(cmd.Context(), journal.RunInfo{
						ID:        runID,
						SourceDir: opts.SourceDir,
						MoveDir:   opts.MoveDir,
					})
					if err != nil {
						return err
					}
					resolverOpts = append(resolverOpts, resolver.WithRecorder(journalRun))
				}
			}

			r, err := resolver.New(opts, logger, resolverOpts...)
			if err != nil {
				return err
			}

			logger.Debug("run starting",
				logging.String("source_dir", opts.SourceDir),
				logging.String("move_dir", opts.MoveDir),
				logging.Bool("dry_run", opts.DryRun),
			)
			summary, runErr := r.Run(cmd.Context(), in)

			if journalRun != nil {
				if err := journalRun.Finish(context.WithoutCancel(cmd.Context()), summary, runErr); err != nil {
					logger.Warn("failed to finish journal run", logging.Error(err))
				}
			}

			if flags.summary {
				fmt.Fprintln(cmd.OutOrStdout(), renderSummary(runID, summary))
			}
			return runErr
		},
	}

	cmd.Flags().StringVarP(&flags.source, "source", "s", "", "Root directory relative manifest paths are resolved against (default: working directory)")
	cmd.Flags().StringVarP(&flags.move, "move", "m", "", "Move dropped files into this directory instead of removing them")
	addDryRunFlag(cmd.Flags(), &flags.dryRun, "Log decisions without touching the filesystem")
	cmd.Flags().BoolVar(&flags.noJournal, "no-journal", false, "Do not record dispositions in the journal")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "Print a summary table after the run (default: on for terminals)")
	return cmd
}

// applyRunFlags layers explicitly set flags over the loaded configuration.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config, flags *runFlags) error {
	fs := cmd.Flags()
	if fs.Changed("source") {
		expanded, err := config.ExpandPath(strings.TrimSpace(flags.source))
		if err != nil {
			return fmt.Errorf("resolve source directory: %w", err)
		}
		cfg.Paths.SourceDir = expanded
	}
	if fs.Changed("move") {
		expanded, err := config.ExpandPath(strings.TrimSpace(flags.move))
		if err != nil {
			return fmt.Errorf("resolve move directory: %w", err)
		}
		cfg.Paths.MoveDir = expanded
	}
	if fs.Changed("dry-run") {
		cfg.Run.DryRun = flags.dryRun
	}
	if flags.noJournal {
		cfg.Journal.Enabled = false
	}
	if !fs.Changed("summary") {
		flags.summary = logging.IsTerminal(cmd.OutOrStdout())
	}
	return nil
}

func openManifest(cmd *cobra.Command, arg string) (io.Reader, func(), error) {
	if arg == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	file, err := os.Open(arg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: manifest %s not found", resolver.ErrInvalidConfig, arg)
		}
		return nil, nil, fmt.Errorf("open manifest: %w", err)
	}
	return file, func() { _ = file.Close() }, nil
}
