package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"dedup/internal/config"
	"dedup/internal/journal"
)

func newJournalCommand(ctx *commandContext) *cobra.Command {
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect the disposition journal",
	}
	journalCmd.AddCommand(newJournalListCommand(ctx))
	journalCmd.AddCommand(newJournalRunsCommand(ctx))
	return journalCmd
}

func newJournalListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show recent removals and moves",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, ctx, func(store *journal.Store) error {
				entries, err := store.ListDispositions(cmd.Context(), runID, limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No journal entries")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{
						humanize.Time(entry.RecordedAt),
						shortID(entry.RunID),
						entry.Action,
						entry.Source,
						entry.Destination,
						humanize.Bytes(uint64(max(entry.Size, 0))),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"When", "Run", "Action", "Source", "Destination", "Size"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
				))
				return nil
			})
		},
	}

	addLimitFlag(cmd.Flags(), &limit)
	cmd.Flags().StringVar(&runID, "run", "", "Only show dispositions of this run")
	return cmd
}

func newJournalRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, ctx, func(store *journal.Store) error {
				runs, err := store.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No journal entries")
					return nil
				}
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					outcome := run.Outcome
					if outcome == "" {
						outcome = "running"
					}
					rows = append(rows, []string{
						humanize.Time(run.StartedAt),
						run.ID,
						outcome,
						strconv.Itoa(run.DuplicateGroups),
						strconv.Itoa(run.Removed),
						strconv.Itoa(run.Moved),
						humanize.Bytes(uint64(max(run.Bytes, 0))),
						run.SourceDir,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Started", "Run", "Outcome", "Groups", "Removed", "Moved", "Reclaimed", "Source"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	addLimitFlag(cmd.Flags(), &limit)
	return cmd
}

// withJournal opens the configured journal for fn. A journal that was never
// written is reported as empty rather than created.
func withJournal(cmd *cobra.Command, ctx *commandContext, fn func(*journal.Store) error) error {
	cfg, err := ctx.ensureConfig(cmd)
	if err != nil {
		return err
	}
	if !journalExists(cfg) {
		fmt.Fprintln(cmd.OutOrStdout(), "No journal entries")
		return nil
	}
	store, err := journal.Open(cmd.Context(), cfg.Journal.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func journalExists(cfg *config.Config) bool {
	_, err := os.Stat(cfg.Journal.Path)
	return !errors.Is(err, os.ErrNotExist)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
