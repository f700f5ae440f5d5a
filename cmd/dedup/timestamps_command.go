package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dedup/internal/deps"
	"dedup/internal/exiftime"
	"dedup/internal/logging"
)

func newTimestampsCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "timestamps [directory]",
		Short: "Restore EXIF capture times on WhatsApp images",
		Long: `Restore EXIF capture times on WhatsApp images.

Files named "WhatsApp Image <date> at <time>.jpeg" in the directory (default:
working directory) get EXIF:DateTimeOriginal set from their name, and their
Make/Model tagged as WhatsApp. Images that already carry a capture time or a
different camera tag are skipped. Requires exiftool.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			} else {
				dir, err = os.Getwd()
				if err != nil {
					return fmt.Errorf("resolve working directory: %w", err)
				}
			}

			logger, err := ctx.logger(cmd, cfg)
			if err != nil {
				return err
			}

			binary := cfg.ExiftoolBinary()
			if err := deps.Require(deps.Exiftool(binary)); err != nil {
				logger.Error("exiftool not found", logging.String("command", binary))
				return err
			}

			patcher, err := exiftime.New(exiftime.Options{
				Binary: binary,
				Make:   cfg.Timestamps.Make,
				Model:  cfg.Timestamps.Model,
				DryRun: dryRun,
			}, logger)
			if err != nil {
				return err
			}

			report, err := patcher.ProcessDir(cmd.Context(), dir)
			logger.Info("timestamp scan finished",
				logging.Int("scanned", report.Scanned),
				logging.Int("updated", report.Updated),
				logging.Int("skipped", report.Skipped),
				logging.Int("invalid", report.Invalid),
			)
			return err
		},
	}

	addDryRunFlag(cmd.Flags(), &dryRun, "Log timestamp updates without writing them")
	return cmd
}
