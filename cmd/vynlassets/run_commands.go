package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"vynlassets/internal/assets"
	"vynlassets/internal/config"
	"vynlassets/internal/journal"
	"vynlassets/internal/logging"
)

type publishJob func(ctx context.Context, opts assets.Options) (*assets.Report, error)

func newFriendsCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "friends",
		Short: "Copy the Top 8 friends images into the website",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runJobs(cmd, assets.Options{DryRun: dryRun}, assets.OperationFriends)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report planned copies without writing anything")
	return cmd
}

func newSocialCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "social",
		Short: "Copy album audio, album covers, and the profile image into the website",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runJobs(cmd, assets.Options{DryRun: dryRun}, assets.OperationSocial)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report planned copies without writing anything")
	return cmd
}

func newAllCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Run friends then social under a single lock",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runJobs(cmd, assets.Options{DryRun: dryRun}, assets.OperationFriends, assets.OperationSocial)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report planned copies without writing anything")
	return cmd
}

func (c *commandContext) runJobs(cmd *cobra.Command, opts assets.Options, operations ...string) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}

	jobs := make([]publishJob, 0, len(operations))
	for _, op := range operations {
		job, err := buildJob(cfg, logger, op)
		if err != nil {
			return err
		}
		jobs = append(jobs, job)
	}

	return c.withLock(func() error {
		return c.withJournal(func(store *journal.Store) error {
			for _, job := range jobs {
				report, runErr := job(cmd.Context(), opts)
				if report != nil {
					fmt.Fprintln(cmd.OutOrStdout(), renderReport(report))
					recordRun(cmd.Context(), logger, store, report, runErr)
				}
				if runErr != nil {
					return runErr
				}
			}
			return nil
		})
	})
}

func buildJob(cfg *config.Config, logger *slog.Logger, operation string) (publishJob, error) {
	switch operation {
	case assets.OperationFriends:
		return assets.NewFriends(cfg, logger).Run, nil
	case assets.OperationSocial:
		social, err := assets.NewSocial(cfg, logger)
		if err != nil {
			return nil, err
		}
		return social.Run, nil
	default:
		return nil, fmt.Errorf("unknown operation %q", operation)
	}
}

// recordRun writes report to the journal. A journal failure is logged and
// never fails the run it describes.
func recordRun(ctx context.Context, logger *slog.Logger, store *journal.Store, report *assets.Report, runErr error) {
	if store == nil {
		return
	}
	// The run may have stopped on cancellation; the record should still land.
	if err := store.Record(context.WithoutCancel(ctx), report, runErr); err != nil {
		logger.Warn("failed to record run in journal", logging.Args(
			logging.String(logging.FieldRunID, report.RunID),
			logging.Error(err),
		)...)
	}
}
