package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/adposting/internal/journal"
	"github.com/donaldgifford/adposting/internal/statussync"
	domain "github.com/donaldgifford/adposting/pkg/types"
)

func journalCmd(o *rootOptions) *cobra.Command {
	journalRoot := &cobra.Command{
		Use:   "journal",
		Short: "Inspect and follow up posted advertisements",
		Long: "The journal records every advertisement posted from this machine.\n" +
			"Use sync to refresh the processing status of pending advertisements.",
	}

	journalRoot.AddCommand(
		journalListCmd(o),
		journalSyncCmd(o),
	)

	return journalRoot
}

func journalListCmd(o *rootOptions) *cobra.Command {
	var (
		status string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journaled submissions",
		Example: `  adpost journal list
  adpost journal list --status Pending --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := journal.ListFilter{Limit: limit}
			if status != "" {
				s, err := parseStatus(status)
				if err != nil {
					return err
				}
				filter.Status = s
			}

			return o.runWithApp(cmd, func(ctx context.Context, a *app) error {
				store, err := a.journal(ctx)
				if err != nil {
					return err
				}
				subs, err := store.List(ctx, filter)
				if err != nil {
					return err
				}
				if o.jsonOutput() {
					return outputJSON(cmd.OutOrStdout(), subs)
				}
				if len(subs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No submissions found.")
					return nil
				}
				return printSubmissionsTable(cmd.OutOrStdout(), subs)
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by processing status (Pending, Accepted, Failed)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of submissions (0 for all)")

	return cmd
}

func journalSyncCmd(o *rootOptions) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Refresh the status of pending advertisements",
		Long: "Fetch every pending advertisement once and record its processing status.\n" +
			"With --watch the sync repeats on sync.interval until interrupted.",
		Example: `  adpost journal sync
  adpost journal sync --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.runWithApp(cmd, func(ctx context.Context, a *app) error {
				store, err := a.journal(ctx)
				if err != nil {
					return err
				}
				syncer := statussync.NewSyncer(store, a.client, a.notifier(),
					statussync.WithLogger(a.log),
					statussync.WithLimit(a.cfg.Sync.Limit),
					statussync.WithStagger(a.cfg.Sync.Stagger),
					statussync.WithRequestIDs(a.reqIDs),
				)

				if !watch {
					sum, err := syncer.Run(ctx)
					if err != nil {
						return err
					}
					if o.jsonOutput() {
						return outputJSON(cmd.OutOrStdout(), sum)
					}
					return printSyncSummary(cmd.OutOrStdout(), sum)
				}

				return watchSync(ctx, syncer, a)
			})
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "keep syncing on the configured interval")

	return cmd
}

func watchSync(ctx context.Context, syncer *statussync.Syncer, a *app) error {
	sched, err := statussync.NewScheduler(syncer, a.cfg.Sync.Interval, a.log)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := syncer.Run(ctx); err != nil {
		a.log.Error("initial status sync failed", "error", err)
	}

	sched.Start()
	<-ctx.Done()
	<-sched.Stop().Done()
	return nil
}

func parseStatus(s string) (domain.ProcessingStatus, error) {
	switch st := domain.ProcessingStatus(s); st {
	case domain.ProcessingPending, domain.ProcessingAccepted, domain.ProcessingFailed:
		return st, nil
	default:
		return "", fmt.Errorf("unknown processing status %q (want Pending, Accepted or Failed)", s)
	}
}
