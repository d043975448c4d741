package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/adposting/internal/journal"
	domain "github.com/donaldgifford/adposting/pkg/types"
)

// runWithApp builds the app for one command and closes it afterwards.
func (o *rootOptions) runWithApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := o.newApp(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(ctx, a)
}

func (o *rootOptions) printResource(cmd *cobra.Command, res *domain.AdvertisementResource) error {
	if o.jsonOutput() {
		return outputJSON(cmd.OutOrStdout(), res)
	}
	return printAdvertisementDetail(cmd.OutOrStdout(), res)
}

func indexCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Show the API index links",
		Example: `  adpost index
  adpost index --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.runWithApp(cmd, func(ctx context.Context, a *app) error {
				idx, err := a.client.Index(ctx)
				if err != nil {
					return err
				}
				if o.jsonOutput() {
					return outputJSON(cmd.OutOrStdout(), idx)
				}
				return printIndexTable(cmd.OutOrStdout(), idx)
			})
		},
	}
}

func getCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id|uri>",
		Short: "Show an advertisement",
		Long: "Fetch an advertisement by id or URI. When the advertisement was posted from\n" +
			"this machine its journal entry is updated with the returned status.",
		Example: `  adpost get 75b2b1fc-9050-4f45-a632-ec6b7ac2bb4a
  adpost get https://adposting.example.com/advertisement/75b2b1fc-9050-4f45-a632-ec6b7ac2bb4a`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runWithApp(cmd, func(ctx context.Context, a *app) error {
				res, err := a.client.GetAdvertisement(ctx, advertisementTarget(a.client, args[0]))
				if err != nil {
					return err
				}
				a.updateJournal(ctx, res)
				return o.printResource(cmd, res)
			})
		},
	}
}

func createCmd(o *rootOptions) *cobra.Command {
	var (
		file       string
		creationID string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Post a new advertisement",
		Long: "Post the advertisement read from a JSON or YAML file and record it in the journal.\n" +
			"Posting the same creation id twice fails with the location of the first advertisement.",
		Example: `  adpost create -f ad.yaml
  adpost create -f ad.json --creation-id 2026-03-job-42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ad, err := readAdvertisement(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if creationID != "" {
				ad.CreationID = creationID
			}

			return o.runWithApp(cmd, func(ctx context.Context, a *app) error {
				res, err := a.client.CreateAdvertisement(ctx, ad)
				if err != nil {
					return err
				}
				if err := a.recordSubmission(ctx, res); err != nil {
					a.log.Warn("advertisement posted but not journaled", "id", res.ID, "error", err)
				}
				return o.printResource(cmd, res)
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "advertisement file (JSON or YAML, - for stdin)")
	cmd.Flags().StringVar(&creationID, "creation-id", "", "override the creation id in the file")
	cobra.CheckErr(cmd.MarkFlagRequired("file"))

	return cmd
}

func updateCmd(o *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:     "update <id|uri>",
		Short:   "Replace an advertisement",
		Example: `  adpost update 75b2b1fc-9050-4f45-a632-ec6b7ac2bb4a -f ad.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ad, err := readAdvertisement(file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			return o.runWithApp(cmd, func(ctx context.Context, a *app) error {
				res, err := a.client.UpdateAdvertisement(ctx, advertisementTarget(a.client, args[0]), ad)
				if err != nil {
					return err
				}
				a.updateJournal(ctx, res)
				return o.printResource(cmd, res)
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "advertisement file (JSON or YAML, - for stdin)")
	cobra.CheckErr(cmd.MarkFlagRequired("file"))

	return cmd
}

func expireCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "expire <id|uri>",
		Short:   "Expire an advertisement",
		Example: `  adpost expire 75b2b1fc-9050-4f45-a632-ec6b7ac2bb4a`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runWithApp(cmd, func(ctx context.Context, a *app) error {
				res, err := a.client.ExpireAdvertisement(ctx, advertisementTarget(a.client, args[0]))
				if err != nil {
					return err
				}
				a.updateJournal(ctx, res)
				return o.printResource(cmd, res)
			})
		},
	}
}

func (a *app) recordSubmission(ctx context.Context, res *domain.AdvertisementResource) error {
	store, err := a.journal(ctx)
	if err != nil {
		return err
	}

	location := res.Link(domain.RelSelf)
	if location == "" {
		location = a.client.AdvertisementURI(res.ID)
	}

	return store.Record(ctx, &domain.Submission{
		CreationID:       res.CreationID,
		AdvertisementID:  res.ID,
		Location:         a.absolute(location),
		JobTitle:         res.JobTitle,
		ProcessingStatus: res.ProcessingStatus,
		State:            res.State,
		LastRequestID:    a.reqIDs.Last(),
	})
}

// updateJournal records the status of an advertisement this machine posted.
// Advertisements posted elsewhere are ignored.
func (a *app) updateJournal(ctx context.Context, res *domain.AdvertisementResource) {
	if res.CreationID == "" {
		return
	}
	store, err := a.journal(ctx)
	if err != nil {
		a.log.Warn("opening journal", "error", err)
		return
	}

	err = store.UpdateStatus(ctx, &journal.StatusUpdate{
		CreationID:       res.CreationID,
		ProcessingStatus: res.ProcessingStatus,
		State:            res.State,
		RequestID:        a.reqIDs.Last(),
	})
	switch {
	case err == nil, errors.Is(err, journal.ErrNotFound):
	default:
		a.log.Warn("updating journal", "creation_id", res.CreationID, "error", err)
	}
}
