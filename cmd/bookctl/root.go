package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kirinyoku/wedgo/internal/client"
	"github.com/kirinyoku/wedgo/internal/draft"
	"github.com/kirinyoku/wedgo/internal/logging"
)

type options struct {
	apiURL  string
	timeout time.Duration
	verbose bool

	vendorID int64
	venueID  int64

	logger *slog.Logger
}

func (o *options) client() *client.Client {
	return client.New(o.apiURL, client.WithTimeout(o.timeout))
}

func (o *options) venue() *int64 {
	if o.venueID <= 0 {
		return nil
	}
	v := o.venueID
	return &v
}

func (o *options) load(ctx context.Context) (*draft.Catalog, error) {
	if o.vendorID <= 0 {
		return nil, errors.New("--vendor is required")
	}
	return draft.Load(ctx, o.client(), o.vendorID, o.venue())
}

func newRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:           "bookctl",
		Short:         "Browse wedding vendors and book time slots",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !o.verbose {
				o.logger = logging.Discard()
				return nil
			}
			logger, _, err := logging.New("development", "debug")
			if err != nil {
				return err
			}
			o.logger = logger
			return nil
		},
	}

	apiDefault := os.Getenv("WEDGO_API")
	if apiDefault == "" {
		apiDefault = "http://localhost:8080"
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.apiURL, "api", apiDefault, "booking API base URL (env WEDGO_API)")
	pf.DurationVar(&o.timeout, "timeout", 15*time.Second, "per-request timeout")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "log requests to stdout")

	root.AddCommand(
		newCatalogCmd(o),
		newSlotsCmd(o),
		newQuoteCmd(o),
		newBookCmd(o),
		newCancelCmd(o),
	)

	return root
}

func addVendorFlags(cmd *cobra.Command, o *options) {
	cmd.Flags().Int64Var(&o.vendorID, "vendor", 0, "vendor id")
	cmd.Flags().Int64Var(&o.venueID, "venue", 0, "venue id (optional)")
	_ = cmd.MarkFlagRequired("vendor")
}
