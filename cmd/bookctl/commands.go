package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kirinyoku/wedgo/internal/domain"
	"github.com/kirinyoku/wedgo/internal/draft"
	"github.com/kirinyoku/wedgo/internal/pricing"
)

func newCatalogCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show a vendor, its venue and the services it offers",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", c.Vendor.Name, c.Vendor.Category)
			if c.Venue != nil {
				fmt.Fprintf(out, "venue: %s, %s\n", c.Venue.Name, c.Venue.Address)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSERVICE\tPRICE\tOPTIONS")
			for _, s := range c.Services {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.ID, s.Name, pricing.Format(s.PriceCents, pricing.Currency), describeCustomizations(s.Customizations))
			}
			return tw.Flush()
		},
	}
	addVendorFlags(cmd, o)
	return cmd
}

func newSlotsCmd(o *options) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List open time slots for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := domain.ParseDate(date)
			if err != nil {
				return fmt.Errorf("invalid --date %q (YYYY-MM-DD)", date)
			}
			c, err := o.load(cmd.Context())
			if err != nil {
				return err
			}

			slots := draft.New(c, 0).SelectDate(day)
			out := cmd.OutOrStdout()
			if len(slots) == 0 {
				fmt.Fprintf(out, "no open slots on %s\n", date)
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SLOT\tSTART\tEND")
			for _, s := range slots {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", s.ID, s.StartTime, s.EndTime)
			}
			return tw.Flush()
		},
	}
	addVendorFlags(cmd, o)
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

type selectionFlags struct {
	services []string
	custom   []string
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.services, "service", "s", nil, "service to add as ID or ID:QTY (repeatable)")
	cmd.Flags().StringArrayVarP(&f.custom, "custom", "c", nil, "customization answer as ID:KEY=VALUE (repeatable)")
	_ = cmd.MarkFlagRequired("service")
}

// apply adds each service to d, then its quantity and customization answers.
func (f *selectionFlags) apply(d *draft.Draft) error {
	for _, arg := range f.services {
		id, qty, err := parseServiceFlag(arg)
		if err != nil {
			return err
		}
		if err := d.Add(id); err != nil {
			return fmt.Errorf("service %d: %w", id, err)
		}
		if err := d.SetQuantity(indexOf(d, id), qty); err != nil {
			return err
		}
	}

	for _, arg := range f.custom {
		id, key, value, err := parseCustomFlag(arg)
		if err != nil {
			return err
		}
		i := indexOf(d, id)
		if i < 0 {
			return fmt.Errorf("--custom %q: service %d is not selected", arg, id)
		}
		if err := d.SetCustomization(i, key, value); err != nil {
			return err
		}
	}
	return nil
}

func newQuoteCmd(o *options) *cobra.Command {
	var sel selectionFlags

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a selection of services without booking",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.load(cmd.Context())
			if err != nil {
				return err
			}
			d := draft.New(c, 0)
			if err := sel.apply(d); err != nil {
				return err
			}
			printQuote(cmd.OutOrStdout(), d)
			return nil
		},
	}
	addVendorFlags(cmd, o)
	sel.register(cmd)
	return cmd
}

func newBookCmd(o *options) *cobra.Command {
	var (
		sel         selectionFlags
		requesterID int64
		date        string
		slotID      int64
		notes       string
	)

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book services for a time slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.load(cmd.Context())
			if err != nil {
				return err
			}

			d := draft.New(c, requesterID)
			if err := sel.apply(d); err != nil {
				return err
			}
			if date != "" {
				day, err := domain.ParseDate(date)
				if err != nil {
					return fmt.Errorf("invalid --date %q (YYYY-MM-DD)", date)
				}
				d.SelectDate(day)
			}
			if slotID > 0 {
				if err := d.SelectSlot(slotID); err != nil {
					return err
				}
			}
			d.SetNotes(notes)

			out := cmd.OutOrStdout()
			printQuote(out, d)

			sub := draft.NewSubmitter(o.client(), o.logger)
			err = sub.Submit(cmd.Context(), d, func(b *domain.Booking) {
				fmt.Fprintf(out, "booked %s (%s) for %s %s-%s\n",
					b.ID, b.Status, b.Schedule.Date.Format(domain.DateLayout), b.Schedule.StartTime, b.Schedule.EndTime)
			})
			if err != nil {
				return errors.New(draft.UserMessage(err))
			}
			return nil
		},
	}
	addVendorFlags(cmd, o)
	sel.register(cmd)
	cmd.Flags().Int64Var(&requesterID, "requester", 0, "requester (user) id")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().Int64Var(&slotID, "slot", 0, "time slot id")
	cmd.Flags().StringVar(&notes, "notes", "", "notes for the vendor")
	return cmd
}

func newCancelCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel BOOKING_ID",
		Short: "Cancel a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid booking id %q", args[0])
			}
			b, err := o.client().CancelBooking(cmd.Context(), id)
			if err != nil {
				return errors.New(draft.UserMessage(err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "booking %s is %s\n", b.ID, b.Status)
			return nil
		},
	}
}

func printQuote(w io.Writer, d *draft.Draft) {
	p := d.Pricing()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, s := range d.Selections() {
		svc, _ := d.Service(s.ServiceID)
		fmt.Fprintf(tw, "%s\tx%d\t%s\n", svc.Name, s.Quantity, pricing.Format(svc.PriceCents*int64(s.Quantity), p.Currency))
	}
	fmt.Fprintf(tw, "base\t\t%s\n", pricing.Format(p.BaseCents, p.Currency))
	fmt.Fprintf(tw, "tax\t\t%s\n", pricing.Format(p.TaxCents, p.Currency))
	fmt.Fprintf(tw, "total\t\t%s\n", pricing.Format(p.FinalCents, p.Currency))
	_ = tw.Flush()
}

func indexOf(d *draft.Draft, serviceID int64) int {
	for i, s := range d.Selections() {
		if s.ServiceID == serviceID {
			return i
		}
	}
	return -1
}

func parseServiceFlag(arg string) (id int64, qty int, err error) {
	idPart, qtyPart, hasQty := strings.Cut(arg, ":")
	id, err = strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		return 0, 0, fmt.Errorf("--service %q: want ID or ID:QTY", arg)
	}
	qty = 1
	if hasQty {
		qty, err = strconv.Atoi(qtyPart)
		if err != nil {
			return 0, 0, fmt.Errorf("--service %q: invalid quantity", arg)
		}
	}
	return id, qty, nil
}

func parseCustomFlag(arg string) (id int64, key, value string, err error) {
	idPart, rest, ok := strings.Cut(arg, ":")
	if !ok {
		return 0, "", "", fmt.Errorf("--custom %q: want ID:KEY=VALUE", arg)
	}
	key, value, ok = strings.Cut(rest, "=")
	if !ok || key == "" {
		return 0, "", "", fmt.Errorf("--custom %q: want ID:KEY=VALUE", arg)
	}
	id, err = strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return 0, "", "", fmt.Errorf("--custom %q: invalid service id", arg)
	}
	return id, key, value, nil
}

func describeCustomizations(cs []domain.Customization) string {
	if len(cs) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		p := c.Name + ":" + string(c.Type)
		if len(c.Options) > 0 {
			p += "(" + strings.Join(c.Options, "|") + ")"
		}
		if c.Required {
			p += "*"
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}
