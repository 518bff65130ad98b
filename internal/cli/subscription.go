package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

func newAddCommand(r *root) *cobra.Command {
	var req models.DummySubscription

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a subscription",
		Long: `Add a new active subscription.

Examples:
  subscription-tracker add Music --cost 299 --period monthly --next-due 2024-01-31
  subscription-tracker add "Cloud storage" --cost 1990 --period yearly --next-due 2024-06-01 --notes "family plan"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Name = strings.Join(args, " ")

			core, err := r.openCore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = core.Close() }()

			id, err := core.Subscriptions.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added subscription #%d %q\n", id, req.Name)
			return nil
		},
	}

	cmd.Flags().Float64Var(&req.Cost, "cost", 0, "cost per period")
	cmd.Flags().StringVar(&req.Period, "period", string(models.PeriodMonthly), "billing period: daily, weekly, monthly, yearly")
	cmd.Flags().StringVar(&req.NextDue, "next-due", time.Now().Format(models.DateLayout), "next due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "free-form notes")
	return cmd
}

func newListCommand(r *root) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List subscriptions ordered by next due date",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, err := r.openCore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = core.Close() }()

			subs, err := core.Subscriptions.List(cmd.Context(), !all)
			if err != nil {
				return err
			}
			if len(subs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No subscriptions found. Add one with: subscription-tracker add NAME --cost 100")
				return nil
			}
			return printSubscriptions(cmd.OutOrStdout(), subs)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include archived subscriptions")
	return cmd
}

func newShowCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			core, err := r.openCore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = core.Close() }()

			sub, err := core.Subscriptions.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			count, err := core.DB.CountPayments(cmd.Context(), id)
			if err != nil {
				return err
			}

			state := "active"
			if !sub.IsActive {
				state = "archived"
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "#%d %s\n", sub.ID, sub.Name)
			_, _ = fmt.Fprintf(w, "  Cost:     %.2f (%s)\n", sub.Cost, sub.Period.Label())
			_, _ = fmt.Fprintf(w, "  Next due: %s\n", sub.NextDue.Format(models.DateLayout))
			_, _ = fmt.Fprintf(w, "  State:    %s\n", state)
			_, _ = fmt.Fprintf(w, "  Payments: %d\n", count)
			if sub.Notes != "" {
				_, _ = fmt.Fprintf(w, "  Notes:    %s\n", sub.Notes)
			}
			return nil
		},
	}
}

func newArchiveCommand(r *root, unarchive bool) *cobra.Command {
	use, short, verb := "archive ID", "Move a subscription to the archive", "Archived"
	if unarchive {
		use, short, verb = "unarchive ID", "Return a subscription from the archive", "Restored"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			core, err := r.openCore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = core.Close() }()

			if unarchive {
				err = core.Subscriptions.Unarchive(cmd.Context(), id)
			} else {
				err = core.Subscriptions.Archive(cmd.Context(), id)
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s subscription #%d\n", verb, id)
			return nil
		},
	}
}

func newRescheduleCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "reschedule ID YYYY-MM-DD",
		Short: "Set the next due date manually",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			due, err := time.Parse(models.DateLayout, args[1])
			if err != nil {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", args[1])
			}
			core, err := r.openCore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = core.Close() }()

			if err = core.Subscriptions.Reschedule(cmd.Context(), id, due); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Subscription #%d is now due %s\n", id, due.Format(models.DateLayout))
			return nil
		},
	}
}

func newDeleteCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Short:   "Delete a subscription and its payment history",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			core, err := r.openCore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = core.Close() }()

			if err = core.Subscriptions.Remove(cmd.Context(), id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted subscription #%d\n", id)
			return nil
		},
	}
}

func printSubscriptions(out io.Writer, subs []models.Subscription) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tCOST\tPERIOD\tNEXT DUE\tSTATE")
	for _, s := range subs {
		state := "active"
		if !s.IsActive {
			state = "archived"
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%.2f\t%s\t%s\t%s\n",
			s.ID, s.Name, s.Cost, s.Period.Label(), s.NextDue.Format(models.DateLayout), state)
	}
	return tw.Flush()
}
