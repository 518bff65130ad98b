package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

func newPayCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "pay ID",
		Short: "Record a payment and advance the next due date",
		Long: `Record a payment dated today for the current cost of the subscription
and move its next due date forward by one billing period.

Examples:
  subscription-tracker pay 3`,
		Args: cobra.ExactArgs(1),
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

			res, err := core.Billing.MarkPaid(cmd.Context(), id)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Paid %.2f for #%d on %s, next due %s (was %s)\n",
				res.Amount, id,
				res.DatePaid.Format(models.DateLayout),
				res.NextDue.Format(models.DateLayout),
				res.PreviousDue.Format(models.DateLayout),
			)
			return nil
		},
	}
}

func newPaymentsCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "payments ID",
		Short: "Show payment history of a subscription",
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

			payments, err := core.Subscriptions.Payments(cmd.Context(), id)
			if err != nil {
				return err
			}
			if len(payments) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No payments for #%d yet.\n", id)
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "ID\tDATE\tAMOUNT\tCOMMENT")
			var total float64
			for _, p := range payments {
				total += p.Amount
				_, _ = fmt.Fprintf(tw, "%d\t%s\t%.2f\t%s\n", p.ID, p.DatePaid.Format(models.DateLayout), p.Amount, p.Comment)
			}
			_, _ = fmt.Fprintf(tw, "\tTOTAL\t%.2f\t\n", total)
			return tw.Flush()
		},
	}
}
