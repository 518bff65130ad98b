package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/subscription-tracker/internal/services/reminder"
)

func newDueCommand(r *root) *cobra.Command {
	var (
		days   int
		notify bool
	)

	cmd := &cobra.Command{
		Use:   "due",
		Short: "List active subscriptions due soon",
		Long: `List active subscriptions whose next due date is within the given
number of days, overdue ones included.

With --notify the configured reminder runs once: it logs a warning and rings
the terminal bell when bell is enabled in config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, err := r.openCore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = core.Close() }()

			if !cmd.Flags().Changed("days") {
				days = r.cfg.Reminder.DaysAhead
			}
			subs, err := core.Subscriptions.DueSoon(cmd.Context(), days)
			if err != nil {
				return err
			}
			if len(subs) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Nothing due in the next %d days.\n", days)
			} else if err = printSubscriptions(cmd.OutOrStdout(), subs); err != nil {
				return err
			}

			if notify {
				if _, err = core.Reminder.Check(cmd.Context()); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", reminder.DefaultDaysAhead, "look-ahead window in days")
	cmd.Flags().BoolVar(&notify, "notify", false, "run the reminder once")
	return cmd
}

func newStatsCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show subscription counts and spending",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, err := r.openCore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = core.Close() }()

			st, err := core.Stats.Collect(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintf(tw, "Active subscriptions:\t%d\n", st.ActiveCount)
			_, _ = fmt.Fprintf(tw, "Archived subscriptions:\t%d\n", st.ArchivedCount)
			_, _ = fmt.Fprintf(tw, "Spent in total:\t%.2f\n", st.TotalSpent)
			_, _ = fmt.Fprintf(tw, "Spent in last 365 days:\t%.2f\n", st.YearSpent)
			_, _ = fmt.Fprintf(tw, "Spent this month:\t%.2f\n", st.MonthSpent)
			return tw.Flush()
		},
	}
}
