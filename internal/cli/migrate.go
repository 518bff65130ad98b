package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/subscription-tracker/internal/migrations"
)

func newMigrateCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, err := r.openCore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = core.Close() }()

			version, dirty, err := migrations.Version(core.DB.DB, core.DB.Driver())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Schema version %d (driver %s, dirty=%t)\n", version, core.DB.Driver(), dirty)
			return nil
		},
	}
}
