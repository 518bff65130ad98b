package cli

import (
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/subscription-tracker/internal/app/tracker"
	"github.com/magabrotheeeer/subscription-tracker/internal/config"
)

func newServeCommand(r *root) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the periodic reminder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if r.cfg.Env == config.EnvLocal {
				r.level.Set(slog.LevelDebug)
			}
			if addr != "" {
				r.cfg.HTTPServer.Address = addr
			}
			r.logger.Info("starting subscription-tracker",
				slog.String("env", r.cfg.Env),
				slog.String("driver", r.cfg.Storage.Driver),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := tracker.New(ctx, r.cfg, r.logger)
			if err != nil {
				return err
			}
			if err = app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			r.logger.Info("subscription-tracker stopped gracefully")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address override")
	return cmd
}
