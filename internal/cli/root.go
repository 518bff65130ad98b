// Package cli содержит команды командной строки трекера подписок.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/subscription-tracker/internal/app/tracker"
	"github.com/magabrotheeeer/subscription-tracker/internal/config"
)

type commandContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
}

type commandContextKey struct{}

// root хранит общие флаги и зависимости команд.
type root struct {
	logger  *slog.Logger
	level   *slog.LevelVar
	verbose bool
	cfgPath string
	driver  string
	dsn     string
	now     func() time.Time
	cfg     *config.Config
}

// NewRootCommand собирает дерево команд. level управляет уровнем logger:
// --verbose и serve в окружении local включают debug.
func NewRootCommand(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	return newRootCommand(&root{logger: logger, level: level})
}

func newRootCommand(r *root) *cobra.Command {
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.level == nil {
		r.level = new(slog.LevelVar)
	}

	cmd := &cobra.Command{
		Use:   "subscription-tracker",
		Short: "Track recurring subscriptions, payments and reminders",
		Long: `subscription-tracker keeps a local list of recurring subscriptions,
records payments, advances due dates by billing period and reminds about
upcoming charges.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if r.verbose {
				r.level.Set(slog.LevelDebug)
			}
			info := commandContext{
				correlationID: uuid.New(),
				startedAt:     time.Now(),
			}
			cmd.SetContext(context.WithValue(cmd.Context(), commandContextKey{}, info))
			r.logger.Debug("command start",
				slog.String("command", cmd.CommandPath()),
				slog.String("correlation_id", info.correlationID.String()),
			)
			return r.loadConfig()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
			if !ok {
				return
			}
			r.logger.Debug("command end",
				slog.String("command", cmd.CommandPath()),
				slog.String("correlation_id", info.correlationID.String()),
				slog.Int64("duration_ms", time.Since(info.startedAt).Milliseconds()),
			)
		},
	}

	cmd.PersistentFlags().StringVarP(&r.cfgPath, "config", "c", os.Getenv("CONFIG_PATH"), "config file path")
	cmd.PersistentFlags().BoolVarP(&r.verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&r.driver, "driver", "", "storage driver override (sqlite or postgres)")
	cmd.PersistentFlags().StringVar(&r.dsn, "db", "", "storage DSN override (sqlite file path or postgres URL)")

	cmd.AddCommand(
		newServeCommand(r),
		newMigrateCommand(r),
		newAddCommand(r),
		newListCommand(r),
		newShowCommand(r),
		newArchiveCommand(r, false),
		newArchiveCommand(r, true),
		newRescheduleCommand(r),
		newDeleteCommand(r),
		newPayCommand(r),
		newPaymentsCommand(r),
		newDueCommand(r),
		newStatsCommand(r),
	)
	return cmd
}

func (r *root) loadConfig() error {
	cfg, err := config.Load(r.cfgPath)
	if err != nil {
		return err
	}
	if r.driver != "" {
		cfg.Storage.Driver = r.driver
	}
	if r.dsn != "" {
		cfg.Storage.DSN = r.dsn
	}
	r.cfg = cfg
	return nil
}

// openCore открывает хранилище для одной команды. Вызывающий закрывает Core.
func (r *root) openCore(cmd *cobra.Command) (*tracker.Core, error) {
	return tracker.NewCore(cmd.Context(), r.cfg, r.logger, tracker.CoreOptions{
		Now:  r.now,
		Bell: cmd.OutOrStdout(),
	})
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid subscription id %q", arg)
	}
	return id, nil
}
