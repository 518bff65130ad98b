// Package tracker собирает приложение: хранилище, сервисы, напоминания и
// HTTP-сервер.
package tracker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/subscription-tracker/internal/config"
	"github.com/magabrotheeeer/subscription-tracker/internal/metrics"
	"github.com/magabrotheeeer/subscription-tracker/internal/migrations"
	"github.com/magabrotheeeer/subscription-tracker/internal/services/billing"
	"github.com/magabrotheeeer/subscription-tracker/internal/services/reminder"
	"github.com/magabrotheeeer/subscription-tracker/internal/services/stats"
	"github.com/magabrotheeeer/subscription-tracker/internal/services/subscription"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

// Core объединяет открытое хранилище и построенные поверх него сервисы.
// Используется и HTTP-сервером, и командами CLI.
type Core struct {
	DB            *storage.Storage
	Subscriptions *subscription.Service
	Billing       *billing.Service
	Stats         *stats.Service
	Reminder      *reminder.Service
	Metrics       *metrics.Metrics
}

// CoreOptions задаёт внешние зависимости Core.
type CoreOptions struct {
	// Now задаёт источник текущей даты; nil означает time.Now.
	Now func() time.Time
	// Bell получает звуковой сигнал напоминания, обычно os.Stdout.
	Bell io.Writer
}

// NewCore открывает хранилище, применяет миграции и создаёт сервисы.
func NewCore(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts CoreOptions) (*Core, error) {
	const op = "tracker.NewCore"

	db, err := storage.New(ctx, cfg.Storage.Driver, cfg.Storage.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, db.Driver()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m := metrics.New()

	inTx := func(ctx context.Context, fn func(repo billing.Repository) error) error {
		return db.WithinTx(ctx, func(tx *storage.Storage) error {
			return fn(tx)
		})
	}

	notifiers := reminder.Multi{reminder.LogNotifier{Log: logger}}
	if cfg.Reminder.Bell && opts.Bell != nil {
		notifiers = append(notifiers, reminder.BellNotifier{W: opts.Bell})
	}

	return &Core{
		DB:            db,
		Subscriptions: subscription.New(db, opts.Now, logger),
		Billing:       billing.New(inTx, m, opts.Now, logger),
		Stats:         stats.New(db, opts.Now),
		Reminder: reminder.New(db, notifiers, reminder.Options{
			Interval:  cfg.Reminder.Interval,
			DaysAhead: cfg.Reminder.DaysAhead,
			Now:       opts.Now,
			Recorder:  m,
		}, logger),
		Metrics: m,
	}, nil
}

// Close останавливает напоминания и закрывает хранилище.
func (c *Core) Close() error {
	c.Reminder.Stop()
	return c.DB.Close()
}
