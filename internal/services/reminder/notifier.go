package reminder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Notifier выполняет внешнее оповещение о подписках, срок оплаты которых близок.
type Notifier interface {
	Notify(ctx context.Context, due []models.Subscription) error
}

// NotifierFunc позволяет использовать функцию как Notifier.
type NotifierFunc func(ctx context.Context, due []models.Subscription) error

// Notify вызывает f.
func (f NotifierFunc) Notify(ctx context.Context, due []models.Subscription) error {
	return f(ctx, due)
}

// LogNotifier пишет предупреждение в лог.
type LogNotifier struct {
	Log *slog.Logger
}

// Notify записывает в лог число и имена подписок. Пустой список не логируется.
func (n LogNotifier) Notify(_ context.Context, due []models.Subscription) error {
	if len(due) == 0 {
		return nil
	}
	names := make([]string, 0, len(due))
	for _, sub := range due {
		names = append(names, sub.Name)
	}
	n.Log.Warn("subscriptions due soon",
		slog.Int("count", len(due)),
		slog.Any("names", names),
		slog.String("nearest", due[0].NextDue.Format(models.DateLayout)),
	)
	return nil
}

// BellNotifier подаёт звуковой сигнал терминала.
type BellNotifier struct {
	W io.Writer
}

// Notify пишет символ BEL в W.
func (n BellNotifier) Notify(_ context.Context, _ []models.Subscription) error {
	if _, err := io.WriteString(n.W, "\a"); err != nil {
		return fmt.Errorf("reminder.BellNotifier: %w", err)
	}
	return nil
}

// Multi вызывает все оповещатели по очереди и объединяет их ошибки.
type Multi []Notifier

// Notify вызывает каждый оповещатель, даже если предыдущий вернул ошибку.
func (m Multi) Notify(ctx context.Context, due []models.Subscription) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, due); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
