// Package billing реализует операцию «отметить оплату»: запись платежа,
// вычисление следующей даты оплаты и её сохранение в одной транзакции.
package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/month"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/recurrence"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Repository описывает методы хранилища, нужные для оплаты.
type Repository interface {
	GetSubscription(ctx context.Context, id int) (*models.Subscription, error)
	AddPayment(ctx context.Context, p models.Payment) (int, error)
	SetNextDue(ctx context.Context, id int, due time.Time) error
}

// TxFunc выполняет fn в одной транзакции хранилища и передаёт в неё
// репозиторий, привязанный к этой транзакции.
type TxFunc func(ctx context.Context, fn func(repo Repository) error) error

// Recorder получает уведомление об успешно проведённой оплате.
type Recorder interface {
	PaymentRecorded(amount float64)
}

// Result описывает итог оплаты.
type Result struct {
	PaymentID   int       `json:"payment_id"`
	Amount      float64   `json:"amount"`
	DatePaid    time.Time `json:"date_paid"`
	PreviousDue time.Time `json:"previous_due"`
	NextDue     time.Time `json:"next_due"`
}

// MarshalJSON записывает даты без времени в формате 2006-01-02.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		PaymentID   int     `json:"payment_id"`
		Amount      float64 `json:"amount"`
		DatePaid    string  `json:"date_paid"`
		PreviousDue string  `json:"previous_due"`
		NextDue     string  `json:"next_due"`
	}{
		PaymentID:   r.PaymentID,
		Amount:      r.Amount,
		DatePaid:    models.FormatDate(r.DatePaid),
		PreviousDue: models.FormatDate(r.PreviousDue),
		NextDue:     models.FormatDate(r.NextDue),
	})
}

// Service проводит оплату подписки.
type Service struct {
	inTx     TxFunc
	recorder Recorder
	now      func() time.Time
	log      *slog.Logger
}

// New создаёт сервис оплаты. now задаёт источник текущей даты; nil означает time.Now.
func New(inTx TxFunc, recorder Recorder, now func() time.Time, log *slog.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		inTx:     inTx,
		recorder: recorder,
		now:      now,
		log:      log,
	}
}

// MarkPaid отмечает оплату подписки: создаёт платёж на сегодняшнюю дату на
// сумму текущей стоимости и переносит next_due на следующий период. Платёж и
// перенос даты фиксируются атомарно. Для несуществующей подписки возвращается
// ошибка хранилища (storage.ErrNotFound), ничего не записывается.
func (s *Service) MarkPaid(ctx context.Context, subscriptionID int) (*Result, error) {
	const op = "billing.MarkPaid"
	log := s.log.With(sl.Op(op), slog.Int("subscription_id", subscriptionID))

	today := month.Day(s.now())
	var res Result

	err := s.inTx(ctx, func(repo Repository) error {
		sub, err := repo.GetSubscription(ctx, subscriptionID)
		if err != nil {
			return err
		}
		if !sub.Period.Valid() {
			log.Warn("unknown period, due date left unchanged", slog.String("period", string(sub.Period)))
		}

		paymentID, err := repo.AddPayment(ctx, models.Payment{
			SubscriptionID: sub.ID,
			DatePaid:       today,
			Amount:         sub.Cost,
		})
		if err != nil {
			return err
		}

		next := recurrence.NextDue(sub.NextDue, sub.Period)
		if err = repo.SetNextDue(ctx, sub.ID, next); err != nil {
			return err
		}

		res = Result{
			PaymentID:   paymentID,
			Amount:      sub.Cost,
			DatePaid:    today,
			PreviousDue: sub.NextDue,
			NextDue:     next,
		}
		return nil
	})
	if err != nil {
		log.Error("failed to mark subscription as paid", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.recorder != nil {
		s.recorder.PaymentRecorded(res.Amount)
	}
	log.Info("subscription marked as paid",
		slog.Int("payment_id", res.PaymentID),
		slog.String("next_due", res.NextDue.Format(models.DateLayout)),
	)
	return &res, nil
}
