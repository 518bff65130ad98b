package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// AddPayment сохраняет платёж и возвращает его ID. Если подписки не
// существует, внешний ключ отклоняет вставку и возвращается ErrSubscriptionMissing.
func (s *Storage) AddPayment(ctx context.Context, p models.Payment) (int, error) {
	const op = "storage.AddPayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := s.rebind(`INSERT INTO payment (subscription_id, date_paid, amount, comment)
			  VALUES (?, ?, ?, ?)
			  RETURNING id`)
	var newID int
	err := s.q.QueryRowContext(ctx, query,
		p.SubscriptionID, p.DatePaid.Format(models.DateLayout), p.Amount, p.Comment).Scan(&newID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, ErrSubscriptionMissing)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListPayments возвращает историю платежей подписки по возрастанию даты.
func (s *Storage) ListPayments(ctx context.Context, subscriptionID int) ([]models.Payment, error) {
	const op = "storage.ListPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := s.rebind(`SELECT id, subscription_id, date_paid, amount, comment
			  FROM payment
			  WHERE subscription_id = ?
			  ORDER BY date_paid, id`)
	rows, err := s.q.QueryContext(ctx, query, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.Payment, 0)
	for rows.Next() {
		var (
			p        models.Payment
			datePaid string
			comment  sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.SubscriptionID, &datePaid, &p.Amount, &comment); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if p.DatePaid, err = time.Parse(models.DateLayout, datePaid); err != nil {
			return nil, fmt.Errorf("%s: payment %d: %w", op, p.ID, err)
		}
		p.Comment = comment.String
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountPayments возвращает число платежей подписки.
func (s *Storage) CountPayments(ctx context.Context, subscriptionID int) (int, error) {
	const op = "storage.CountPayments"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var n int
	query := s.rebind(`SELECT COUNT(*) FROM payment WHERE subscription_id = ?`)
	if err := s.q.QueryRowContext(ctx, query, subscriptionID).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// SumPayments возвращает сумму платежей с датой не раньше since. Нулевой
// since означает «за всё время». При отсутствии платежей возвращается 0.
func (s *Storage) SumPayments(ctx context.Context, since time.Time) (float64, error) {
	const op = "storage.SumPayments"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var (
		total float64
		err   error
	)
	if since.IsZero() {
		err = s.q.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payment`).Scan(&total)
	} else {
		query := s.rebind(`SELECT COALESCE(SUM(amount), 0) FROM payment WHERE date_paid >= ?`)
		err = s.q.QueryRowContext(ctx, query, since.Format(models.DateLayout)).Scan(&total)
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
