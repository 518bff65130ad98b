package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

const subscriptionColumns = `id, name, cost, period, next_due, is_active, notes`

// lastDate — наибольшая дата, которая сравнивается с next_due как текст
// в формате 2006-01-02.
var lastDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// CreateSubscription вставляет новую подписку и возвращает её ID.
// Значения не валидируются: это ответственность сервисного слоя.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := s.rebind(`INSERT INTO subscription (name, cost, period, next_due, is_active, notes)
			  VALUES (?, ?, ?, ?, ?, ?)
			  RETURNING id`)
	var newID int
	err := s.q.QueryRowContext(ctx, query,
		sub.Name, sub.Cost, string(sub.Period), sub.NextDue.Format(models.DateLayout),
		boolToInt(sub.IsActive), sub.Notes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetSubscription возвращает подписку по ID или ErrNotFound.
func (s *Storage) GetSubscription(ctx context.Context, id int) (*models.Subscription, error) {
	const op = "storage.GetSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := s.rebind(`SELECT ` + subscriptionColumns + ` FROM subscription WHERE id = ?`)
	sub, err := scanSubscription(s.q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// ListSubscriptions возвращает подписки, упорядоченные по next_due.
// При activeOnly=false архивные идут после активных, каждая группа по next_due;
// равные даты упорядочиваются по ID.
func (s *Storage) ListSubscriptions(ctx context.Context, activeOnly bool) ([]models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + ` FROM subscription`
	if activeOnly {
		query += ` WHERE is_active = 1 ORDER BY next_due, id`
	} else {
		query += ` ORDER BY is_active DESC, next_due, id`
	}
	result, err := s.querySubscriptions(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DueSoon возвращает активные подписки с next_due не позже today+daysAhead,
// по возрастанию даты. Граница за пределами 9999 года приводится к 9999-12-31.
func (s *Storage) DueSoon(ctx context.Context, today time.Time, daysAhead int) ([]models.Subscription, error) {
	const op = "storage.DueSoon"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	until := dueUntil(today, daysAhead).Format(models.DateLayout)
	query := `SELECT ` + subscriptionColumns + ` FROM subscription
			  WHERE is_active = 1 AND next_due <= ?
			  ORDER BY next_due, id`
	result, err := s.querySubscriptions(ctx, query, until)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountSubscriptions возвращает число активных (active=true) или архивных подписок.
func (s *Storage) CountSubscriptions(ctx context.Context, active bool) (int, error) {
	const op = "storage.CountSubscriptions"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var n int
	query := s.rebind(`SELECT COUNT(*) FROM subscription WHERE is_active = ?`)
	if err := s.q.QueryRowContext(ctx, query, boolToInt(active)).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// SetActive переводит подписку в активное (true) или архивное (false) состояние.
func (s *Storage) SetActive(ctx context.Context, id int, active bool) error {
	const op = "storage.SetActive"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := s.rebind(`UPDATE subscription SET is_active = ? WHERE id = ?`)
	if err := s.execOne(ctx, query, boolToInt(active), id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetNextDue обновляет дату следующей оплаты.
func (s *Storage) SetNextDue(ctx context.Context, id int, due time.Time) error {
	const op = "storage.SetNextDue"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := s.rebind(`UPDATE subscription SET next_due = ? WHERE id = ?`)
	if err := s.execOne(ctx, query, due.Format(models.DateLayout), id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RemoveSubscription удаляет подписку; её платежи удаляются каскадно.
func (s *Storage) RemoveSubscription(ctx context.Context, id int) error {
	const op = "storage.RemoveSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := s.rebind(`DELETE FROM subscription WHERE id = ?`)
	if err := s.execOne(ctx, query, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func dueUntil(today time.Time, daysAhead int) time.Time {
	left := (lastDate.Unix() - today.Unix()) / 86400
	if int64(daysAhead) >= left {
		return lastDate
	}
	return today.AddDate(0, 0, daysAhead)
}

// execOne выполняет изменяющий запрос и возвращает ErrNotFound, если он не
// затронул ни одной строки.
func (s *Storage) execOne(ctx context.Context, query string, args ...any) error {
	res, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Storage) querySubscriptions(ctx context.Context, query string, args ...any) ([]models.Subscription, error) {
	rows, err := s.q.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.Subscription, 0)
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *sub)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanSubscription декодирует строку таблицы subscription в типизированную
// структуру; дата хранится текстом в формате 2006-01-02.
func scanSubscription(row rowScanner) (*models.Subscription, error) {
	var (
		sub     models.Subscription
		period  string
		nextDue string
		notes   sql.NullString
	)
	if err := row.Scan(&sub.ID, &sub.Name, &sub.Cost, &period, &nextDue, &sub.IsActive, &notes); err != nil {
		return nil, err
	}
	due, err := time.Parse(models.DateLayout, nextDue)
	if err != nil {
		return nil, fmt.Errorf("subscription %d: bad next_due %q: %w", sub.ID, nextDue, err)
	}
	sub.Period = models.Period(period)
	sub.NextDue = due
	sub.Notes = notes.String
	return &sub, nil
}
