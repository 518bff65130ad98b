// Package stats считает сводные показатели: число активных и архивных
// подписок и суммы платежей за всё время, за последние 365 дней и с начала
// текущего месяца.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/month"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// TrailingYearDays — длина скользящего окна «за год».
const TrailingYearDays = 365

// Repository описывает агрегирующие запросы хранилища.
type Repository interface {
	CountSubscriptions(ctx context.Context, active bool) (int, error)
	SumPayments(ctx context.Context, since time.Time) (float64, error)
}

// Service вычисляет статистику. Каждый показатель — отдельный запрос на чтение.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New создаёт Service. now задаёт источник текущей даты; nil означает time.Now.
func New(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, now: now}
}

// ActiveCount возвращает число активных подписок.
func (s *Service) ActiveCount(ctx context.Context) (int, error) {
	return s.repo.CountSubscriptions(ctx, true)
}

// ArchivedCount возвращает число подписок в архиве.
func (s *Service) ArchivedCount(ctx context.Context) (int, error) {
	return s.repo.CountSubscriptions(ctx, false)
}

// TotalSpent возвращает сумму всех платежей.
func (s *Service) TotalSpent(ctx context.Context) (float64, error) {
	return s.repo.SumPayments(ctx, time.Time{})
}

// YearSpent возвращает сумму платежей с датой не раньше today-365 дней.
func (s *Service) YearSpent(ctx context.Context) (float64, error) {
	since := month.Day(s.now()).AddDate(0, 0, -TrailingYearDays)
	return s.repo.SumPayments(ctx, since)
}

// MonthSpent возвращает сумму платежей с первого числа текущего месяца.
func (s *Service) MonthSpent(ctx context.Context) (float64, error) {
	return s.repo.SumPayments(ctx, month.Start(s.now()))
}

// Collect собирает все показатели в одну структуру.
func (s *Service) Collect(ctx context.Context) (*models.Stats, error) {
	const op = "stats.Collect"

	var (
		res models.Stats
		err error
	)
	if res.ActiveCount, err = s.ActiveCount(ctx); err != nil {
		return nil, fmt.Errorf("%s: active: %w", op, err)
	}
	if res.ArchivedCount, err = s.ArchivedCount(ctx); err != nil {
		return nil, fmt.Errorf("%s: archived: %w", op, err)
	}
	if res.TotalSpent, err = s.TotalSpent(ctx); err != nil {
		return nil, fmt.Errorf("%s: total: %w", op, err)
	}
	if res.YearSpent, err = s.YearSpent(ctx); err != nil {
		return nil, fmt.Errorf("%s: year: %w", op, err)
	}
	if res.MonthSpent, err = s.MonthSpent(ctx); err != nil {
		return nil, fmt.Errorf("%s: month: %w", op, err)
	}
	return &res, nil
}
