// Package subscription содержит бизнес-логику управления подписками:
// создание с проверкой входных данных, чтение, архивирование и удаление.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/month"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// ErrValidation возвращается при некорректных данных новой подписки.
var ErrValidation = errors.New("validation failed")

// MaxDaysAhead ограничивает горизонт выборки DueSoon.
const MaxDaysAhead = 36500

// Repository определяет методы для работы с подписками в хранилище.
type Repository interface {
	CreateSubscription(ctx context.Context, sub models.Subscription) (int, error)
	GetSubscription(ctx context.Context, id int) (*models.Subscription, error)
	ListSubscriptions(ctx context.Context, activeOnly bool) ([]models.Subscription, error)
	SetActive(ctx context.Context, id int, active bool) error
	SetNextDue(ctx context.Context, id int, due time.Time) error
	RemoveSubscription(ctx context.Context, id int) error
	ListPayments(ctx context.Context, subscriptionID int) ([]models.Payment, error)
	DueSoon(ctx context.Context, today time.Time, daysAhead int) ([]models.Subscription, error)
}

// Service реализует операции над подписками.
type Service struct {
	repo     Repository
	validate *validator.Validate
	now      func() time.Time
	log      *slog.Logger
}

// New создаёт Service. now задаёт источник текущей даты; nil означает time.Now.
func New(repo Repository, now func() time.Time, log *slog.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:     repo,
		validate: validator.New(),
		now:      now,
		log:      log,
	}
}

// Create проверяет данные и добавляет новую активную подписку.
func (s *Service) Create(ctx context.Context, req models.DummySubscription) (int, error) {
	const op = "subscription.Create"

	req.Name = strings.TrimSpace(req.Name)
	if err := s.validate.Struct(req); err != nil {
		return 0, fmt.Errorf("%s: %w: %s", op, ErrValidation, describe(err))
	}
	nextDue, err := time.Parse(models.DateLayout, req.NextDue)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: next_due must be in format 2006-01-02", op, ErrValidation)
	}

	id, err := s.repo.CreateSubscription(ctx, models.Subscription{
		Name:     req.Name,
		Cost:     req.Cost,
		Period:   models.Period(req.Period),
		NextDue:  nextDue,
		IsActive: true,
		Notes:    req.Notes,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("created new subscription", sl.Op(op), slog.Int("id", id), slog.String("name", req.Name))
	return id, nil
}

// Get возвращает подписку по ID.
func (s *Service) Get(ctx context.Context, id int) (*models.Subscription, error) {
	return s.repo.GetSubscription(ctx, id)
}

// List возвращает активные подписки либо все, если activeOnly=false.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]models.Subscription, error) {
	return s.repo.ListSubscriptions(ctx, activeOnly)
}

// Archive переносит подписку в архив.
func (s *Service) Archive(ctx context.Context, id int) error {
	return s.setActive(ctx, id, false)
}

// Unarchive возвращает подписку из архива в активные.
func (s *Service) Unarchive(ctx context.Context, id int) error {
	return s.setActive(ctx, id, true)
}

func (s *Service) setActive(ctx context.Context, id int, active bool) error {
	const op = "subscription.SetActive"
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("subscription state changed", sl.Op(op), slog.Int("id", id), slog.Bool("active", active))
	return nil
}

// Reschedule вручную задаёт дату следующей оплаты.
func (s *Service) Reschedule(ctx context.Context, id int, due time.Time) error {
	const op = "subscription.Reschedule"
	if err := s.repo.SetNextDue(ctx, id, month.Day(due)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Remove удаляет подписку вместе с историей платежей.
func (s *Service) Remove(ctx context.Context, id int) error {
	const op = "subscription.Remove"
	if err := s.repo.RemoveSubscription(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("subscription removed", sl.Op(op), slog.Int("id", id))
	return nil
}

// Payments возвращает историю платежей существующей подписки.
func (s *Service) Payments(ctx context.Context, id int) ([]models.Payment, error) {
	const op = "subscription.Payments"
	if _, err := s.repo.GetSubscription(ctx, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	payments, err := s.repo.ListPayments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payments, nil
}

// DueSoon возвращает активные подписки, срок оплаты которых наступает в
// ближайшие daysAhead дней (включая просроченные).
func (s *Service) DueSoon(ctx context.Context, daysAhead int) ([]models.Subscription, error) {
	if daysAhead < 0 || daysAhead > MaxDaysAhead {
		return nil, fmt.Errorf("subscription.DueSoon: %w: days must be between 0 and %d", ErrValidation, MaxDaysAhead)
	}
	return s.repo.DueSoon(ctx, month.Day(s.now()), daysAhead)
}

func describe(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", e.Field()))
		case "gte", "lte":
			msgs = append(msgs, fmt.Sprintf("field %s must be between 0 and 1000000", e.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("field %s must be one of daily, weekly, monthly, yearly", e.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", e.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}
