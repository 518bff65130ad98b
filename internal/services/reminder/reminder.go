// Package reminder периодически проверяет, есть ли активные подписки со
// сроком оплаты в ближайшие дни, и при их наличии вызывает оповещение.
// Проверки не хранят состояния: каждая оценивает ситуацию заново, повторные
// оповещения не подавляются.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/month"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

const (
	// DefaultInterval задаёт интервал между проверками.
	DefaultInterval = time.Hour
	// DefaultDaysAhead задаёт горизонт проверки в днях.
	DefaultDaysAhead = 3
)

// ErrAlreadyRunning возвращается при повторном Start.
var ErrAlreadyRunning = errors.New("reminder already running")

// State описывает состояние вычислителя напоминаний.
type State int

const (
	StateIdle State = iota
	StateChecking
)

func (s State) String() string {
	if s == StateChecking {
		return "checking"
	}
	return "idle"
}

// Repository определяет запрос подписок с близким сроком оплаты.
type Repository interface {
	DueSoon(ctx context.Context, today time.Time, daysAhead int) ([]models.Subscription, error)
}

// Recorder получает результат каждой проверки.
type Recorder interface {
	ReminderChecked(due int, err error)
}

// Options задаёт параметры Service. Interval <= 0 и отрицательный DaysAhead
// заменяются значениями по умолчанию. DaysAhead = 0 означает проверку только
// на сегодня.
type Options struct {
	Interval  time.Duration
	DaysAhead int
	Now       func() time.Time
	Recorder  Recorder
}

// Service выполняет проверки по таймеру с явным жизненным циклом Start/Stop.
type Service struct {
	repo     Repository
	notifier Notifier
	opts     Options
	log      *slog.Logger

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	done   chan struct{}
}

// New создаёт Service.
func New(repo Repository, notifier Notifier, opts Options, log *slog.Logger) *Service {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.DaysAhead < 0 {
		opts.DaysAhead = DefaultDaysAhead
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		repo:     repo,
		notifier: notifier,
		opts:     opts,
		log:      log,
	}
}

// Check выполняет одну проверку: если есть активные подписки со сроком не
// позже сегодня+DaysAhead, вызывает оповещение и возвращает true.
func (s *Service) Check(ctx context.Context) (bool, error) {
	const op = "reminder.Check"

	s.setState(StateChecking)
	defer s.setState(StateIdle)

	due, err := s.repo.DueSoon(ctx, month.Day(s.opts.Now()), s.opts.DaysAhead)
	if s.opts.Recorder != nil {
		s.opts.Recorder.ReminderChecked(len(due), err)
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if len(due) == 0 {
		s.log.Debug("no subscriptions due soon", sl.Op(op))
		return false, nil
	}

	if s.notifier != nil {
		if err = s.notifier.Notify(ctx, due); err != nil {
			return true, fmt.Errorf("%s: notify: %w", op, err)
		}
	}
	return true, nil
}

// Start запускает проверки: первая выполняется сразу, далее раз в Interval.
// Цикл работает до Stop или отмены ctx.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.loop(ctx, s.done)

	s.log.Info("reminder started",
		slog.Duration("interval", s.opts.Interval),
		slog.Int("days_ahead", s.opts.DaysAhead),
	)
	return nil
}

// Stop останавливает цикл и дожидается завершения текущей проверки.
// Вызов без Start ничего не делает.
func (s *Service) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.log.Info("reminder stopped")
}

// State возвращает текущее состояние.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Service) loop(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	s.tick(ctx)

	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Service) tick(ctx context.Context) {
	if _, err := s.Check(ctx); err != nil && ctx.Err() == nil {
		s.log.Error("reminder check failed", sl.Err(err))
	}
}

func (s *Service) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}
