package storage

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-tracker/internal/migrations"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

func setupTestStorage(t *testing.T) *Storage {
	t.Helper()
	ctx := context.Background()

	s, err := New(ctx, DriverSQLite, filepath.Join(t.TempDir(), "subs.db"))
	require.NoError(t, err)
	require.NoError(t, migrations.Run(s.DB, s.Driver()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createSubscription(t *testing.T, s *Storage, name string, due time.Time, active bool) int {
	t.Helper()
	id, err := s.CreateSubscription(context.Background(), models.Subscription{
		Name:     name,
		Cost:     500,
		Period:   models.PeriodMonthly,
		NextDue:  due,
		IsActive: active,
	})
	require.NoError(t, err)
	return id
}

func names(subs []models.Subscription) []string {
	out := make([]string, 0, len(subs))
	for _, s := range subs {
		out = append(out, s.Name)
	}
	return out
}

func TestStorage_CreateAndGet(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	id, err := s.CreateSubscription(ctx, models.Subscription{
		Name:     "Test",
		Cost:     100,
		Period:   models.PeriodMonthly,
		NextDue:  date(2024, 5, 15),
		IsActive: true,
		Notes:    "test note",
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := s.GetSubscription(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, &models.Subscription{
		ID:       id,
		Name:     "Test",
		Cost:     100,
		Period:   models.PeriodMonthly,
		NextDue:  date(2024, 5, 15),
		IsActive: true,
		Notes:    "test note",
	}, got)
}

func TestStorage_GetMissing(t *testing.T) {
	s := setupTestStorage(t)

	_, err := s.GetSubscription(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStorage_ListSubscriptions(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	createSubscription(t, s, "late", date(2024, 6, 1), true)
	createSubscription(t, s, "archived-early", date(2024, 1, 1), false)
	createSubscription(t, s, "early", date(2024, 5, 1), true)
	createSubscription(t, s, "tie", date(2024, 6, 1), true)
	createSubscription(t, s, "archived-late", date(2024, 12, 1), false)

	active, err := s.ListSubscriptions(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "late", "tie"}, names(active))

	all, err := s.ListSubscriptions(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "late", "tie", "archived-early", "archived-late"}, names(all))

	again, err := s.ListSubscriptions(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, all, again, "reads without writes must be identical")
}

func TestStorage_ListEmpty(t *testing.T) {
	s := setupTestStorage(t)

	subs, err := s.ListSubscriptions(context.Background(), true)
	require.NoError(t, err)
	assert.NotNil(t, subs)
	assert.Empty(t, subs)
}

func TestStorage_AddPayment(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()
	id := createSubscription(t, s, "Netflix", date(2024, 5, 15), true)

	pid, err := s.AddPayment(ctx, models.Payment{SubscriptionID: id, DatePaid: date(2024, 5, 14), Amount: 500})
	require.NoError(t, err)
	assert.Positive(t, pid)

	payments, err := s.ListPayments(ctx, id)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, models.Payment{ID: pid, SubscriptionID: id, DatePaid: date(2024, 5, 14), Amount: 500}, payments[0])

	_, err = s.AddPayment(ctx, models.Payment{SubscriptionID: id + 100, DatePaid: date(2024, 5, 14), Amount: 1})
	require.ErrorIs(t, err, ErrSubscriptionMissing)
}

func TestStorage_RemoveCascadesPayments(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()
	id := createSubscription(t, s, "Spotify", date(2024, 5, 15), true)
	other := createSubscription(t, s, "Other", date(2024, 5, 15), true)

	for i := 0; i < 3; i++ {
		_, err := s.AddPayment(ctx, models.Payment{SubscriptionID: id, DatePaid: date(2024, 5, 1+i), Amount: 10})
		require.NoError(t, err)
	}
	_, err := s.AddPayment(ctx, models.Payment{SubscriptionID: other, DatePaid: date(2024, 5, 1), Amount: 10})
	require.NoError(t, err)

	require.NoError(t, s.RemoveSubscription(ctx, id))

	n, err := s.CountPayments(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = s.CountPayments(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.ErrorIs(t, s.RemoveSubscription(ctx, id), ErrNotFound)
}

func TestStorage_SetActiveAndNextDue(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()
	id := createSubscription(t, s, "Netflix", date(2024, 5, 15), true)

	require.NoError(t, s.SetActive(ctx, id, false))
	require.NoError(t, s.SetNextDue(ctx, id, date(2024, 6, 15)))

	got, err := s.GetSubscription(ctx, id)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, date(2024, 6, 15), got.NextDue)

	archived, err := s.CountSubscriptions(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, archived)

	require.ErrorIs(t, s.SetActive(ctx, 999, true), ErrNotFound)
	require.ErrorIs(t, s.SetNextDue(ctx, 999, date(2024, 1, 1)), ErrNotFound)
}

func TestStorage_DueSoon(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()
	today := date(2024, 5, 10)

	createSubscription(t, s, "in-two-days", today.AddDate(0, 0, 2), true)
	createSubscription(t, s, "overdue", today.AddDate(0, 0, -4), true)
	createSubscription(t, s, "boundary", today.AddDate(0, 0, 3), true)
	createSubscription(t, s, "later", today.AddDate(0, 0, 4), true)
	createSubscription(t, s, "archived", today.AddDate(0, 0, 1), false)

	due, err := s.DueSoon(ctx, today, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"overdue", "in-two-days", "boundary"}, names(due))

	due, err = s.DueSoon(ctx, today, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"overdue"}, names(due))
}

func TestStorage_DueSoonFarHorizon(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()
	today := date(2024, 5, 10)

	createSubscription(t, s, "next-year", today.AddDate(1, 0, 0), true)
	createSubscription(t, s, "far", date(9999, 12, 31), true)

	for _, days := range []int{4000000, math.MaxInt} {
		due, err := s.DueSoon(ctx, today, days)
		require.NoError(t, err)
		assert.Equal(t, []string{"next-year", "far"}, names(due), "days=%d", days)
	}
}

func TestStorage_SumPayments(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	total, err := s.SumPayments(ctx, time.Time{})
	require.NoError(t, err)
	assert.Zero(t, total)

	id := createSubscription(t, s, "Netflix", date(2024, 5, 15), true)
	for _, p := range []struct {
		day    time.Time
		amount float64
	}{
		{date(2023, 1, 1), 100},
		{date(2024, 4, 30), 50.5},
		{date(2024, 5, 1), 25},
	} {
		_, err = s.AddPayment(ctx, models.Payment{SubscriptionID: id, DatePaid: p.day, Amount: p.amount})
		require.NoError(t, err)
	}

	total, err = s.SumPayments(ctx, time.Time{})
	require.NoError(t, err)
	assert.InDelta(t, 175.5, total, 1e-9)

	total, err = s.SumPayments(ctx, date(2024, 5, 1))
	require.NoError(t, err)
	assert.InDelta(t, 25, total, 1e-9)

	total, err = s.SumPayments(ctx, date(2030, 1, 1))
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestStorage_WithinTxRollsBack(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()
	id := createSubscription(t, s, "Netflix", date(2024, 5, 15), true)

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(tx *Storage) error {
		if _, err := tx.AddPayment(ctx, models.Payment{SubscriptionID: id, DatePaid: date(2024, 5, 15), Amount: 500}); err != nil {
			return err
		}
		if err := tx.SetNextDue(ctx, id, date(2024, 6, 15)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	n, err := s.CountPayments(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	got, err := s.GetSubscription(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 5, 15), got.NextDue)
}

func TestStorage_WithinTxCommits(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()
	id := createSubscription(t, s, "Netflix", date(2024, 5, 15), true)

	err := s.WithinTx(ctx, func(tx *Storage) error {
		return tx.WithinTx(ctx, func(inner *Storage) error {
			_, err := inner.AddPayment(ctx, models.Payment{SubscriptionID: id, DatePaid: date(2024, 5, 15), Amount: 500})
			return err
		})
	})
	require.NoError(t, err)

	n, err := s.CountPayments(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStorage_CanceledContext(t *testing.T) {
	s := setupTestStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ListSubscriptions(ctx, true)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(context.Background(), "mysql", "whatever")
	require.Error(t, err)
}

func TestRebind(t *testing.T) {
	pg := &Storage{driver: DriverPostgres}
	assert.Equal(t, "UPDATE t SET a = $1 WHERE id = $2", pg.rebind("UPDATE t SET a = ? WHERE id = ?"))

	lite := &Storage{driver: DriverSQLite}
	assert.Equal(t, "SELECT ? ", lite.rebind("SELECT ? "))
}
