package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDue_TableTests(t *testing.T) {
	tests := []struct {
		name    string
		current time.Time
		period  models.Period
		want    time.Time
	}{
		{"daily", date(2024, 2, 28), models.PeriodDaily, date(2024, 2, 29)},
		{"daily over year end", date(2024, 12, 31), models.PeriodDaily, date(2025, 1, 1)},
		{"weekly", date(2024, 2, 26), models.PeriodWeekly, date(2024, 3, 4)},
		{"monthly plain", date(2024, 5, 15), models.PeriodMonthly, date(2024, 6, 15)},
		{"monthly clamp leap", date(2024, 1, 31), models.PeriodMonthly, date(2024, 2, 29)},
		{"monthly clamp regular", date(2023, 1, 31), models.PeriodMonthly, date(2023, 2, 28)},
		{"monthly 31 to 30", date(2024, 8, 31), models.PeriodMonthly, date(2024, 9, 30)},
		{"monthly december", date(2024, 12, 15), models.PeriodMonthly, date(2025, 1, 15)},
		{"yearly plain", date(2024, 3, 1), models.PeriodYearly, date(2025, 3, 1)},
		{"yearly leap day", date(2024, 2, 29), models.PeriodYearly, date(2025, 2, 28)},
		{"yearly into leap year", date(2023, 2, 28), models.PeriodYearly, date(2024, 2, 28)},
		{"unknown period", date(2024, 5, 15), models.Period("hourly"), date(2024, 5, 15)},
		{"empty period", date(2024, 5, 15), models.Period(""), date(2024, 5, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextDue(tt.current, tt.period))
		})
	}
}

func TestNextDue_StripsClock(t *testing.T) {
	in := time.Date(2024, 5, 15, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, date(2024, 6, 15), NextDue(in, models.PeriodMonthly))
}

// Перебирает каждый день 2020–2030 годов для всех периодов.
func TestNextDue_AlwaysAdvances(t *testing.T) {
	for d := date(2020, 1, 1); d.Before(date(2031, 1, 1)); d = d.AddDate(0, 0, 1) {
		for _, p := range models.Periods() {
			next := NextDue(d, p)
			require.True(t, next.After(d), "%s %s -> %s", d.Format(models.DateLayout), p, next.Format(models.DateLayout))

			days := int(next.Sub(d).Hours() / 24)
			switch p {
			case models.PeriodDaily:
				require.Equal(t, 1, days)
			case models.PeriodWeekly:
				require.Equal(t, 7, days)
			case models.PeriodMonthly:
				require.GreaterOrEqual(t, days, 28)
				require.LessOrEqual(t, days, 31)
			case models.PeriodYearly:
				require.GreaterOrEqual(t, days, 365)
				require.LessOrEqual(t, days, 366)
			}
		}
	}
}
