package month

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.January, 31},
		{2024, time.February, 29},
		{2023, time.February, 28},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysIn(tt.year, tt.month), "%d-%02d", tt.year, tt.month)
	}
}

func TestAddClamped_TableTests(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"same day next month", date(2024, 5, 15), 1, date(2024, 6, 15)},
		{"31st into leap february", date(2024, 1, 31), 1, date(2024, 2, 29)},
		{"31st into regular february", date(2023, 1, 31), 1, date(2023, 2, 28)},
		{"31st into 30 day month", date(2024, 3, 31), 1, date(2024, 4, 30)},
		{"december rolls the year", date(2024, 12, 31), 1, date(2025, 1, 31)},
		{"twelve months from leap day", date(2024, 2, 29), 12, date(2025, 2, 28)},
		{"negative shift", date(2024, 3, 31), -1, date(2024, 2, 29)},
		{"negative shift across year", date(2024, 1, 10), -2, date(2023, 11, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddClamped(tt.in, tt.n))
		})
	}
}

func TestDayDropsClockAndZone(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	in := time.Date(2024, 7, 1, 23, 59, 0, 0, loc)
	assert.Equal(t, date(2024, 7, 1), Day(in))
}

func TestStart(t *testing.T) {
	assert.Equal(t, date(2024, 2, 1), Start(date(2024, 2, 29)))
	assert.True(t, IsLeap(2024))
	assert.False(t, IsLeap(2100))
}
