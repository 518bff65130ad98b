package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscription_JSONDate(t *testing.T) {
	sub := Subscription{
		ID:       1,
		Name:     "Netflix",
		Cost:     999,
		Period:   PeriodMonthly,
		NextDue:  time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		IsActive: true,
	}

	data, err := json.Marshal(sub)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":1,"name":"Netflix","cost":999,"period":"monthly","next_due":"2024-01-31","is_active":true,"notes":""}`,
		string(data))

	var got Subscription
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, sub, got)

	err = json.Unmarshal([]byte(`{"next_due":"2024-01-31T00:00:00Z"}`), &got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "next_due")
}

func TestPayment_JSONDate(t *testing.T) {
	p := Payment{ID: 3, SubscriptionID: 1, DatePaid: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), Amount: 500}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"date_paid":"2024-02-29"`)

	var got Payment
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, p, got)
}

func TestFormatDate_Zero(t *testing.T) {
	assert.Empty(t, FormatDate(time.Time{}))

	d, err := ParseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())
}
