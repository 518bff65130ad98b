package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_PaymentRecorded(t *testing.T) {
	m := New()
	m.PaymentRecorded(500)
	m.PaymentRecorded(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.paymentsTotal))
	assert.Equal(t, 500.0, testutil.ToFloat64(m.paymentsAmount))
}

func TestMetrics_ReminderChecked(t *testing.T) {
	m := New()
	m.ReminderChecked(2, nil)
	m.ReminderChecked(0, nil)
	m.ReminderChecked(0, errors.New("db down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.reminderChecks.WithLabelValues("due")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reminderChecks.WithLabelValues("clear")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reminderChecks.WithLabelValues("error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.dueSubscription))
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
