// Package metrics содержит Prometheus-метрики трекера.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics объединяет коллекторы, зарегистрированные в одном реестре.
type Metrics struct {
	Registry *prometheus.Registry

	paymentsTotal   prometheus.Counter
	paymentsAmount  prometheus.Counter
	reminderChecks  *prometheus.CounterVec
	dueSubscription prometheus.Gauge
	httpRequests    *prometheus.CounterVec
}

// New создаёт метрики в собственном реестре вместе со стандартными
// коллекторами процесса и рантайма Go.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		paymentsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "tracker_payments_recorded_total",
			Help: "Number of payments recorded by mark-paid.",
		}),
		paymentsAmount: f.NewCounter(prometheus.CounterOpts{
			Name: "tracker_payments_amount_total",
			Help: "Sum of recorded payment amounts.",
		}),
		reminderChecks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_reminder_checks_total",
			Help: "Reminder evaluations by outcome (due, clear, error).",
		}, []string{"result"}),
		dueSubscription: f.NewGauge(prometheus.GaugeOpts{
			Name: "tracker_due_subscriptions",
			Help: "Active subscriptions due within the reminder window at the last check.",
		}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
	}
}

// PaymentRecorded учитывает успешную оплату.
func (m *Metrics) PaymentRecorded(amount float64) {
	m.paymentsTotal.Inc()
	if amount > 0 {
		m.paymentsAmount.Add(amount)
	}
}

// ReminderChecked учитывает одну проверку напоминаний.
func (m *Metrics) ReminderChecked(due int, err error) {
	switch {
	case err != nil:
		m.reminderChecks.WithLabelValues("error").Inc()
		return
	case due > 0:
		m.reminderChecks.WithLabelValues("due").Inc()
	default:
		m.reminderChecks.WithLabelValues("clear").Inc()
	}
	m.dueSubscription.Set(float64(due))
}

// HTTPRequest учитывает обработанный HTTP-запрос.
func (m *Metrics) HTTPRequest(method, route string, code int) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
}
