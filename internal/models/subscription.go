// Package models содержит доменные структуры трекера подписок: подписку,
// платёж, код периода и сводную статистику, а также типы для приёма данных
// из JSON-запросов.
package models

import "time"

// DateLayout — формат хранения календарных дат (ISO 8601, без времени).
const DateLayout = "2006-01-02"

// Period — код периода оплаты подписки.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

var periodLabels = map[Period]string{
	PeriodDaily:   "ежедневно",
	PeriodWeekly:  "еженедельно",
	PeriodMonthly: "ежемесячно",
	PeriodYearly:  "ежегодно",
}

// Valid сообщает, входит ли код в закрытый список периодов.
func (p Period) Valid() bool {
	_, ok := periodLabels[p]
	return ok
}

// Label возвращает подпись периода для отображения. Неизвестный код
// возвращается как есть.
func (p Period) Label() string {
	if l, ok := periodLabels[p]; ok {
		return l
	}
	return string(p)
}

// Periods возвращает все допустимые коды в порядке возрастания длительности.
func Periods() []Period {
	return []Period{PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly}
}

// Subscription представляет отслеживаемую подписку.
// NextDue всегда хранит дату без времени в UTC.
type Subscription struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Cost     float64   `json:"cost"`
	Period   Period    `json:"period"`
	NextDue  time.Time `json:"next_due"`
	IsActive bool      `json:"is_active"`
	Notes    string    `json:"notes"`
}

// DummySubscription используется для приёма данных из JSON-запроса или флагов
// CLI до валидации и преобразования в Subscription. Дата приходит строкой в
// формате 2006-01-02.
type DummySubscription struct {
	Name    string  `json:"name" validate:"required"`
	Cost    float64 `json:"cost" validate:"gte=0,lte=1000000"`
	Period  string  `json:"period" validate:"required,oneof=daily weekly monthly yearly"`
	NextDue string  `json:"next_due" validate:"required"`
	Notes   string  `json:"notes"`
}
