// Package recurrence вычисляет следующую дату оплаты подписки по текущей
// дате и коду периода. Функции пакета чистые и не имеют побочных эффектов.
package recurrence

import (
	"time"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/month"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// NextDue возвращает следующую дату оплаты.
//
//   - daily: +1 день;
//   - weekly: +7 дней;
//   - monthly: то же число следующего месяца, с прижатием к последнему дню;
//   - yearly: та же дата следующего года, 29 февраля переходит в 28 февраля.
//
// Для неизвестного кода дата возвращается без изменений; вызывающая сторона
// должна считать это нарушением целостности данных, а не паникой.
func NextDue(current time.Time, period models.Period) time.Time {
	current = month.Day(current)
	switch period {
	case models.PeriodDaily:
		return current.AddDate(0, 0, 1)
	case models.PeriodWeekly:
		return current.AddDate(0, 0, 7)
	case models.PeriodMonthly:
		return month.AddClamped(current, 1)
	case models.PeriodYearly:
		return month.AddClamped(current, 12)
	default:
		return current
	}
}
