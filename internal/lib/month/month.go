// Package month содержит календарные вычисления над датами без времени:
// число дней в месяце, сдвиг на N месяцев с прижатием к концу месяца,
// начало месяца.
package month

import "time"

// Day отбрасывает время и часовой пояс, оставляя календарную дату в UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysIn возвращает количество дней в месяце m года year.
func DaysIn(year int, m time.Month) int {
	// нулевой день следующего месяца — последний день текущего
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsLeap сообщает, високосный ли год.
func IsLeap(year int) bool {
	return DaysIn(year, time.February) == 29
}

// AddClamped сдвигает дату на n месяцев, сохраняя число месяца. Если такого
// числа в целевом месяце нет, берётся последний день целевого месяца
// (31 января + 1 = 28/29 февраля). В отличие от time.AddDate переполнения
// в следующий месяц не происходит.
func AddClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	ty := y + floorDiv(total, 12)
	tm := time.Month(total - floorDiv(total, 12)*12 + 1)
	if last := DaysIn(ty, tm); d > last {
		d = last
	}
	return time.Date(ty, tm, d, 0, 0, 0, 0, time.UTC)
}

// Start возвращает первое число месяца, в который попадает t.
func Start(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
