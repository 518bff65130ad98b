package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// FormatDate записывает календарную дату в формате DateLayout. Нулевая дата
// даёт пустую строку.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseDate разбирает дату в формате DateLayout. Пустая строка даёт нулевую дату.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, s)
}

// MarshalJSON записывает NextDue без времени, в том же формате, что
// принимает запрос на создание подписки.
func (s Subscription) MarshalJSON() ([]byte, error) {
	type alias Subscription
	return json.Marshal(struct {
		alias
		NextDue string `json:"next_due"`
	}{
		alias:   alias(s),
		NextDue: FormatDate(s.NextDue),
	})
}

// UnmarshalJSON читает NextDue в формате 2006-01-02.
func (s *Subscription) UnmarshalJSON(data []byte) error {
	type alias Subscription
	aux := struct {
		*alias
		NextDue string `json:"next_due"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	due, err := ParseDate(aux.NextDue)
	if err != nil {
		return fmt.Errorf("next_due: %w", err)
	}
	s.NextDue = due
	return nil
}

// MarshalJSON записывает DatePaid без времени.
func (p Payment) MarshalJSON() ([]byte, error) {
	type alias Payment
	return json.Marshal(struct {
		alias
		DatePaid string `json:"date_paid"`
	}{
		alias:    alias(p),
		DatePaid: FormatDate(p.DatePaid),
	})
}

// UnmarshalJSON читает DatePaid в формате 2006-01-02.
func (p *Payment) UnmarshalJSON(data []byte) error {
	type alias Payment
	aux := struct {
		*alias
		DatePaid string `json:"date_paid"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	paid, err := ParseDate(aux.DatePaid)
	if err != nil {
		return fmt.Errorf("date_paid: %w", err)
	}
	p.DatePaid = paid
	return nil
}
