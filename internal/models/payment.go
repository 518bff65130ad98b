package models

import "time"

// Payment — запись об оплате. Amount фиксирует стоимость подписки на момент
// оплаты и не меняется при последующем изменении Subscription.Cost.
type Payment struct {
	ID             int       `json:"id"`
	SubscriptionID int       `json:"subscription_id"`
	DatePaid       time.Time `json:"date_paid"`
	Amount         float64   `json:"amount"`
	Comment        string    `json:"comment"`
}
