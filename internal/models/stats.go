package models

// Stats содержит сводные показатели по подпискам и платежам.
// Суммы при отсутствии платежей равны нулю.
type Stats struct {
	ActiveCount   int     `json:"active_count"`
	ArchivedCount int     `json:"archived_count"`
	TotalSpent    float64 `json:"total_spent"`
	YearSpent     float64 `json:"year_spent"`
	MonthSpent    float64 `json:"month_spent"`
}
