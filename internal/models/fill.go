package models

// Fill — отчёт о сделке-исполнении с биржи. Фид at-least-once:
// один и тот же fill может приехать повторно.
type Fill struct {
	ID        string
	OrderID   string
	Timestamp int64 // миллисекунды UTC
	Price     float64
	Side      string
}
