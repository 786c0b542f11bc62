package entities

import "time"

// RedispatchItem отложенная повторная диспетчеризация заказа.
// Attempts число уже выполненных повторов.
type RedispatchItem struct {
	OrderID       string
	Attempts      int
	NextAttemptAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
