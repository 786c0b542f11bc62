package redispatch

import "time"

type RedispatchItemDB struct {
	OrderID       string
	Attempts      int
	NextAttemptAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
