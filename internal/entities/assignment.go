package entities

import "time"

// Assignment привязка заказа к водителю с прогнозом прибытия.
// Повторная диспетчеризация создает новое назначение, старое не мутируется.
type Assignment struct {
	ID         int64
	OrderID    string
	DriverID   string
	DistanceKm float64
	ETA        time.Time
	CreatedAt  time.Time
}

type AssignmentModify struct {
	ID         *int64
	OrderID    *string
	DriverID   *string
	DistanceKm *float64
	ETA        *time.Time
}
