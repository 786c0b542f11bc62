package entities

import (
	"time"

	"shipflow/pkg/geo"
)

type Order struct {
	ID          string
	Pickup      geo.Point
	Dropoff     geo.Point
	Weight      int64
	WindowStart time.Time
	WindowEnd   time.Time
	Status      OrderStatusType
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type OrderStatusType string

const (
	OrderPending  OrderStatusType = "pending"
	OrderAssigned OrderStatusType = "assigned"
	// OrderDeliveredPending водитель отметил доставку, ждем подтверждения клиента
	OrderDeliveredPending OrderStatusType = "delivered_pending"
	OrderCompleted        OrderStatusType = "completed"
)

func (s OrderStatusType) String() string {
	return string(s)
}

type OrderModify struct {
	ID          *string
	Pickup      *geo.Point
	Dropoff     *geo.Point
	Weight      *int64
	WindowStart *time.Time
	WindowEnd   *time.Time
	Status      *OrderStatusType
}

// TrackingInfo снимок заказа с текущим назначением для страницы отслеживания.
type TrackingInfo struct {
	OrderID      string
	Status       OrderStatusType
	DriverID     *string
	DriverName   *string
	DriverStatus *DriverStatusType
	ETA          *time.Time
}
