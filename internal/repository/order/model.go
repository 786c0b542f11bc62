package order

import "time"

type OrderDB struct {
	ID          string
	PickupLat   float64
	PickupLng   float64
	DropoffLat  float64
	DropoffLng  float64
	Weight      int64
	WindowStart time.Time
	WindowEnd   time.Time
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type TrackingDB struct {
	OrderID      string
	Status       string
	DriverID     *string
	DriverName   *string
	DriverStatus *string
	ETA          *time.Time
}
