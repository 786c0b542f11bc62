package dispatch

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

type DriverDB struct {
	ID        string
	Name      string
	Capacity  int64
	Status    string
	LastLat   *float64
	LastLng   *float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type AssignmentDB struct {
	ID         int64
	OrderID    string
	DriverID   string
	DistanceKm float64
	ETA        time.Time
	CreatedAt  time.Time
}
