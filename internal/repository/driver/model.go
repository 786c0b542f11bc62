package driver

import "time"

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
