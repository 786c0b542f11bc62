package entities

import (
	"time"

	"shipflow/pkg/geo"
)

type Driver struct {
	ID       string
	Name     string
	Capacity int64
	Status   DriverStatusType
	// LastLocation nil пока водитель ни разу не отчитался координатой
	LastLocation *geo.Point
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type DriverStatusType string

const (
	DriverAvailable DriverStatusType = "available"
	DriverBusy      DriverStatusType = "busy"
	DriverOffline   DriverStatusType = "offline"
)

func (t DriverStatusType) String() string {
	return string(t)
}

type DriverModify struct {
	ID           *string
	Name         *string
	Capacity     *int64
	Status       *DriverStatusType
	LastLocation *geo.Point
}
