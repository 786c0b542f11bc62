package etahistory

import "time"

type EtaHistoryDB struct {
	ID               int64
	OrderID          string
	DriverID         string
	DistanceKm       float64
	PredictedMinutes int64
	ActualMinutes    int64
	CreatedAt        time.Time
}
