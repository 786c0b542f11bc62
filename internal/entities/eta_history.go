package entities

import "time"

// EtaHistory запись факта доставки, append-only.
// Пишется один раз при завершении заказа и дальше используется
// только в агрегатах калибровки.
type EtaHistory struct {
	ID               int64
	OrderID          string
	DriverID         string
	DistanceKm       float64
	PredictedMinutes int64
	ActualMinutes    int64
	CreatedAt        time.Time
}

// EtaPrediction результат расчета прогноза, без побочных эффектов.
type EtaPrediction struct {
	DistanceKm     float64
	BaseEtaMinutes int
	Adjustment     float64
	EtaMinutes     int
	PredictedETA   time.Time
}
