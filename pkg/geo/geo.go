package geo

import "math"

const (
	// средний радиус Земли, км
	earthRadiusKm = 6371.0088

	DefaultSpeedKmh = 40.0

	// фиксированный буфер +20% чтобы не обещать меньше чем выйдет
	etaBuffer = 1.2
)

// Point координата в градусах (широта, долгота).
type Point struct {
	Lat float64
	Lng float64
}

// Distance расстояние по дуге большого круга (haversine) в километрах.
// Чистая функция, Distance(a, b) == Distance(b, a).
func Distance(a, b Point) float64 {
	latA := toRadians(a.Lat)
	latB := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// BaseETA базовая оценка времени в пути в минутах с буфером +20%.
// Всегда округляет вверх.
func BaseETA(distanceKm, avgSpeedKmh float64) int {
	if distanceKm <= 0 {
		return 0
	}

	minutes := (distanceKm / avgSpeedKmh) * 60
	return int(math.Ceil(minutes * etaBuffer))
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
