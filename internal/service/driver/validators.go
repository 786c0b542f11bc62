package driver

import (
	"strings"

	"shipflow/internal/entities"
	"shipflow/pkg/geo"
)

func isValidDriverID(driverID string) bool {
	return strings.TrimSpace(driverID) != ""
}

func isValidStatus(status entities.DriverStatusType) bool {
	switch status {
	case entities.DriverAvailable, entities.DriverBusy, entities.DriverOffline:
		return true
	default:
		return false
	}
}

func isValidPoint(point geo.Point) bool {
	return point.Lat >= -90 && point.Lat <= 90 &&
		point.Lng >= -180 && point.Lng <= 180
}
