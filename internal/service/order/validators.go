package order

import (
	"strings"

	"shipflow/internal/entities"
	"shipflow/pkg/geo"
)

func isValidOrderID(orderID string) bool {
	return strings.TrimSpace(orderID) != ""
}

func isValidPoint(point geo.Point) bool {
	return point.Lat >= -90 && point.Lat <= 90 &&
		point.Lng >= -180 && point.Lng <= 180
}

func validateOrder(order entities.Order) error {
	if !isValidOrderID(order.ID) {
		return ErrInvalidOrderID
	}
	if !isValidPoint(order.Pickup) || !isValidPoint(order.Dropoff) {
		return ErrInvalidCoordinates
	}
	if order.Weight <= 0 {
		return ErrInvalidWeight
	}
	if !order.WindowEnd.After(order.WindowStart) {
		return ErrInvalidWindow
	}
	return nil
}

func validateModify(modify entities.OrderModify) error {
	if modify.Pickup != nil && !isValidPoint(*modify.Pickup) {
		return ErrInvalidCoordinates
	}
	if modify.Dropoff != nil && !isValidPoint(*modify.Dropoff) {
		return ErrInvalidCoordinates
	}
	if modify.Weight != nil && *modify.Weight <= 0 {
		return ErrInvalidWeight
	}
	if modify.WindowStart != nil && modify.WindowEnd != nil &&
		!modify.WindowEnd.After(*modify.WindowStart) {
		return ErrInvalidWindow
	}
	return nil
}
