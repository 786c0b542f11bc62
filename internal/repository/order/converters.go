package order

import (
	"shipflow/internal/entities"
	"shipflow/pkg/geo"
)

func ToOrderDomain(model *OrderDB) *entities.Order {
	return &entities.Order{
		ID:          model.ID,
		Pickup:      geo.Point{Lat: model.PickupLat, Lng: model.PickupLng},
		Dropoff:     geo.Point{Lat: model.DropoffLat, Lng: model.DropoffLng},
		Weight:      model.Weight,
		WindowStart: model.WindowStart,
		WindowEnd:   model.WindowEnd,
		Status:      entities.OrderStatusType(model.Status),
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func ToOrderDomainList(models []OrderDB) []entities.Order {
	orders := make([]entities.Order, 0, len(models))
	for i := range models {
		orders = append(orders, *ToOrderDomain(&models[i]))
	}
	return orders
}

func ToTrackingDomain(model *TrackingDB) *entities.TrackingInfo {
	info := &entities.TrackingInfo{
		OrderID:    model.OrderID,
		Status:     entities.OrderStatusType(model.Status),
		DriverID:   model.DriverID,
		DriverName: model.DriverName,
		ETA:        model.ETA,
	}

	if model.DriverStatus != nil {
		status := entities.DriverStatusType(*model.DriverStatus)
		info.DriverStatus = &status
	}

	return info
}
