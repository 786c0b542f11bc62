package dispatch

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

func ToDriverDomain(model *DriverDB) *entities.Driver {
	driver := &entities.Driver{
		ID:        model.ID,
		Name:      model.Name,
		Capacity:  model.Capacity,
		Status:    entities.DriverStatusType(model.Status),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	if model.LastLat != nil && model.LastLng != nil {
		driver.LastLocation = &geo.Point{Lat: *model.LastLat, Lng: *model.LastLng}
	}

	return driver
}

func ToDriverDomainList(models []DriverDB) []entities.Driver {
	drivers := make([]entities.Driver, 0, len(models))
	for i := range models {
		drivers = append(drivers, *ToDriverDomain(&models[i]))
	}
	return drivers
}

func ToAssignmentDomain(model *AssignmentDB) *entities.Assignment {
	return &entities.Assignment{
		ID:         model.ID,
		OrderID:    model.OrderID,
		DriverID:   model.DriverID,
		DistanceKm: model.DistanceKm,
		ETA:        model.ETA,
		CreatedAt:  model.CreatedAt,
	}
}
