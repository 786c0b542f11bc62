package driver

import (
	"shipflow/internal/entities"
	"shipflow/pkg/geo"
)

func ToDriverDomain(model *DriverDB) *entities.Driver {
	drv := &entities.Driver{
		ID:        model.ID,
		Name:      model.Name,
		Capacity:  model.Capacity,
		Status:    entities.DriverStatusType(model.Status),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	if model.LastLat != nil && model.LastLng != nil {
		drv.LastLocation = &geo.Point{Lat: *model.LastLat, Lng: *model.LastLng}
	}

	return drv
}

func ToDriverDomainList(models []DriverDB) []entities.Driver {
	drivers := make([]entities.Driver, 0, len(models))
	for i := range models {
		drivers = append(drivers, *ToDriverDomain(&models[i]))
	}
	return drivers
}
