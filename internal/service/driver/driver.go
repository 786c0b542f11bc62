package driver

import (
	"context"
	"fmt"

	"shipflow/internal/entities"
	"shipflow/pkg/geo"
)

type Driver struct {
	repository Repository
	events     EventPublisher
}

func New(repository Repository, events EventPublisher) *Driver {
	return &Driver{
		repository: repository,
		events:     events,
	}
}

type statusReportPayload struct {
	DriverID string     `json:"driverId"`
	Status   string     `json:"status"`
	Location *geo.Point `json:"location,omitempty"`
}

// ReportStatus принимает отчет водителя о статусе и координатах.
// Неизвестный водитель регистрируется на лету, известный обновляется.
func (d *Driver) ReportStatus(ctx context.Context, report entities.Driver) (*entities.Driver, error) {
	if !isValidDriverID(report.ID) {
		return nil, ErrInvalidDriverID
	}
	if !isValidStatus(report.Status) {
		return nil, ErrInvalidStatus
	}
	if report.LastLocation != nil && !isValidPoint(*report.LastLocation) {
		return nil, ErrInvalidCoordinates
	}
	if report.Capacity < 0 {
		return nil, ErrInvalidCapacity
	}

	updated, err := d.repository.Upsert(ctx, report)
	if err != nil {
		return nil, err
	}

	_, err = d.events.Publish(ctx, entities.SystemOrderID, entities.EventDriverStatus, statusReportPayload{
		DriverID: updated.ID,
		Status:   updated.Status.String(),
		Location: updated.LastLocation,
	})
	if err != nil {
		return nil, fmt.Errorf("publish driver status event: %w", err)
	}

	return updated, nil
}

func (d *Driver) GetDriver(ctx context.Context, driverID string) (*entities.Driver, error) {
	if !isValidDriverID(driverID) {
		return nil, ErrInvalidDriverID
	}
	return d.repository.GetByID(ctx, driverID)
}

func (d *Driver) ListDrivers(ctx context.Context) ([]entities.Driver, error) {
	return d.repository.GetAll(ctx)
}
