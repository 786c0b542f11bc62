//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=driver_test
package driver

import (
	"context"

	"shipflow/internal/entities"
)

type Repository interface {
	Upsert(ctx context.Context, driver entities.Driver) (*entities.Driver, error)
	GetByID(ctx context.Context, driverID string) (*entities.Driver, error)
	GetAll(ctx context.Context) ([]entities.Driver, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, orderID, eventType string, payload any) (*entities.Event, error)
}
