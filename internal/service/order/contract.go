//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_test
package order

import (
	"context"

	"shipflow/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, order entities.Order) (*entities.Order, error)
	GetByID(ctx context.Context, orderID string) (*entities.Order, error)
	Update(ctx context.Context, orderID string, modify entities.OrderModify) (*entities.Order, error)
	GetAll(ctx context.Context, status *entities.OrderStatusType) ([]entities.Order, error)
	GetUnassigned(ctx context.Context) ([]entities.Order, error)
	GetTracking(ctx context.Context, orderID string) (*entities.TrackingInfo, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, orderID string) (*entities.Assignment, error)
}

type RedispatchQueue interface {
	Enqueue(ctx context.Context, orderID string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, orderID, eventType string, payload any) (*entities.Event, error)
}
