//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=redispatch_test
package redispatch

import (
	"context"
	"time"

	"shipflow/internal/entities"
)

type Repository interface {
	Enqueue(ctx context.Context, orderID string, nextAttemptAt time.Time) error
	ClaimDue(ctx context.Context, limit int) ([]entities.RedispatchItem, error)
	Delete(ctx context.Context, orderID string) error
	Reschedule(ctx context.Context, orderID string, attempts int, nextAttemptAt time.Time) error
}

type Dispatcher interface {
	Dispatch(ctx context.Context, orderID string) (*entities.Assignment, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, orderID, eventType string, payload any) (*entities.Event, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
