//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=events_test
package events

import (
	"context"
	"time"

	"shipflow/internal/entities"
)

type Repository interface {
	Query(ctx context.Context, filter entities.EventFilter) (*entities.EventPage, error)
	LastByOrder(ctx context.Context, orderID string, limit int) ([]entities.Event, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, orderID, eventType string, payload any) (*entities.Event, error)
}
