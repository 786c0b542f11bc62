package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shipflow/internal/entities"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100

	// byOrderLimit сколько последних событий заказа отдается по умолчанию.
	byOrderLimit = 100
)

type Events struct {
	repository Repository
	publisher  EventPublisher
}

func New(repository Repository, publisher EventPublisher) *Events {
	return &Events{
		repository: repository,
		publisher:  publisher,
	}
}

type exceptionPayload struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"`
}

// Query журнал событий с фильтрами, страницы нумеруются с единицы.
func (e *Events) Query(ctx context.Context, filter entities.EventFilter) (*entities.EventPage, error) {
	if filter.Page < 1 {
		filter.Page = defaultPage
	}
	if filter.Limit < 1 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}

	return e.repository.Query(ctx, filter)
}

// ByOrder последние события заказа в порядке возрастания sequence.
func (e *Events) ByOrder(ctx context.Context, orderID string) ([]entities.Event, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, ErrInvalidOrderID
	}
	return e.repository.LastByOrder(ctx, orderID, byOrderLimit)
}

// Retention удаляет события старше daysToKeep дней, возвращает число удаленных.
func (e *Events) Retention(ctx context.Context, daysToKeep int) (int64, error) {
	if daysToKeep < 1 {
		return 0, ErrInvalidRetention
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -daysToKeep)
	deleted, err := e.repository.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old events: %w", err)
	}

	return deleted, nil
}

// ReportException ручная фиксация срыва SLA оператором.
func (e *Events) ReportException(ctx context.Context, orderID, reason string) (*entities.Event, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, ErrInvalidOrderID
	}
	if strings.TrimSpace(reason) == "" {
		return nil, ErrEmptyReason
	}

	event, err := e.publisher.Publish(ctx, orderID, entities.EventSlaBreach, exceptionPayload{
		OrderID: orderID,
		Reason:  reason,
	})
	if err != nil {
		return nil, fmt.Errorf("publish exception event: %w", err)
	}

	return event, nil
}
