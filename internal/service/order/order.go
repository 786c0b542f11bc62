package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipflow/internal/entities"
	"shipflow/internal/service/dispatch"
	"shipflow/pkg/geo"
)

type Order struct {
	repository      Repository
	dispatcher      Dispatcher
	redispatchQueue RedispatchQueue
	events          EventPublisher
}

func New(
	repository Repository,
	dispatcher Dispatcher,
	redispatchQueue RedispatchQueue,
	events EventPublisher,
) *Order {
	return &Order{
		repository:      repository,
		dispatcher:      dispatcher,
		redispatchQueue: redispatchQueue,
		events:          events,
	}
}

type orderPayload struct {
	OrderID     string    `json:"orderId"`
	Pickup      geo.Point `json:"pickup"`
	Dropoff     geo.Point `json:"dropoff"`
	Weight      int64     `json:"weight"`
	WindowStart time.Time `json:"windowStart"`
	WindowEnd   time.Time `json:"windowEnd"`
	Status      string    `json:"status"`
}

type queuedPayload struct {
	OrderID string `json:"orderId"`
	Final   bool   `json:"final"`
}

// CreateOrder регистрирует заказ и сразу пробует назначить водителя.
// Если свободных водителей нет, заказ уходит в очередь повторной
// диспетчеризации и остается pending.
func (o *Order) CreateOrder(ctx context.Context, ord entities.Order) (*entities.Order, error) {
	err := validateOrder(ord)
	if err != nil {
		return nil, err
	}

	ord.Status = entities.OrderPending
	created, err := o.repository.Create(ctx, ord)
	if err != nil {
		return nil, err
	}

	_, err = o.events.Publish(ctx, created.ID, entities.EventOrderCreated, orderPayload{
		OrderID:     created.ID,
		Pickup:      created.Pickup,
		Dropoff:     created.Dropoff,
		Weight:      created.Weight,
		WindowStart: created.WindowStart,
		WindowEnd:   created.WindowEnd,
		Status:      created.Status.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("publish created event: %w", err)
	}

	_, err = o.dispatcher.Dispatch(ctx, created.ID)
	if err != nil {
		if !errors.Is(err, dispatch.ErrNoDriversAvailable) {
			return nil, fmt.Errorf("dispatch new order: %w", err)
		}

		err = o.redispatchQueue.Enqueue(ctx, created.ID)
		if err != nil {
			return nil, fmt.Errorf("enqueue redispatch: %w", err)
		}

		_, err = o.events.Publish(ctx, created.ID, entities.EventNoDriversAvailable, queuedPayload{
			OrderID: created.ID,
			Final:   false,
		})
		if err != nil {
			return nil, fmt.Errorf("publish no drivers event: %w", err)
		}

		return created, nil
	}

	return o.repository.GetByID(ctx, created.ID)
}

func (o *Order) UpdateOrder(ctx context.Context, orderID string, modify entities.OrderModify) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	err := validateModify(modify)
	if err != nil {
		return nil, err
	}

	updated, err := o.repository.Update(ctx, orderID, modify)
	if err != nil {
		return nil, err
	}

	_, err = o.events.Publish(ctx, orderID, entities.EventOrderUpdated, orderPayload{
		OrderID:     updated.ID,
		Pickup:      updated.Pickup,
		Dropoff:     updated.Dropoff,
		Weight:      updated.Weight,
		WindowStart: updated.WindowStart,
		WindowEnd:   updated.WindowEnd,
		Status:      updated.Status.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("publish updated event: %w", err)
	}

	return updated, nil
}

func (o *Order) GetOrder(ctx context.Context, orderID string) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}
	return o.repository.GetByID(ctx, orderID)
}

func (o *Order) ListOrders(ctx context.Context, status *entities.OrderStatusType) ([]entities.Order, error) {
	return o.repository.GetAll(ctx, status)
}

func (o *Order) UnassignedOrders(ctx context.Context) ([]entities.Order, error) {
	return o.repository.GetUnassigned(ctx)
}

func (o *Order) Tracking(ctx context.Context, orderID string) (*entities.TrackingInfo, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}
	return o.repository.GetTracking(ctx, orderID)
}
