package dispatch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"shipflow/internal/entities"
	"shipflow/internal/service/eta"
	"shipflow/pkg/geo"
)

type Dispatch struct {
	repository Repository
	etaService EtaService
	events     EventPublisher
	txManager  TxManager
}

func New(
	repository Repository,
	etaService EtaService,
	events EventPublisher,
	txManager TxManager,
) *Dispatch {
	return &Dispatch{
		repository: repository,
		etaService: etaService,
		events:     events,
		txManager:  txManager,
	}
}

type assignmentPayload struct {
	OrderID    string    `json:"orderId"`
	DriverID   string    `json:"driverId"`
	DistanceKm float64   `json:"distanceKm"`
	EtaMinutes int       `json:"etaMinutes"`
	ETA        time.Time `json:"eta"`
}

type etaUpdatedPayload struct {
	OrderID    string    `json:"orderId"`
	DriverID   string    `json:"driverId"`
	DistanceKm float64   `json:"distanceKm"`
	EtaMinutes int       `json:"etaMinutes"`
	Adjustment float64   `json:"adjustment"`
	ETA        time.Time `json:"eta"`
}

type statusPayload struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

type completedPayload struct {
	OrderID          string `json:"orderId"`
	DriverID         string `json:"driverId"`
	PredictedMinutes int64  `json:"predictedMinutes"`
	ActualMinutes    int64  `json:"actualMinutes"`
}

type slaBreachPayload struct {
	OrderID   string    `json:"orderId"`
	DriverID  string    `json:"driverId"`
	ETA       time.Time `json:"eta"`
	WindowEnd time.Time `json:"windowEnd"`
}

// Dispatch подбирает ближайшего свободного водителя и закрепляет его за заказом.
// Заказ резервируется переводом pending -> assigned в начале транзакции,
// при отсутствии кандидатов транзакция откатывается и заказ остается pending.
func (d *Dispatch) Dispatch(ctx context.Context, orderID string) (*entities.Assignment, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	var (
		assignment *entities.Assignment
		prediction *entities.EtaPrediction
		driverID   string
	)

	err := d.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := d.repository.UpdateOrderStatus(
			ctx,
			orderID,
			[]entities.OrderStatusType{entities.OrderPending},
			entities.OrderAssigned,
		)
		if err != nil {
			return fmt.Errorf("reserve order: %w", err)
		}

		drivers, err := d.repository.GetEligibleDrivers(ctx, order.Weight)
		if err != nil {
			return fmt.Errorf("eligible drivers: %w", err)
		}

		nearest := nearestDriver(drivers, order.Pickup)
		if nearest == nil {
			return ErrNoDriversAvailable
		}

		prediction, err = d.etaService.Predict(ctx, *nearest, *order)
		if err != nil {
			return fmt.Errorf("predict eta: %w", err)
		}

		assignmentModify := entities.AssignmentModify{
			OrderID:    &order.ID,
			DriverID:   &nearest.ID,
			DistanceKm: &prediction.DistanceKm,
			ETA:        &prediction.PredictedETA,
		}

		assignment, err = d.repository.CreateAssignment(ctx, assignmentModify)
		if err != nil {
			return fmt.Errorf("create assignment: %w", err)
		}

		err = d.repository.UpdateDriverStatus(ctx, nearest.ID, entities.DriverBusy)
		if err != nil {
			return fmt.Errorf("update driver status: %w", err)
		}

		driverID = nearest.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	_, err = d.events.Publish(ctx, orderID, entities.EventAssignmentCreated, assignmentPayload{
		OrderID:    orderID,
		DriverID:   driverID,
		DistanceKm: prediction.DistanceKm,
		EtaMinutes: prediction.EtaMinutes,
		ETA:        prediction.PredictedETA,
	})
	if err != nil {
		return nil, fmt.Errorf("publish assignment event: %w", err)
	}

	_, err = d.events.Publish(ctx, orderID, entities.EventEtaUpdated, etaUpdatedPayload{
		OrderID:    orderID,
		DriverID:   driverID,
		DistanceKm: prediction.DistanceKm,
		EtaMinutes: prediction.EtaMinutes,
		Adjustment: prediction.Adjustment,
		ETA:        prediction.PredictedETA,
	})
	if err != nil {
		return nil, fmt.Errorf("publish eta event: %w", err)
	}

	return assignment, nil
}

// MarkDelivered водитель отметил передачу заказа, ждем подтверждения клиента.
func (d *Dispatch) MarkDelivered(ctx context.Context, orderID string) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	order, err := d.repository.UpdateOrderStatus(
		ctx,
		orderID,
		[]entities.OrderStatusType{entities.OrderAssigned},
		entities.OrderDeliveredPending,
	)
	if err != nil {
		return nil, err
	}

	_, err = d.events.Publish(ctx, orderID, entities.EventOrderDelivered, statusPayload{
		OrderID: orderID,
		Status:  order.Status.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("publish delivered event: %w", err)
	}

	return order, nil
}

// ConfirmDelivery подтверждение клиента после отметки водителя.
func (d *Dispatch) ConfirmDelivery(ctx context.Context, orderID string) (*entities.Order, error) {
	return d.complete(ctx, orderID, []entities.OrderStatusType{entities.OrderDeliveredPending})
}

// CompleteOrder завершение в один шаг, без промежуточного delivered_pending.
func (d *Dispatch) CompleteOrder(ctx context.Context, orderID string) (*entities.Order, error) {
	return d.complete(ctx, orderID, []entities.OrderStatusType{
		entities.OrderAssigned,
		entities.OrderDeliveredPending,
	})
}

func (d *Dispatch) complete(ctx context.Context, orderID string, from []entities.OrderStatusType) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	var (
		order     *entities.Order
		outcome   entities.EtaHistory
		completed = time.Now().UTC()
	)

	err := d.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = d.repository.UpdateOrderStatus(ctx, orderID, from, entities.OrderCompleted)
		if err != nil {
			return fmt.Errorf("complete order: %w", err)
		}

		assignment, err := d.repository.GetAssignmentByOrderID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get assignment: %w", err)
		}

		outcome = entities.EtaHistory{
			OrderID:          orderID,
			DriverID:         assignment.DriverID,
			DistanceKm:       assignment.DistanceKm,
			PredictedMinutes: roundedMinutes(assignment.CreatedAt, assignment.ETA),
			ActualMinutes:    roundedMinutes(assignment.CreatedAt, completed),
		}

		err = d.etaService.RecordOutcome(ctx, outcome)
		if err != nil {
			return fmt.Errorf("record eta outcome: %w", err)
		}

		err = d.repository.UpdateDriverStatus(ctx, assignment.DriverID, entities.DriverAvailable)
		if err != nil {
			return fmt.Errorf("release driver: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_, err = d.events.Publish(ctx, orderID, entities.EventOrderCompleted, completedPayload{
		OrderID:          orderID,
		DriverID:         outcome.DriverID,
		PredictedMinutes: outcome.PredictedMinutes,
		ActualMinutes:    outcome.ActualMinutes,
	})
	if err != nil {
		return nil, fmt.Errorf("publish completed event: %w", err)
	}

	return order, nil
}

// RefreshEtas пересчитывает прогнозы активных назначений по свежим
// координатам водителей. Прогноз позже дедлайна окна доставки дает SLA_BREACH.
// Возвращает число обновленных назначений.
func (d *Dispatch) RefreshEtas(ctx context.Context) (int64, error) {
	assignments, err := d.repository.GetActiveAssignments(ctx)
	if err != nil {
		return 0, fmt.Errorf("active assignments: %w", err)
	}

	var updated int64
	for _, assignment := range assignments {
		driver, err := d.repository.GetDriverByID(ctx, assignment.DriverID)
		if err != nil {
			return updated, fmt.Errorf("get driver: %w", err)
		}

		order, err := d.repository.GetOrderByID(ctx, assignment.OrderID)
		if err != nil {
			return updated, fmt.Errorf("get order: %w", err)
		}

		prediction, err := d.etaService.Predict(ctx, *driver, *order)
		if err != nil {
			// водитель без координат не пересчитывается, прогноз остается прежним
			if errors.Is(err, eta.ErrNoLocationData) {
				continue
			}
			return updated, fmt.Errorf("predict eta: %w", err)
		}

		err = d.repository.UpdateAssignmentETA(ctx, assignment.ID, prediction.PredictedETA, prediction.DistanceKm)
		if err != nil {
			return updated, fmt.Errorf("update assignment eta: %w", err)
		}

		_, err = d.events.Publish(ctx, assignment.OrderID, entities.EventEtaUpdated, etaUpdatedPayload{
			OrderID:    assignment.OrderID,
			DriverID:   assignment.DriverID,
			DistanceKm: prediction.DistanceKm,
			EtaMinutes: prediction.EtaMinutes,
			Adjustment: prediction.Adjustment,
			ETA:        prediction.PredictedETA,
		})
		if err != nil {
			return updated, fmt.Errorf("publish eta event: %w", err)
		}

		if prediction.PredictedETA.After(order.WindowEnd) {
			_, err = d.events.Publish(ctx, assignment.OrderID, entities.EventSlaBreach, slaBreachPayload{
				OrderID:   assignment.OrderID,
				DriverID:  assignment.DriverID,
				ETA:       prediction.PredictedETA,
				WindowEnd: order.WindowEnd,
			})
			if err != nil {
				return updated, fmt.Errorf("publish sla breach event: %w", err)
			}
		}

		updated++
	}

	return updated, nil
}

// nearestDriver водитель с минимальной дистанцией до точки забора.
// Водители без известных координат не участвуют в выборе.
func nearestDriver(drivers []entities.Driver, pickup geo.Point) *entities.Driver {
	var (
		nearest *entities.Driver
		best    = math.MaxFloat64
	)

	for i := range drivers {
		if drivers[i].LastLocation == nil {
			continue
		}

		distance := geo.Distance(*drivers[i].LastLocation, pickup)
		if distance < best {
			best = distance
			nearest = &drivers[i]
		}
	}

	return nearest
}

func roundedMinutes(from, to time.Time) int64 {
	minutes := int64(math.Round(to.Sub(from).Minutes()))
	if minutes < 1 {
		return 1
	}
	return minutes
}
