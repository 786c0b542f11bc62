package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"shipflow/internal/entities"
	"shipflow/internal/service/dispatch"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) GetOrderByID(ctx context.Context, orderID string) (*entities.Order, error) {
	query := `
		SELECT id, pickup_lat, pickup_lng, dropoff_lat, dropoff_lng,
		       weight, window_start, window_end, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var orderDB OrderDB
	err := r.querier.QueryRow(ctx, query, orderID).Scan(
		&orderDB.ID,
		&orderDB.PickupLat,
		&orderDB.PickupLng,
		&orderDB.DropoffLat,
		&orderDB.DropoffLng,
		&orderDB.Weight,
		&orderDB.WindowStart,
		&orderDB.WindowEnd,
		&orderDB.Status,
		&orderDB.CreatedAt,
		&orderDB.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dispatch.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected dispatch repository get order error: %w", err)
	}

	return ToOrderDomain(&orderDB), nil
}

func (r *Repository) GetDriverByID(ctx context.Context, driverID string) (*entities.Driver, error) {
	query := `
		SELECT id, name, vehicle_capacity, status, last_lat, last_lng, created_at, updated_at
		FROM drivers
		WHERE id = $1
	`

	var driverDB DriverDB
	err := r.querier.QueryRow(ctx, query, driverID).Scan(
		&driverDB.ID,
		&driverDB.Name,
		&driverDB.Capacity,
		&driverDB.Status,
		&driverDB.LastLat,
		&driverDB.LastLng,
		&driverDB.CreatedAt,
		&driverDB.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dispatch.ErrDriverNotFound
		}
		return nil, fmt.Errorf("unexpected dispatch repository get driver error: %w", err)
	}

	return ToDriverDomain(&driverDB), nil
}

// GetEligibleDrivers доступные водители с достаточной вместимостью.
// Порядок стабилен (по id), чтобы выбор при равных дистанциях был детерминирован.
func (r *Repository) GetEligibleDrivers(ctx context.Context, minCapacity int64) ([]entities.Driver, error) {
	builder := qb.
		Select("id", "name", "vehicle_capacity", "status", "last_lat", "last_lng", "created_at", "updated_at").
		From("drivers").
		Where(sq.Eq{"status": entities.DriverAvailable.String()}).
		Where(sq.GtOrEq{"vehicle_capacity": minCapacity}).
		OrderBy("id")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected dispatch repository eligible drivers error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected dispatch repository eligible drivers error: %w", err)
	}
	defer rows.Close()

	driverModels := make([]DriverDB, 0, 8)
	for rows.Next() {
		var driverDB DriverDB
		err := rows.Scan(
			&driverDB.ID,
			&driverDB.Name,
			&driverDB.Capacity,
			&driverDB.Status,
			&driverDB.LastLat,
			&driverDB.LastLng,
			&driverDB.CreatedAt,
			&driverDB.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected dispatch repository eligible drivers error: %w", err)
		}
		driverModels = append(driverModels, driverDB)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected dispatch repository eligible drivers error: %w", err)
	}

	return ToDriverDomainList(driverModels), nil
}

func (r *Repository) CreateAssignment(ctx context.Context, assignmentModify entities.AssignmentModify) (*entities.Assignment, error) {
	query := `
		INSERT INTO assignments (order_id, driver_id, distance_km, eta)
		VALUES ($1, $2, $3, $4)
		RETURNING id, order_id, driver_id, distance_km, eta, created_at
	`

	var assignmentDB AssignmentDB
	err := r.querier.QueryRow(
		ctx,
		query,
		assignmentModify.OrderID,
		assignmentModify.DriverID,
		assignmentModify.DistanceKm,
		assignmentModify.ETA,
	).Scan(
		&assignmentDB.ID,
		&assignmentDB.OrderID,
		&assignmentDB.DriverID,
		&assignmentDB.DistanceKm,
		&assignmentDB.ETA,
		&assignmentDB.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("unexpected dispatch repository create assignment error: %w", err)
	}

	return ToAssignmentDomain(&assignmentDB), nil
}

// GetAssignmentByOrderID последнее по времени назначение заказа.
func (r *Repository) GetAssignmentByOrderID(ctx context.Context, orderID string) (*entities.Assignment, error) {
	query := `
		SELECT id, order_id, driver_id, distance_km, eta, created_at
		FROM assignments
		WHERE order_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	var assignmentDB AssignmentDB
	err := r.querier.QueryRow(ctx, query, orderID).Scan(
		&assignmentDB.ID,
		&assignmentDB.OrderID,
		&assignmentDB.DriverID,
		&assignmentDB.DistanceKm,
		&assignmentDB.ETA,
		&assignmentDB.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dispatch.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("unexpected dispatch repository get assignment error: %w", err)
	}

	return ToAssignmentDomain(&assignmentDB), nil
}

func (r *Repository) GetAssignmentByID(ctx context.Context, assignmentID int64) (*entities.Assignment, error) {
	query := `
		SELECT id, order_id, driver_id, distance_km, eta, created_at
		FROM assignments
		WHERE id = $1
	`

	var assignmentDB AssignmentDB
	err := r.querier.QueryRow(ctx, query, assignmentID).Scan(
		&assignmentDB.ID,
		&assignmentDB.OrderID,
		&assignmentDB.DriverID,
		&assignmentDB.DistanceKm,
		&assignmentDB.ETA,
		&assignmentDB.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dispatch.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("unexpected dispatch repository get assignment error: %w", err)
	}

	return ToAssignmentDomain(&assignmentDB), nil
}

// UpdateOrderStatus переводит заказ из одного из состояний from в to.
// Условный UPDATE вместо блокировки: второй конкурирующий переход
// не найдет строку в нужном статусе и получит ErrInvalidState.
func (r *Repository) UpdateOrderStatus(ctx context.Context, orderID string, from []entities.OrderStatusType, to entities.OrderStatusType) (*entities.Order, error) {
	fromStatuses := make([]string, 0, len(from))
	for _, status := range from {
		fromStatuses = append(fromStatuses, status.String())
	}

	query := `
		UPDATE orders
		SET status = $1,
		    updated_at = NOW()
		WHERE id = $2 AND status = ANY($3)
		RETURNING id, pickup_lat, pickup_lng, dropoff_lat, dropoff_lng,
		          weight, window_start, window_end, status, created_at, updated_at
	`

	var orderDB OrderDB
	err := r.querier.QueryRow(ctx, query, to.String(), orderID, fromStatuses).Scan(
		&orderDB.ID,
		&orderDB.PickupLat,
		&orderDB.PickupLng,
		&orderDB.DropoffLat,
		&orderDB.DropoffLng,
		&orderDB.Weight,
		&orderDB.WindowStart,
		&orderDB.WindowEnd,
		&orderDB.Status,
		&orderDB.CreatedAt,
		&orderDB.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// различаем отсутствие заказа и неподходящий статус
			_, getErr := r.GetOrderByID(ctx, orderID)
			if getErr != nil {
				return nil, getErr
			}
			return nil, dispatch.ErrInvalidState
		}
		return nil, fmt.Errorf("unexpected dispatch repository update order status error: %w", err)
	}

	return ToOrderDomain(&orderDB), nil
}

// UpdateDriverStatus перевод водителя busy/available в рамках транзакции назначения.
func (r *Repository) UpdateDriverStatus(ctx context.Context, driverID string, status entities.DriverStatusType) error {
	query := `
		UPDATE drivers
		SET status = $1,
		    updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.querier.Exec(ctx, query, status.String(), driverID)
	if err != nil {
		return fmt.Errorf("unexpected dispatch repository update driver status error: %w", err)
	}

	if result.RowsAffected() == 0 {
		return dispatch.ErrDriverNotFound
	}

	return nil
}

// GetActiveAssignments последнее назначение каждого заказа в статусе assigned,
// для периодического пересчета ETA.
func (r *Repository) GetActiveAssignments(ctx context.Context) ([]entities.Assignment, error) {
	query := `
		SELECT DISTINCT ON (a.order_id)
		       a.id, a.order_id, a.driver_id, a.distance_km, a.eta, a.created_at
		FROM assignments a
		JOIN orders o ON o.id = a.order_id
		WHERE o.status = 'assigned'
		ORDER BY a.order_id, a.created_at DESC, a.id DESC
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected dispatch repository active assignments error: %w", err)
	}
	defer rows.Close()

	assignments := make([]entities.Assignment, 0, 8)
	for rows.Next() {
		var assignmentDB AssignmentDB
		err := rows.Scan(
			&assignmentDB.ID,
			&assignmentDB.OrderID,
			&assignmentDB.DriverID,
			&assignmentDB.DistanceKm,
			&assignmentDB.ETA,
			&assignmentDB.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected dispatch repository active assignments error: %w", err)
		}
		assignments = append(assignments, *ToAssignmentDomain(&assignmentDB))
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected dispatch repository active assignments error: %w", err)
	}

	return assignments, nil
}

func (r *Repository) UpdateAssignmentETA(ctx context.Context, assignmentID int64, eta time.Time, distanceKm float64) error {
	query := `
		UPDATE assignments
		SET eta = $1,
		    distance_km = $2
		WHERE id = $3
	`

	result, err := r.querier.Exec(ctx, query, eta, distanceKm, assignmentID)
	if err != nil {
		return fmt.Errorf("unexpected dispatch repository update eta error: %w", err)
	}

	if result.RowsAffected() == 0 {
		return dispatch.ErrAssignmentNotFound
	}

	return nil
}
