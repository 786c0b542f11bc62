package order

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"shipflow/internal/entities"
	"shipflow/internal/repository"
	"shipflow/internal/service/order"
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

func (r *Repository) Create(ctx context.Context, ord entities.Order) (*entities.Order, error) {
	query := `
		INSERT INTO orders (id, pickup_lat, pickup_lng, dropoff_lat, dropoff_lng,
		                    weight, window_start, window_end, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, pickup_lat, pickup_lng, dropoff_lat, dropoff_lng,
		          weight, window_start, window_end, status, created_at, updated_at
	`

	var orderDB OrderDB
	err := r.querier.QueryRow(
		ctx,
		query,
		ord.ID,
		ord.Pickup.Lat,
		ord.Pickup.Lng,
		ord.Dropoff.Lat,
		ord.Dropoff.Lng,
		ord.Weight,
		ord.WindowStart,
		ord.WindowEnd,
		ord.Status.String(),
	).Scan(
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
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, order.ErrOrderAlreadyExists
		}
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	return ToOrderDomain(&orderDB), nil
}

func (r *Repository) GetByID(ctx context.Context, orderID string) (*entities.Order, error) {
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
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository get error: %w", err)
	}

	return ToOrderDomain(&orderDB), nil
}

func (r *Repository) Update(ctx context.Context, orderID string, modify entities.OrderModify) (*entities.Order, error) {
	builder := qb.
		Update("orders").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": orderID}).
		Suffix(`RETURNING id, pickup_lat, pickup_lng, dropoff_lat, dropoff_lng,
		        weight, window_start, window_end, status, created_at, updated_at`)

	if modify.Pickup != nil {
		builder = builder.
			Set("pickup_lat", modify.Pickup.Lat).
			Set("pickup_lng", modify.Pickup.Lng)
	}
	if modify.Dropoff != nil {
		builder = builder.
			Set("dropoff_lat", modify.Dropoff.Lat).
			Set("dropoff_lng", modify.Dropoff.Lng)
	}
	if modify.Weight != nil {
		builder = builder.Set("weight", *modify.Weight)
	}
	if modify.WindowStart != nil {
		builder = builder.Set("window_start", *modify.WindowStart)
	}
	if modify.WindowEnd != nil {
		builder = builder.Set("window_end", *modify.WindowEnd)
	}
	if modify.Status != nil {
		builder = builder.Set("status", modify.Status.String())
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	var orderDB OrderDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(
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
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	return ToOrderDomain(&orderDB), nil
}

func (r *Repository) GetAll(ctx context.Context, status *entities.OrderStatusType) ([]entities.Order, error) {
	builder := qb.
		Select("id", "pickup_lat", "pickup_lng", "dropoff_lat", "dropoff_lng",
			"weight", "window_start", "window_end", "status", "created_at", "updated_at").
		From("orders").
		OrderBy("created_at DESC")

	if status != nil {
		builder = builder.Where(sq.Eq{"status": status.String()})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}

	return r.queryOrders(ctx, query, args...)
}

// GetUnassigned заказы без водителя, старые раньше.
func (r *Repository) GetUnassigned(ctx context.Context) ([]entities.Order, error) {
	query := `
		SELECT id, pickup_lat, pickup_lng, dropoff_lat, dropoff_lng,
		       weight, window_start, window_end, status, created_at, updated_at
		FROM orders
		WHERE status = 'pending'
		ORDER BY created_at
	`

	return r.queryOrders(ctx, query)
}

// GetTracking заказ вместе с последним назначением и водителем одной выборкой.
func (r *Repository) GetTracking(ctx context.Context, orderID string) (*entities.TrackingInfo, error) {
	query := `
		SELECT o.id, o.status, a.driver_id, d.name, d.status, a.eta
		FROM orders o
		LEFT JOIN LATERAL (
			SELECT driver_id, eta
			FROM assignments
			WHERE order_id = o.id
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		) a ON TRUE
		LEFT JOIN drivers d ON d.id = a.driver_id
		WHERE o.id = $1
	`

	var trackingDB TrackingDB
	err := r.querier.QueryRow(ctx, query, orderID).Scan(
		&trackingDB.OrderID,
		&trackingDB.Status,
		&trackingDB.DriverID,
		&trackingDB.DriverName,
		&trackingDB.DriverStatus,
		&trackingDB.ETA,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository tracking error: %w", err)
	}

	return ToTrackingDomain(&trackingDB), nil
}

func (r *Repository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]entities.Order, error) {
	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository query error: %w", err)
	}
	defer rows.Close()

	orderModels := make([]OrderDB, 0, 8)
	for rows.Next() {
		var orderDB OrderDB
		err := rows.Scan(
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
			return nil, fmt.Errorf("unexpected order repository query error: %w", err)
		}
		orderModels = append(orderModels, orderDB)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository query error: %w", err)
	}

	return ToOrderDomainList(orderModels), nil
}
