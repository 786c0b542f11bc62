package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"shipflow/internal/entities"
	"shipflow/internal/service/driver"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Upsert создает водителя либо обновляет статус и координаты существующего.
// Имя и вместимость перезаписываются только непустыми значениями.
func (r *Repository) Upsert(ctx context.Context, drv entities.Driver) (*entities.Driver, error) {
	query := `
		INSERT INTO drivers (id, name, vehicle_capacity, status, last_lat, last_lng)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name             = COALESCE(NULLIF(EXCLUDED.name, ''), drivers.name),
			vehicle_capacity = CASE WHEN EXCLUDED.vehicle_capacity > 0 THEN EXCLUDED.vehicle_capacity ELSE drivers.vehicle_capacity END,
			status           = EXCLUDED.status,
			last_lat         = COALESCE(EXCLUDED.last_lat, drivers.last_lat),
			last_lng         = COALESCE(EXCLUDED.last_lng, drivers.last_lng),
			updated_at       = NOW()
		RETURNING id, name, vehicle_capacity, status, last_lat, last_lng, created_at, updated_at
	`

	var lastLat, lastLng *float64
	if drv.LastLocation != nil {
		lastLat = &drv.LastLocation.Lat
		lastLng = &drv.LastLocation.Lng
	}

	var driverDB DriverDB
	err := r.querier.QueryRow(
		ctx,
		query,
		drv.ID,
		drv.Name,
		drv.Capacity,
		drv.Status.String(),
		lastLat,
		lastLng,
	).Scan(
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
		return nil, fmt.Errorf("unexpected driver repository upsert error: %w", err)
	}

	return ToDriverDomain(&driverDB), nil
}

func (r *Repository) GetByID(ctx context.Context, driverID string) (*entities.Driver, error) {
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
			return nil, driver.ErrDriverNotFound
		}
		return nil, fmt.Errorf("unexpected driver repository get error: %w", err)
	}

	return ToDriverDomain(&driverDB), nil
}

func (r *Repository) GetAll(ctx context.Context) ([]entities.Driver, error) {
	query := `
		SELECT id, name, vehicle_capacity, status, last_lat, last_lng, created_at, updated_at
		FROM drivers
		ORDER BY id
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected driver repository list error: %w", err)
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
			return nil, fmt.Errorf("unexpected driver repository list error: %w", err)
		}
		driverModels = append(driverModels, driverDB)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected driver repository list error: %w", err)
	}

	return ToDriverDomainList(driverModels), nil
}
