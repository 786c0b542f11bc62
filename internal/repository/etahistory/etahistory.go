package etahistory

import (
	"context"
	"fmt"

	"shipflow/internal/entities"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, record entities.EtaHistory) (*entities.EtaHistory, error) {
	query := `
		INSERT INTO eta_history (order_id, driver_id, distance_km, predicted_minutes, actual_minutes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, order_id, driver_id, distance_km, predicted_minutes, actual_minutes, created_at
	`

	var recordDB EtaHistoryDB
	err := r.querier.QueryRow(
		ctx,
		query,
		record.OrderID,
		record.DriverID,
		record.DistanceKm,
		record.PredictedMinutes,
		record.ActualMinutes,
	).Scan(
		&recordDB.ID,
		&recordDB.OrderID,
		&recordDB.DriverID,
		&recordDB.DistanceKm,
		&recordDB.PredictedMinutes,
		&recordDB.ActualMinutes,
		&recordDB.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("unexpected eta history repository create error: %w", err)
	}

	return ToEtaHistoryDomain(&recordDB), nil
}

// LastByDriver свежие записи водителя, не больше limit.
func (r *Repository) LastByDriver(ctx context.Context, driverID string, limit int) ([]entities.EtaHistory, error) {
	query := `
		SELECT id, order_id, driver_id, distance_km, predicted_minutes, actual_minutes, created_at
		FROM eta_history
		WHERE driver_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.querier.Query(ctx, query, driverID, limit)
	if err != nil {
		return nil, fmt.Errorf("unexpected eta history repository query error: %w", err)
	}
	defer rows.Close()

	recordModels := make([]EtaHistoryDB, 0, limit)
	for rows.Next() {
		var recordDB EtaHistoryDB
		err := rows.Scan(
			&recordDB.ID,
			&recordDB.OrderID,
			&recordDB.DriverID,
			&recordDB.DistanceKm,
			&recordDB.PredictedMinutes,
			&recordDB.ActualMinutes,
			&recordDB.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected eta history repository query error: %w", err)
		}
		recordModels = append(recordModels, recordDB)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected eta history repository query error: %w", err)
	}

	return ToEtaHistoryDomainList(recordModels), nil
}
