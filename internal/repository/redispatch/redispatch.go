package redispatch

import (
	"context"
	"fmt"
	"time"

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

// Enqueue ставит заказ в очередь повторов, повторная постановка
// уже ожидающего заказа не ошибка.
func (r *Repository) Enqueue(ctx context.Context, orderID string, nextAttemptAt time.Time) error {
	query := `
		INSERT INTO redispatch_queue (order_id, attempts, next_attempt_at)
		VALUES ($1, 0, $2)
		ON CONFLICT (order_id) DO NOTHING
	`

	_, err := r.querier.Exec(ctx, query, orderID, nextAttemptAt)
	if err != nil {
		return fmt.Errorf("unexpected redispatch repository enqueue error: %w", err)
	}

	return nil
}

// ClaimDue забирает созревшие записи под блокировкой.
// SKIP LOCKED позволяет нескольким воркерам не мешать друг другу,
// а по одному заказу в момент времени работает ровно один.
func (r *Repository) ClaimDue(ctx context.Context, limit int) ([]entities.RedispatchItem, error) {
	query := `
		SELECT order_id, attempts, next_attempt_at, created_at, updated_at
		FROM redispatch_queue
		WHERE next_attempt_at <= NOW()
		ORDER BY next_attempt_at
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`

	rows, err := r.querier.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("unexpected redispatch repository claim error: %w", err)
	}
	defer rows.Close()

	itemModels := make([]RedispatchItemDB, 0, limit)
	for rows.Next() {
		var itemDB RedispatchItemDB
		err := rows.Scan(
			&itemDB.OrderID,
			&itemDB.Attempts,
			&itemDB.NextAttemptAt,
			&itemDB.CreatedAt,
			&itemDB.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected redispatch repository claim error: %w", err)
		}
		itemModels = append(itemModels, itemDB)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected redispatch repository claim error: %w", err)
	}

	return ToRedispatchItemDomainList(itemModels), nil
}

func (r *Repository) Delete(ctx context.Context, orderID string) error {
	query := `
		DELETE FROM redispatch_queue
		WHERE order_id = $1
	`

	_, err := r.querier.Exec(ctx, query, orderID)
	if err != nil {
		return fmt.Errorf("unexpected redispatch repository delete error: %w", err)
	}

	return nil
}

// Reschedule фиксирует неудачную попытку и назначает следующую.
func (r *Repository) Reschedule(ctx context.Context, orderID string, attempts int, nextAttemptAt time.Time) error {
	query := `
		UPDATE redispatch_queue
		SET attempts = $1,
		    next_attempt_at = $2,
		    updated_at = NOW()
		WHERE order_id = $3
	`

	_, err := r.querier.Exec(ctx, query, attempts, nextAttemptAt, orderID)
	if err != nil {
		return fmt.Errorf("unexpected redispatch repository reschedule error: %w", err)
	}

	return nil
}
