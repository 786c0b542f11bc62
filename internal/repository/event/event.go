package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"shipflow/internal/entities"
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

// Append пишет событие в журнал, sequence выдает база.
func (r *Repository) Append(ctx context.Context, orderID, eventType string, payload json.RawMessage) (*entities.Event, error) {
	query := `
		INSERT INTO events (order_id, type, payload)
		VALUES ($1, $2, $3)
		RETURNING sequence, order_id, type, payload, created_at
	`

	var eventDB EventDB
	err := r.querier.QueryRow(ctx, query, orderID, eventType, payload).Scan(
		&eventDB.Sequence,
		&eventDB.OrderID,
		&eventDB.Type,
		&eventDB.Payload,
		&eventDB.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("unexpected event repository append error: %w", err)
	}

	return ToEventDomain(&eventDB), nil
}

// LastByOrder последние limit событий заказа в порядке возрастания sequence.
func (r *Repository) LastByOrder(ctx context.Context, orderID string, limit int) ([]entities.Event, error) {
	query := `
		SELECT sequence, order_id, type, payload, created_at
		FROM (
			SELECT sequence, order_id, type, payload, created_at
			FROM events
			WHERE order_id = $1
			ORDER BY sequence DESC
			LIMIT $2
		) last
		ORDER BY sequence
	`

	rows, err := r.querier.Query(ctx, query, orderID, limit)
	if err != nil {
		return nil, fmt.Errorf("unexpected event repository query error: %w", err)
	}
	defer rows.Close()

	eventModels := make([]EventDB, 0, limit)
	for rows.Next() {
		var eventDB EventDB
		err := rows.Scan(
			&eventDB.Sequence,
			&eventDB.OrderID,
			&eventDB.Type,
			&eventDB.Payload,
			&eventDB.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected event repository query error: %w", err)
		}
		eventModels = append(eventModels, eventDB)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected event repository query error: %w", err)
	}

	return ToEventDomainList(eventModels), nil
}

// Query журнал с фильтрами и пагинацией, свежие события первыми.
func (r *Repository) Query(ctx context.Context, filter entities.EventFilter) (*entities.EventPage, error) {
	conditions := filterConditions(filter)

	countBuilder := qb.Select("COUNT(*)").From("events")
	for _, cond := range conditions {
		countBuilder = countBuilder.Where(cond)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected event repository query error: %w", err)
	}

	var total int64
	err = r.querier.QueryRow(ctx, countQuery, countArgs...).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("unexpected event repository query error: %w", err)
	}

	offset := uint64(filter.Page-1) * uint64(filter.Limit)
	builder := qb.
		Select("sequence", "order_id", "type", "payload", "created_at").
		From("events").
		OrderBy("sequence DESC").
		Limit(uint64(filter.Limit)).
		Offset(offset)
	for _, cond := range conditions {
		builder = builder.Where(cond)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected event repository query error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected event repository query error: %w", err)
	}
	defer rows.Close()

	eventModels := make([]EventDB, 0, filter.Limit)
	for rows.Next() {
		var eventDB EventDB
		err := rows.Scan(
			&eventDB.Sequence,
			&eventDB.OrderID,
			&eventDB.Type,
			&eventDB.Payload,
			&eventDB.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected event repository query error: %w", err)
		}
		eventModels = append(eventModels, eventDB)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected event repository query error: %w", err)
	}

	totalPages := total / int64(filter.Limit)
	if total%int64(filter.Limit) > 0 {
		totalPages++
	}

	return &entities.EventPage{
		Events:     ToEventDomainList(eventModels),
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(totalPages),
	}, nil
}

func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM events
		WHERE created_at < $1
	`

	result, err := r.querier.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("unexpected event repository delete error: %w", err)
	}

	return result.RowsAffected(), nil
}

func filterConditions(filter entities.EventFilter) []sq.Sqlizer {
	conditions := make([]sq.Sqlizer, 0, 5)

	if filter.OrderID != "" {
		conditions = append(conditions, sq.Eq{"order_id": filter.OrderID})
	}
	if filter.Type != "" {
		conditions = append(conditions, sq.Eq{"type": filter.Type})
	}
	if filter.FromDate != nil {
		conditions = append(conditions, sq.GtOrEq{"created_at": *filter.FromDate})
	}
	if filter.ToDate != nil {
		conditions = append(conditions, sq.LtOrEq{"created_at": *filter.ToDate})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conditions = append(conditions, sq.Or{
			sq.ILike{"type": pattern},
			sq.ILike{"order_id": pattern},
			sq.Expr("payload::text ILIKE ?", pattern),
		})
	}

	return conditions
}
