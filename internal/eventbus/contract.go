//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=eventbus_test
package eventbus

import (
	"context"
	"encoding/json"

	"shipflow/internal/entities"
	"shipflow/pkg/logger"
)

type Store interface {
	Append(ctx context.Context, orderID, eventType string, payload json.RawMessage) (*entities.Event, error)
	LastByOrder(ctx context.Context, orderID string, limit int) ([]entities.Event, error)
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
