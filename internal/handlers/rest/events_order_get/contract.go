//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=events_order_get_test
package events_order_get

import (
	"context"

	"shipflow/internal/entities"
	"shipflow/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ByOrder(ctx context.Context, orderID string) ([]entities.Event, error)
}
