//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_delivered_post_test
package order_delivered_post

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
	MarkDelivered(ctx context.Context, orderID string) (*entities.Order, error)
}
