//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_events_test
package order_events

import (
	"context"

	"shipflow/internal/eventbus"
	"shipflow/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Bus interface {
	SubscribeOrder(ctx context.Context, orderID string, handler eventbus.Handler) (func(), error)
}

type Limiter interface {
	Allow(key string) bool
}
