//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=events_stream_get_test
package events_stream_get

import (
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
	SubscribeLive(handler eventbus.Handler, includeHistory bool) (func(), error)
}

type Limiter interface {
	Allow(key string) bool
}
