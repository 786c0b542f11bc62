//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=events_cleanup_post_test
package events_cleanup_post

import (
	"context"

	"shipflow/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Retention(ctx context.Context, daysToKeep int) (int64, error)
}
