//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=exception_post_test
package exception_post

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
	ReportException(ctx context.Context, orderID, reason string) (*entities.Event, error)
}
