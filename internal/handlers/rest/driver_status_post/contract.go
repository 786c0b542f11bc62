//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=driver_status_post_test
package driver_status_post

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
	ReportStatus(ctx context.Context, report entities.Driver) (*entities.Driver, error)
}
