package driver_status_report

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
