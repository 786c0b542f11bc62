package event_cleanup

import (
	"context"
	"time"

	"shipflow/pkg/logger"
)

type Service interface {
	Retention(ctx context.Context, daysToKeep int) (int64, error)
}

type EventCleanup struct {
	log        logger.Logger
	service    Service
	interval   time.Duration
	daysToKeep int
}

func NewEventCleanup(log logger.Logger, service Service, interval time.Duration, daysToKeep int) *EventCleanup {
	return &EventCleanup{
		log:        log,
		service:    service,
		interval:   interval,
		daysToKeep: daysToKeep,
	}
}

func (e *EventCleanup) TTL() time.Duration {
	return e.interval
}

func (e *EventCleanup) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, e.interval)
	defer cancel()

	deleted, err := e.service.Retention(ctxWithTimeout, e.daysToKeep)

	if deleted > 0 {
		e.log.With(
			logger.NewField("deleted_events", deleted),
		).Info("event cleanup")
	}

	return err
}

// Info возвращает читаемое описание задачи для логгирования и отладки.
func (e *EventCleanup) Info() string {
	return "event cleanup"
}
