package redispatch_poll

import (
	"context"
	"time"

	"shipflow/pkg/logger"
)

type Service interface {
	ProcessDue(ctx context.Context) (int64, error)
}

type RedispatchPoll struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func NewRedispatchPoll(log logger.Logger, service Service, interval time.Duration) *RedispatchPoll {
	return &RedispatchPoll{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (r *RedispatchPoll) TTL() time.Duration {
	return r.interval
}

func (r *RedispatchPoll) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, r.interval)
	defer cancel()

	processed, err := r.service.ProcessDue(ctxWithTimeout)

	if processed > 0 {
		r.log.With(
			logger.NewField("processed_orders", processed),
		).Info("redispatch poll")
	}

	return err
}

// Info возвращает читаемое описание задачи для логгирования и отладки.
func (r *RedispatchPoll) Info() string {
	return "redispatch poll"
}
