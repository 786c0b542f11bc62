package eta_recompute

import (
	"context"
	"time"

	"shipflow/pkg/logger"
)

type Service interface {
	RefreshEtas(ctx context.Context) (int64, error)
}

type EtaRecompute struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func NewEtaRecompute(log logger.Logger, service Service, interval time.Duration) *EtaRecompute {
	return &EtaRecompute{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (e *EtaRecompute) TTL() time.Duration {
	return e.interval
}

// Do пересчитывает ETA по всем активным назначениям.
func (e *EtaRecompute) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, e.interval)
	defer cancel()

	refreshed, err := e.service.RefreshEtas(ctxWithTimeout)

	if refreshed > 0 {
		e.log.With(
			logger.NewField("refreshed_assignments", refreshed),
		).Info("eta recompute")
	}

	return err
}

// Info возвращает читаемое описание задачи для логгирования и отладки.
func (e *EtaRecompute) Info() string {
	return "eta recompute"
}
