package redispatch

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"shipflow/internal/entities"
	"shipflow/internal/service/dispatch"
)

const (
	// MaxAttempts после этого числа неудач заказ выбывает из очереди.
	MaxAttempts = 20

	baseDelay   = 5 * time.Second
	claimBatch  = 32
	workerLimit = 4
)

type Redispatch struct {
	repository Repository
	dispatcher Dispatcher
	events     EventPublisher
	txManager  TxManager
}

func New(
	repository Repository,
	dispatcher Dispatcher,
	events EventPublisher,
	txManager TxManager,
) *Redispatch {
	return &Redispatch{
		repository: repository,
		dispatcher: dispatcher,
		events:     events,
		txManager:  txManager,
	}
}

type exhaustedPayload struct {
	OrderID  string `json:"orderId"`
	Attempts int    `json:"attempts"`
	Final    bool   `json:"final"`
}

// NextDelay пауза перед попыткой attempt, удваивается с каждой неудачей:
// 5s, 10s, 20s и так далее.
func NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return baseDelay << (attempt - 1)
}

// Enqueue ставит заказ в очередь повторной диспетчеризации,
// первая попытка через базовую задержку.
func (r *Redispatch) Enqueue(ctx context.Context, orderID string) error {
	if !isValidOrderID(orderID) {
		return ErrInvalidOrderID
	}

	err := r.repository.Enqueue(ctx, orderID, time.Now().UTC().Add(NextDelay(1)))
	if err != nil {
		return fmt.Errorf("enqueue redispatch: %w", err)
	}

	return nil
}

// ProcessDue забирает созревшие заказы и пробует назначить их заново.
// Забор и перенос на следующую попытку идут одной транзакцией, поэтому
// заказ недоступен другим воркерам до следующего срока даже при падении
// процесса посреди обработки. Возвращает число успешно назначенных заказов.
func (r *Redispatch) ProcessDue(ctx context.Context) (int64, error) {
	var items []entities.RedispatchItem

	err := r.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		items, err = r.repository.ClaimDue(ctx, claimBatch)
		if err != nil {
			return fmt.Errorf("claim due: %w", err)
		}

		for _, item := range items {
			attempt := item.Attempts + 1
			nextAttemptAt := time.Now().UTC().Add(NextDelay(attempt + 1))
			err = r.repository.Reschedule(ctx, item.OrderID, attempt, nextAttemptAt)
			if err != nil {
				return fmt.Errorf("reschedule: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	var dispatched atomic.Int64

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workerLimit)

	for _, item := range items {
		group.Go(func() error {
			ok, err := r.processItem(groupCtx, item)
			if err != nil {
				return err
			}
			if ok {
				dispatched.Add(1)
			}
			return nil
		})
	}

	err = group.Wait()
	return dispatched.Load(), err
}

func (r *Redispatch) processItem(ctx context.Context, item entities.RedispatchItem) (bool, error) {
	attempt := item.Attempts + 1

	_, err := r.dispatcher.Dispatch(ctx, item.OrderID)
	switch {
	case err == nil:
		err = r.repository.Delete(ctx, item.OrderID)
		if err != nil {
			return false, fmt.Errorf("delete dispatched: %w", err)
		}
		return true, nil

	case errors.Is(err, dispatch.ErrNoDriversAvailable):
		if attempt < MaxAttempts {
			return false, nil
		}

		err = r.repository.Delete(ctx, item.OrderID)
		if err != nil {
			return false, fmt.Errorf("delete exhausted: %w", err)
		}

		_, err = r.events.Publish(ctx, item.OrderID, entities.EventNoDriversAvailable, exhaustedPayload{
			OrderID:  item.OrderID,
			Attempts: attempt,
			Final:    true,
		})
		if err != nil {
			return false, fmt.Errorf("publish exhausted event: %w", err)
		}
		return false, nil

	case errors.Is(err, dispatch.ErrInvalidState), errors.Is(err, dispatch.ErrOrderNotFound):
		// заказ уже назначен или удален другим путем, повторы не нужны
		err = r.repository.Delete(ctx, item.OrderID)
		if err != nil {
			return false, fmt.Errorf("delete stale: %w", err)
		}
		return false, nil

	default:
		return false, fmt.Errorf("redispatch order %s: %w", item.OrderID, err)
	}
}
