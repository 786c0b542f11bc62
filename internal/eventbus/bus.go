package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"shipflow/internal/entities"
	"shipflow/pkg/logger"
)

const (
	// HistoryCapacity размер кольцевого буфера последних событий,
	// старые вытесняются первыми.
	HistoryCapacity = 100

	// OrderReplayLimit сколько событий заказа реплеим из журнала
	// новому подписчику заказа.
	OrderReplayLimit = 100

	// буфер подписчика должен вмещать весь реплей истории плюс запас
	// на живые события, накопившиеся до старта доставки
	subscriberBuffer = 128
)

// Handler получает события подписки строго по одному, в порядке Sequence.
// Ошибка из Handler снимает подписку.
type Handler func(event entities.Event) error

type subscriber struct {
	id      int64
	orderID string // "" - все заказы
	handler Handler

	ch    chan entities.Event
	quit  chan struct{}
	ready chan struct{}

	// init отдается до живых событий; события с Sequence <= skipThrough
	// уже вошли в init и из канала не доставляются повторно
	init        []entities.Event
	skipThrough int64
}

func (s *subscriber) wants(event entities.Event) bool {
	return s.orderID == "" || s.orderID == event.OrderID
}

// enqueue не блокирует издателя: при переполнении вытесняем самое
// старое событие из очереди подписчика (drop-oldest).
func (s *subscriber) enqueue(event entities.Event) {
	select {
	case s.ch <- event:
		return
	default:
	}

	select {
	case <-s.ch:
		DeliveriesDroppedTotal.Inc()
	default:
	}

	select {
	case s.ch <- event:
	default:
		DeliveriesDroppedTotal.Inc()
	}
}

// orderLock сериализует публикации одного заказа. Живет в карте Bus,
// пока на него есть ссылки.
type orderLock struct {
	mu   sync.Mutex
	refs int
}

// Bus единый журнал событий: durable запись через Store плюс
// фан-аут живым подписчикам через ограниченные очереди.
type Bus struct {
	log   handlerLogger
	store Store

	mu         sync.Mutex
	history    []entities.Event
	subs       map[int64]*subscriber
	orderLocks map[string]*orderLock
	nextSubID  int64
	closed     bool
	wg         sync.WaitGroup
}

func New(log handlerLogger, store Store) *Bus {
	return &Bus{
		log:        log.With(),
		store:      store,
		subs:       make(map[int64]*subscriber),
		orderLocks: make(map[string]*orderLock),
	}
}

// Publish пишет событие в durable журнал и раздает его подписчикам.
// Медленный подписчик никогда не задерживает ни публикацию, ни соседей.
// Публикации одного заказа сериализуются: подписчики и буфер истории
// видят события заказа строго в порядке присвоенных Sequence, даже если
// запись в журнал у одной из публикаций затянулась.
func (b *Bus) Publish(ctx context.Context, orderID, eventType string, payload any) (*entities.Event, error) {
	if orderID == "" {
		return nil, ErrEmptyOrderID
	}

	raw, err := marshalPayload(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal event payload: %w", err)
	}

	lock := b.lockOrder(orderID)
	defer b.unlockOrder(orderID, lock)

	event, err := b.store.Append(ctx, orderID, eventType, raw)
	if err != nil {
		return nil, fmt.Errorf("append event: %w", err)
	}

	EventsPublishedTotal.WithLabelValues(eventType).Inc()

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return event, nil
	}

	b.appendHistory(*event)

	targets := make([]*subscriber, 0, len(b.subs))
	for _, sub := range b.subs {
		if sub.wants(*event) {
			targets = append(targets, sub)
		}
	}
	b.mu.Unlock()

	for _, sub := range targets {
		sub.enqueue(*event)
	}

	return event, nil
}

// SubscribeLive регистрирует обработчик всех будущих событий.
// При includeHistory сначала отдается кольцевой буфер (от старых к новым),
// без пропусков и дублей на стыке с живым потоком.
func (b *Bus) SubscribeLive(handler Handler, includeHistory bool) (func(), error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrBusClosed
	}

	sub := b.register("", handler)
	if includeHistory && len(b.history) > 0 {
		sub.init = make([]entities.Event, len(b.history))
		copy(sub.init, b.history)
		sub.skipThrough = sub.init[len(sub.init)-1].Sequence
	}
	b.mu.Unlock()

	close(sub.ready)
	go b.runSubscriber(sub)

	return func() { b.remove(sub.id) }, nil
}

// SubscribeOrder подписка на события одного заказа: сперва до
// OrderReplayLimit последних событий из durable журнала, затем живые.
// Дубли на стыке отсекаются по Sequence.
func (b *Bus) SubscribeOrder(ctx context.Context, orderID string, handler Handler) (func(), error) {
	if orderID == "" {
		return nil, ErrEmptyOrderID
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrBusClosed
	}
	sub := b.register(orderID, handler)
	b.mu.Unlock()

	go b.runSubscriber(sub)

	replay, err := b.store.LastByOrder(ctx, orderID, OrderReplayLimit)
	if err != nil {
		b.remove(sub.id)
		close(sub.ready)
		return nil, fmt.Errorf("replay events for order %s: %w", orderID, err)
	}

	sub.init = replay
	if len(replay) > 0 {
		sub.skipThrough = replay[len(replay)-1].Sequence
	}
	close(sub.ready)

	return func() { b.remove(sub.id) }, nil
}

// Shutdown снимает все подписки и дожидается остановки их горутин.
// Публикации после Shutdown пишутся в журнал, но не раздаются.
func (b *Bus) Shutdown() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true

	subs := b.subs
	b.subs = make(map[int64]*subscriber)
	b.mu.Unlock()

	for _, sub := range subs {
		close(sub.quit)
		SubscribersActive.Dec()
	}
	b.wg.Wait()

	b.log.Info("event bus stopped",
		logger.NewField("subscribers_closed", len(subs)),
	)
}

// History текущее содержимое кольцевого буфера, от старых к новым.
func (b *Bus) History() []entities.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	snapshot := make([]entities.Event, len(b.history))
	copy(snapshot, b.history)
	return snapshot
}

// register вызывается под b.mu
func (b *Bus) register(orderID string, handler Handler) *subscriber {
	b.nextSubID++
	sub := &subscriber{
		id:      b.nextSubID,
		orderID: orderID,
		handler: handler,
		ch:      make(chan entities.Event, subscriberBuffer),
		quit:    make(chan struct{}),
		ready:   make(chan struct{}),
	}
	b.subs[sub.id] = sub
	b.wg.Add(1)
	SubscribersActive.Inc()
	return sub
}

// lockOrder берет замок публикаций заказа, создавая его при необходимости.
func (b *Bus) lockOrder(orderID string) *orderLock {
	b.mu.Lock()
	lock, ok := b.orderLocks[orderID]
	if !ok {
		lock = &orderLock{}
		b.orderLocks[orderID] = lock
	}
	lock.refs++
	b.mu.Unlock()

	lock.mu.Lock()
	return lock
}

// unlockOrder отпускает замок и убирает его из карты, когда ожидающих
// публикаций не осталось.
func (b *Bus) unlockOrder(orderID string, lock *orderLock) {
	lock.mu.Unlock()

	b.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(b.orderLocks, orderID)
	}
	b.mu.Unlock()
}

// appendHistory вызывается под b.mu. Вставка по Sequence: публикации
// разных заказов могут дойти сюда не в порядке присвоения номеров,
// буфер при этом обязан совпадать по порядку с durable журналом.
func (b *Bus) appendHistory(event entities.Event) {
	pos := len(b.history)
	for pos > 0 && b.history[pos-1].Sequence > event.Sequence {
		pos--
	}

	b.history = append(b.history, entities.Event{})
	copy(b.history[pos+1:], b.history[pos:])
	b.history[pos] = event

	if len(b.history) > HistoryCapacity {
		b.history = b.history[len(b.history)-HistoryCapacity:]
	}
}

func (b *Bus) remove(id int64) {
	b.mu.Lock()
	sub, ok := b.subs[id]
	if ok {
		delete(b.subs, id)
	}
	b.mu.Unlock()

	if ok {
		close(sub.quit)
		SubscribersActive.Dec()
	}
}

func (b *Bus) runSubscriber(sub *subscriber) {
	defer b.wg.Done()

	select {
	case <-sub.ready:
	case <-sub.quit:
		return
	}

	for _, event := range sub.init {
		if !b.deliver(sub, event) {
			return
		}
	}

	for {
		select {
		case <-sub.quit:
			return
		case event := <-sub.ch:
			if event.Sequence <= sub.skipThrough {
				continue
			}
			if !b.deliver(sub, event) {
				return
			}
		}
	}
}

// deliver false если обработчик вернул ошибку и подписка снята
func (b *Bus) deliver(sub *subscriber, event entities.Event) bool {
	err := sub.handler(event)
	if err != nil {
		b.log.With(
			logger.NewField("subscriber", sub.id),
			logger.NewField("sequence", event.Sequence),
			logger.NewField("error", err),
		).Warn("subscriber handler failed, unsubscribing")

		b.remove(sub.id)
		return false
	}
	return true
}

func marshalPayload(payload any) (json.RawMessage, error) {
	if payload == nil {
		return json.RawMessage(`{}`), nil
	}

	if raw, ok := payload.(json.RawMessage); ok {
		return raw, nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return raw, nil
}
