//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"time"

	driverstatushandler "shipflow/internal/handlers/kafka-consumer/driver_status_report"
	"shipflow/internal/handlers/rest/dispatch_post"
	"shipflow/internal/handlers/rest/driver_status_post"
	"shipflow/internal/handlers/rest/drivers_get"
	"shipflow/internal/handlers/rest/events_cleanup_post"
	"shipflow/internal/handlers/rest/events_get"
	"shipflow/internal/handlers/rest/events_order_get"
	"shipflow/internal/handlers/rest/exception_post"
	"shipflow/internal/handlers/rest/order_complete_post"
	"shipflow/internal/handlers/rest/order_confirm_post"
	"shipflow/internal/handlers/rest/order_delivered_post"
	"shipflow/internal/handlers/rest/order_get"
	"shipflow/internal/handlers/rest/order_post"
	"shipflow/internal/handlers/rest/order_put"
	"shipflow/internal/handlers/rest/orders_get"
	"shipflow/internal/handlers/rest/orders_unassigned_get"
	"shipflow/internal/handlers/rest/tracking_get"
	"shipflow/internal/handlers/tasks/eta_recompute"
	"shipflow/internal/handlers/tasks/event_cleanup"
	"shipflow/internal/handlers/tasks/redispatch_poll"
	"shipflow/internal/pkg/config"
	"shipflow/internal/pkg/streamlimit"

	"shipflow/internal/eventbus"
	dispatchRepo "shipflow/internal/repository/dispatch"
	driverRepo "shipflow/internal/repository/driver"
	etahistoryRepo "shipflow/internal/repository/etahistory"
	eventRepo "shipflow/internal/repository/event"
	orderRepo "shipflow/internal/repository/order"
	redispatchRepo "shipflow/internal/repository/redispatch"
	dispatchService "shipflow/internal/service/dispatch"
	driverService "shipflow/internal/service/driver"
	etaService "shipflow/internal/service/eta"
	eventsService "shipflow/internal/service/events"
	orderService "shipflow/internal/service/order"
	redispatchService "shipflow/internal/service/redispatch"

	"shipflow/pkg/background"
	"shipflow/pkg/logger"
	"shipflow/pkg/querier"
	"shipflow/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

type (
	RedispatchInterval time.Duration
	EtaInterval        time.Duration
	CleanupInterval    time.Duration
	RetentionDays      int
)

type Application struct {
	ServiceOrder      ServiceOrder
	ServiceDispatch   ServiceDispatch
	ServiceDriver     ServiceDriver
	ServiceEvents     ServiceEvents
	Bus               *eventbus.Bus
	StreamLimiter     *streamlimit.Registry
	BackgroundWorkers *background.Worker
}

type ServiceOrder interface {
	order_post.Service
	order_get.Service
	orders_get.Service
	orders_unassigned_get.Service
	order_put.Service
	tracking_get.Service
}

type ServiceDispatch interface {
	dispatch_post.Service
	order_complete_post.Service
	order_confirm_post.Service
	order_delivered_post.Service
}

type ServiceDriver interface {
	driver_status_post.Service
	drivers_get.Service
}

type ServiceEvents interface {
	events_get.Service
	events_order_get.Service
	events_cleanup_post.Service
	exception_post.Service
}

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideRedispatchInterval,
		provideEtaInterval,
		provideCleanupInterval,
		provideRetentionDays,

		provideDispatchRepository,
		provideOrderRepository,
		provideDriverRepository,
		provideEtaHistoryRepository,
		provideEventRepository,
		provideRedispatchRepository,

		provideEventBus,
		provideStreamLimiter,

		provideServiceEta,
		provideServiceDispatch,
		provideServiceRedispatch,
		provideServiceOrder,
		provideServiceDriver,
		provideServiceEvents,

		provideRedispatchPollTask,
		provideEtaRecomputeTask,
		provideEventCleanupTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceOrder), new(*orderService.Order)),
		wire.Bind(new(ServiceDispatch), new(*dispatchService.Dispatch)),
		wire.Bind(new(ServiceDriver), new(*driverService.Driver)),
		wire.Bind(new(ServiceEvents), new(*eventsService.Events)),

		wire.Bind(new(dispatchService.Repository), new(*dispatchRepo.Repository)),
		wire.Bind(new(dispatchService.EtaService), new(*etaService.Eta)),
		wire.Bind(new(dispatchService.EventPublisher), new(*eventbus.Bus)),
		wire.Bind(new(dispatchService.TxManager), new(*tx.Manager)),

		wire.Bind(new(etaService.Repository), new(*etahistoryRepo.Repository)),

		wire.Bind(new(orderService.Repository), new(*orderRepo.Repository)),
		wire.Bind(new(orderService.Dispatcher), new(*dispatchService.Dispatch)),
		wire.Bind(new(orderService.RedispatchQueue), new(*redispatchService.Redispatch)),
		wire.Bind(new(orderService.EventPublisher), new(*eventbus.Bus)),

		wire.Bind(new(redispatchService.Repository), new(*redispatchRepo.Repository)),
		wire.Bind(new(redispatchService.Dispatcher), new(*dispatchService.Dispatch)),
		wire.Bind(new(redispatchService.EventPublisher), new(*eventbus.Bus)),
		wire.Bind(new(redispatchService.TxManager), new(*tx.Manager)),

		wire.Bind(new(driverService.Repository), new(*driverRepo.Repository)),
		wire.Bind(new(driverService.EventPublisher), new(*eventbus.Bus)),

		wire.Bind(new(eventsService.Repository), new(*eventRepo.Repository)),
		wire.Bind(new(eventsService.EventPublisher), new(*eventbus.Bus)),

		wire.Bind(new(eventbus.Store), new(*eventRepo.Repository)),

		wire.Bind(new(redispatch_poll.Service), new(*redispatchService.Redispatch)),
		wire.Bind(new(eta_recompute.Service), new(*dispatchService.Dispatch)),
		wire.Bind(new(event_cleanup.Service), new(*eventsService.Events)),
	)
	return &Application{}, nil
}

type KafkaWorkerApp struct {
	DriverService driverstatushandler.Service
	Bus           *eventbus.Bus
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-driver-status)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		provideQuerier,

		provideDriverRepository,
		provideEventRepository,

		provideEventBus,
		provideServiceDriver,

		wire.Bind(new(driverService.Repository), new(*driverRepo.Repository)),
		wire.Bind(new(driverService.EventPublisher), new(*eventbus.Bus)),
		wire.Bind(new(eventbus.Store), new(*eventRepo.Repository)),

		wire.Bind(new(driverstatushandler.Service), new(*driverService.Driver)),

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideDispatchRepository(querier *querier.Querier) *dispatchRepo.Repository {
	return dispatchRepo.New(querier)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func provideDriverRepository(querier *querier.Querier) *driverRepo.Repository {
	return driverRepo.New(querier)
}

func provideEtaHistoryRepository(querier *querier.Querier) *etahistoryRepo.Repository {
	return etahistoryRepo.New(querier)
}

func provideEventRepository(querier *querier.Querier) *eventRepo.Repository {
	return eventRepo.New(querier)
}

func provideRedispatchRepository(querier *querier.Querier) *redispatchRepo.Repository {
	return redispatchRepo.New(querier)
}

func provideEventBus(log logger.Logger, store eventbus.Store) *eventbus.Bus {
	return eventbus.New(log, store)
}

func provideStreamLimiter(cfg *config.Config) *streamlimit.Registry {
	return streamlimit.New(cfg.Server.StreamBurst, float64(cfg.Server.StreamQPS))
}

func provideServiceEta(repository etaService.Repository) *etaService.Eta {
	return etaService.New(repository)
}

func provideServiceDispatch(
	repository dispatchService.Repository,
	eta dispatchService.EtaService,
	events dispatchService.EventPublisher,
	txManager dispatchService.TxManager,
) *dispatchService.Dispatch {
	return dispatchService.New(repository, eta, events, txManager)
}

func provideServiceRedispatch(
	repository redispatchService.Repository,
	dispatcher redispatchService.Dispatcher,
	events redispatchService.EventPublisher,
	txManager redispatchService.TxManager,
) *redispatchService.Redispatch {
	return redispatchService.New(repository, dispatcher, events, txManager)
}

func provideServiceOrder(
	repository orderService.Repository,
	dispatcher orderService.Dispatcher,
	redispatchQueue orderService.RedispatchQueue,
	events orderService.EventPublisher,
) *orderService.Order {
	return orderService.New(repository, dispatcher, redispatchQueue, events)
}

func provideServiceDriver(
	repository driverService.Repository,
	events driverService.EventPublisher,
) *driverService.Driver {
	return driverService.New(repository, events)
}

func provideServiceEvents(
	repository eventsService.Repository,
	events eventsService.EventPublisher,
) *eventsService.Events {
	return eventsService.New(repository, events)
}

func provideRedispatchInterval(cfg *config.Config) RedispatchInterval {
	return RedispatchInterval(cfg.Tasks.RedispatchPollInterval)
}

func provideEtaInterval(cfg *config.Config) EtaInterval {
	return EtaInterval(cfg.Tasks.EtaRecomputeInterval)
}

func provideCleanupInterval(cfg *config.Config) CleanupInterval {
	return CleanupInterval(cfg.Tasks.EventCleanupInterval)
}

func provideRetentionDays(cfg *config.Config) RetentionDays {
	return RetentionDays(cfg.Events.RetentionDays)
}

func provideRedispatchPollTask(
	log logger.Logger,
	redispatchService redispatch_poll.Service,
	interval RedispatchInterval,
) *redispatch_poll.RedispatchPoll {
	return redispatch_poll.NewRedispatchPoll(log, redispatchService, time.Duration(interval))
}

func provideEtaRecomputeTask(
	log logger.Logger,
	dispatchService eta_recompute.Service,
	interval EtaInterval,
) *eta_recompute.EtaRecompute {
	return eta_recompute.NewEtaRecompute(log, dispatchService, time.Duration(interval))
}

func provideEventCleanupTask(
	log logger.Logger,
	eventsService event_cleanup.Service,
	interval CleanupInterval,
	days RetentionDays,
) *event_cleanup.EventCleanup {
	return event_cleanup.NewEventCleanup(log, eventsService, time.Duration(interval), int(days))
}

func provideTaskList(
	redispatchPollTask *redispatch_poll.RedispatchPoll,
	etaRecomputeTask *eta_recompute.EtaRecompute,
	eventCleanupTask *event_cleanup.EventCleanup,
) []background.Task {
	return []background.Task{
		redispatchPollTask,
		etaRecomputeTask,
		eventCleanupTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
