package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	application "shipflow/internal/app"
	"shipflow/internal/handlers/rest/dispatch_post"
	"shipflow/internal/handlers/rest/driver_status_post"
	"shipflow/internal/handlers/rest/drivers_get"
	"shipflow/internal/handlers/rest/events_cleanup_post"
	"shipflow/internal/handlers/rest/events_get"
	"shipflow/internal/handlers/rest/events_order_get"
	"shipflow/internal/handlers/rest/events_stream_get"
	"shipflow/internal/handlers/rest/exception_post"
	"shipflow/internal/handlers/rest/healthcheck_head"
	"shipflow/internal/handlers/rest/order_complete_post"
	"shipflow/internal/handlers/rest/order_confirm_post"
	"shipflow/internal/handlers/rest/order_delivered_post"
	"shipflow/internal/handlers/rest/order_get"
	"shipflow/internal/handlers/rest/order_post"
	"shipflow/internal/handlers/rest/order_put"
	"shipflow/internal/handlers/rest/orders_get"
	"shipflow/internal/handlers/rest/orders_unassigned_get"
	"shipflow/internal/handlers/rest/ping_get"
	"shipflow/internal/handlers/rest/tracking_get"
	"shipflow/internal/handlers/ws/order_events"
	"shipflow/internal/pkg/config"
	"shipflow/internal/pkg/dotenv"
	metrics_system "shipflow/internal/pkg/metrics"
	"shipflow/internal/pkg/middlewares/graceful_shutdown"
	"shipflow/internal/pkg/middlewares/metrics"
	"shipflow/internal/pkg/middlewares/rate_limiter"
	"shipflow/internal/pkg/middlewares/timeout"
	"shipflow/internal/pkg/postgres"
	"shipflow/pkg/logger"
	"shipflow/pkg/logger/zap_adapter"
	"shipflow/pkg/token_bucket"
)

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter()
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting dispatch-service application")

	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.Load(); err != nil {
			mainLog.Error("failed to load .env file", logger.NewField("error", err))
			return
		}
	} else {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // Получаю предупреждения от линтера в местах де наследуюсь от context.Background(), хотя это часть gracefull shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}
	defer businessApp.Bus.Shutdown()

	metrics_system.StartSystemMetricsCollector()

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      0, // стриминговые ручки держат соединение открытым
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	// основной http сервер

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofMux := http.NewServeMux()
		pprofMux.Handle("/debug/pprof/", http.DefaultServeMux)

		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // if !cfg.Server.PprofEnabled будет nil по умолчанию, и данный кейс будет проигнорирован
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)

	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	runLog.Info("Server stopped")
	return nil
}

func initRouter(ongoingCtx context.Context, log logger.Logger, isShuttingDown *atomic.Bool, app *application.Application, cfg config.HTTPServer) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.RateLimiterQPS, float64(cfg.RateLimiterBurst))))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log)).Methods("GET")

	// стриминговые ручки регистрируются на корневом роутере, без таймаута запроса
	router.Handle("/events/stream", events_stream_get.New(log, app.Bus, app.StreamLimiter)).Methods("GET")
	router.Handle("/ws/orders/{id}/events", order_events.New(log, app.Bus, app.StreamLimiter)).Methods("GET")

	api := router.NewRoute().Subrouter()
	api.Use(timeout.Middleware(cfg.RequestTimeout))

	api.Handle("/orders", order_post.New(log, app.ServiceOrder)).Methods("POST")
	api.Handle("/orders", orders_get.New(log, app.ServiceOrder)).Methods("GET")
	api.Handle("/orders/unassigned", orders_unassigned_get.New(log, app.ServiceOrder)).Methods("GET")
	api.Handle("/orders/{id}", order_get.New(log, app.ServiceOrder)).Methods("GET")
	api.Handle("/orders/{id}", order_put.New(log, app.ServiceOrder)).Methods("PUT")
	api.Handle("/orders/{id}/tracking", tracking_get.New(log, app.ServiceOrder)).Methods("GET")

	api.Handle("/orders/{id}/dispatch", dispatch_post.New(log, app.ServiceDispatch)).Methods("POST")
	api.Handle("/orders/{id}/delivered", order_delivered_post.New(log, app.ServiceDispatch)).Methods("POST")
	api.Handle("/orders/{id}/confirm", order_confirm_post.New(log, app.ServiceDispatch)).Methods("POST")
	api.Handle("/orders/{id}/complete", order_complete_post.New(log, app.ServiceDispatch)).Methods("POST")

	api.Handle("/drivers/status", driver_status_post.New(log, app.ServiceDriver)).Methods("POST")
	api.Handle("/drivers", drivers_get.New(log, app.ServiceDriver)).Methods("GET")

	api.Handle("/events", events_get.New(log, app.ServiceEvents)).Methods("GET")
	api.Handle("/events/cleanup", events_cleanup_post.New(log, app.ServiceEvents)).Methods("POST")
	api.Handle("/orders/{id}/events", events_order_get.New(log, app.ServiceEvents)).Methods("GET")
	api.Handle("/orders/{id}/exception", exception_post.New(log, app.ServiceEvents)).Methods("POST")

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
