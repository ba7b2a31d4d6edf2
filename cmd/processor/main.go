package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	application "orders/internal/app"
	"orders/internal/handlers/rest/health_get"
	"orders/internal/handlers/rest/healthcheck_head"
	"orders/internal/handlers/rest/order_get"
	"orders/internal/handlers/rest/order_status_put"
	"orders/internal/handlers/rest/orders_get"
	"orders/internal/handlers/rest/ping_get"
	"orders/internal/pkg/config"
	"orders/internal/pkg/dotenv"
	"orders/internal/pkg/kafka"
	"orders/internal/pkg/middlewares/graceful_shutdown"
	"orders/internal/pkg/middlewares/metrics"
	"orders/internal/pkg/middlewares/rate_limiter"
	"orders/internal/pkg/middlewares/timeout"
	"orders/internal/pkg/middlewares/tracing"
	"orders/pkg/logger"
	"orders/pkg/logger/zap_adapter"
	"orders/pkg/token_bucket"
)

const serviceName = "order-processor"

func main() {
	if err := dotenv.Load(); err != nil {
		stdlog.Fatalf("failed to load .env file: %v", err)
	}

	cfg, err := config.LoadProcessor()
	if err != nil {
		stdlog.Fatalf("load config: %v", err)
	}

	zapLogger, err := zap_adapter.NewZapAdapter(cfg.Log.Level)
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger.With(logger.NewField("service", serviceName))
	appLogger.Info("starting order processor")

	err = run(context.Background(), appLogger, cfg)
	if err != nil {
		appLogger.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // shutdownCtx и ongoingCtx наследуются от context.Background() намеренно
func run(ctx context.Context, log logger.Logger, cfg *config.Config) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	// producer нужен только для dead letter топика
	var producer sarama.SyncProducer
	if cfg.Kafka.DeadLetterTopic != "" {
		var err error
		producer, err = kafka.NewSyncProducer(ctx, log, &cfg.Kafka)
		if err != nil {
			return fmt.Errorf("kafka dead letter producer: %w", err)
		}
	} else {
		runLog.Warn("dead letter topic is not configured, rejected messages will be dropped")
	}

	businessApp, err := application.InitializeProcessorApp(ctx, log, producer, cfg)
	if err != nil {
		if producer != nil {
			if closeErr := producer.Close(); closeErr != nil {
				runLog.Error("failed to close kafka producer", logger.NewField("error", closeErr))
			}
		}
		return fmt.Errorf("business logic: %w", err)
	}
	defer func() {
		if err := businessApp.DeadLetter.Close(); err != nil {
			runLog.Error("failed to close dead letter producer", logger.NewField("error", err))
		}
	}()

	consumer, err := kafka.NewConsumer(ctx, log, &cfg.Kafka, businessApp.OrderCreatedHandler)
	if err != nil {
		return fmt.Errorf("kafka consumer: %w", err)
	}

	// ongoingCtx не отменяется по SIGTERM, только после остановки consumer'а и
	// server.Shutdown(), чтобы сообщение в обработке успело сохраниться.
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	consumerCtx, stopConsumer := context.WithCancel(ongoingCtx)
	defer stopConsumer()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, consumer, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting", logger.NewField("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	consumerErr := make(chan error, 1)
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)

		err := consumer.Start(consumerCtx)
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, sarama.ErrClosedConsumerGroup) {
			consumerErr <- err
			return
		}
		runLog.Info("Kafka consumer stopped gracefully")
	}()

	pprofServer, pprofServerErr := startPprof(ongoingCtx, runLog, &isShuttingDown, cfg.Server)

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-consumerErr:
		return fmt.Errorf("consumer: %w", err)
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // nil канал, если pprof выключен
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("Draining Kafka messages")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	// сначала consumer: сообщение в обработке либо сохраняется и коммитится,
	// либо остается неподтвержденным и придет снова
	stopConsumer()
	select {
	case <-consumerDone:
	case <-shutdownCtx.Done():
		runLog.Warn("Kafka consumer did not stop in time")
	}
	if err := consumer.Close(); err != nil {
		runLog.Error("Failed to close Kafka consumer", logger.NewField("error", err))
	}

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		}
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	businessApp.BackgroundWorkers.Wait()

	runLog.Info("Processor stopped")
	return nil
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	app *application.ProcessorApp,
	consumer *kafka.Consumer,
	cfg config.HTTPServer,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))
	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(tracing.Middleware())
	router.Use(metrics.Middleware(log))

	router.Handle("/metrics", promhttp.Handler())
	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, consumer)).Methods(http.MethodHead)
	router.Handle("/health", health_get.New(log, app.HealthChecker)).Methods(http.MethodGet)
	router.Handle("/ping", ping_get.New(log, serviceName)).Methods(http.MethodGet)

	limiter := token_bucket.NewTokenBucket(cfg.RateLimiterBurst, cfg.RateLimiterQPS)
	orders := router.PathPrefix("/orders").Subrouter()
	orders.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, limiter))
	orders.Handle("", orders_get.New(log, app.ServiceProcessor)).Methods(http.MethodGet)
	orders.Handle("/{id}", order_get.New(log, app.ServiceProcessor)).Methods(http.MethodGet)
	orders.Handle("/{id}/status", order_status_put.New(log, app.ServiceProcessor)).Methods(http.MethodPut)

	return router
}

func startPprof(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	cfg config.HTTPServer,
) (*http.Server, chan error) {
	if !cfg.PprofEnabled {
		return nil, nil
	}

	pprofServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.PprofPort),
		Handler: initPprofRouter(isShuttingDown),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	pprofServerErr := make(chan error, 1)
	go func() {
		defer close(pprofServerErr)
		log.Info("pprof server starting", logger.NewField("port", cfg.PprofPort))
		if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			pprofServerErr <- err
		}
	}()

	return pprofServer, pprofServerErr
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods(http.MethodHead)
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
