// Package app собирает сервис бронирований: хранилище, доменный сервис,
// gRPC-сервер, HTTP-эндпоинты метрик и health, outbox worker.
package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	promgrpc "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/vladislavdragonenkov/windowcleaning/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/windowcleaning/internal/health"
	"github.com/vladislavdragonenkov/windowcleaning/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/windowcleaning/internal/metrics"
	"github.com/vladislavdragonenkov/windowcleaning/internal/service/cleaning"
	grpcsvc "github.com/vladislavdragonenkov/windowcleaning/internal/service/grpc"
	"github.com/vladislavdragonenkov/windowcleaning/internal/version"
)

const gracefulStopTimeout = 5 * time.Second

// Run запускает сервис и блокируется до отмены ctx или ошибки gRPC-сервера.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")
	logger.WithField("build", version.String()).Info("starting booking service")

	deps, err := initRuntimeDependencies(ctx, cfg, logger.WithField("layer", "storage"))
	if err != nil {
		return err
	}
	defer deps.close(logger)

	customers, cacheChecker, closeCache := initCustomerCache(ctx, cfg, deps.customers, logger.WithField("layer", "cache"))
	defer closeCache()

	svc := cleaning.NewService(
		customers,
		deps.bookings,
		cleaning.WithLogger(logger.WithField("layer", "cleaning")),
		cleaning.WithOutbox(deps.outbox),
		cleaning.WithMetrics(metrics.NewBookingMetrics()),
		cleaning.WithLocation(cfg.Location),
	)

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	healthHandler.RegisterChecker("storage", deps.storageChecker)
	if cacheChecker != nil {
		healthHandler.RegisterChecker("cache", cacheChecker)
	}

	producer, err := initKafkaProducer(cfg.KafkaBrokers, logger.WithField("layer", "kafka"))
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, outbox events will stay pending")
	}
	defer closeKafkaProducer(producer, logger)

	if producer != nil {
		cancelWorker, workerDone := startOutboxWorker(
			ctx,
			cfg,
			deps.outbox,
			kafka.NewOutboxPublisher(producer, cfg.KafkaTopic),
			kafka.NewDLQPublisher(producer),
			logger,
		)
		// defer выполняется в обратном порядке: воркер останавливается до закрытия producer.
		defer shutdownOutboxWorker(cancelWorker, workerDone, logger)
		healthHandler.RegisterChecker("outbox", healthcheck.NewOutboxBacklogChecker(deps.outbox, cfg.OutboxMaxPendingAge))
	}

	if purger, ok := deps.outbox.(domain.OutboxPurger); ok {
		cancelCleanup, cleanupDone := startOutboxCleanup(ctx, cfg, purger, logger)
		defer stopOutboxCleanup(cancelCleanup, cleanupDone, logger)
	}

	grpcMetrics := registerGRPCMetrics(logger)
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(grpcMetrics.UnaryServerInterceptor()))
	grpcsvc.RegisterBookingServiceServer(grpcServer, grpcsvc.NewBookingService(svc, logger.WithField("layer", "grpc")))
	grpcMetrics.InitializeMetrics(grpcServer)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(grpcsvc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)
	defer shutdownHTTP(metricsSrv, logger)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", lis.Addr().String()).Info("gRPC server listening")
		errCh <- grpcServer.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping gRPC server")
		healthServer.Shutdown()
		stopGRPC(grpcServer, logger)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	}
}

// registerGRPCMetrics регистрирует метрики gRPC-сервера или переиспользует уже зарегистрированные.
func registerGRPCMetrics(logger *log.Entry) *promgrpc.ServerMetrics {
	grpcMetrics := promgrpc.NewServerMetrics()
	if err := prometheus.Register(grpcMetrics); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*promgrpc.ServerMetrics); ok {
				return existing
			}
		}
		logger.WithError(err).Warn("failed to register grpc metrics")
	}
	return grpcMetrics
}

func stopGRPC(server *grpc.Server, logger *log.Entry) {
	stopped := make(chan struct{})
	go func() {
		server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(gracefulStopTimeout):
		logger.Warn("graceful stop timed out, forcing gRPC server stop")
		server.Stop()
	}
}

// startMetricsServer запускает HTTP-сервер с /metrics и health-эндпоинтами.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.WithField("addr", addr).Info("metrics and health endpoints available")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), gracefulStopTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("metrics shutdown with error")
	}
}
