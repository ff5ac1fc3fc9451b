// Package app wires configuration into a ready screening service.
package app

import (
	"context"
	"fmt"

	"github.com/gocql/gocql"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/rgdevment/scam-scanner/internal/platform/config"
	"github.com/rgdevment/scam-scanner/internal/platform/metrics"
	"github.com/rgdevment/scam-scanner/internal/platform/redis"
	"github.com/rgdevment/scam-scanner/internal/platform/storage/memory"
	"github.com/rgdevment/scam-scanner/internal/platform/storage/scylla"
	"github.com/rgdevment/scam-scanner/internal/platform/telemetry"
	"github.com/rgdevment/scam-scanner/internal/registry"
	"github.com/rgdevment/scam-scanner/internal/service"
)

type App struct {
	Service  service.Service
	Registry *registry.Registry
	Metrics  *prometheus.Registry
	Tracer   *sdktrace.TracerProvider

	closers []func()
}

// storage is what a driver must provide.
type storage interface {
	service.Repository
	service.NumberSource
}

// Build opens the configured backends and loads the registry snapshot. The
// tracer provider is installed globally; extra options reach the provider.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger, traceOpts ...sdktrace.TracerProviderOption) (*App, error) {
	a := &App{Metrics: prometheus.NewRegistry()}

	tp, err := telemetry.NewTracerProvider(ctx, cfg.Tracing, cfg.Environment, traceOpts...)
	if err != nil {
		return nil, err
	}
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(telemetry.Propagator())
	a.Tracer = tp
	a.closers = append(a.closers, func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	})

	store, err := a.openStorage(cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	reg, err := service.LoadRegistry(ctx, store, cfg.Registry.Numbers...)
	if err != nil {
		a.Close()
		return nil, err
	}
	if reg.Len() == 0 {
		logger.Warn("scam registry is empty; every number will route as SAFE")
	}
	a.Registry = reg

	opts := []service.Option{
		service.WithLogger(logger),
		service.WithMetrics(metrics.New(a.Metrics)),
		service.WithSalt(cfg.Security.SaltSecret),
		service.WithDefaultRegion(cfg.Registry.DefaultRegion),
		service.WithTracerProvider(tp),
	}

	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		a.Close()
		return nil, err
	}
	if client != nil {
		a.closers = append(a.closers, func() { client.Close() })
		opts = append(opts, service.WithGuard(redis.NewReportGuard(client, cfg.Redis.ReportWindow)))
		logger.Info("report deduplication enabled", zap.Duration("window", cfg.Redis.ReportWindow))
	}

	a.Service = service.NewScreeningService(reg, store, opts...)

	logger.Info("scam registry loaded",
		zap.String("storage", cfg.Storage.Driver),
		zap.Int("numbers", reg.Len()),
	)
	return a, nil
}

func (a *App) openStorage(cfg *config.Config, logger *zap.Logger) (storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverScylla:
		session, err := scylla.Connect(logger, cfg.Scylla.Keyspace, cfg.Scylla.Hosts...)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, closeSession(session))
		return scylla.NewScyllaRepository(session), nil
	case config.DriverMemory, "":
		return memory.NewRepository(), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func closeSession(s *gocql.Session) func() {
	return func() { s.Close() }
}

// Close releases backends in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
