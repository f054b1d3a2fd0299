package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/extractor"
	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/fulfillment"
	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/inventory"
	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/logging"
	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/telemetry"
)

// app holds the components shared by every command.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *fulfillment.Metrics
	catalog  *inventory.Catalog
	ex       extractor.Extractor
	closers  []func(context.Context) error
}

func newApp(ctx context.Context, configPath string) (a *app, err error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	a = &app{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			_ = a.close(context.Background())
		}
	}()
	a.closers = append(a.closers, func(context.Context) error {
		_ = logger.Sync()
		return nil
	})

	shutdownTracing, err := telemetry.SetupTracing(cfg.Tracing.Stdout, os.Stdout)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, shutdownTracing)

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.metrics = fulfillment.NewMetrics(a.registry)

	items, err := loadCatalogItems(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.catalog, err = inventory.NewCatalog(items, inventory.WithAcceptanceThreshold(cfg.Catalog.AcceptanceThreshold))
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	logger.Info("catalog loaded", zap.String("source", cfg.Catalog.Source), zap.Int("items", a.catalog.Len()))

	a.ex, err = extractor.New(ctx, cfg.ExtractorConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("build extractor: %w", err)
	}
	logger.Info("extractor ready", zap.String("provider", a.ex.Name()))

	return a, nil
}

func (a *app) orchestrator(opts ...fulfillment.Option) *fulfillment.Orchestrator {
	base := []fulfillment.Option{
		fulfillment.WithLogger(a.logger),
		fulfillment.WithMetrics(a.metrics),
	}
	return fulfillment.New(a.ex, a.catalog, append(base, opts...)...)
}

// close runs the closers in reverse order.
func (a *app) close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func loadCatalogItems(ctx context.Context, cfg *config.Config, logger *zap.Logger) ([]inventory.Item, error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourceFile:
		return inventory.LoadFile(cfg.Catalog.Path)

	case config.CatalogSourcePostgres:
		dsn := cfg.Database.DSN.Value()
		if cfg.Database.RunMigrations {
			if err := db.RunMigrations(dsn, logger); err != nil {
				return nil, fmt.Errorf("db migrate: %w", err)
			}
		}
		pool, err := db.NewPool(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		defer pool.Close()
		return inventory.NewPostgresSource(pool).Load(ctx)

	default:
		return inventory.SeedItems(), nil
	}
}
