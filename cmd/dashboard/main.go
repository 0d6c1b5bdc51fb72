package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/market-prices-dashboard/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/market-prices-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/market-prices-dashboard/internal/adapter/objectstore"
	"github.com/couchcryptid/market-prices-dashboard/internal/adapter/postgres"
	"github.com/couchcryptid/market-prices-dashboard/internal/config"
	"github.com/couchcryptid/market-prices-dashboard/internal/dashboard"
	"github.com/couchcryptid/market-prices-dashboard/internal/dataset"
	"github.com/couchcryptid/market-prices-dashboard/internal/domain"
	"github.com/couchcryptid/market-prices-dashboard/internal/geo"
	"github.com/couchcryptid/market-prices-dashboard/internal/observability"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, closeSource, err := newSource(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to create data source", "error", err)
		os.Exit(1)
	}
	defer closeSource()

	cache := dataset.NewCache(source, logger, metrics)
	index := geo.Default()
	logger.Info("county index ready", "counties", index.Len())

	opts := []dashboard.Option{
		dashboard.WithMatchOptions(domain.MatchOptions{
			CommodityFoldCase: cfg.CommodityFoldCase,
			MonthFoldCase:     cfg.MonthFoldCase,
		}),
	}

	// Query events are feature-flagged via KAFKA_BROKERS.
	var publisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		publisher = kafkaadapter.NewPublisher(cfg, logger)
		opts = append(opts, dashboard.WithPublisher(publisher))
		logger.Info("query events enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("query events disabled")
	}

	svc := dashboard.NewService(cache, index, logger, metrics, opts...)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, index, cache, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Warm the dataset so the first page view does not wait on the fetch.
	// A failure here is retried by the first request.
	go func() {
		if _, err := cache.Load(ctx); err != nil {
			logger.Warn("initial dataset load failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// newSource builds the configured price-table source and its cleanup func.
func newSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (dataset.Source, func(), error) {
	switch cfg.DataSource {
	case config.SourceS3:
		src, err := objectstore.NewSource(objectstore.Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			Object:    cfg.S3Object,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using object store source", "bucket", cfg.S3Bucket, "object", cfg.S3Object)
		return src, func() {}, nil
	default:
		src, err := postgres.NewSource(ctx, cfg.DatabaseURL, cfg.PricesTable, cfg.DBConnectTimeout, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using postgres source", "table", cfg.PricesTable)
		return src, src.Close, nil
	}
}
