package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/wildfire-risk-dashboard/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/wildfire-risk-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/adapter/mapbox"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/catalog"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/chart"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/config"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/dashboard"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/mockdata"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/observability"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/processing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}
	regions := catalog.New(catalog.Builtin(), geocoder, logger)

	src := mockdata.NewSeededSource(cfg.RandomSeed)
	sim := processing.NewSimulator(logger,
		processing.WithSource(src),
		processing.WithDelays(cfg.StepDelayMin, cfg.StepDelayMax, cfg.ProgressInterval),
		processing.WithMetrics(metrics),
	)
	gen := mockdata.NewGenerator(src)

	var storeOpts []dashboard.Option
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		storeOpts = append(storeOpts, dashboard.WithResultPublisher(writer))
		logger.Info("kafka result publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaResultsTopic)
	}
	store := dashboard.NewStore(sim, gen, logger, metrics, storeOpts...)

	binding := chart.NewBinding(chart.NewCanvas(cfg.ChartWidth, cfg.ChartHeight), nil, logger, metrics)
	stopWatch := binding.Watch(store)

	srv := httpadapter.NewServer(cfg.HTTPAddr, httpadapter.Deps{
		Store:   store,
		Regions: regions,
		Chart:   binding,
		Ready:   store,
		Metrics: metrics,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	stopWatch()
	binding.Close()
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
