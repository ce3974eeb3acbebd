package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OldStager01/fatigue-monitor/api"
	"github.com/OldStager01/fatigue-monitor/internal/events"
	"github.com/OldStager01/fatigue-monitor/internal/features"
	"github.com/OldStager01/fatigue-monitor/internal/insights"
	"github.com/OldStager01/fatigue-monitor/internal/logger"
	"github.com/OldStager01/fatigue-monitor/internal/metrics"
	"github.com/OldStager01/fatigue-monitor/internal/mlmodel"
	"github.com/OldStager01/fatigue-monitor/internal/normalizer"
	"github.com/OldStager01/fatigue-monitor/internal/service"
	"github.com/OldStager01/fatigue-monitor/pkg/config"
	"github.com/OldStager01/fatigue-monitor/pkg/database"
	"github.com/OldStager01/fatigue-monitor/pkg/database/queries"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file")
	migrate := flag.Bool("migrate", false, "run database migrations")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger.Setup(cfg.App.LogLevel, cfg.App.Mode)
	logger.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Mode)

	db, err := database.New(cfg.Database.ToDBConfig())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	logger.Info("Database connection established")

	if *migrate {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		logger.Info("Running database migrations")
		migrator := database.NewMigrator(db)
		if err := migrator.Run(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("Migrations completed successfully")
		return nil
	}

	classifier, err := mlmodel.NewClassifier(cfg.Model)
	if err != nil {
		return fmt.Errorf("failed to load classifier: %w", err)
	}
	regressor, err := mlmodel.NewRegressor(cfg.Model)
	if err != nil {
		return fmt.Errorf("failed to load regressor: %w", err)
	}

	bus := events.NewEventBus(cfg.Events.BufferSize)
	defer bus.Close()
	publisher := events.NewPublisher(bus)

	eventLogger := events.NewEventLogger(bus.SubscribeAll())
	eventLogger.Start()
	defer eventLogger.Stop()

	categorizer := features.NewCategorizer(features.RulesFromConfig(cfg.Categorizer))
	norm := normalizer.New(normalizer.Config{
		LookbackWindow:       cfg.Extractor.LookbackWindow,
		IdleThresholdMinutes: cfg.Extractor.IdleThresholdMin,
	}, categorizer)
	extractor := features.New(features.Config{
		LookbackWindow:      cfg.Extractor.LookbackWindow,
		SessionGapMinutes:   cfg.Extractor.SessionGapMinutes,
		FocusSessionMinutes: cfg.Extractor.FocusSessionMinutes,
		NightStartHour:      cfg.Extractor.NightStartHour,
		NightEndHour:        cfg.Extractor.NightEndHour,
	})

	predictionSvc := service.NewPredictionService(service.Deps{
		Usage:      queries.NewUsageRepository(db.DB),
		Store:      queries.NewPredictionRepository(db.DB),
		Normalizer: norm,
		Extractor:  extractor,
		Classifier: classifier,
		Regressor:  regressor,
		Insights:   insights.NewEngine(),
		Publisher:  publisher,
		Lookback:   cfg.Extractor.LookbackWindow,
	})

	server := api.NewServer(cfg, db, predictionSvc, bus, publisher)

	// Dedicated scrape endpoint when configured on its own port
	var metricsServer *http.Server
	if cfg.Prometheus.Enabled && cfg.Prometheus.Port > 0 && cfg.Prometheus.Port != cfg.API.Port {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Prometheus.Port),
			Handler: mux,
		}
		go func() {
			logger.Infof("Metrics server listening on port %d", cfg.Prometheus.Port)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Errorf("Metrics server error: %v", err)
			}
		}()
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		logger.Infof("API server listening on port %d", cfg.API.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdownChan:
		logger.Infof("Received signal %v, shutting down", sig)
	}

	shutdownTimeout := cfg.App.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if metricsServer != nil {
		metricsServer.Shutdown(shutdownCtx)
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}
