package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hgrubina/business-intelligence-suite/dashboard-service/internal/app/dashboard/config"
	"github.com/hgrubina/business-intelligence-suite/dashboard-service/internal/app/dashboard/handler"
	"github.com/hgrubina/business-intelligence-suite/dashboard-service/internal/app/dashboard/processor"
	"github.com/hgrubina/business-intelligence-suite/dashboard-service/internal/app/dashboard/repository"
	"github.com/hgrubina/business-intelligence-suite/dashboard-service/internal/app/dashboard/service"
	"github.com/hgrubina/business-intelligence-suite/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("dashboard-service", cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Configuration rejected")
	}

	datasetRepo := repository.NewCSVRepository(cfg.Data.Dir)
	analyticsService := service.NewAnalyticsService(datasetRepo, cfg.Insights)

	// Первая загрузка происходит внутри Start; ее неудача не фатальна,
	// данные могут появиться к следующему запуску по расписанию
	scheduler := processor.NewRefreshScheduler(analyticsService)
	if err := scheduler.Start(context.Background(), cfg.Refresh.Schedule); err != nil {
		logger.Fatal().Err(err).Str("schedule", cfg.Refresh.Schedule).Msg("Failed to start refresh scheduler")
	}
	defer scheduler.Stop()

	dashboardHandler := handler.NewDashboardHandler(analyticsService)
	router := handler.SetupRoutes(dashboardHandler, cfg)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("data_dir", cfg.Data.Dir).
			Str("schedule", cfg.Refresh.Schedule).
			Msg("Starting Dashboard Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Dashboard Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Dashboard Service stopped gracefully")
}
