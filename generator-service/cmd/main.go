package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/config"
	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/entity"
	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/repository"
	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/service"
	"github.com/hgrubina/business-intelligence-suite/pkg/logger"
)

func main() {
	// .env используется только в локальной разработке, в контейнере его нет
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("generator-service", cfg.LogLevel)

	repo := repository.NewCSVRepository(cfg.Output.Dir)
	generator := service.NewGeneratorService(cfg, repo)

	dataset, err := generator.Run(context.Background())
	if err != nil {
		if errors.Is(err, config.ErrInvalidConfig) {
			logger.Fatal().Err(err).Msg("Configuration rejected")
		}
		if dataset != nil {
			// Датасет собран, но не записан на диск
			logger.Error().Err(err).Msg("Dataset generated but not persisted")
			printSummary(generator.Summarize(dataset))
			os.Exit(1)
		}
		logger.Fatal().Err(err).Msg("Generation failed")
	}

	logger.Info().Str("dir", cfg.Output.Dir).Msg("Dataset written")
	printSummary(generator.Summarize(dataset))
}

func printSummary(s entity.Summary) {
	fmt.Println()
	fmt.Println("=== Dataset summary ===")
	fmt.Printf("Window:          %s .. %s\n", s.WindowStart.Format("2006-01-02"), s.WindowEnd.AddDate(0, 0, -1).Format("2006-01-02"))
	fmt.Printf("Products:        %d\n", s.Products)
	fmt.Printf("Customers:       %d\n", s.Customers)
	fmt.Printf("Sales:           %d\n", s.Sales)
	fmt.Printf("Inventory rows:  %d\n", s.Inventory)
	fmt.Printf("Total revenue:   %.2f\n", s.TotalRevenue)
	fmt.Printf("Total profit:    %.2f\n", s.TotalProfit)
	fmt.Printf("Avg order value: %.2f\n", s.AvgOrderValue)
	fmt.Printf("Top category:    %s\n", s.TopCategory)
}
