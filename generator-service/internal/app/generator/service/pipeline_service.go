package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/config"
	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/entity"
	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/repository"
	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/util"
	"github.com/hgrubina/business-intelligence-suite/pkg/logger"

	"github.com/google/uuid"
)

// GeneratorService координирует полный цикл генерации датасета:
// каталог, клиенты, продажи, складская история, агрегаты и сохранение
type GeneratorService struct {
	cfg       *config.Config
	repo      repository.DatasetRepository
	catalog   *CatalogGenerator
	customers *CustomerGenerator
	sales     *SalesGenerator
	inventory *InventoryGenerator
}

// NewGeneratorService создает сервис генерации с внедрением зависимостей
func NewGeneratorService(cfg *config.Config, repo repository.DatasetRepository) *GeneratorService {
	return &GeneratorService{
		cfg:       cfg,
		repo:      repo,
		catalog:   NewCatalogGenerator(cfg.Catalog),
		customers: NewCustomerGenerator(cfg.Customers),
		sales:     NewSalesGenerator(cfg.Sales),
		inventory: NewInventoryGenerator(cfg.Inventory),
	}
}

// Run выполняет все стадии в фиксированном порядке на одном источнике
// случайности, поэтому одинаковый seed даёт байт-в-байт одинаковые таблицы.
// Конфигурация проверяется до первого обращения к генератору случайных чисел.
// Если сохранение не удалось, собранный датасет возвращается вместе с
// ошибкой: данные остаются пригодными в памяти.
func (s *GeneratorService) Run(ctx context.Context) (*entity.Dataset, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	rng := util.NewRand(s.cfg.Seed)

	windowStart := s.cfg.Sales.StartDate
	windowEnd := s.cfg.Sales.WindowEnd()

	logger.Info().
		Int64("seed", s.cfg.Seed).
		Str("window_start", windowStart.Format("2006-01-02")).
		Int("days", s.cfg.Sales.Days).
		Msg("generation started")

	products := s.catalog.Generate(rng, windowStart)
	logger.Info().Int("count", len(products)).Msg("products generated")

	customers := s.customers.Generate(rng, windowEnd)
	logger.Info().Int("count", len(customers)).Msg("customers generated")

	sales, err := s.sales.Generate(rng, products, customers)
	if err != nil {
		return nil, fmt.Errorf("failed to generate sales: %w", err)
	}
	logger.Info().Int("count", len(sales)).Msg("sales generated")

	var inventory []entity.InventoryRecord
	if s.cfg.Inventory.Enabled {
		inventory = s.inventory.Generate(rng, products, windowEnd)
		logger.Info().Int("count", len(inventory)).Msg("inventory generated")
	}

	customers, err = RecomputeCustomerAggregates(customers, sales)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate customer stats: %w", err)
	}

	dataset := &entity.Dataset{
		Products:  products,
		Customers: customers,
		Sales:     sales,
		Inventory: inventory,
		Manifest: entity.Manifest{
			RunID:          uuid.NewString(),
			Seed:           s.cfg.Seed,
			GeneratedAt:    time.Now().UTC(),
			WindowStart:    windowStart,
			WindowEnd:      windowEnd,
			ProductCount:   len(products),
			CustomerCount:  len(customers),
			SaleCount:      len(sales),
			InventoryCount: len(inventory),
		},
	}

	if err := s.repo.SaveDataset(ctx, dataset); err != nil {
		return dataset, fmt.Errorf("failed to persist dataset: %w", err)
	}

	logger.Info().
		Str("run_id", dataset.Manifest.RunID).
		Dur("elapsed", time.Since(start)).
		Msg("dataset persisted")

	return dataset, nil
}

// Summarize считает итоговые показатели по готовому датасету.
// При равной выручке категорий берётся первая по алфавиту.
func (s *GeneratorService) Summarize(dataset *entity.Dataset) entity.Summary {
	summary := entity.Summary{
		Products:    len(dataset.Products),
		Customers:   len(dataset.Customers),
		Sales:       len(dataset.Sales),
		Inventory:   len(dataset.Inventory),
		WindowStart: dataset.Manifest.WindowStart,
		WindowEnd:   dataset.Manifest.WindowEnd,
	}

	revenueByCategory := make(map[string]float64)
	for _, sale := range dataset.Sales {
		summary.TotalRevenue += sale.Total
		summary.TotalProfit += sale.Profit
		revenueByCategory[sale.Category] += sale.Total
	}

	summary.TotalRevenue = util.Round2(summary.TotalRevenue)
	summary.TotalProfit = util.Round2(summary.TotalProfit)
	if len(dataset.Sales) > 0 {
		summary.AvgOrderValue = util.Round2(summary.TotalRevenue / float64(len(dataset.Sales)))
	}

	categories := make([]string, 0, len(revenueByCategory))
	for category := range revenueByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	best := ""
	bestRevenue := 0.0
	for _, category := range categories {
		if revenueByCategory[category] > bestRevenue {
			best = category
			bestRevenue = revenueByCategory[category]
		}
	}
	summary.TopCategory = best

	return summary
}
