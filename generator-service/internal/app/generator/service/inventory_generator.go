package service

import (
	"time"

	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/config"
	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/entity"
	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/util"
)

const (
	initialStockMin = 10
	initialStockMax = 100

	// Точка дозаказа и целевой запас как доли начального остатка
	reorderShare = 0.3
	idealShare   = 1.5

	restockProbability = 0.3
)

// InventoryGenerator симулирует дневное движение остатков по каждому товару
// на независимом окне, примыкающем к концу периода продаж.
type InventoryGenerator struct {
	cfg config.InventoryConfig
}

func NewInventoryGenerator(cfg config.InventoryConfig) *InventoryGenerator {
	return &InventoryGenerator{cfg: cfg}
}

// Generate строит складскую историю: остаток уменьшается на пуассоновское
// дневное списание (не ниже нуля); при падении до точки дозаказа с
// вероятностью 0.3 происходит пополнение до случайного уровня между
// точкой дозаказа и целевым запасом. Статус выводится из остатка и
// точки дозаказа, отдельно он не хранится.
func (g *InventoryGenerator) Generate(rng *util.Rand, products []entity.Product, windowEnd time.Time) []entity.InventoryRecord {
	records := make([]entity.InventoryRecord, 0, len(products)*g.cfg.Days)

	for _, product := range products {
		initial := rng.UniformInt(initialStockMin, initialStockMax)
		reorderPoint := int(reorderShare * float64(initial))
		idealStock := int(idealShare * float64(initial))

		stock := initial
		for day := 0; day < g.cfg.Days; day++ {
			date := windowEnd.AddDate(0, 0, day-g.cfg.Days)

			dailySales := rng.Poisson(g.cfg.DemandMean)
			stock -= dailySales
			if stock < 0 {
				stock = 0
			}

			if stock <= reorderPoint && rng.Chance(restockProbability) {
				stock = rng.UniformInt(reorderPoint, idealStock)
			}

			status := entity.StockStatusOK
			if stock <= reorderPoint {
				status = entity.StockStatusLow
			}

			records = append(records, entity.InventoryRecord{
				Date:         date,
				ProductID:    product.ID,
				CurrentStock: stock,
				DailySales:   dailySales,
				ReorderPoint: reorderPoint,
				IdealStock:   idealStock,
				Status:       status,
			})
		}
	}

	return records
}
