package service

import (
	"fmt"
	"time"

	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/config"
	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/entity"
	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/util"
)

// Параметры распределения цен: логнормальное со сдвигом масштаба.
// Маржа равномерна в [0.3, 0.7), себестоимость выводится из неё.
const (
	priceMu    = 3.5
	priceSigma = 0.8
	priceScale = 10.0

	marginMin = 0.3
	marginMax = 0.7

	weightMinKg = 0.1
	weightMaxKg = 20.0
)

// CatalogGenerator генерирует каталог товаров.
// Стадия не имеет зависимостей и детерминирована относительно сида.
type CatalogGenerator struct {
	cfg config.CatalogConfig
}

func NewCatalogGenerator(cfg config.CatalogConfig) *CatalogGenerator {
	return &CatalogGenerator{cfg: cfg}
}

// Generate создаёт товары с идентификаторами 1..N.
// Категория выбирается равновероятно из таксономии, без весов.
// Дата заведения товара лежит в [windowStart-2y, windowStart-1y),
// то есть каталог всегда старше окна продаж.
func (g *CatalogGenerator) Generate(rng *util.Rand, windowStart time.Time) []entity.Product {
	createdFrom := windowStart.AddDate(-2, 0, 0)
	createdTo := windowStart.AddDate(-1, 0, 0)

	products := make([]entity.Product, 0, g.cfg.Products)
	for i := 1; i <= g.cfg.Products; i++ {
		taxonomy := g.cfg.Taxonomy[rng.IntN(len(g.cfg.Taxonomy))]
		subcategory := rng.PickString(taxonomy.Subcategories)
		name := util.ProductName(rng, taxonomy.Category)

		price := util.Round2(rng.LogNormal(priceMu, priceSigma) * priceScale)
		margin := rng.Uniform(marginMin, marginMax)
		cost := util.Round2(price * (1 - margin))
		marginPct := util.Round2((price - cost) / price * 100)

		products = append(products, entity.Product{
			ID:          i,
			SKU:         fmt.Sprintf("SKU-%04d", i),
			Name:        name,
			Category:    taxonomy.Category,
			Subcategory: subcategory,
			Price:       price,
			Cost:        cost,
			MarginPct:   marginPct,
			Supplier:    util.Supplier(rng),
			WeightKg:    util.Round2(rng.Uniform(weightMinKg, weightMaxKg)),
			CreatedDate: rng.DateBetween(createdFrom, createdTo),
		})
	}

	return products
}
