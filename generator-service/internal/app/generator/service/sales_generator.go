package service

import (
	"time"

	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/config"
	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/entity"
	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/util"
)

const (
	// Пятница-воскресенье считаются "выходным" аплифтом спроса
	weekendFactor = 1.5

	discountProbability = 0.2
	maxDiscount         = 0.3
)

// Сезонные коэффициенты месяцев; для остальных месяцев множитель 1.0
var monthFactors = map[time.Month]float64{
	time.November: 2.0,
	time.December: 2.5,
	time.June:     1.3,
	time.July:     1.3,
}

// Распределение количества единиц в продаже
var quantityWeights = []util.WeightedChoice{
	{Value: 1, Weight: 0.6},
	{Value: 2, Weight: 0.2},
	{Value: 3, Weight: 0.1},
	{Value: 4, Weight: 0.05},
	{Value: 5, Weight: 0.05},
}

var paymentMethods = []string{"Card", "Transfer", "Cash", "Wallet"}

var channels = []string{"Web", "App", "Store", "Marketplace"}

// SalesGenerator симулирует дневной спрос на окне [StartDate, StartDate+Days).
// Базовое число продаж в день пуассоновское, сезонный множитель равен
// произведению коэффициента дня недели и коэффициента месяца.
type SalesGenerator struct {
	cfg config.SalesConfig
}

func NewSalesGenerator(cfg config.SalesConfig) *SalesGenerator {
	return &SalesGenerator{cfg: cfg}
}

// Generate создаёт продажи со сквозными идентификаторами 1..len(sales).
// Счётчик идентификаторов локален для вызова: никакого разделяемого
// состояния между запусками.
func (g *SalesGenerator) Generate(rng *util.Rand, products []entity.Product, customers []entity.Customer) ([]entity.Sale, error) {
	if len(products) == 0 {
		return nil, ErrNoProducts
	}
	if len(customers) == 0 {
		return nil, ErrNoCustomers
	}

	sales := make([]entity.Sale, 0, g.cfg.Days*int(g.cfg.DemandMean))
	saleID := 0

	for day := 0; day < g.cfg.Days; day++ {
		date := g.cfg.StartDate.AddDate(0, 0, day)

		base := rng.Poisson(g.cfg.DemandMean)
		count := int(float64(base) * SeasonalFactor(date))

		for i := 0; i < count; i++ {
			product := products[rng.IntN(len(products))]
			customer := customers[rng.IntN(len(customers))]
			quantity := rng.WeightedInt(quantityWeights)

			// Скидка приводится к проценту с одним знаком до денежных
			// расчётов, чтобы сохранённый процент и суммы сходились точно
			discountPct := 0.0
			if rng.Chance(discountProbability) {
				discountPct = util.RoundTo(rng.Uniform(0, maxDiscount)*100, 1)
			}

			saleID++
			sales = append(sales, buildSale(rng, saleID, date, product, customer, quantity, discountPct))
		}
	}

	return sales, nil
}

// SeasonalFactor возвращает сезонный множитель спроса для даты
func SeasonalFactor(date time.Time) float64 {
	dayFactor := 1.0
	switch date.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		dayFactor = weekendFactor
	}

	monthFactor := 1.0
	if f, ok := monthFactors[date.Month()]; ok {
		monthFactor = f
	}

	return dayFactor * monthFactor
}

func buildSale(rng *util.Rand, id int, date time.Time, product entity.Product, customer entity.Customer, quantity int, discountPct float64) entity.Sale {
	d := discountPct / 100
	qty := float64(quantity)

	subtotal := util.Round2(product.Price * qty)
	discountAmount := util.Round2(subtotal * d)
	total := util.Round2(product.Price * qty * (1 - d))
	cost := util.Round2(product.Cost * qty)
	profit := util.Round2((product.Price - product.Cost) * qty * (1 - d))

	return entity.Sale{
		ID:             id,
		Date:           date,
		CustomerID:     customer.ID,
		ProductID:      product.ID,
		Category:       product.Category,
		Region:         customer.Region,
		Quantity:       quantity,
		UnitPrice:      product.Price,
		DiscountPct:    discountPct,
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Total:          total,
		Cost:           cost,
		Profit:         profit,
		PaymentMethod:  rng.PickString(paymentMethods),
		Channel:        rng.PickString(channels),
	}
}
