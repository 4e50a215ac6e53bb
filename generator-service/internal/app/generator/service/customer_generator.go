package service

import (
	"time"

	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/config"
	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/entity"
	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/util"
)

var regions = []string{"North", "South", "East", "West", "Central"}

var customerTypes = []string{"Occasional", "Regular", "Premium", "Business"}

// CustomerGenerator генерирует клиентскую базу.
// Агрегатные поля клиентов заполняются нулями: достоверные значения
// появляются только после пересчёта по таблице продаж.
type CustomerGenerator struct {
	cfg config.CustomersConfig
}

func NewCustomerGenerator(cfg config.CustomersConfig) *CustomerGenerator {
	return &CustomerGenerator{cfg: cfg}
}

// Generate создаёт клиентов с идентификаторами 1..M.
// Дата регистрации равномерна в историческом окне, которое заканчивается
// концом периода продаж.
func (g *CustomerGenerator) Generate(rng *util.Rand, windowEnd time.Time) []entity.Customer {
	signupFrom := windowEnd.AddDate(-g.cfg.SignupWindowYears, 0, 0)

	customers := make([]entity.Customer, 0, g.cfg.Customers)
	for i := 1; i <= g.cfg.Customers; i++ {
		name := util.FullName(rng)

		customers = append(customers, entity.Customer{
			ID:               i,
			Name:             name,
			Email:            util.Email(rng, name),
			Region:           rng.PickString(regions),
			City:             util.City(rng),
			CustomerType:     rng.PickString(customerTypes),
			SignupDate:       rng.DateBetween(signupFrom, windowEnd),
			TotalSpent:       0,
			TotalOrders:      0,
			LastPurchaseDate: nil,
		})
	}

	return customers
}
