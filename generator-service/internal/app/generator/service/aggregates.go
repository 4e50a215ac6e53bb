package service

import (
	"fmt"
	"time"

	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/entity"
	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/util"
)

// RecomputeCustomerAggregates пересчитывает агрегатные поля клиентов по
// полной таблице продаж. Чистая функция: вход не модифицируется,
// возвращается новый срез, повторный вызов на тех же данных даёт тот же
// результат. Клиенты без продаж сохраняют нулевые значения и nil-дату:
// явное отсутствие продаж отличается от ошибки вычисления.
func RecomputeCustomerAggregates(customers []entity.Customer, sales []entity.Sale) ([]entity.Customer, error) {
	type aggregate struct {
		spent        float64
		orders       int
		lastPurchase time.Time
	}

	byCustomer := make(map[int]*aggregate, len(customers))
	for _, c := range customers {
		byCustomer[c.ID] = &aggregate{}
	}

	for _, sale := range sales {
		agg, ok := byCustomer[sale.CustomerID]
		if !ok {
			return nil, fmt.Errorf("%w: customer %d in sale %d", ErrUnknownCustomer, sale.CustomerID, sale.ID)
		}

		agg.spent += sale.Total
		agg.orders++
		if sale.Date.After(agg.lastPurchase) {
			agg.lastPurchase = sale.Date
		}
	}

	result := make([]entity.Customer, len(customers))
	for i, c := range customers {
		agg := byCustomer[c.ID]

		c.TotalSpent = util.Round2(agg.spent)
		c.TotalOrders = agg.orders
		c.LastPurchaseDate = nil
		if agg.orders > 0 {
			last := agg.lastPurchase
			c.LastPurchaseDate = &last
		}

		result[i] = c
	}

	return result, nil
}
