package entity

import "time"

// Статусы складской записи
const (
	StockStatusOK  = "OK"
	StockStatusLow = "LOW"
)

// Product представляет товар синтетического каталога
type Product struct {
	ID          int       `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	Price       float64   `json:"price"`      // Розничная цена, 2 знака
	Cost        float64   `json:"cost"`       // Себестоимость, всегда <= Price
	MarginPct   float64   `json:"margin_pct"` // (Price-Cost)/Price*100
	Supplier    string    `json:"supplier"`
	WeightKg    float64   `json:"weight_kg"`
	CreatedDate time.Time `json:"created_date"`
}

// Customer представляет клиента.
// Агрегатные поля TotalSpent, TotalOrders и LastPurchaseDate заполняются
// пересчётом по таблице продаж и до него не являются достоверными.
type Customer struct {
	ID               int        `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Region           string     `json:"region"`
	City             string     `json:"city"`
	CustomerType     string     `json:"customer_type"`
	SignupDate       time.Time  `json:"signup_date"`
	TotalSpent       float64    `json:"total_spent"`
	TotalOrders      int        `json:"total_orders"`
	LastPurchaseDate *time.Time `json:"last_purchase_date,omitempty"` // nil, пока у клиента нет продаж
}

// Sale представляет одну продажу.
// Category и Region денормализованы из товара и клиента,
// чтобы потребитель мог строить разрезы без join'ов.
type Sale struct {
	ID             int       `json:"id"`
	Date           time.Time `json:"date"`
	CustomerID     int       `json:"customer_id"`
	ProductID      int       `json:"product_id"`
	Category       string    `json:"category"`
	Region         string    `json:"region"`
	Quantity       int       `json:"quantity"`
	UnitPrice      float64   `json:"unit_price"`
	DiscountPct    float64   `json:"discount_pct"` // Процент скидки, 1 знак, [0, 30)
	Subtotal       float64   `json:"subtotal"`
	DiscountAmount float64   `json:"discount_amount"`
	Total          float64   `json:"total"`
	Cost           float64   `json:"cost"`
	Profit         float64   `json:"profit"`
	PaymentMethod  string    `json:"payment_method"`
	Channel        string    `json:"channel"`
}

// InventoryRecord представляет состояние склада по товару на конкретный день
type InventoryRecord struct {
	Date         time.Time `json:"date"`
	ProductID    int       `json:"product_id"`
	CurrentStock int       `json:"current_stock"`
	DailySales   int       `json:"daily_sales"`
	ReorderPoint int       `json:"reorder_point"`
	IdealStock   int       `json:"ideal_stock"`
	Status       string    `json:"status"` // LOW тогда и только тогда, когда CurrentStock <= ReorderPoint
}

// Dataset - полный результат одного запуска генератора
type Dataset struct {
	Products  []Product
	Customers []Customer
	Sales     []Sale
	Inventory []InventoryRecord
	Manifest  Manifest
}

// Manifest описывает запуск генерации. Пишется рядом с таблицами
// и служит потребителям сигналом свежести данных.
type Manifest struct {
	RunID          string    `json:"run_id"`
	Seed           int64     `json:"seed"`
	GeneratedAt    time.Time `json:"generated_at"`
	WindowStart    time.Time `json:"window_start"`
	WindowEnd      time.Time `json:"window_end"`
	ProductCount   int       `json:"product_count"`
	CustomerCount  int       `json:"customer_count"`
	SaleCount      int       `json:"sale_count"`
	InventoryCount int       `json:"inventory_count"`
}

// Summary - итоговые показатели запуска для вывода оператору
type Summary struct {
	Products      int
	Customers     int
	Sales         int
	Inventory     int
	WindowStart   time.Time
	WindowEnd     time.Time
	TotalRevenue  float64
	TotalProfit   float64
	AvgOrderValue float64
	TopCategory   string
}
