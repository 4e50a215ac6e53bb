package entity

import "time"

// Product - строка products.csv в том виде, в котором её пишет генератор
type Product struct {
	ID          int       `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	Price       float64   `json:"price"`
	Cost        float64   `json:"cost"`
	MarginPct   float64   `json:"margin_pct"`
	Supplier    string    `json:"supplier"`
	WeightKg    float64   `json:"weight_kg"`
	CreatedDate time.Time `json:"created_date"`
}

// Sale - строка sales.csv. Категория и регион денормализованы генератором,
// для агрегатов дашборда справочники не нужны.
type Sale struct {
	ID             int       `json:"id"`
	Date           time.Time `json:"date"`
	CustomerID     int       `json:"customer_id"`
	ProductID      int       `json:"product_id"`
	Category       string    `json:"category"`
	Region         string    `json:"region"`
	Quantity       int       `json:"quantity"`
	UnitPrice      float64   `json:"unit_price"`
	DiscountPct    float64   `json:"discount_pct"`
	Subtotal       float64   `json:"subtotal"`
	DiscountAmount float64   `json:"discount_amount"`
	Total          float64   `json:"total"`
	Cost           float64   `json:"cost"`
	Profit         float64   `json:"profit"`
	PaymentMethod  string    `json:"payment_method"`
	Channel        string    `json:"channel"`
}

// Manifest - manifest.json запуска генератора
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

// Dataset - неизменяемый снимок загруженных данных.
// После загрузки снимок не модифицируется, обновление подменяет его целиком.
type Dataset struct {
	Products []Product
	Sales    []Sale
	Manifest Manifest
	LoadedAt time.Time
}
