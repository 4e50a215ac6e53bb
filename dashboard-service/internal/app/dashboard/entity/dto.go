package entity

import "time"

// Интервалы трендов
const (
	IntervalDaily   = "daily"
	IntervalWeekly  = "weekly"
	IntervalMonthly = "monthly"
)

// Степени важности инсайтов
const (
	SeverityPositive = "positive"
	SeverityWarning  = "warning"
	SeverityNeutral  = "neutral"
)

// Виды инсайтов
const (
	InsightRevenueTrend   = "revenue_trend"
	InsightCategoryLeader = "category_leader"
	InsightOverallMargin  = "overall_margin"
	InsightWeekdayPattern = "weekday_pattern"
	InsightProductMargins = "product_margins"
)

type TrendQuery struct {
	Interval string `form:"interval" validate:"omitempty,oneof=daily weekly monthly"`
}

type TopProductsQuery struct {
	Limit int `form:"limit" validate:"omitempty,gt=0,lte=100"`
}

type SummaryResponse struct {
	TotalRevenue     float64   `json:"total_revenue"`
	TotalProfit      float64   `json:"total_profit"`
	TotalOrders      int       `json:"total_orders"`
	TotalQuantity    int       `json:"total_quantity"`
	AvgOrderValue    float64   `json:"avg_order_value"`
	OverallMarginPct float64   `json:"overall_margin_pct"`
	WindowStart      time.Time `json:"window_start"`
	WindowEnd        time.Time `json:"window_end"`
}

type TrendPoint struct {
	Bucket   string  `json:"bucket"`
	Revenue  float64 `json:"revenue"`
	Profit   float64 `json:"profit"`
	Orders   int     `json:"orders"`
	Quantity int     `json:"quantity"`
}

type TrendResponse struct {
	Interval  string       `json:"interval"`
	Points    []TrendPoint `json:"points"`
	Slope     float64      `json:"slope"`
	GrowthPct float64      `json:"growth_pct"`
}

type CategoryStat struct {
	Category  string  `json:"category"`
	Revenue   float64 `json:"revenue"`
	Profit    float64 `json:"profit"`
	Quantity  int     `json:"quantity"`
	MarginPct float64 `json:"margin_pct"`
	SharePct  float64 `json:"share_pct"`
}

type CategoryListResponse struct {
	Categories []CategoryStat `json:"categories"`
	Total      int            `json:"total"`
}

type ProductStat struct {
	ProductID int     `json:"product_id"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Revenue   float64 `json:"revenue"`
	Profit    float64 `json:"profit"`
	Quantity  int     `json:"quantity"`
	MarginPct float64 `json:"margin_pct"`
}

type ProductListResponse struct {
	Products []ProductStat `json:"products"`
	Total    int           `json:"total"`
}

type RegionStat struct {
	Region   string  `json:"region"`
	Revenue  float64 `json:"revenue"`
	Profit   float64 `json:"profit"`
	Orders   int     `json:"orders"`
	SharePct float64 `json:"share_pct"`
}

type RegionListResponse struct {
	Regions []RegionStat `json:"regions"`
	Total   int          `json:"total"`
}

type WeekdayStat struct {
	Weekday  string  `json:"weekday"`
	Revenue  float64 `json:"revenue"`
	Orders   int     `json:"orders"`
	AvgOrder float64 `json:"avg_order"`
}

type WeekdayResponse struct {
	Weekdays []WeekdayStat `json:"weekdays"`
	Best     string        `json:"best"`
	Worst    string        `json:"worst"`
}

type Insight struct {
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type InsightListResponse struct {
	Insights []Insight `json:"insights"`
	Total    int       `json:"total"`
}

type MetaResponse struct {
	Manifest Manifest  `json:"manifest"`
	LoadedAt time.Time `json:"loaded_at"`
}

type RefreshResponse struct {
	Status   string    `json:"status"`
	LoadedAt time.Time `json:"loaded_at"`
	Rows     int       `json:"rows"`
}
