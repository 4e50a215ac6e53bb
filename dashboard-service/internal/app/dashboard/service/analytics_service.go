package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hgrubina/business-intelligence-suite/dashboard-service/internal/app/dashboard/config"
	"github.com/hgrubina/business-intelligence-suite/dashboard-service/internal/app/dashboard/entity"
	"github.com/hgrubina/business-intelligence-suite/dashboard-service/internal/app/dashboard/repository"
	"github.com/hgrubina/business-intelligence-suite/pkg/logger"
	"github.com/hgrubina/business-intelligence-suite/pkg/metrics"

	"github.com/montanaflynn/stats"
)

const serviceName = "dashboard-service"

// AnalyticsService считает агрегаты и инсайты по снимку датасета.
// Снимок неизменяем: каждый публичный метод берет его один раз и весь
// ответ считает по одному и тому же состоянию, Reload подменяет снимок
// целиком под блокировкой.
type AnalyticsService struct {
	repo     repository.DatasetRepository
	insights config.InsightsConfig

	mu      sync.RWMutex
	dataset *entity.Dataset
}

// NewAnalyticsService создает сервис аналитики с внедрением зависимостей
func NewAnalyticsService(repo repository.DatasetRepository, insights config.InsightsConfig) *AnalyticsService {
	return &AnalyticsService{
		repo:     repo,
		insights: insights,
	}
}

// Reload загружает датасет с диска и подменяет текущий снимок.
// При ошибке прежний снимок остается рабочим.
func (s *AnalyticsService) Reload(ctx context.Context) error {
	timer := metrics.NewTimer()

	dataset, err := s.repo.LoadDataset(ctx)
	if err != nil {
		metrics.RecordDatasetReload(serviceName, "error", timer.Duration())
		return fmt.Errorf("failed to reload dataset: %w", err)
	}

	s.mu.Lock()
	s.dataset = dataset
	s.mu.Unlock()

	metrics.RecordDatasetReload(serviceName, "success", timer.Duration())
	metrics.RecordDatasetRows(serviceName, "products", len(dataset.Products))
	metrics.RecordDatasetRows(serviceName, "sales", len(dataset.Sales))
	metrics.RecordDatasetAge(serviceName, dataset.Manifest.GeneratedAt)

	logger.Info().
		Str("run_id", dataset.Manifest.RunID).
		Int("products", len(dataset.Products)).
		Int("sales", len(dataset.Sales)).
		Dur("elapsed", timer.Duration()).
		Msg("Dataset reloaded")

	return nil
}

// snapshot возвращает текущий снимок или ErrDatasetNotLoaded
func (s *AnalyticsService) snapshot() (*entity.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.dataset == nil {
		return nil, ErrDatasetNotLoaded
	}
	return s.dataset, nil
}

// Loaded сообщает, есть ли в памяти рабочий снимок
func (s *AnalyticsService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset != nil
}

// Summary возвращает ключевые показатели по всему окну продаж
func (s *AnalyticsService) Summary() (*entity.SummaryResponse, error) {
	dataset, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return computeSummary(dataset), nil
}

// Trend группирует продажи по дням, ISO-неделям или месяцам и оценивает
// направление выручки линейной регрессией по бакетам
func (s *AnalyticsService) Trend(interval string) (*entity.TrendResponse, error) {
	dataset, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return computeTrend(dataset, interval)
}

// Categories возвращает разбивку по категориям, отсортированную по выручке
func (s *AnalyticsService) Categories() (*entity.CategoryListResponse, error) {
	dataset, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return computeCategories(dataset), nil
}

// TopProducts возвращает товары с наибольшей выручкой.
// При limit <= 0 действует лимит по умолчанию из конфигурации.
func (s *AnalyticsService) TopProducts(limit int) (*entity.ProductListResponse, error) {
	dataset, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = s.insights.TopProductsDefault
	}
	return computeTopProducts(dataset, limit), nil
}

// Regions возвращает разбивку по регионам, отсортированную по выручке
func (s *AnalyticsService) Regions() (*entity.RegionListResponse, error) {
	dataset, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return computeRegions(dataset), nil
}

// Weekdays возвращает выручку по дням недели от понедельника до воскресенья
// вместе с лучшим и худшим днем
func (s *AnalyticsService) Weekdays() (*entity.WeekdayResponse, error) {
	dataset, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return computeWeekdays(dataset), nil
}

// Meta возвращает манифест загруженного датасета
func (s *AnalyticsService) Meta() (*entity.MetaResponse, error) {
	dataset, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	return &entity.MetaResponse{
		Manifest: dataset.Manifest,
		LoadedAt: dataset.LoadedAt,
	}, nil
}

// === ЧИСТЫЕ ВЫЧИСЛЕНИЯ ПО СНИМКУ ===

func computeSummary(dataset *entity.Dataset) *entity.SummaryResponse {
	summary := &entity.SummaryResponse{
		TotalOrders: len(dataset.Sales),
		WindowStart: dataset.Manifest.WindowStart,
		WindowEnd:   dataset.Manifest.WindowEnd,
	}

	for _, sale := range dataset.Sales {
		summary.TotalRevenue += sale.Total
		summary.TotalProfit += sale.Profit
		summary.TotalQuantity += sale.Quantity
	}

	if summary.TotalOrders > 0 {
		summary.AvgOrderValue = round2(summary.TotalRevenue / float64(summary.TotalOrders))
	}
	if summary.TotalRevenue > 0 {
		summary.OverallMarginPct = round2(summary.TotalProfit / summary.TotalRevenue * 100)
	}
	summary.TotalRevenue = round2(summary.TotalRevenue)
	summary.TotalProfit = round2(summary.TotalProfit)

	return summary
}

func computeTrend(dataset *entity.Dataset, interval string) (*entity.TrendResponse, error) {
	bucketOf, err := bucketFunc(interval)
	if err != nil {
		return nil, err
	}

	byBucket := make(map[string]*entity.TrendPoint)
	for _, sale := range dataset.Sales {
		bucket := bucketOf(sale.Date)
		point, ok := byBucket[bucket]
		if !ok {
			point = &entity.TrendPoint{Bucket: bucket}
			byBucket[bucket] = point
		}
		point.Revenue += sale.Total
		point.Profit += sale.Profit
		point.Orders++
		point.Quantity += sale.Quantity
	}

	buckets := make([]string, 0, len(byBucket))
	for bucket := range byBucket {
		buckets = append(buckets, bucket)
	}
	sort.Strings(buckets)

	points := make([]entity.TrendPoint, 0, len(buckets))
	for _, bucket := range buckets {
		point := byBucket[bucket]
		point.Revenue = round2(point.Revenue)
		point.Profit = round2(point.Profit)
		points = append(points, *point)
	}

	response := &entity.TrendResponse{
		Interval: interval,
		Points:   points,
	}

	if len(points) >= 2 {
		response.Slope = round2(revenueSlope(points))
		first := points[0].Revenue
		last := points[len(points)-1].Revenue
		if first > 0 {
			response.GrowthPct = round2((last - first) / first * 100)
		}
	}

	return response, nil
}

// computeCategories сортирует категории по выручке, при равенстве по алфавиту
func computeCategories(dataset *entity.Dataset) *entity.CategoryListResponse {
	type bucket struct {
		revenue  float64
		profit   float64
		quantity int
	}

	byCategory := make(map[string]*bucket)
	totalRevenue := 0.0
	for _, sale := range dataset.Sales {
		b, ok := byCategory[sale.Category]
		if !ok {
			b = &bucket{}
			byCategory[sale.Category] = b
		}
		b.revenue += sale.Total
		b.profit += sale.Profit
		b.quantity += sale.Quantity
		totalRevenue += sale.Total
	}

	categories := make([]entity.CategoryStat, 0, len(byCategory))
	for name, b := range byCategory {
		stat := entity.CategoryStat{
			Category: name,
			Revenue:  round2(b.revenue),
			Profit:   round2(b.profit),
			Quantity: b.quantity,
		}
		if b.revenue > 0 {
			stat.MarginPct = round2(b.profit / b.revenue * 100)
		}
		if totalRevenue > 0 {
			stat.SharePct = round2(b.revenue / totalRevenue * 100)
		}
		categories = append(categories, stat)
	}

	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Revenue != categories[j].Revenue {
			return categories[i].Revenue > categories[j].Revenue
		}
		return categories[i].Category < categories[j].Category
	})

	return &entity.CategoryListResponse{
		Categories: categories,
		Total:      len(categories),
	}
}

// computeTopProducts учитывает только товары, у которых были продажи
func computeTopProducts(dataset *entity.Dataset, limit int) *entity.ProductListResponse {
	type bucket struct {
		revenue  float64
		profit   float64
		quantity int
	}

	byProduct := make(map[int]*bucket)
	for _, sale := range dataset.Sales {
		b, ok := byProduct[sale.ProductID]
		if !ok {
			b = &bucket{}
			byProduct[sale.ProductID] = b
		}
		b.revenue += sale.Total
		b.profit += sale.Profit
		b.quantity += sale.Quantity
	}

	productByID := make(map[int]entity.Product, len(dataset.Products))
	for _, p := range dataset.Products {
		productByID[p.ID] = p
	}

	products := make([]entity.ProductStat, 0, len(byProduct))
	for id, b := range byProduct {
		stat := entity.ProductStat{
			ProductID: id,
			Revenue:   round2(b.revenue),
			Profit:    round2(b.profit),
			Quantity:  b.quantity,
		}
		if p, ok := productByID[id]; ok {
			stat.SKU = p.SKU
			stat.Name = p.Name
			stat.Category = p.Category
			stat.MarginPct = p.MarginPct
		}
		products = append(products, stat)
	}

	sort.Slice(products, func(i, j int) bool {
		if products[i].Revenue != products[j].Revenue {
			return products[i].Revenue > products[j].Revenue
		}
		return products[i].ProductID < products[j].ProductID
	})

	if len(products) > limit {
		products = products[:limit]
	}

	return &entity.ProductListResponse{
		Products: products,
		Total:    len(products),
	}
}

func computeRegions(dataset *entity.Dataset) *entity.RegionListResponse {
	type bucket struct {
		revenue float64
		profit  float64
		orders  int
	}

	byRegion := make(map[string]*bucket)
	totalRevenue := 0.0
	for _, sale := range dataset.Sales {
		b, ok := byRegion[sale.Region]
		if !ok {
			b = &bucket{}
			byRegion[sale.Region] = b
		}
		b.revenue += sale.Total
		b.profit += sale.Profit
		b.orders++
		totalRevenue += sale.Total
	}

	regions := make([]entity.RegionStat, 0, len(byRegion))
	for name, b := range byRegion {
		stat := entity.RegionStat{
			Region:  name,
			Revenue: round2(b.revenue),
			Profit:  round2(b.profit),
			Orders:  b.orders,
		}
		if totalRevenue > 0 {
			stat.SharePct = round2(b.revenue / totalRevenue * 100)
		}
		regions = append(regions, stat)
	}

	sort.Slice(regions, func(i, j int) bool {
		if regions[i].Revenue != regions[j].Revenue {
			return regions[i].Revenue > regions[j].Revenue
		}
		return regions[i].Region < regions[j].Region
	})

	return &entity.RegionListResponse{
		Regions: regions,
		Total:   len(regions),
	}
}

func computeWeekdays(dataset *entity.Dataset) *entity.WeekdayResponse {
	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}

	revenue := make(map[time.Weekday]float64)
	orders := make(map[time.Weekday]int)
	for _, sale := range dataset.Sales {
		wd := sale.Date.Weekday()
		revenue[wd] += sale.Total
		orders[wd]++
	}

	response := &entity.WeekdayResponse{
		Weekdays: make([]entity.WeekdayStat, 0, len(order)),
	}

	for _, wd := range order {
		stat := entity.WeekdayStat{
			Weekday: wd.String(),
			Revenue: round2(revenue[wd]),
			Orders:  orders[wd],
		}
		if stat.Orders > 0 {
			stat.AvgOrder = round2(revenue[wd] / float64(stat.Orders))
		}
		response.Weekdays = append(response.Weekdays, stat)
	}

	if len(dataset.Sales) > 0 {
		best, worst := order[0], order[0]
		for _, wd := range order[1:] {
			if revenue[wd] > revenue[best] {
				best = wd
			}
			if revenue[wd] < revenue[worst] {
				worst = wd
			}
		}
		response.Best = best.String()
		response.Worst = worst.String()
	}

	return response
}

// bucketFunc возвращает функцию разметки даты в бакет тренда
func bucketFunc(interval string) (func(time.Time) string, error) {
	switch interval {
	case entity.IntervalDaily:
		return func(t time.Time) string { return t.Format("2006-01-02") }, nil
	case entity.IntervalWeekly:
		return func(t time.Time) string {
			year, week := t.ISOWeek()
			return fmt.Sprintf("%04d-W%02d", year, week)
		}, nil
	case entity.IntervalMonthly:
		return func(t time.Time) string { return t.Format("2006-01") }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownInterval, interval)
	}
}

// revenueSlope оценивает наклон выручки по бакетам линейной регрессией
func revenueSlope(points []entity.TrendPoint) float64 {
	series := make(stats.Series, 0, len(points))
	for i, point := range points {
		series = append(series, stats.Coordinate{X: float64(i), Y: point.Revenue})
	}

	fitted, err := stats.LinearRegression(series)
	if err != nil || len(fitted) < 2 {
		return 0
	}

	last := len(fitted) - 1
	return (fitted[last].Y - fitted[0].Y) / (fitted[last].X - fitted[0].X)
}

// round2 округляет до двух знаков для денежных и процентных полей API
func round2(v float64) float64 {
	rounded, err := stats.Round(v, 2)
	if err != nil {
		return 0
	}
	return rounded
}
