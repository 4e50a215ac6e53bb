package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hgrubina/business-intelligence-suite/dashboard-service/internal/app/dashboard/config"
	"github.com/hgrubina/business-intelligence-suite/dashboard-service/internal/app/dashboard/entity"
	"github.com/hgrubina/business-intelligence-suite/dashboard-service/internal/app/dashboard/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func testInsightsConfig() config.InsightsConfig {
	return config.InsightsConfig{
		HighMarginPct:        55,
		LowMarginPct:         45,
		ProductHighMarginPct: 60,
		ProductLowMarginPct:  40,
		TopProductsDefault:   2,
	}
}

// newTestDataset строит маленький снимок с известными вручную агрегатами.
// 2025-03-10 это понедельник.
func newTestDataset() *entity.Dataset {
	return &entity.Dataset{
		Products: []entity.Product{
			{ID: 1, SKU: "SKU-0001", Name: "Smart Aura Phone", Category: "Electronics", Price: 100, Cost: 30, MarginPct: 70},
			{ID: 2, SKU: "SKU-0002", Name: "Classic Oak Table", Category: "Furniture", Price: 200, Cost: 130, MarginPct: 35},
			{ID: 3, SKU: "SKU-0003", Name: "Cozy Wool Plaid", Category: "Home", Price: 50, Cost: 28, MarginPct: 44},
		},
		Sales: []entity.Sale{
			{ID: 1, Date: day(10), CustomerID: 1, ProductID: 1, Category: "Electronics", Region: "Moscow", Quantity: 1, Total: 100, Profit: 70},
			{ID: 2, Date: day(10), CustomerID: 2, ProductID: 1, Category: "Electronics", Region: "Kazan", Quantity: 2, Total: 200, Profit: 140},
			{ID: 3, Date: day(11), CustomerID: 1, ProductID: 2, Category: "Furniture", Region: "Moscow", Quantity: 1, Total: 200, Profit: 70},
			{ID: 4, Date: day(12), CustomerID: 2, ProductID: 3, Category: "Home", Region: "Novosibirsk", Quantity: 3, Total: 150, Profit: 66},
		},
		Manifest: entity.Manifest{
			RunID:         "run-123",
			Seed:          42,
			GeneratedAt:   time.Date(2025, 3, 14, 6, 0, 0, 0, time.UTC),
			WindowStart:   day(10),
			WindowEnd:     day(13),
			ProductCount:  3,
			CustomerCount: 2,
			SaleCount:     4,
		},
		LoadedAt: time.Date(2025, 3, 14, 6, 0, 1, 0, time.UTC),
	}
}

func newLoadedService(t *testing.T, dataset *entity.Dataset) *AnalyticsService {
	t.Helper()

	repo := new(mocks.MockDatasetRepository)
	repo.On("LoadDataset", mock.Anything).Return(dataset, nil).Once()

	svc := NewAnalyticsService(repo, testInsightsConfig())
	require.NoError(t, svc.Reload(context.Background()))

	return svc
}

func TestAnalyticsService_NotLoaded(t *testing.T) {
	svc := NewAnalyticsService(new(mocks.MockDatasetRepository), testInsightsConfig())

	assert.False(t, svc.Loaded())

	_, err := svc.Summary()
	assert.ErrorIs(t, err, ErrDatasetNotLoaded)

	_, err = svc.Trend(entity.IntervalDaily)
	assert.ErrorIs(t, err, ErrDatasetNotLoaded)

	_, err = svc.Insights()
	assert.ErrorIs(t, err, ErrDatasetNotLoaded)

	_, err = svc.Meta()
	assert.ErrorIs(t, err, ErrDatasetNotLoaded)
}

func TestReload_Success(t *testing.T) {
	// Arrange
	repo := new(mocks.MockDatasetRepository)
	repo.On("LoadDataset", mock.Anything).Return(newTestDataset(), nil).Once()
	svc := NewAnalyticsService(repo, testInsightsConfig())

	// Act
	err := svc.Reload(context.Background())

	// Assert
	require.NoError(t, err)
	assert.True(t, svc.Loaded())
	repo.AssertExpectations(t)
}

func TestReload_FailureKeepsPreviousSnapshot(t *testing.T) {
	// Arrange
	repo := new(mocks.MockDatasetRepository)
	repo.On("LoadDataset", mock.Anything).Return(newTestDataset(), nil).Once()
	repo.On("LoadDataset", mock.Anything).Return(nil, errors.New("disk detached")).Once()
	svc := NewAnalyticsService(repo, testInsightsConfig())
	require.NoError(t, svc.Reload(context.Background()))

	// Act
	err := svc.Reload(context.Background())

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reload dataset")
	assert.Contains(t, err.Error(), "disk detached")

	summary, err := svc.Summary()
	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalOrders)
	repo.AssertExpectations(t)
}

func TestSummary(t *testing.T) {
	svc := newLoadedService(t, newTestDataset())

	summary, err := svc.Summary()

	require.NoError(t, err)
	assert.Equal(t, 650.0, summary.TotalRevenue)
	assert.Equal(t, 346.0, summary.TotalProfit)
	assert.Equal(t, 4, summary.TotalOrders)
	assert.Equal(t, 7, summary.TotalQuantity)
	assert.Equal(t, 162.5, summary.AvgOrderValue)
	assert.Equal(t, 53.23, summary.OverallMarginPct)
	assert.True(t, summary.WindowStart.Equal(day(10)))
	assert.True(t, summary.WindowEnd.Equal(day(13)))
}

func TestTrend_Daily(t *testing.T) {
	svc := newLoadedService(t, newTestDataset())

	trend, err := svc.Trend(entity.IntervalDaily)

	require.NoError(t, err)
	assert.Equal(t, entity.IntervalDaily, trend.Interval)
	require.Len(t, trend.Points, 3)

	assert.Equal(t, "2025-03-10", trend.Points[0].Bucket)
	assert.Equal(t, 300.0, trend.Points[0].Revenue)
	assert.Equal(t, 210.0, trend.Points[0].Profit)
	assert.Equal(t, 2, trend.Points[0].Orders)
	assert.Equal(t, 3, trend.Points[0].Quantity)

	assert.Equal(t, "2025-03-11", trend.Points[1].Bucket)
	assert.Equal(t, 200.0, trend.Points[1].Revenue)

	assert.Equal(t, "2025-03-12", trend.Points[2].Bucket)
	assert.Equal(t, 150.0, trend.Points[2].Revenue)

	// Выручка 300 -> 200 -> 150, наклон наименьших квадратов ровно -75
	assert.InDelta(t, -75.0, trend.Slope, 0.011)
	assert.Equal(t, -50.0, trend.GrowthPct)
}

func TestTrend_WeeklyAndMonthlyCollapseShortWindow(t *testing.T) {
	svc := newLoadedService(t, newTestDataset())

	weekly, err := svc.Trend(entity.IntervalWeekly)
	require.NoError(t, err)
	require.Len(t, weekly.Points, 1)
	assert.Equal(t, "2025-W11", weekly.Points[0].Bucket)
	assert.Equal(t, 650.0, weekly.Points[0].Revenue)
	assert.Zero(t, weekly.Slope)
	assert.Zero(t, weekly.GrowthPct)

	monthly, err := svc.Trend(entity.IntervalMonthly)
	require.NoError(t, err)
	require.Len(t, monthly.Points, 1)
	assert.Equal(t, "2025-03", monthly.Points[0].Bucket)
	assert.Equal(t, 650.0, monthly.Points[0].Revenue)
}

// Недельные бакеты живут по ISO-календарю: конец декабря и начало января
// могут попасть в одну и ту же неделю
func TestTrend_WeeklyUsesISOWeeks(t *testing.T) {
	dataset := newTestDataset()
	dataset.Sales = []entity.Sale{
		{ID: 1, Date: time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), ProductID: 1, Category: "Electronics", Region: "Moscow", Quantity: 1, Total: 100, Profit: 50},
		{ID: 2, Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), ProductID: 1, Category: "Electronics", Region: "Moscow", Quantity: 1, Total: 200, Profit: 100},
	}
	svc := newLoadedService(t, dataset)

	trend, err := svc.Trend(entity.IntervalWeekly)

	require.NoError(t, err)
	require.Len(t, trend.Points, 1)
	assert.Equal(t, "2025-W01", trend.Points[0].Bucket)
	assert.Equal(t, 300.0, trend.Points[0].Revenue)
}

func TestTrend_UnknownInterval(t *testing.T) {
	svc := newLoadedService(t, newTestDataset())

	trend, err := svc.Trend("hourly")

	assert.ErrorIs(t, err, ErrUnknownInterval)
	assert.Nil(t, trend)
}

func TestCategories(t *testing.T) {
	svc := newLoadedService(t, newTestDataset())

	result, err := svc.Categories()

	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	require.Len(t, result.Categories, 3)

	assert.Equal(t, "Electronics", result.Categories[0].Category)
	assert.Equal(t, 300.0, result.Categories[0].Revenue)
	assert.Equal(t, 210.0, result.Categories[0].Profit)
	assert.Equal(t, 3, result.Categories[0].Quantity)
	assert.Equal(t, 70.0, result.Categories[0].MarginPct)
	assert.Equal(t, 46.15, result.Categories[0].SharePct)

	assert.Equal(t, "Furniture", result.Categories[1].Category)
	assert.Equal(t, 200.0, result.Categories[1].Revenue)
	assert.Equal(t, 35.0, result.Categories[1].MarginPct)

	assert.Equal(t, "Home", result.Categories[2].Category)
	assert.Equal(t, 150.0, result.Categories[2].Revenue)
	assert.Equal(t, 44.0, result.Categories[2].MarginPct)
}

func TestCategories_TieGoesAlphabetically(t *testing.T) {
	dataset := newTestDataset()
	dataset.Sales = []entity.Sale{
		{ID: 1, Date: day(10), ProductID: 1, Category: "Books", Region: "Moscow", Quantity: 1, Total: 100, Profit: 40},
		{ID: 2, Date: day(10), ProductID: 2, Category: "Audio", Region: "Moscow", Quantity: 1, Total: 100, Profit: 40},
	}
	svc := newLoadedService(t, dataset)

	result, err := svc.Categories()

	require.NoError(t, err)
	require.Len(t, result.Categories, 2)
	assert.Equal(t, "Audio", result.Categories[0].Category)
	assert.Equal(t, "Books", result.Categories[1].Category)
}

func TestTopProducts(t *testing.T) {
	svc := newLoadedService(t, newTestDataset())

	result, err := svc.TopProducts(10)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	require.Len(t, result.Products, 3)

	top := result.Products[0]
	assert.Equal(t, 1, top.ProductID)
	assert.Equal(t, "SKU-0001", top.SKU)
	assert.Equal(t, "Smart Aura Phone", top.Name)
	assert.Equal(t, "Electronics", top.Category)
	assert.Equal(t, 300.0, top.Revenue)
	assert.Equal(t, 210.0, top.Profit)
	assert.Equal(t, 3, top.Quantity)
	assert.Equal(t, 70.0, top.MarginPct)

	assert.Equal(t, 2, result.Products[1].ProductID)
	assert.Equal(t, 3, result.Products[2].ProductID)
}

func TestTopProducts_LimitApplied(t *testing.T) {
	svc := newLoadedService(t, newTestDataset())

	result, err := svc.TopProducts(1)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	require.Len(t, result.Products, 1)
	assert.Equal(t, 1, result.Products[0].ProductID)
}

// При нулевом лимите действует лимит по умолчанию из конфигурации
func TestTopProducts_DefaultLimit(t *testing.T) {
	svc := newLoadedService(t, newTestDataset())

	result, err := svc.TopProducts(0)

	require.NoError(t, err)
	assert.Len(t, result.Products, 2)
}

// Продажа с товаром, которого нет в каталоге, остается в рейтинге
// с пустыми каталожными полями
func TestTopProducts_UnknownProductKept(t *testing.T) {
	dataset := newTestDataset()
	dataset.Sales = append(dataset.Sales, entity.Sale{
		ID: 5, Date: day(12), ProductID: 99, Category: "Electronics", Region: "Moscow", Quantity: 1, Total: 400, Profit: 100,
	})
	svc := newLoadedService(t, dataset)

	result, err := svc.TopProducts(10)

	require.NoError(t, err)
	require.Len(t, result.Products, 4)
	assert.Equal(t, 99, result.Products[0].ProductID)
	assert.Empty(t, result.Products[0].SKU)
	assert.Equal(t, 400.0, result.Products[0].Revenue)
}

func TestRegions(t *testing.T) {
	svc := newLoadedService(t, newTestDataset())

	result, err := svc.Regions()

	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	require.Len(t, result.Regions, 3)

	assert.Equal(t, "Moscow", result.Regions[0].Region)
	assert.Equal(t, 300.0, result.Regions[0].Revenue)
	assert.Equal(t, 140.0, result.Regions[0].Profit)
	assert.Equal(t, 2, result.Regions[0].Orders)
	assert.Equal(t, 46.15, result.Regions[0].SharePct)

	assert.Equal(t, "Kazan", result.Regions[1].Region)
	assert.Equal(t, "Novosibirsk", result.Regions[2].Region)
}

func TestWeekdays(t *testing.T) {
	svc := newLoadedService(t, newTestDataset())

	result, err := svc.Weekdays()

	require.NoError(t, err)
	require.Len(t, result.Weekdays, 7)

	monday := result.Weekdays[0]
	assert.Equal(t, "Monday", monday.Weekday)
	assert.Equal(t, 300.0, monday.Revenue)
	assert.Equal(t, 2, monday.Orders)
	assert.Equal(t, 150.0, monday.AvgOrder)

	tuesday := result.Weekdays[1]
	assert.Equal(t, "Tuesday", tuesday.Weekday)
	assert.Equal(t, 200.0, tuesday.Revenue)

	sunday := result.Weekdays[6]
	assert.Equal(t, "Sunday", sunday.Weekday)
	assert.Zero(t, sunday.Revenue)
	assert.Zero(t, sunday.Orders)
	assert.Zero(t, sunday.AvgOrder)

	assert.Equal(t, "Monday", result.Best)
	assert.Equal(t, "Thursday", result.Worst)
}

func TestWeekdays_EmptySales(t *testing.T) {
	dataset := newTestDataset()
	dataset.Sales = nil
	svc := newLoadedService(t, dataset)

	result, err := svc.Weekdays()

	require.NoError(t, err)
	require.Len(t, result.Weekdays, 7)
	assert.Empty(t, result.Best)
	assert.Empty(t, result.Worst)
}

func TestMeta(t *testing.T) {
	svc := newLoadedService(t, newTestDataset())

	meta, err := svc.Meta()

	require.NoError(t, err)
	assert.Equal(t, "run-123", meta.Manifest.RunID)
	assert.Equal(t, int64(42), meta.Manifest.Seed)
	assert.Equal(t, 4, meta.Manifest.SaleCount)
	assert.True(t, meta.LoadedAt.Equal(time.Date(2025, 3, 14, 6, 0, 1, 0, time.UTC)))
}

func TestSummary_EmptyDataset(t *testing.T) {
	dataset := newTestDataset()
	dataset.Sales = nil
	svc := newLoadedService(t, dataset)

	summary, err := svc.Summary()

	require.NoError(t, err)
	assert.Zero(t, summary.TotalRevenue)
	assert.Zero(t, summary.TotalOrders)
	assert.Zero(t, summary.AvgOrderValue)
	assert.Zero(t, summary.OverallMarginPct)
}
