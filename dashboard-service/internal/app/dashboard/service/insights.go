package service

import (
	"fmt"

	"github.com/hgrubina/business-intelligence-suite/dashboard-service/internal/app/dashboard/config"
	"github.com/hgrubina/business-intelligence-suite/dashboard-service/internal/app/dashboard/entity"
	"github.com/hgrubina/business-intelligence-suite/pkg/metrics"
)

// Insights строит эвристические выводы по текущему снимку датасета.
// Каждая эвристика включается только когда для нее хватает данных.
func (s *AnalyticsService) Insights() (*entity.InsightListResponse, error) {
	dataset, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	insights := buildInsights(dataset, s.insights)
	for _, insight := range insights {
		metrics.RecordInsight(serviceName, insight.Kind, insight.Severity)
	}

	return &entity.InsightListResponse{
		Insights: insights,
		Total:    len(insights),
	}, nil
}

func buildInsights(dataset *entity.Dataset, cfg config.InsightsConfig) []entity.Insight {
	insights := make([]entity.Insight, 0, 5)

	if insight, ok := revenueTrendInsight(dataset); ok {
		insights = append(insights, insight)
	}
	if insight, ok := categoryLeaderInsight(dataset); ok {
		insights = append(insights, insight)
	}
	if insight, ok := overallMarginInsight(dataset, cfg); ok {
		insights = append(insights, insight)
	}
	if insight, ok := weekdayPatternInsight(dataset); ok {
		insights = append(insights, insight)
	}
	if insight, ok := productMarginsInsight(dataset, cfg); ok {
		insights = append(insights, insight)
	}

	return insights
}

// revenueTrendInsight смотрит на знак наклона дневной выручки
func revenueTrendInsight(dataset *entity.Dataset) (entity.Insight, bool) {
	trend, err := computeTrend(dataset, entity.IntervalDaily)
	if err != nil || len(trend.Points) < 2 {
		return entity.Insight{}, false
	}

	insight := entity.Insight{Kind: entity.InsightRevenueTrend}
	switch {
	case trend.Slope > 0:
		insight.Severity = entity.SeverityPositive
		insight.Message = fmt.Sprintf("Revenue is trending upward: %+.1f%% between the first and last day", trend.GrowthPct)
	case trend.Slope < 0:
		insight.Severity = entity.SeverityWarning
		insight.Message = fmt.Sprintf("Revenue is trending downward: %.1f%% between the first and last day", trend.GrowthPct)
	default:
		insight.Severity = entity.SeverityNeutral
		insight.Message = "Revenue is flat across the sales window"
	}

	return insight, true
}

// categoryLeaderInsight называет категорию с наибольшей выручкой
func categoryLeaderInsight(dataset *entity.Dataset) (entity.Insight, bool) {
	categories := computeCategories(dataset)
	if len(categories.Categories) == 0 {
		return entity.Insight{}, false
	}

	leader := categories.Categories[0]
	return entity.Insight{
		Kind:     entity.InsightCategoryLeader,
		Severity: entity.SeverityNeutral,
		Message:  fmt.Sprintf("%s leads revenue with a %.1f%% share", leader.Category, leader.SharePct),
	}, true
}

// overallMarginInsight сравнивает общую маржу с настроенными порогами
func overallMarginInsight(dataset *entity.Dataset, cfg config.InsightsConfig) (entity.Insight, bool) {
	summary := computeSummary(dataset)
	if summary.TotalRevenue <= 0 {
		return entity.Insight{}, false
	}

	insight := entity.Insight{Kind: entity.InsightOverallMargin}
	switch {
	case summary.OverallMarginPct > cfg.HighMarginPct:
		insight.Severity = entity.SeverityPositive
		insight.Message = fmt.Sprintf("Overall margin is strong: %.1f%% exceeds the %.0f%% target", summary.OverallMarginPct, cfg.HighMarginPct)
	case summary.OverallMarginPct < cfg.LowMarginPct:
		insight.Severity = entity.SeverityWarning
		insight.Message = fmt.Sprintf("Overall margin is weak: %.1f%% is below the %.0f%% floor", summary.OverallMarginPct, cfg.LowMarginPct)
	default:
		insight.Severity = entity.SeverityNeutral
		insight.Message = fmt.Sprintf("Overall margin is %.1f%%, within the healthy range", summary.OverallMarginPct)
	}

	return insight, true
}

// weekdayPatternInsight называет лучший и худший день недели по выручке
func weekdayPatternInsight(dataset *entity.Dataset) (entity.Insight, bool) {
	weekdays := computeWeekdays(dataset)
	if weekdays.Best == "" {
		return entity.Insight{}, false
	}

	return entity.Insight{
		Kind:     entity.InsightWeekdayPattern,
		Severity: entity.SeverityNeutral,
		Message:  fmt.Sprintf("Best sales day is %s, slowest is %s", weekdays.Best, weekdays.Worst),
	}, true
}

// productMarginsInsight считает товары за пределами маржинальных порогов
func productMarginsInsight(dataset *entity.Dataset, cfg config.InsightsConfig) (entity.Insight, bool) {
	if len(dataset.Products) == 0 {
		return entity.Insight{}, false
	}

	premium := 0
	review := 0
	for _, product := range dataset.Products {
		if product.MarginPct > cfg.ProductHighMarginPct {
			premium++
		}
		if product.MarginPct < cfg.ProductLowMarginPct {
			review++
		}
	}

	insight := entity.Insight{
		Kind: entity.InsightProductMargins,
		Message: fmt.Sprintf("%d products carry premium margins above %.0f%%, %d are below %.0f%% and need a pricing review",
			premium, cfg.ProductHighMarginPct, review, cfg.ProductLowMarginPct),
	}

	switch {
	case review > 0:
		insight.Severity = entity.SeverityWarning
	case premium > 0:
		insight.Severity = entity.SeverityPositive
	default:
		insight.Severity = entity.SeverityNeutral
	}

	return insight, true
}
