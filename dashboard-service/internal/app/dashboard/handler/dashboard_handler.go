package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/hgrubina/business-intelligence-suite/dashboard-service/internal/app/dashboard/entity"
	"github.com/hgrubina/business-intelligence-suite/dashboard-service/internal/app/dashboard/repository"
	"github.com/hgrubina/business-intelligence-suite/dashboard-service/internal/app/dashboard/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AnalyticsServiceInterface interface {
	Reload(ctx context.Context) error
	Loaded() bool
	Summary() (*entity.SummaryResponse, error)
	Trend(interval string) (*entity.TrendResponse, error)
	Categories() (*entity.CategoryListResponse, error)
	TopProducts(limit int) (*entity.ProductListResponse, error)
	Regions() (*entity.RegionListResponse, error)
	Weekdays() (*entity.WeekdayResponse, error)
	Insights() (*entity.InsightListResponse, error)
	Meta() (*entity.MetaResponse, error)
}

type DashboardHandler struct {
	analyticsService AnalyticsServiceInterface
	validator        *validator.Validate
}

func NewDashboardHandler(analyticsService AnalyticsServiceInterface) *DashboardHandler {
	return &DashboardHandler{
		analyticsService: analyticsService,
		validator:        validator.New(),
	}
}

func (h *DashboardHandler) HealthCheck(c *gin.Context) {
	loaded := h.analyticsService.Loaded()
	status := "healthy"
	if !loaded {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         status,
		"service":        "dashboard-service",
		"dataset_loaded": loaded,
	})
}

func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.analyticsService.Summary()
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *DashboardHandler) GetTrend(c *gin.Context) {
	var query entity.TrendQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	if err := h.validator.Struct(query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if query.Interval == "" {
		query.Interval = entity.IntervalDaily
	}

	trend, err := h.analyticsService.Trend(query.Interval)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, trend)
}

func (h *DashboardHandler) GetCategories(c *gin.Context) {
	categories, err := h.analyticsService.Categories()
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *DashboardHandler) GetTopProducts(c *gin.Context) {
	var query entity.TopProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	if err := h.validator.Struct(query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	products, err := h.analyticsService.TopProducts(query.Limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *DashboardHandler) GetRegions(c *gin.Context) {
	regions, err := h.analyticsService.Regions()
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, regions)
}

func (h *DashboardHandler) GetWeekdays(c *gin.Context) {
	weekdays, err := h.analyticsService.Weekdays()
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, weekdays)
}

func (h *DashboardHandler) GetInsights(c *gin.Context) {
	insights, err := h.analyticsService.Insights()
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, insights)
}

func (h *DashboardHandler) GetMeta(c *gin.Context) {
	meta, err := h.analyticsService.Meta()
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, meta)
}

func (h *DashboardHandler) RefreshDataset(c *gin.Context) {
	if err := h.analyticsService.Reload(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}

	meta, err := h.analyticsService.Meta()
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.RefreshResponse{
		Status:   "reloaded",
		LoadedAt: meta.LoadedAt,
		Rows:     meta.Manifest.SaleCount,
	})
}

// respondError переводит ошибки сервиса и репозитория в HTTP-статусы
func (h *DashboardHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDatasetNotLoaded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Dataset is not loaded yet"})
	case errors.Is(err, repository.ErrDatasetNotFound):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Dataset files are missing"})
	case errors.Is(err, service.ErrUnknownInterval):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trend interval"})
	case errors.Is(err, repository.ErrMalformedDataset):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Dataset files are malformed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
