package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hgrubina/business-intelligence-suite/dashboard-service/internal/app/dashboard/config"
	"github.com/hgrubina/business-intelligence-suite/pkg/logger"
	"github.com/hgrubina/business-intelligence-suite/pkg/metrics"
)

// SetupRoutes настраивает все маршруты приложения с использованием Gin
func SetupRoutes(dashboardHandler *DashboardHandler, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("dashboard-service"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", dashboardHandler.HealthCheck)

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Аналитические эндпоинты дашборда
	api := router.Group("/api/v1")
	{
		api.GET("/summary", dashboardHandler.GetSummary)
		api.GET("/trend", dashboardHandler.GetTrend)
		api.GET("/categories", dashboardHandler.GetCategories)
		api.GET("/products/top", dashboardHandler.GetTopProducts)
		api.GET("/regions", dashboardHandler.GetRegions)
		api.GET("/weekdays", dashboardHandler.GetWeekdays)
		api.GET("/insights", dashboardHandler.GetInsights)
		api.GET("/meta", dashboardHandler.GetMeta)
		api.POST("/refresh", dashboardHandler.RefreshDataset)
	}

	return router
}
