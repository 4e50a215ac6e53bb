package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики (общие для всех сервисов)
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
// Пример запроса PromQL: rate(http_requests_total{service="dashboard"}[5m])
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
// Пример: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "http_request_duration_seconds",
		Help: "Duration of HTTP requests in seconds",
		// Бакеты от 1ms до 10s
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Метрики датасета (dashboard-service)
// =============================================================================

// DatasetRows - количество строк в загруженном снапшоте по таблицам
// Labels: service, table (products, customers, sales, inventory)
var DatasetRows = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "dataset_rows",
		Help: "Number of rows per table in the loaded dataset snapshot",
	},
	[]string{"service", "table"},
)

// DatasetReloads - счётчик перезагрузок датасета с диска
var DatasetReloads = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dataset_reloads_total",
		Help: "Total number of dataset reload attempts",
	},
	[]string{"service", "status"}, // status: success, error
)

// DatasetReloadDuration - время перезагрузки датасета
var DatasetReloadDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "dataset_reload_duration_seconds",
		Help:    "Duration of dataset reloads in seconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service"},
)

// DatasetLastReloadTimestamp - момент последней успешной перезагрузки
// Позволяет алертить на устаревший снапшот: time() - dataset_last_reload_timestamp_seconds
var DatasetLastReloadTimestamp = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "dataset_last_reload_timestamp_seconds",
		Help: "Unix timestamp of the last successful dataset reload",
	},
	[]string{"service"},
)

// DatasetGeneratedAge - возраст датасета по данным манифеста
var DatasetGeneratedAge = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "dataset_generated_age_seconds",
		Help: "Age of the dataset according to the manifest generated_at field",
	},
	[]string{"service"},
)

// =============================================================================
// Метрики аналитики
// =============================================================================

// InsightsGenerated - количество собранных insight-сообщений по типам
var InsightsGenerated = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "insights_generated_total",
		Help: "Total number of generated insight messages",
	},
	[]string{"service", "kind", "severity"},
)
