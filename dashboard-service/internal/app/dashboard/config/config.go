package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig возвращается при любой ошибке валидации конфигурации
var ErrInvalidConfig = errors.New("invalid configuration")

var validate = validator.New()

// Config содержит все настройки Dashboard Service.
// Включает конфигурацию HTTP сервера, источника данных, расписания
// обновления и порогов для текстовых инсайтов.
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Refresh  RefreshConfig
	Insights InsightsConfig
	CORS     CORSConfig
	LogLevel string
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string `validate:"required"` // Порт сервера (по умолчанию 8084)
}

// DataConfig - откуда читать датасет генератора
type DataConfig struct {
	Dir string `validate:"required"` // Каталог с products.csv, sales.csv и manifest.json
}

// RefreshConfig - настройки планового обновления датасета
type RefreshConfig struct {
	Schedule string `validate:"required"` // Cron-расписание из пяти полей (по умолчанию каждый день в 06:00)
}

// InsightsConfig - пороги эвристик для текстовых инсайтов.
// Значения в процентах, сравниваются с маржой датасета.
type InsightsConfig struct {
	HighMarginPct        float64 `validate:"gt=0,lt=100"` // Общая маржа выше порога считается высокой
	LowMarginPct         float64 `validate:"gt=0,lt=100"` // Общая маржа ниже порога считается низкой
	ProductHighMarginPct float64 `validate:"gt=0,lt=100"` // Порог премиальной маржи товара
	ProductLowMarginPct  float64 `validate:"gt=0,lt=100"` // Порог проблемной маржи товара
	TopProductsDefault   int     `validate:"gt=0"`        // Лимит топа товаров, если клиент не передал свой
}

// CORSConfig - разрешённые источники для браузерных клиентов
type CORSConfig struct {
	AllowOrigins []string `validate:"min=1"`
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8084"),
		},
		Data: DataConfig{
			Dir: getEnv("DATA_DIR", "data/raw"),
		},
		Refresh: RefreshConfig{
			Schedule: getEnv("REFRESH_SCHEDULE", "0 6 * * *"),
		},
		Insights: InsightsConfig{
			HighMarginPct:        getEnvFloat("INSIGHTS_HIGH_MARGIN_PCT", 55),
			LowMarginPct:         getEnvFloat("INSIGHTS_LOW_MARGIN_PCT", 45),
			ProductHighMarginPct: getEnvFloat("INSIGHTS_PRODUCT_HIGH_MARGIN_PCT", 60),
			ProductLowMarginPct:  getEnvFloat("INSIGHTS_PRODUCT_LOW_MARGIN_PCT", 40),
			TopProductsDefault:   getEnvInt("INSIGHTS_TOP_PRODUCTS_DEFAULT", 20),
		},
		CORS: CORSConfig{
			AllowOrigins: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "https://*,http://*")),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

// Validate проверяет согласованность конфигурации до старта сервера
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, formatValidationError(err))
	}

	if c.Insights.LowMarginPct >= c.Insights.HighMarginPct {
		return fmt.Errorf("%w: low margin threshold must be below high margin threshold", ErrInvalidConfig)
	}
	if c.Insights.ProductLowMarginPct >= c.Insights.ProductHighMarginPct {
		return fmt.Errorf("%w: product low margin threshold must be below product high margin threshold", ErrInvalidConfig)
	}

	return nil
}

// Address возвращает адрес сервера в формате host:port
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			return fieldError.Namespace() + " failed on " + fieldError.Tag()
		}
	}
	return "validation failed"
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает значение переменной окружения как int
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat получает значение переменной окружения как float64
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
