package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig возвращается при любой ошибке валидации конфигурации.
// Генерация не начинается, пока конфигурация не прошла проверку.
var ErrInvalidConfig = errors.New("invalid configuration")

var validate = validator.New()

// Config содержит все настройки Generator Service.
// Пара (Seed, Config) полностью определяет содержимое датасета:
// два запуска с одинаковыми значениями дают байт-в-байт одинаковые таблицы.
type Config struct {
	Seed      int64  // Сид единственного генератора случайных чисел
	LogLevel  string // Уровень логирования (debug/info/warn/error)
	Catalog   CatalogConfig
	Customers CustomersConfig
	Sales     SalesConfig
	Inventory InventoryConfig
	Output    OutputConfig
}

// CatalogConfig - настройки генерации каталога товаров
type CatalogConfig struct {
	Products int                `validate:"gt=0"`      // Количество товаров
	Taxonomy []CategoryTaxonomy `validate:"min=1,dive"` // Категории с подкатегориями
}

// CategoryTaxonomy - категория и упорядоченный список её подкатегорий.
// Порядок фиксирован: от него зависит воспроизводимость генерации.
type CategoryTaxonomy struct {
	Category      string   `validate:"required"`
	Subcategories []string `validate:"min=1"`
}

// CustomersConfig - настройки генерации клиентской базы
type CustomersConfig struct {
	Customers         int `validate:"gt=0"` // Количество клиентов
	SignupWindowYears int `validate:"gt=0"` // Глубина окна дат регистрации в годах
}

// SalesConfig - настройки генерации продаж
type SalesConfig struct {
	Days       int       `validate:"gt=0"` // Длина окна продаж в днях
	StartDate  time.Time // Первый день окна (полночь UTC)
	DemandMean float64   `validate:"gt=0"` // Среднее пуассоновского базового спроса в день
}

// InventoryConfig - настройки генерации складской истории
type InventoryConfig struct {
	Enabled    bool    // Генерировать ли inventory.csv
	Days       int     `validate:"gt=0"` // Независимое окно, последние N дней периода продаж
	DemandMean float64 `validate:"gt=0"` // Среднее пуассоновских дневных списаний со склада
}

// OutputConfig - настройки вывода
type OutputConfig struct {
	Dir string `validate:"required"` // Каталог для CSV-файлов и манифеста
}

// Load загружает конфигурацию из переменных окружения.
// Возвращает ошибку только при синтаксически неразборчивых значениях;
// смысловые проверки выполняет Validate.
func Load() (*Config, error) {
	days := getEnvInt("SALES_DAYS", 365)

	startDate, err := getEnvDate("SALES_START_DATE", defaultStartDate(days))
	if err != nil {
		return nil, fmt.Errorf("invalid SALES_START_DATE value: %w", err)
	}

	return &Config{
		Seed:     getEnvInt64("GENERATOR_SEED", 42),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Catalog: CatalogConfig{
			Products: getEnvInt("CATALOG_PRODUCTS", 50),
			Taxonomy: DefaultTaxonomy(),
		},
		Customers: CustomersConfig{
			Customers:         getEnvInt("CUSTOMERS_COUNT", 200),
			SignupWindowYears: getEnvInt("CUSTOMERS_SIGNUP_YEARS", 3),
		},
		Sales: SalesConfig{
			Days:       days,
			StartDate:  startDate,
			DemandMean: getEnvFloat("SALES_DEMAND_MEAN", 50),
		},
		Inventory: InventoryConfig{
			Enabled:    getEnvBool("INVENTORY_ENABLED", true),
			Days:       getEnvInt("INVENTORY_DAYS", 30),
			DemandMean: getEnvFloat("INVENTORY_DEMAND_MEAN", 2),
		},
		Output: OutputConfig{
			Dir: getEnv("OUTPUT_DIR", "data/raw"),
		},
	}, nil
}

// Validate проверяет конфигурацию до начала генерации.
// Нулевые и отрицательные счётчики, пустая таксономия и битое окно дат
// отклоняются здесь, до первого обращения к генератору случайных чисел.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, formatValidationError(err))
	}

	if c.Sales.StartDate.IsZero() {
		return fmt.Errorf("%w: sales start date is not set", ErrInvalidConfig)
	}

	return nil
}

// WindowEnd возвращает день, следующий за последним днём окна продаж
func (c *SalesConfig) WindowEnd() time.Time {
	return c.StartDate.AddDate(0, 0, c.Days)
}

// DefaultTaxonomy возвращает стандартную таксономию каталога.
// Список упорядочен, изменение порядка меняет сгенерированный датасет.
func DefaultTaxonomy() []CategoryTaxonomy {
	return []CategoryTaxonomy{
		{Category: "Electronics", Subcategories: []string{"Smartphones", "Laptops", "Tablets", "Accessories"}},
		{Category: "Clothing", Subcategories: []string{"Men", "Women", "Kids", "Sportswear"}},
		{Category: "Home", Subcategories: []string{"Kitchen", "Decor", "Furniture", "Garden"}},
		{Category: "Sports", Subcategories: []string{"Fitness", "Running", "Swimming", "Cycling"}},
		{Category: "Books", Subcategories: []string{"Fiction", "Non-Fiction", "Technical", "Children"}},
		{Category: "Toys", Subcategories: []string{"Educational", "Video Games", "Outdoor", "Baby"}},
	}
}

// defaultStartDate выбирает окно так, чтобы оно заканчивалось сегодняшней полночью UTC
func defaultStartDate(days int) time.Time {
	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.AddDate(0, 0, -days)
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

// getEnvInt64 получает значение переменной окружения как int64
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
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

// getEnvBool получает значение переменной окружения как bool
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDate парсит дату в формате YYYY-MM-DD.
// В отличие от остальных хелперов ошибка формата не маскируется значением
// по умолчанию: битая дата окна продаж должна останавливать запуск.
func getEnvDate(key string, defaultValue time.Time) (time.Time, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	return time.Parse("2006-01-02", value)
}
