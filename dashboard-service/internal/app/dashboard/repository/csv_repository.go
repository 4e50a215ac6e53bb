package repository

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hgrubina/business-intelligence-suite/dashboard-service/internal/app/dashboard/entity"
)

const (
	ProductsFile = "products.csv"
	SalesFile    = "sales.csv"
	ManifestFile = "manifest.json"

	dateLayout = "2006-01-02"
)

// CSVRepository читает таблицы генератора из каталога с данными.
// Каждая загрузка строит новый снимок, существующие снимки не трогаются.
type CSVRepository struct {
	dir string
}

func NewCSVRepository(dir string) *CSVRepository {
	return &CSVRepository{dir: dir}
}

// LoadDataset загружает манифест, каталог и продажи.
// Отсутствие любого файла означает, что генератор ещё не отработал.
func (r *CSVRepository) LoadDataset(ctx context.Context) (*entity.Dataset, error) {
	manifest, err := r.loadManifest()
	if err != nil {
		return nil, err
	}

	products, err := r.loadProducts()
	if err != nil {
		return nil, err
	}

	sales, err := r.loadSales()
	if err != nil {
		return nil, err
	}

	return &entity.Dataset{
		Products: products,
		Sales:    sales,
		Manifest: manifest,
		LoadedAt: time.Now().UTC(),
	}, nil
}

func (r *CSVRepository) loadManifest() (entity.Manifest, error) {
	var manifest entity.Manifest

	data, err := os.ReadFile(filepath.Join(r.dir, ManifestFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return manifest, fmt.Errorf("%w: %s is missing", ErrDatasetNotFound, ManifestFile)
		}
		return manifest, fmt.Errorf("failed to read %s: %w", ManifestFile, err)
	}

	if err := json.Unmarshal(data, &manifest); err != nil {
		return manifest, fmt.Errorf("%w: %s: %v", ErrMalformedDataset, ManifestFile, err)
	}

	return manifest, nil
}

func (r *CSVRepository) loadProducts() ([]entity.Product, error) {
	records, err := r.readTable(ProductsFile)
	if err != nil {
		return nil, err
	}

	idx, err := headerIndex(ProductsFile, records[0],
		"id", "sku", "name", "category", "subcategory",
		"price", "cost", "margin_pct", "supplier", "weight_kg", "created_date")
	if err != nil {
		return nil, err
	}

	products := make([]entity.Product, 0, len(records)-1)
	for line, rec := range records[1:] {
		s := rowScanner{idx: idx, rec: rec}
		product := entity.Product{
			ID:          s.intval("id"),
			SKU:         s.str("sku"),
			Name:        s.str("name"),
			Category:    s.str("category"),
			Subcategory: s.str("subcategory"),
			Price:       s.float("price"),
			Cost:        s.float("cost"),
			MarginPct:   s.float("margin_pct"),
			Supplier:    s.str("supplier"),
			WeightKg:    s.float("weight_kg"),
			CreatedDate: s.date("created_date"),
		}
		if s.err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrMalformedDataset, ProductsFile, line+2, s.err)
		}
		products = append(products, product)
	}

	return products, nil
}

func (r *CSVRepository) loadSales() ([]entity.Sale, error) {
	records, err := r.readTable(SalesFile)
	if err != nil {
		return nil, err
	}

	idx, err := headerIndex(SalesFile, records[0],
		"id", "date", "customer_id", "product_id", "category", "region",
		"quantity", "unit_price", "discount_pct", "subtotal",
		"discount_amount", "total", "cost", "profit", "payment_method", "channel")
	if err != nil {
		return nil, err
	}

	sales := make([]entity.Sale, 0, len(records)-1)
	for line, rec := range records[1:] {
		s := rowScanner{idx: idx, rec: rec}
		sale := entity.Sale{
			ID:             s.intval("id"),
			Date:           s.date("date"),
			CustomerID:     s.intval("customer_id"),
			ProductID:      s.intval("product_id"),
			Category:       s.str("category"),
			Region:         s.str("region"),
			Quantity:       s.intval("quantity"),
			UnitPrice:      s.float("unit_price"),
			DiscountPct:    s.float("discount_pct"),
			Subtotal:       s.float("subtotal"),
			DiscountAmount: s.float("discount_amount"),
			Total:          s.float("total"),
			Cost:           s.float("cost"),
			Profit:         s.float("profit"),
			PaymentMethod:  s.str("payment_method"),
			Channel:        s.str("channel"),
		}
		if s.err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrMalformedDataset, SalesFile, line+2, s.err)
		}
		sales = append(sales, sale)
	}

	return sales, nil
}

func (r *CSVRepository) readTable(name string) ([][]string, error) {
	f, err := os.Open(filepath.Join(r.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s is missing", ErrDatasetNotFound, name)
		}
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedDataset, name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s has no header", ErrMalformedDataset, name)
	}

	return records, nil
}

// headerIndex строит отображение имени колонки в её позицию.
// Порядок колонок в файле не фиксирован, обязателен только их состав.
func headerIndex(file string, header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}

	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%w: %s is missing column %q", ErrMalformedDataset, file, name)
		}
	}

	return idx, nil
}

// rowScanner разбирает поля строки, запоминая первую ошибку.
// Позволяет собрать структуру одним выражением и проверить ошибку один раз.
type rowScanner struct {
	idx map[string]int
	rec []string
	err error
}

func (s *rowScanner) cell(name string) string {
	i, ok := s.idx[name]
	if !ok || i >= len(s.rec) {
		if s.err == nil {
			s.err = fmt.Errorf("column %q out of range", name)
		}
		return ""
	}
	return s.rec[i]
}

func (s *rowScanner) str(name string) string {
	return s.cell(name)
}

func (s *rowScanner) intval(name string) int {
	v, err := strconv.Atoi(s.cell(name))
	if err != nil && s.err == nil {
		s.err = fmt.Errorf("column %q: %v", name, err)
	}
	return v
}

func (s *rowScanner) float(name string) float64 {
	v, err := strconv.ParseFloat(s.cell(name), 64)
	if err != nil && s.err == nil {
		s.err = fmt.Errorf("column %q: %v", name, err)
	}
	return v
}

func (s *rowScanner) date(name string) time.Time {
	v, err := time.Parse(dateLayout, s.cell(name))
	if err != nil && s.err == nil {
		s.err = fmt.Errorf("column %q: %v", name, err)
	}
	return v
}
