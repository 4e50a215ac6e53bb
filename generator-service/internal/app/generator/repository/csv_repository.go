package repository

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hgrubina/business-intelligence-suite/generator-service/internal/app/generator/entity"
)

const (
	ProductsFile  = "products.csv"
	CustomersFile = "customers.csv"
	SalesFile     = "sales.csv"
	InventoryFile = "inventory.csv"
	ManifestFile  = "manifest.json"

	dateLayout = "2006-01-02"
)

// CSVRepository пишет датасет в плоские CSV-файлы с манифестом запуска.
// Запись атомарна на уровне набора: все файлы собираются в staging-каталоге
// и переносятся на место только после того, как каждый из них записан.
// Частично записанный набор снаружи не виден.
type CSVRepository struct {
	dir string
}

func NewCSVRepository(dir string) *CSVRepository {
	return &CSVRepository{dir: dir}
}

// SaveDataset сохраняет четыре таблицы и манифест в выходной каталог.
// Каталог создаётся при отсутствии.
func (r *CSVRepository) SaveDataset(ctx context.Context, dataset *entity.Dataset) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	staging, err := os.MkdirTemp(r.dir, ".staging-")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	writers := []struct {
		name  string
		write func(w *csv.Writer) error
	}{
		{ProductsFile, func(w *csv.Writer) error { return writeProducts(w, dataset.Products) }},
		{CustomersFile, func(w *csv.Writer) error { return writeCustomers(w, dataset.Customers) }},
		{SalesFile, func(w *csv.Writer) error { return writeSales(w, dataset.Sales) }},
		{InventoryFile, func(w *csv.Writer) error { return writeInventory(w, dataset.Inventory) }},
	}

	for _, fw := range writers {
		if err := writeCSVFile(filepath.Join(staging, fw.name), fw.write); err != nil {
			return fmt.Errorf("failed to write %s: %w", fw.name, err)
		}
	}

	if err := writeManifest(filepath.Join(staging, ManifestFile), dataset.Manifest); err != nil {
		return fmt.Errorf("failed to write %s: %w", ManifestFile, err)
	}

	// Все файлы записаны без ошибок, переносим набор на место
	for _, fw := range writers {
		if err := os.Rename(filepath.Join(staging, fw.name), filepath.Join(r.dir, fw.name)); err != nil {
			return fmt.Errorf("failed to move %s into place: %w", fw.name, err)
		}
	}
	if err := os.Rename(filepath.Join(staging, ManifestFile), filepath.Join(r.dir, ManifestFile)); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", ManifestFile, err)
	}

	return nil
}

func writeCSVFile(path string, write func(w *csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := write(w); err != nil {
		return err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	return f.Close()
}

func writeProducts(w *csv.Writer, products []entity.Product) error {
	header := []string{"id", "sku", "name", "category", "subcategory", "price", "cost", "margin_pct", "supplier", "weight_kg", "created_date"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, p := range products {
		record := []string{
			strconv.Itoa(p.ID),
			p.SKU,
			p.Name,
			p.Category,
			p.Subcategory,
			formatMoney(p.Price),
			formatMoney(p.Cost),
			formatMoney(p.MarginPct),
			p.Supplier,
			formatMoney(p.WeightKg),
			p.CreatedDate.Format(dateLayout),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func writeCustomers(w *csv.Writer, customers []entity.Customer) error {
	header := []string{"id", "name", "email", "region", "city", "customer_type", "signup_date", "total_spent", "total_orders", "last_purchase_date"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, c := range customers {
		lastPurchase := ""
		if c.LastPurchaseDate != nil {
			lastPurchase = c.LastPurchaseDate.Format(dateLayout)
		}

		record := []string{
			strconv.Itoa(c.ID),
			c.Name,
			c.Email,
			c.Region,
			c.City,
			c.CustomerType,
			c.SignupDate.Format(dateLayout),
			formatMoney(c.TotalSpent),
			strconv.Itoa(c.TotalOrders),
			lastPurchase,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func writeSales(w *csv.Writer, sales []entity.Sale) error {
	header := []string{"id", "date", "customer_id", "product_id", "category", "region", "quantity", "unit_price", "discount_pct", "subtotal", "discount_amount", "total", "cost", "profit", "payment_method", "channel"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range sales {
		record := []string{
			strconv.Itoa(s.ID),
			s.Date.Format(dateLayout),
			strconv.Itoa(s.CustomerID),
			strconv.Itoa(s.ProductID),
			s.Category,
			s.Region,
			strconv.Itoa(s.Quantity),
			formatMoney(s.UnitPrice),
			strconv.FormatFloat(s.DiscountPct, 'f', 1, 64),
			formatMoney(s.Subtotal),
			formatMoney(s.DiscountAmount),
			formatMoney(s.Total),
			formatMoney(s.Cost),
			formatMoney(s.Profit),
			s.PaymentMethod,
			s.Channel,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func writeInventory(w *csv.Writer, records []entity.InventoryRecord) error {
	header := []string{"date", "product_id", "current_stock", "daily_sales", "reorder_point", "ideal_stock", "status"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, rec := range records {
		record := []string{
			rec.Date.Format(dateLayout),
			strconv.Itoa(rec.ProductID),
			strconv.Itoa(rec.CurrentStock),
			strconv.Itoa(rec.DailySales),
			strconv.Itoa(rec.ReorderPoint),
			strconv.Itoa(rec.IdealStock),
			rec.Status,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func writeManifest(path string, manifest entity.Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// formatMoney форматирует денежные и процентные поля с двумя знаками
func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
