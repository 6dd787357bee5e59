package repository

import (
	"time"

	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleRepository interface {
	// Create persists the sale together with its items inside the caller's
	// transaction.
	Create(tx *gorm.DB, sale *model.Sale) error
	FindAll() ([]model.Sale, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindFiltered(from, to *time.Time, productID *uuid.UUID) ([]model.Sale, error)
	ProductSales(from, to *time.Time, productID *uuid.UUID) ([]ProductSalesRow, error)
}

// ProductSalesRow is one per-product rollup line for reports
type ProductSalesRow struct {
	ProductID  uuid.UUID       `json:"product_id"`
	Name       string          `json:"name"`
	TotalQty   int             `json:"total_qty"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Customer").Preload("Items.Product").
		Order("date DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Customer").Preload("Items.Product").
		First(&sale, "id = ?", id).Error
	return &sale, err
}

func (r *saleRepo) FindFiltered(from, to *time.Time, productID *uuid.UUID) ([]model.Sale, error) {
	q := r.db.Preload("Customer").Preload("Items.Product")
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}
	if productID != nil {
		q = q.Where("id IN (?)", r.db.Model(&model.SaleItem{}).
			Select("sale_id").Where("product_id = ?", *productID))
	}

	var sales []model.Sale
	err := q.Order("date DESC").Find(&sales).Error
	return sales, err
}

// ProductSales aggregates quantity and revenue per product over sale_items,
// using the snapshot prices stored on the lines.
func (r *saleRepo) ProductSales(from, to *time.Time, productID *uuid.UUID) ([]ProductSalesRow, error) {
	q := r.db.Model(&model.SaleItem{}).
		Select(`products.id as product_id,
			products.name as name,
			SUM(sale_items.quantity) as total_qty,
			SUM(sale_items.quantity * sale_items.price) as total_sales`).
		Joins("JOIN products ON products.id = sale_items.product_id").
		Joins("JOIN sales ON sales.id = sale_items.sale_id")

	if from != nil {
		q = q.Where("sales.date >= ?", *from)
	}
	if to != nil {
		q = q.Where("sales.date <= ?", *to)
	}
	if productID != nil {
		q = q.Where("products.id = ?", *productID)
	}

	rows, err := q.Group("products.id, products.name").Order("products.name ASC").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []ProductSalesRow
	for rows.Next() {
		var row ProductSalesRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.TotalQty, &row.TotalSales); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
