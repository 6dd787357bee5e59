package service

import (
	"testing"
	"time"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReportService(db *gorm.DB) ReportService {
	return NewReportService(repository.NewSaleRepo(db))
}

// backdateSale pins a sale to a fixed date so range filters are deterministic
func backdateSale(t *testing.T, db *gorm.DB, id uuid.UUID, date time.Time) {
	t.Helper()
	err := db.Model(&model.Sale{}).Where("id = ?", id).Update("date", date).Error
	require.NoError(t, err)
}

func TestGetSalesReport_TotalsAndRollup(t *testing.T) {
	db := setupTestDB(t)
	checkout := newCheckoutService(db)
	reports := newReportService(db)

	coffee := seedProduct(t, db, "Coffee Beans", "10.00", 100)
	filters := seedProduct(t, db, "Filter Paper", "5.00", 100)

	_, err := checkout.SubmitSale(&model.CheckoutRequest{
		Items: []model.CartLine{
			{ProductID: coffee.ID, Quantity: 3},
			{ProductID: filters.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	_, err = checkout.SubmitSale(&model.CheckoutRequest{
		Items: []model.CartLine{{ProductID: coffee.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	report, err := reports.GetSalesReport(nil, nil, nil)
	require.NoError(t, err)

	require.Len(t, report.Sales, 2)
	assert.True(t, report.TotalIncome.Equal(decimal.RequireFromString("50.00")),
		"expected income 50.00, got %s", report.TotalIncome)

	require.Len(t, report.ProductSales, 2)
	rollup := map[uuid.UUID]repository.ProductSalesRow{}
	for _, row := range report.ProductSales {
		rollup[row.ProductID] = row
	}
	assert.Equal(t, 4, rollup[coffee.ID].TotalQty)
	assert.True(t, rollup[coffee.ID].TotalSales.Equal(decimal.RequireFromString("40.00")))
	assert.Equal(t, 2, rollup[filters.ID].TotalQty)
	assert.True(t, rollup[filters.ID].TotalSales.Equal(decimal.RequireFromString("10.00")))
}

func TestGetSalesReport_DateRangeFilter(t *testing.T) {
	db := setupTestDB(t)
	checkout := newCheckoutService(db)
	reports := newReportService(db)

	coffee := seedProduct(t, db, "Coffee Beans", "10.00", 100)

	oldReceipt, err := checkout.SubmitSale(&model.CheckoutRequest{
		Items: []model.CartLine{{ProductID: coffee.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	backdateSale(t, db, oldReceipt.ID, time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC))

	newReceipt, err := checkout.SubmitSale(&model.CheckoutRequest{
		Items: []model.CartLine{{ProductID: coffee.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	backdateSale(t, db, newReceipt.ID, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	report, err := reports.GetSalesReport(&from, nil, nil)
	require.NoError(t, err)

	require.Len(t, report.Sales, 1)
	assert.Equal(t, newReceipt.ID, report.Sales[0].ID)
	assert.True(t, report.TotalIncome.Equal(decimal.RequireFromString("20.00")))
	require.Len(t, report.ProductSales, 1)
	assert.Equal(t, 2, report.ProductSales[0].TotalQty)

	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	report, err = reports.GetSalesReport(nil, &to, nil)
	require.NoError(t, err)
	require.Len(t, report.Sales, 1)
	assert.Equal(t, oldReceipt.ID, report.Sales[0].ID)
}

func TestGetSalesReport_ProductFilter(t *testing.T) {
	db := setupTestDB(t)
	checkout := newCheckoutService(db)
	reports := newReportService(db)

	coffee := seedProduct(t, db, "Coffee Beans", "10.00", 100)
	filters := seedProduct(t, db, "Filter Paper", "5.00", 100)

	_, err := checkout.SubmitSale(&model.CheckoutRequest{
		Items: []model.CartLine{{ProductID: coffee.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = checkout.SubmitSale(&model.CheckoutRequest{
		Items: []model.CartLine{{ProductID: filters.ID, Quantity: 4}},
	})
	require.NoError(t, err)

	report, err := reports.GetSalesReport(nil, nil, &filters.ID)
	require.NoError(t, err)

	require.Len(t, report.Sales, 1, "only sales containing the product")
	require.Len(t, report.ProductSales, 1)
	assert.Equal(t, filters.ID, report.ProductSales[0].ProductID)
	assert.Equal(t, 4, report.ProductSales[0].TotalQty)
	assert.True(t, report.ProductSales[0].TotalSales.Equal(decimal.RequireFromString("20.00")))
}

func TestGetSalesReport_Empty(t *testing.T) {
	db := setupTestDB(t)
	reports := newReportService(db)

	report, err := reports.GetSalesReport(nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Sales)
	assert.Empty(t, report.ProductSales)
	assert.True(t, report.TotalIncome.IsZero())
}
