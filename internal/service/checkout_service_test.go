package service

import (
	"errors"
	"testing"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&model.Category{}, &model.Product{}, &model.Customer{},
		&model.Sale{}, &model.SaleItem{})
	require.NoError(t, err)

	return db
}

func newCheckoutService(db *gorm.DB) CheckoutService {
	return NewCheckoutService(
		repository.NewProductRepo(db),
		repository.NewCustomerRepo(db),
		repository.NewSaleRepo(db),
		db, nil,
	)
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string, stock int) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func reloadProduct(t *testing.T, db *gorm.DB, id uuid.UUID) *model.Product {
	t.Helper()
	var product model.Product
	require.NoError(t, db.First(&product, "id = ?", id).Error)
	return &product
}

func countRows(t *testing.T, db *gorm.DB, entity interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(entity).Count(&count).Error)
	return count
}

func TestSubmitSale_Success(t *testing.T) {
	db := setupTestDB(t)
	svc := newCheckoutService(db)

	productA := seedProduct(t, db, "Coffee Beans", "10.00", 5)
	productB := seedProduct(t, db, "Filter Paper", "5.00", 2)

	receipt, err := svc.SubmitSale(&model.CheckoutRequest{
		Items: []model.CartLine{
			{ProductID: productA.ID, Quantity: 3},
			{ProductID: productB.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.True(t, receipt.Total.Equal(decimal.RequireFromString("40.00")),
		"expected total 40.00, got %s", receipt.Total)

	assert.Equal(t, 2, reloadProduct(t, db, productA.ID).Stock)
	assert.Equal(t, 0, reloadProduct(t, db, productB.ID).Stock)

	sale, err := svc.GetSaleByID(receipt.ID)
	require.NoError(t, err)
	require.Len(t, sale.Items, 2)
	assert.True(t, sale.Total.Equal(receipt.Total))

	// One item per cart line, each with the snapshot unit price
	byProduct := map[uuid.UUID]model.SaleItem{}
	for _, item := range sale.Items {
		byProduct[item.ProductID] = item
	}
	require.Contains(t, byProduct, productA.ID)
	assert.Equal(t, 3, byProduct[productA.ID].Quantity)
	assert.True(t, byProduct[productA.ID].Price.Equal(decimal.RequireFromString("10.00")))
	require.Contains(t, byProduct, productB.ID)
	assert.Equal(t, 2, byProduct[productB.ID].Quantity)
	assert.True(t, byProduct[productB.ID].Price.Equal(decimal.RequireFromString("5.00")))
}

func TestSubmitSale_DefaultsToWalkInCustomer(t *testing.T) {
	db := setupTestDB(t)
	svc := newCheckoutService(db)
	product := seedProduct(t, db, "Coffee Beans", "10.00", 5)

	receipt, err := svc.SubmitSale(&model.CheckoutRequest{
		Items: []model.CartLine{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	sale, err := svc.GetSaleByID(receipt.ID)
	require.NoError(t, err)
	require.NotNil(t, sale.Customer)
	assert.Equal(t, model.WalkInCustomer, sale.Customer.Name)

	// A second anonymous checkout reuses the same walk-in customer
	_, err = svc.SubmitSale(&model.CheckoutRequest{
		Items: []model.CartLine{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, countRows(t, db, &model.Customer{}))
}

func TestSubmitSale_ResolvesCustomerByID(t *testing.T) {
	db := setupTestDB(t)
	svc := newCheckoutService(db)
	product := seedProduct(t, db, "Coffee Beans", "10.00", 5)

	customer := &model.Customer{Name: "Alice"}
	require.NoError(t, db.Create(customer).Error)

	receipt, err := svc.SubmitSale(&model.CheckoutRequest{
		CustomerID: &customer.ID,
		Items:      []model.CartLine{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	sale, err := svc.GetSaleByID(receipt.ID)
	require.NoError(t, err)
	require.NotNil(t, sale.CustomerID)
	assert.Equal(t, customer.ID, *sale.CustomerID)
}

func TestSubmitSale_UnknownCustomerIDFallsBackToName(t *testing.T) {
	db := setupTestDB(t)
	svc := newCheckoutService(db)
	product := seedProduct(t, db, "Coffee Beans", "10.00", 5)

	ghost := uuid.New()
	receipt, err := svc.SubmitSale(&model.CheckoutRequest{
		CustomerID:   &ghost,
		CustomerName: "Bob",
		Items:        []model.CartLine{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	sale, err := svc.GetSaleByID(receipt.ID)
	require.NoError(t, err)
	require.NotNil(t, sale.Customer)
	assert.Equal(t, "Bob", sale.Customer.Name)
}

func TestSubmitSale_EmptyCart(t *testing.T) {
	db := setupTestDB(t)
	svc := newCheckoutService(db)

	receipt, err := svc.SubmitSale(&model.CheckoutRequest{})
	assert.Nil(t, receipt)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.EqualValues(t, 0, countRows(t, db, &model.Sale{}))
	assert.EqualValues(t, 0, countRows(t, db, &model.Customer{}))
}

func TestSubmitSale_ZeroQuantityRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newCheckoutService(db)
	product := seedProduct(t, db, "Coffee Beans", "10.00", 5)

	receipt, err := svc.SubmitSale(&model.CheckoutRequest{
		Items: []model.CartLine{{ProductID: product.ID, Quantity: 0}},
	})
	assert.Nil(t, receipt)
	assert.ErrorIs(t, err, ErrInvalidCart)
	assert.Equal(t, 5, reloadProduct(t, db, product.ID).Stock)
}

func TestSubmitSale_ProductNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newCheckoutService(db)
	product := seedProduct(t, db, "Coffee Beans", "10.00", 5)

	missing := uuid.New()
	receipt, err := svc.SubmitSale(&model.CheckoutRequest{
		Items: []model.CartLine{
			{ProductID: product.ID, Quantity: 2},
			{ProductID: missing, Quantity: 1},
		},
	})
	assert.Nil(t, receipt)

	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, missing, notFound.ProductID)

	// The earlier line's decrement must have been rolled back too
	assert.Equal(t, 5, reloadProduct(t, db, product.ID).Stock)
	assert.EqualValues(t, 0, countRows(t, db, &model.Sale{}))
	assert.EqualValues(t, 0, countRows(t, db, &model.SaleItem{}))
}

func TestSubmitSale_InsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	svc := newCheckoutService(db)

	productA := seedProduct(t, db, "Coffee Beans", "10.00", 5)
	productB := seedProduct(t, db, "Filter Paper", "5.00", 2)

	cart := &model.CheckoutRequest{
		Items: []model.CartLine{
			{ProductID: productA.ID, Quantity: 3},
			{ProductID: productB.ID, Quantity: 5},
		},
	}

	receipt, err := svc.SubmitSale(cart)
	assert.Nil(t, receipt)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Filter Paper", stockErr.ProductName)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Contains(t, err.Error(), "Filter Paper")
	assert.Contains(t, err.Error(), "2 available")

	assert.Equal(t, 5, reloadProduct(t, db, productA.ID).Stock)
	assert.Equal(t, 2, reloadProduct(t, db, productB.ID).Stock)
	assert.EqualValues(t, 0, countRows(t, db, &model.Sale{}))
	assert.EqualValues(t, 0, countRows(t, db, &model.SaleItem{}))

	// Resubmitting the identical cart fails identically: the failed attempt
	// left no trace behind
	_, err2 := svc.SubmitSale(cart)
	var stockErr2 *InsufficientStockError
	require.ErrorAs(t, err2, &stockErr2)
	assert.Equal(t, *stockErr, *stockErr2)
}

func TestSubmitSale_PriceSnapshotSurvivesPriceChange(t *testing.T) {
	db := setupTestDB(t)
	svc := newCheckoutService(db)
	product := seedProduct(t, db, "Coffee Beans", "10.00", 10)

	receipt, err := svc.SubmitSale(&model.CheckoutRequest{
		Items: []model.CartLine{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	// Reprice the product after the sale
	err = db.Model(&model.Product{}).Where("id = ?", product.ID).
		Update("price", decimal.RequireFromString("99.99")).Error
	require.NoError(t, err)

	sale, err := svc.GetSaleByID(receipt.ID)
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)
	assert.True(t, sale.Items[0].Price.Equal(decimal.RequireFromString("10.00")),
		"recorded item price must stay at the checkout-time snapshot")
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("20.00")))
}

func TestSubmitSale_CombinedOversell(t *testing.T) {
	db := setupTestDB(t)
	svc := newCheckoutService(db)
	product := seedProduct(t, db, "Coffee Beans", "10.00", 5)

	cart := &model.CheckoutRequest{
		Items: []model.CartLine{{ProductID: product.ID, Quantity: 3}},
	}

	_, err := svc.SubmitSale(cart)
	require.NoError(t, err)

	// The second identical cart sees the decremented stock and loses
	_, err = svc.SubmitSale(cart)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)

	assert.Equal(t, 2, reloadProduct(t, db, product.ID).Stock)
	assert.EqualValues(t, 1, countRows(t, db, &model.Sale{}))
}

func TestGetSaleByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newCheckoutService(db)

	_, err := svc.GetSaleByID(uuid.New())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
