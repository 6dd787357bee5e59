package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/ws"
	"go-retail-pos/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CheckoutService interface {
	SubmitSale(req *model.CheckoutRequest) (*model.SaleReceipt, error)
	GetAllSales() ([]model.Sale, error)
	GetSaleByID(id uuid.UUID) (*model.Sale, error)
}

type checkoutService struct {
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewCheckoutService(pRepo repository.ProductRepository, cRepo repository.CustomerRepository,
	sRepo repository.SaleRepository, db *gorm.DB, hub *ws.Hub) CheckoutService {
	return &checkoutService{
		productRepo:  pRepo,
		customerRepo: cRepo,
		saleRepo:     sRepo,
		db:           db,
		wsHub:        hub,
	}
}

// stockChange carries post-commit broadcast data for one cart line
type stockChange struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	NewStock    int
}

// SubmitSale runs the whole checkout as one transaction: resolve the
// customer, lock and check every product, decrement stock, snapshot unit
// prices, and persist the Sale with its items. Any failure rolls everything
// back, including stock already decremented for earlier lines.
func (s *checkoutService) SubmitSale(req *model.CheckoutRequest) (*model.SaleReceipt, error) {
	// 1. Reject an empty cart before touching the database
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	// 2. Validasi Input
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCart, errs[0].Message())
	}

	var receipt *model.SaleReceipt
	var changes []stockChange

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// A. Resolve (or implicitly create) the customer
		customer, err := s.resolveCustomer(tx, req)
		if err != nil {
			return err
		}

		// B. Walk the cart in input order: lock, check, decrement, snapshot
		total := decimal.Zero
		items := make([]model.SaleItem, 0, len(req.Items))
		for _, line := range req.Items {
			product, err := s.productRepo.FindForUpdate(tx, line.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &ProductNotFoundError{ProductID: line.ProductID}
				}
				return err
			}

			if product.Stock < line.Quantity {
				return &InsufficientStockError{
					ProductName: product.Name,
					Available:   product.Stock,
					Requested:   line.Quantity,
				}
			}

			newStock := product.Stock - line.Quantity
			if err := s.productRepo.UpdateStock(tx, product.ID, newStock); err != nil {
				return err
			}

			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			items = append(items, model.SaleItem{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     product.Price, // snapshot, never re-read
			})
			changes = append(changes, stockChange{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				NewStock:    newStock,
			})
		}

		// C. Persist the Sale together with its items
		sale := model.Sale{
			CustomerID: &customer.ID,
			Date:       time.Now(),
			Total:      total.Round(2),
			Items:      items,
		}
		if err := s.saleRepo.Create(tx, &sale); err != nil {
			return err
		}

		receipt = &model.SaleReceipt{ID: sale.ID, Total: sale.Total}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// D. Broadcast stock changes only after the commit
	s.broadcastStockChanges(receipt.ID, changes)

	return receipt, nil
}

// resolveCustomer prefers the id; an unknown or absent id falls back to
// find-or-create by name, defaulting to the walk-in customer.
func (s *checkoutService) resolveCustomer(tx *gorm.DB, req *model.CheckoutRequest) (*model.Customer, error) {
	if req.CustomerID != nil {
		var customer model.Customer
		err := tx.First(&customer, "id = ?", *req.CustomerID).Error
		if err == nil {
			return &customer, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		name = model.WalkInCustomer
	}
	return s.customerRepo.FindOrCreateByName(tx, name)
}

func (s *checkoutService) broadcastStockChanges(saleID uuid.UUID, changes []stockChange) {
	if s.wsHub == nil {
		return
	}
	go func() {
		for _, change := range changes {
			payload := map[string]interface{}{
				"type":   "stock_update",
				"action": "sale_completed",
				"product": map[string]interface{}{
					"id":        change.ProductID,
					"name":      change.ProductName,
					"new_stock": change.NewStock,
				},
				"sale_id": saleID,
				"message": fmt.Sprintf("Sold %d units of '%s'", change.Quantity, change.ProductName),
			}
			msg, _ := json.Marshal(payload)
			s.wsHub.Broadcast <- msg
		}
	}()
}

func (s *checkoutService) GetAllSales() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}

func (s *checkoutService) GetSaleByID(id uuid.UUID) (*model.Sale, error) {
	return s.saleRepo.FindByID(id)
}
