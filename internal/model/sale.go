package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a persisted checkout. It is immutable once created: the total and
// every item price are snapshots taken at checkout time.
type Sale struct {
	BaseModel
	CustomerID *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id"`
	Customer   *Customer       `json:"customer,omitempty" validate:"-"`
	Date       time.Time       `gorm:"not null;index" json:"date"`
	Total      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`

	// Relasi - created together with the Sale, in one transaction
	Items []SaleItem `gorm:"constraint:OnDelete:CASCADE;" json:"items,omitempty" validate:"-"`
}

// SaleItem is one cart line of a Sale. Price is the unit price captured at
// checkout, never re-read from Product.
type SaleItem struct {
	BaseModel
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product        `json:"product,omitempty" validate:"-"`
	Quantity  int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
}

// Subtotal is quantity * snapshot price, rounded to cents
func (i *SaleItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity))).Round(2)
}

// CartLine is one requested product/quantity pair in a checkout request
type CartLine struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// CheckoutRequest is the body of POST /api/sales. CustomerID wins when both
// references are present; an unknown id falls back to name resolution.
type CheckoutRequest struct {
	CustomerID   *uuid.UUID `json:"customer_id"`
	CustomerName string     `json:"customer_name"`
	Items        []CartLine `json:"items" validate:"dive"`
}

// SaleReceipt is the success result of a checkout
type SaleReceipt struct {
	ID    uuid.UUID       `json:"id"`
	Total decimal.Decimal `json:"total"`
}

// SaleItemResponse for API responses
type SaleItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse for API responses, with the customer name flattened
type SaleResponse struct {
	ID           uuid.UUID          `json:"id"`
	Date         time.Time          `json:"date"`
	Total        decimal.Decimal    `json:"total"`
	CustomerID   *uuid.UUID         `json:"customer_id"`
	CustomerName string             `json:"customer_name"`
	Items        []SaleItemResponse `json:"items"`
}

// ToResponse converts Sale to SaleResponse
func (s *Sale) ToResponse() SaleResponse {
	resp := SaleResponse{
		ID:           s.ID,
		Date:         s.Date,
		Total:        s.Total,
		CustomerID:   s.CustomerID,
		CustomerName: "Guest",
		Items:        make([]SaleItemResponse, 0, len(s.Items)),
	}
	if s.Customer != nil {
		resp.CustomerName = s.Customer.Name
	}
	for idx := range s.Items {
		item := &s.Items[idx]
		itemResp := SaleItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Subtotal:  item.Subtotal(),
		}
		if item.Product != nil {
			itemResp.ProductName = item.Product.Name
		}
		resp.Items = append(resp.Items, itemResp)
	}
	return resp
}
