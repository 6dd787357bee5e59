package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrEmptyCart rejects a checkout with zero lines before any store access
var ErrEmptyCart = errors.New("cart is empty")

// ErrInvalidCart wraps cart line validation failures (zero quantity, missing
// product id)
var ErrInvalidCart = errors.New("invalid cart")

// ProductNotFoundError aborts the whole checkout when a cart line references
// an unknown product
type ProductNotFoundError struct {
	ProductID uuid.UUID
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// InsufficientStockError aborts the whole checkout when a line requests more
// than the available stock. The message names the product and what is left.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for '%s': %d requested, %d available",
		e.ProductName, e.Requested, e.Available)
}
