package handler

import (
	"errors"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SaleHandler struct {
	service service.CheckoutService
}

func NewSaleHandler(s service.CheckoutService) *SaleHandler {
	return &SaleHandler{service: s}
}

// CreateSale submits a cart for checkout. Success returns 201 with the sale
// id and computed total; cart failures return 400 with no side effects.
func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var req model.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	receipt, err := h.service.SubmitSale(&req)
	if err != nil {
		return c.Status(checkoutErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(receipt)
}

func checkoutErrorStatus(err error) int {
	var notFound *service.ProductNotFoundError
	var stock *service.InsufficientStockError
	switch {
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidCart),
		errors.As(err, &notFound),
		errors.As(err, &stock):
		return fiber.StatusBadRequest
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.service.GetAllSales()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	responses := make([]model.SaleResponse, 0, len(sales))
	for i := range sales {
		responses = append(responses, sales[i].ToResponse())
	}
	return c.JSON(responses)
}

func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	sale, err := h.service.GetSaleByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Sale not found"})
	}
	return c.JSON(sale.ToResponse())
}
