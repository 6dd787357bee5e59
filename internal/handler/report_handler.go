package handler

import (
	"time"

	"go-retail-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetSalesReport returns filtered sales, the income total, and per-product
// rollups. Query params: from, to (YYYY-MM-DD, both inclusive), product_id.
func (h *ReportHandler) GetSalesReport(c *fiber.Ctx) error {
	var from, to *time.Time
	var productID *uuid.UUID

	if fromStr := c.Query("from"); fromStr != "" {
		t, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid 'from' date, use YYYY-MM-DD"})
		}
		from = &t
	}
	if toStr := c.Query("to"); toStr != "" {
		t, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid 'to' date, use YYYY-MM-DD"})
		}
		// Inclusive through end of day
		endOfDay := t.Add(24*time.Hour - time.Nanosecond)
		to = &endOfDay
	}
	if idStr := c.Query("product_id"); idStr != "" {
		id, err := parseUUID(idStr)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
		}
		productID = &id
	}

	report, err := h.service.GetSalesReport(from, to, productID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build sales report"})
	}
	return c.JSON(report)
}
