package service

import (
	"time"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesReport is the read-only reporting view over persisted sales
type SalesReport struct {
	Sales        []model.SaleResponse         `json:"sales"`
	TotalIncome  decimal.Decimal              `json:"total_income"`
	ProductSales []repository.ProductSalesRow `json:"product_sales"`
}

type ReportService interface {
	GetSalesReport(from, to *time.Time, productID *uuid.UUID) (*SalesReport, error)
}

type reportService struct {
	saleRepo repository.SaleRepository
}

func NewReportService(sRepo repository.SaleRepository) ReportService {
	return &reportService{saleRepo: sRepo}
}

func (s *reportService) GetSalesReport(from, to *time.Time, productID *uuid.UUID) (*SalesReport, error) {
	sales, err := s.saleRepo.FindFiltered(from, to, productID)
	if err != nil {
		return nil, err
	}

	report := &SalesReport{
		Sales:       make([]model.SaleResponse, 0, len(sales)),
		TotalIncome: decimal.Zero,
	}
	for i := range sales {
		report.Sales = append(report.Sales, sales[i].ToResponse())
		report.TotalIncome = report.TotalIncome.Add(sales[i].Total)
	}

	rollup, err := s.saleRepo.ProductSales(from, to, productID)
	if err != nil {
		return nil, err
	}
	report.ProductSales = rollup

	return report, nil
}
