package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name        string          `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Stock       int             `gorm:"default:0" json:"stock" validate:"gte=0"`
	Description string          `gorm:"type:text" json:"description"`
	Image       string          `gorm:"type:varchar(255)" json:"image,omitempty"` // filename only, served from static storage

	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Category   *Category  `gorm:"constraint:OnDelete:SET NULL;" json:"category,omitempty" validate:"-"`
}

// ProductResponse for API responses, with the category flattened
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	Description  string          `json:"description"`
	Image        string          `json:"image,omitempty"`
	ImageURL     string          `json:"image_url"`
	CategoryID   *uuid.UUID      `json:"category_id"`
	CategoryName string          `json:"category_name"`
}

// ToResponse converts Product to ProductResponse
func (p *Product) ToResponse() ProductResponse {
	resp := ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Stock:        p.Stock,
		Description:  p.Description,
		Image:        p.Image,
		ImageURL:     "/static/no-image.png",
		CategoryID:   p.CategoryID,
		CategoryName: "None",
	}
	if p.Image != "" {
		resp.ImageURL = "/static/uploads/" + p.Image
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	return resp
}
