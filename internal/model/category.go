package model

type Category struct {
	BaseModel
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`

	// Relasi
	Products []Product `gorm:"constraint:OnDelete:SET NULL;" json:"products,omitempty"`
}
