package model

// WalkInCustomer is the default customer label when checkout receives no
// customer reference.
const WalkInCustomer = "Walk-in"

type Customer struct {
	BaseModel
	Name  string  `gorm:"type:varchar(100);not null;index" json:"name" validate:"required"`
	Email *string `gorm:"type:varchar(120);uniqueIndex" json:"email,omitempty" validate:"omitempty,email"`
	Phone string  `gorm:"type:varchar(20)" json:"phone,omitempty"`

	// Relasi
	Sales []Sale `json:"sales,omitempty"`
}
