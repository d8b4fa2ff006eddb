package model

import "github.com/shopspring/decimal"

// Sizes a product can be stocked in.
var ProductSizes = []string{"S", "M", "L", "XL", "XXL"}

type Product struct {
	BaseModel
	Name         string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Slug         string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"slug"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Description  string          `gorm:"type:text" json:"description"`
	Image        string          `gorm:"type:varchar(500)" json:"image"`
	CountInStock int             `gorm:"not null;default:0" json:"countInStock"`
	Sizes        []string        `gorm:"serializer:json" json:"sizes"`
	Category     string          `gorm:"type:varchar(100);not null;default:'Jersey'" json:"category"`
}
