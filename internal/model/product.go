package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VariantType tags what a variant varies by. Only color exists today.
type VariantType string

const VariantTypeColor VariantType = "color"

type Product struct {
	BaseModel
	Name        string          `gorm:"type:varchar(100);not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Weight      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"weight"`
	Description string          `gorm:"type:text;not null" json:"description"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`

	// Relations
	Images     []Image    `gorm:"constraint:OnDelete:CASCADE;" json:"images,omitempty"`
	Variants   []Variant  `gorm:"constraint:OnDelete:CASCADE;" json:"variants,omitempty"`
	Categories []Category `gorm:"many2many:product_categories;" json:"categories,omitempty"`
}

// Image is owned by exactly one Product and dies with it.
type Image struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Src       string    `gorm:"type:text;not null" json:"src"`
	Alt       string    `gorm:"type:varchar(255)" json:"alt"`
}

type Variant struct {
	BaseModel
	ProductID uuid.UUID   `gorm:"type:uuid;not null;index" json:"product_id"`
	Name      string      `gorm:"type:varchar(100);not null" json:"name"`
	ImageSrc  string      `gorm:"type:text" json:"image_src"`
	Type      VariantType `gorm:"type:varchar(20);default:color" json:"type"`
}
