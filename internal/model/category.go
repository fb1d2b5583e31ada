package model

type Category struct {
	BaseModel
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	Products []Product `gorm:"many2many:product_categories;" json:"products,omitempty"`
}
