package model

import (
	"time"

	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryCoffee  ProductCategory = "coffee"
	CategoryTea     ProductCategory = "tea"
	CategoryFood    ProductCategory = "food"
	CategoryDessert ProductCategory = "dessert"
	CategoryMerch   ProductCategory = "merch"
)

type Product struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	Name          string          `gorm:"not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Price         float64         `gorm:"not null" json:"price"`
	Category      ProductCategory `gorm:"type:varchar(50)" json:"category"`
	StockQuantity int             `gorm:"default:0" json:"stock_quantity"`
	ImageURL      string          `json:"image_url"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	OrderItems []OrderItem `gorm:"foreignKey:ProductID" json:"-"`
	CartItems  []CartItem  `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
