// Package model defines the GORM persistence models. They mirror the domain
// entities but carry storage concerns (keys, indexes, column tags) the domain
// must not know about.
package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel is the persistence model for a catalog product.
type ProductModel struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name         string    `gorm:"column:name;not null;index"`
	Image        string    `gorm:"column:image"`
	Brand        string    `gorm:"column:brand"`
	Category     string    `gorm:"column:category"`
	Description  string    `gorm:"column:description"`
	Price        int64     `gorm:"column:price;not null"`
	RetailPrice  *int64    `gorm:"column:retail_price"`
	CountInStock int       `gorm:"column:count_in_stock;not null;default:0"`
	Rating       float64   `gorm:"column:rating;not null;default:0"`
	NumReviews   int       `gorm:"column:num_reviews;not null;default:0"`
	Barcode      *string   `gorm:"column:barcode;uniqueIndex"`

	Units []*UnitModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for ProductModel.
func (ProductModel) TableName() string {
	return "products"
}

// UnitModel is one purchasable unit row belonging to a product.
type UnitModel struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	Name        string    `gorm:"column:name;not null"`
	Ratio       float64   `gorm:"column:ratio;not null;default:1"`
	Price       *int64    `gorm:"column:price"`
	Image       string    `gorm:"column:image"`
	Description string    `gorm:"column:description"`
	IsDefault   bool      `gorm:"column:is_default;not null;default:false"`
	InStock     bool      `gorm:"column:in_stock;not null;default:true"`
	Position    int       `gorm:"column:position;not null;default:0"`
}

// TableName specifies the table name for UnitModel.
func (UnitModel) TableName() string {
	return "product_units"
}
