package model

import (
	"time"

	"github.com/google/uuid"
)

// CartLineModel is one stored cart line. A user has at most one line per
// product; re-adding a product replaces its line.
type CartLineModel struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID          uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	ProductID       uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	Name            string    `gorm:"column:name;not null"`
	Image           string    `gorm:"column:image"`
	UnitPrice       int64     `gorm:"column:unit_price;not null"`
	CountInStock    int       `gorm:"column:count_in_stock;not null;default:0"`
	Quantity        int       `gorm:"column:quantity;not null"`
	UnitName        string    `gorm:"column:unit_name;not null"`
	UnitRatio       float64   `gorm:"column:unit_ratio;not null;default:1"`
	UnitImage       string    `gorm:"column:unit_image"`
	UnitDescription string    `gorm:"column:unit_description"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for CartLineModel.
func (CartLineModel) TableName() string {
	return "cart_lines"
}
