package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel is the persistence model for a placed order.
type OrderModel struct {
	ID     uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`

	ShippingFullName       string `gorm:"column:shipping_full_name;not null"`
	ShippingAddress        string `gorm:"column:shipping_address;not null"`
	ShippingWard           string `gorm:"column:shipping_ward"`
	ShippingDistrict       string `gorm:"column:shipping_district"`
	ShippingProvince       string `gorm:"column:shipping_province"`
	ShippingPostalCode     string `gorm:"column:shipping_postal_code"`
	ShippingCountry        string `gorm:"column:shipping_country"`
	ShippingPhoneNumber    string `gorm:"column:shipping_phone_number"`
	ShippingDeliveryMethod string `gorm:"column:shipping_delivery_method"`

	PaymentMethod string `gorm:"column:payment_method;not null;index:idx_orders_pending,where:is_paid = false"`
	ItemsPrice    int64  `gorm:"column:items_price;not null"`
	TotalPrice    int64  `gorm:"column:total_price;not null"`

	IsPaid      bool       `gorm:"column:is_paid;not null;default:false"`
	PaidAt      *time.Time `gorm:"column:paid_at"`
	IsDelivered bool       `gorm:"column:is_delivered;not null;default:false"`
	DeliveredAt *time.Time `gorm:"column:delivered_at"`

	Items []*OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for OrderModel.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is one frozen line of a placed order.
type OrderItemModel struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID         uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID       uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Name            string    `gorm:"column:name;not null"`
	Image           string    `gorm:"column:image"`
	UnitPrice       int64     `gorm:"column:unit_price;not null"`
	Quantity        int       `gorm:"column:quantity;not null"`
	UnitName        string    `gorm:"column:unit_name;not null"`
	UnitRatio       float64   `gorm:"column:unit_ratio;not null;default:1"`
	UnitImage       string    `gorm:"column:unit_image"`
	UnitDescription string    `gorm:"column:unit_description"`
}

// TableName specifies the table name for OrderItemModel.
func (OrderItemModel) TableName() string {
	return "order_items"
}
