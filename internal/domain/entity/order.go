package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod enumerates how an order can be paid.
type PaymentMethod string

const (
	PaymentMethodPayPal       PaymentMethod = "PayPal"
	PaymentMethodCOD          PaymentMethod = "COD"
	PaymentMethodBankTransfer PaymentMethod = "BankTransfer"
	PaymentMethodEWallet      PaymentMethod = "EWallet"
)

// IsValid reports whether the payment method is one of the known values.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodPayPal, PaymentMethodCOD, PaymentMethodBankTransfer, PaymentMethodEWallet:
		return true
	default:
		return false
	}
}

// referenceCodePrefix tags transfer memos so statement lines can be matched
// back to orders.
const referenceCodePrefix = "HD"

// referenceCodeIDLength is how many trailing characters of the order id end
// up in the reference code.
const referenceCodeIDLength = 6

// ShippingAddress is the delivery destination captured at checkout. Province,
// district and ward follow the Vietnamese administrative-unit cascade.
type ShippingAddress struct {
	FullName       string
	Address        string
	Ward           string
	District       string
	Province       string
	PostalCode     string
	Country        string
	PhoneNumber    string
	DeliveryMethod string // "home" or "pickup"
}

// OrderItem is a frozen copy of a cart line; later product or unit edits do
// not affect it.
type OrderItem struct {
	ProductID uuid.UUID
	Name      string
	Image     string
	UnitPrice int64
	Quantity  int
	Unit      SelectedUnit
}

// Subtotal returns the item total in whole VND.
func (i OrderItem) Subtotal() int64 {
	return int64(i.Quantity) * i.UnitPrice
}

// Order is a placed checkout. TotalPrice always equals ItemsPrice: the shop
// models no tax or shipping fees.
type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Items           []OrderItem
	ShippingAddress ShippingAddress
	PaymentMethod   PaymentMethod
	ItemsPrice      int64
	TotalPrice      int64
	IsPaid          bool
	PaidAt          *time.Time
	IsDelivered     bool
	DeliveredAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ReferenceCode derives the bank transfer memo for this order:
// "HD" followed by the last six characters of the order id. Customers put it
// in the transfer note and the verification pass looks it up in statements.
func (o *Order) ReferenceCode() string {
	id := o.ID.String()
	if len(id) > referenceCodeIDLength {
		id = id[len(id)-referenceCodeIDLength:]
	}

	return referenceCodePrefix + id
}
