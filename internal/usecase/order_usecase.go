package usecase

import (
	"context"

	"github.com/google/uuid"

	"anha/internal/domain/entity"
)

// ShippingAddressInput is the delivery address submitted at checkout.
type ShippingAddressInput struct {
	FullName       string `json:"fullName" validate:"required"`
	Address        string `json:"address" validate:"required"`
	Ward           string `json:"ward"`
	District       string `json:"district"`
	Province       string `json:"province"`
	PostalCode     string `json:"postalCode"`
	Country        string `json:"country"`
	PhoneNumber    string `json:"phoneNumber" validate:"required"`
	DeliveryMethod string `json:"deliveryMethod"`
}

// PlaceOrderInput is the checkout request. Items and prices come from the
// server-side cart, never from the client.
type PlaceOrderInput struct {
	ShippingAddress ShippingAddressInput `json:"shippingAddress" validate:"required"`
	PaymentMethod   string               `json:"paymentMethod" validate:"required"`
}

// OrderUsecase exposes order placement and management.
type OrderUsecase interface {
	// PlaceOrder freezes the user's cart into an order and clears the
	// cart. Totals are recomputed from the frozen lines.
	PlaceOrder(ctx context.Context, userID uuid.UUID, input *PlaceOrderInput) (*entity.Order, error)

	// GetOrder returns one order. Non-admin callers only see their own.
	GetOrder(ctx context.Context, callerID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*entity.Order, error)

	// ListMyOrders returns the caller's orders, newest first.
	ListMyOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// ListOrders returns every order, newest first. Admin only.
	ListOrders(ctx context.Context) ([]*entity.Order, error)

	// MarkPaid flags an order as paid. Admin only.
	MarkPaid(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)

	// MarkDelivered flags an order as delivered. Admin only.
	MarkDelivered(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)

	// Delete removes an order. Admin only.
	Delete(ctx context.Context, orderID uuid.UUID) error

	// PaymentQR renders the bank-transfer QR for an unpaid order.
	PaymentQR(ctx context.Context, callerID uuid.UUID, isAdmin bool, orderID uuid.UUID) ([]byte, error)
}
