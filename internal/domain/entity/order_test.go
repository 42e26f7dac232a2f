package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOrder_ReferenceCode(t *testing.T) {
	order := &Order{ID: uuid.MustParse("b9a2a6d4-1111-2222-3333-4455667789ab")}

	assert.Equal(t, "HD7789ab", order.ReferenceCode())
}

func TestOrderItem_Subtotal(t *testing.T) {
	item := OrderItem{UnitPrice: 60000, Quantity: 3}

	assert.Equal(t, int64(180000), item.Subtotal())
}

func TestPaymentMethod_IsValid(t *testing.T) {
	assert.True(t, PaymentMethodBankTransfer.IsValid())
	assert.True(t, PaymentMethodCOD.IsValid())
	assert.False(t, PaymentMethod("Gold").IsValid())
	assert.False(t, PaymentMethod("").IsValid())
}
