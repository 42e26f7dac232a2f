package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCart_UpsertReplacesExistingProductLine(t *testing.T) {
	productID := uuid.New()
	cart := &Cart{UserID: uuid.New()}

	cart.Upsert(&CartLine{ProductID: productID, Quantity: 1, UnitPrice: 240000, Unit: SelectedUnit{Name: "Thùng"}})
	cart.Upsert(&CartLine{ProductID: uuid.New(), Quantity: 2, UnitPrice: 8000})
	cart.Upsert(&CartLine{ProductID: productID, Quantity: 5, UnitPrice: 60000, Unit: SelectedUnit{Name: "Lốc"}})

	assert.Len(t, cart.Lines, 2)
	assert.Equal(t, 5, cart.Lines[0].Quantity)
	assert.Equal(t, "Lốc", cart.Lines[0].Unit.Name)
}

func TestCart_RemoveAbsentProductIsNoOp(t *testing.T) {
	cart := &Cart{UserID: uuid.New()}
	cart.Upsert(&CartLine{ProductID: uuid.New(), Quantity: 1})

	assert.False(t, cart.Remove(uuid.New()))
	assert.Len(t, cart.Lines, 1)
}

func TestCart_RemoveDropsLine(t *testing.T) {
	productID := uuid.New()
	cart := &Cart{UserID: uuid.New()}
	cart.Upsert(&CartLine{ProductID: productID, Quantity: 1})

	assert.True(t, cart.Remove(productID))
	assert.Empty(t, cart.Lines)
}

func TestCart_Clear(t *testing.T) {
	cart := &Cart{UserID: uuid.New()}
	cart.Upsert(&CartLine{ProductID: uuid.New(), Quantity: 1})
	cart.Upsert(&CartLine{ProductID: uuid.New(), Quantity: 2})

	cart.Clear()

	assert.Empty(t, cart.Lines)
}
