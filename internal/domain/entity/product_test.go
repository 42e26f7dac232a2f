package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_BasePricePrefersPositiveRetailPrice(t *testing.T) {
	retail := int64(250000)
	product := &Product{Price: 240000, RetailPrice: &retail}

	assert.Equal(t, int64(250000), product.BasePrice())
}

func TestProduct_BasePriceIgnoresZeroRetailPrice(t *testing.T) {
	zero := int64(0)
	product := &Product{Price: 240000, RetailPrice: &zero}

	assert.Equal(t, int64(240000), product.BasePrice())
}

func TestProduct_DefaultUnit(t *testing.T) {
	product := &Product{Units: []Unit{
		{Name: "Lon", Ratio: 24},
		{Name: "Thùng", Ratio: 1, IsDefault: true},
	}}

	unit, ok := product.DefaultUnit()
	assert.True(t, ok)
	assert.Equal(t, "Thùng", unit.Name)
}

func TestProduct_DefaultUnitFallsBackToFirst(t *testing.T) {
	product := &Product{Units: []Unit{
		{Name: "Lốc", Ratio: 4},
		{Name: "Lon", Ratio: 24},
	}}

	unit, ok := product.DefaultUnit()
	assert.True(t, ok)
	assert.Equal(t, "Lốc", unit.Name)
}

func TestProduct_DefaultUnitEmptyList(t *testing.T) {
	product := &Product{}

	_, ok := product.DefaultUnit()
	assert.False(t, ok)
}
