package pricing

import (
	"testing"

	"anha/internal/domain/entity"
	domainerrors "anha/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestResolveUnit_NilProduct(t *testing.T) {
	_, err := ResolveUnit(nil, "Thùng")
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestResolveUnit_NoUnits_SynthesizesDefault(t *testing.T) {
	p := &entity.Product{
		Name:  "Nước suối",
		Image: "/images/nuoc-suoi.jpg",
		Price: 100000,
	}

	resolved, err := ResolveUnit(p, "")
	require.NoError(t, err)

	assert.Equal(t, entity.DefaultUnitName, resolved.Name)
	assert.Equal(t, float64(1), resolved.Ratio)
	assert.Equal(t, int64(100000), resolved.UnitPrice)
	assert.Equal(t, p.Image, resolved.Image)
}

func TestResolveUnit_RatioDerivedPrices(t *testing.T) {
	p := &entity.Product{
		Price: 240000,
		Units: []entity.Unit{
			{Name: "Thùng", Ratio: 1, IsDefault: true},
			{Name: "Lốc", Ratio: 4},
			{Name: "Lon", Ratio: 24},
		},
	}

	tests := []struct {
		unitName  string
		wantName  string
		wantPrice int64
	}{
		{unitName: "Thùng", wantName: "Thùng", wantPrice: 240000},
		{unitName: "Lốc", wantName: "Lốc", wantPrice: 60000},
		{unitName: "Lon", wantName: "Lon", wantPrice: 10000},
		// Unknown name falls back to the default unit.
		{unitName: "Chai", wantName: "Thùng", wantPrice: 240000},
		// Empty name also picks the default unit.
		{unitName: "", wantName: "Thùng", wantPrice: 240000},
	}

	for _, tt := range tests {
		t.Run(tt.unitName, func(t *testing.T) {
			resolved, err := ResolveUnit(p, tt.unitName)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, resolved.Name)
			assert.Equal(t, tt.wantPrice, resolved.UnitPrice)
		})
	}
}

func TestResolveUnit_AbsolutePriceWins(t *testing.T) {
	p := &entity.Product{
		Price: 240000,
		Units: []entity.Unit{
			{Name: "Thùng", Ratio: 1, IsDefault: true},
			{Name: "Lốc", Ratio: 4, Price: int64Ptr(55000)},
		},
	}

	resolved, err := ResolveUnit(p, "Lốc")
	require.NoError(t, err)
	assert.Equal(t, int64(55000), resolved.UnitPrice, "absolute unit price overrides the ratio-derived one")
}

func TestResolveUnit_NoDefaultFlag_FirstUnitWins(t *testing.T) {
	p := &entity.Product{
		Price: 120000,
		Units: []entity.Unit{
			{Name: "Lốc", Ratio: 2},
			{Name: "Lon", Ratio: 12},
		},
	}

	resolved, err := ResolveUnit(p, "")
	require.NoError(t, err)
	assert.Equal(t, "Lốc", resolved.Name)
	assert.Equal(t, int64(60000), resolved.UnitPrice)
}

func TestResolveUnit_RetailOverrideIsPricingBase(t *testing.T) {
	p := &entity.Product{
		Price:       240000,
		RetailPrice: int64Ptr(260000),
		Units: []entity.Unit{
			{Name: "Lốc", Ratio: 4, IsDefault: true},
		},
	}

	resolved, err := ResolveUnit(p, "Lốc")
	require.NoError(t, err)
	assert.Equal(t, int64(65000), resolved.UnitPrice)
}

func TestResolveUnit_InvalidRatioFallsBackToOne(t *testing.T) {
	p := &entity.Product{
		Price: 50000,
		Units: []entity.Unit{
			{Name: "Gói", Ratio: -3, IsDefault: true},
		},
	}

	resolved, err := ResolveUnit(p, "Gói")
	require.NoError(t, err)
	assert.Equal(t, float64(1), resolved.Ratio)
	assert.Equal(t, int64(50000), resolved.UnitPrice)
}

func TestResolveUnit_RoundsHalfUp(t *testing.T) {
	p := &entity.Product{
		Price: 100000,
		Units: []entity.Unit{
			{Name: "Lon", Ratio: 3, IsDefault: true},
		},
	}

	resolved, err := ResolveUnit(p, "Lon")
	require.NoError(t, err)
	// 100000 / 3 = 33333.33... -> 33333
	assert.Equal(t, int64(33333), resolved.UnitPrice)
}

func TestResolveUnit_ImageFallback(t *testing.T) {
	p := &entity.Product{
		Price: 240000,
		Image: "/images/bia.jpg",
		Units: []entity.Unit{
			{Name: "Thùng", Ratio: 1, Image: "/images/bia-thung.jpg", IsDefault: true},
			{Name: "Lon", Ratio: 24},
		},
	}

	withOwn, err := ResolveUnit(p, "Thùng")
	require.NoError(t, err)
	assert.Equal(t, "/images/bia-thung.jpg", withOwn.Image)

	withFallback, err := ResolveUnit(p, "Lon")
	require.NoError(t, err)
	assert.Equal(t, "/images/bia.jpg", withFallback.Image)
}

func TestRoundVND(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{in: 0, want: 0},
		{in: 0.4, want: 0},
		{in: 0.5, want: 1},
		{in: 33333.33, want: 33333},
		{in: 59999.5, want: 60000},
		{in: 10000, want: 10000},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundVND(tt.in), "RoundVND(%v)", tt.in)
	}
}

func TestComputeTotals(t *testing.T) {
	lines := []*entity.CartLine{
		{Quantity: 2, UnitPrice: 10000},
		{Quantity: 1, UnitPrice: 55000},
	}

	totals := ComputeTotals(lines)
	assert.Equal(t, int64(75000), totals.ItemsPrice)
	assert.Equal(t, int64(75000), totals.TotalPrice)

	// Idempotent: same input, same result.
	assert.Equal(t, totals, ComputeTotals(lines))
}

func TestComputeTotals_Empty(t *testing.T) {
	totals := ComputeTotals([]*entity.CartLine{})
	assert.Equal(t, Totals{}, totals)
}

func TestComputeTotals_OrderItems(t *testing.T) {
	items := []*entity.OrderItem{
		{Quantity: 3, UnitPrice: 12000},
		{Quantity: 1, UnitPrice: 240000},
	}

	totals := ComputeTotals(items)
	assert.Equal(t, int64(276000), totals.ItemsPrice)
	assert.Equal(t, totals.ItemsPrice, totals.TotalPrice, "grand total always equals items total")
}

func TestNormalizeUnits(t *testing.T) {
	units := []entity.Unit{
		{Name: "Thùng", Ratio: 1, IsDefault: true},
		{Name: "Lốc", Ratio: 0},
		{Name: "Lốc", Ratio: 4},
		{Name: "", Ratio: 2},
		{Name: "Lon", Ratio: 24, Price: int64Ptr(-5), IsDefault: true},
	}

	normalized, issues := NormalizeUnits(units)

	require.Len(t, normalized, 3)
	assert.Equal(t, "Thùng", normalized[0].Name)
	assert.True(t, normalized[0].IsDefault)

	assert.Equal(t, "Lốc", normalized[1].Name)
	assert.Equal(t, float64(1), normalized[1].Ratio, "zero ratio normalized to 1")

	assert.Equal(t, "Lon", normalized[2].Name)
	assert.Nil(t, normalized[2].Price, "negative price override dropped")
	assert.False(t, normalized[2].IsDefault, "second default flag cleared")

	assert.Equal(t, []string{
		`unit "Lốc": ratio 0 normalized to 1`,
		`unit "Lốc": duplicate name, dropped`,
		"unit 3: empty name, dropped",
		`unit "Lon": non-positive price override ignored`,
		`unit "Lon": extra default flag cleared`,
	}, issues)
}

func TestNormalizeUnits_Empty(t *testing.T) {
	normalized, issues := NormalizeUnits(nil)
	assert.Nil(t, normalized)
	assert.Nil(t, issues)
}
