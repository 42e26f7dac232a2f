// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultUnitName is the synthesized unit for products without a unit list.
// It matches the label the storefront shows for single-unit products.
const DefaultUnitName = "Sản phẩm"

// Unit is a named way a product can be sold (case, pack, piece...).
// Ratio expresses how many base units compose one of this unit; a case of 24
// cans has Ratio 24 relative to the single can.
type Unit struct {
	Name        string  // Unit label shown to the customer (Thùng, Lốc, Lon...).
	Ratio       float64 // Conversion factor relative to the base saleable unit.
	Price       *int64  // Absolute price override in VND; nil derives from the product price.
	Image       string  // Optional unit-specific image.
	Description string  // Optional description, e.g. "24 lon x 330ml".
	IsDefault   bool    // Marks the unit preselected on the product page.
	InStock     bool    // Whether this unit is currently sellable.
}

// Product is a catalog entry. Prices are whole VND.
type Product struct {
	ID           uuid.UUID
	Name         string
	Image        string
	Brand        string
	Category     string
	Description  string
	Price        int64   // Base price for one base unit.
	RetailPrice  *int64  // Optional retail override used as the pricing base when positive.
	CountInStock int
	Rating       float64
	NumReviews   int
	Barcode      *string
	Units        []Unit // Display order is insertion order.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BasePrice returns the pricing base for ratio-derived unit prices:
// the retail override when set and positive, otherwise the base price.
func (p *Product) BasePrice() int64 {
	if p.RetailPrice != nil && *p.RetailPrice > 0 {
		return *p.RetailPrice
	}

	return p.Price
}

// DefaultUnit returns the unit preselected on the product page: the one
// flagged default, else the first in list order. ok is false when the
// product has no units.
func (p *Product) DefaultUnit() (Unit, bool) {
	if len(p.Units) == 0 {
		return Unit{}, false
	}

	for _, u := range p.Units {
		if u.IsDefault {
			return u, true
		}
	}

	return p.Units[0], true
}
