package entity

import (
	"github.com/google/uuid"
)

// SelectedUnit is the unit descriptor frozen onto a cart line or order item.
type SelectedUnit struct {
	Name        string
	Ratio       float64
	Image       string
	Description string
}

// CartLine is a snapshot of a product+unit selection. UnitPrice and
// CountInStock are captured at add time and do not follow later product edits.
type CartLine struct {
	ProductID    uuid.UUID
	Name         string
	Image        string
	UnitPrice    int64
	CountInStock int
	Quantity     int
	Unit         SelectedUnit
}

// Subtotal returns the line total in whole VND.
func (l *CartLine) Subtotal() int64 {
	return int64(l.Quantity) * l.UnitPrice
}

// Cart is the per-user shopping cart. Lines keep insertion order; at most one
// line exists per product.
type Cart struct {
	UserID uuid.UUID
	Lines  []*CartLine
}

// Upsert replaces the line for the same product if present, otherwise appends.
// Re-adding a product never duplicates its line.
func (c *Cart) Upsert(line *CartLine) {
	for i, existing := range c.Lines {
		if existing.ProductID == line.ProductID {
			c.Lines[i] = line

			return
		}
	}

	c.Lines = append(c.Lines, line)
}

// Remove deletes the line for the product. Removing an absent product is a
// no-op and returns false.
func (c *Cart) Remove(productID uuid.UUID) bool {
	for i, line := range c.Lines {
		if line.ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)

			return true
		}
	}

	return false
}

// Find returns the line for the product, or nil.
func (c *Cart) Find(productID uuid.UUID) *CartLine {
	for _, line := range c.Lines {
		if line.ProductID == productID {
			return line
		}
	}

	return nil
}

// Clear drops every line.
func (c *Cart) Clear() {
	c.Lines = nil
}
