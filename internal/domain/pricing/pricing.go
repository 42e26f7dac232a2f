// Package pricing implements the unit price resolution and order total rules
// shared by the cart, checkout and order screens. Everything here is pure:
// no I/O, no mutation of inputs.
package pricing

import (
	"fmt"
	"math"

	"anha/internal/domain/entity"
	domainerrors "anha/internal/domain/errors"
)

// ResolvedUnit is the outcome of picking a sellable unit for a product:
// the effective per-unit price plus the display metadata for that unit.
type ResolvedUnit struct {
	Name        string
	Ratio       float64
	UnitPrice   int64
	Image       string
	Description string
}

// Totals aggregates a line list. TotalPrice always equals ItemsPrice; the
// shop models no tax, shipping or discounts.
type Totals struct {
	ItemsPrice int64
	TotalPrice int64
}

// RoundVND rounds to a whole đồng, halves rounding up.
func RoundVND(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

// ResolveUnit picks the sellable unit for a product and computes its price.
//
// Selection order when the product has units: exact name match, else the unit
// flagged default, else the first unit. A product without units sells as a
// single implicit unit at its base price.
//
// The unit's absolute price wins when positive; otherwise the price is the
// product's pricing base divided by the ratio, rounded to whole VND. Invalid
// ratios fall back to 1 rather than failing, mirroring how malformed catalog
// rows are normalized at the store boundary.
func ResolveUnit(p *entity.Product, unitName string) (ResolvedUnit, error) {
	if p == nil {
		return ResolvedUnit{}, domainerrors.ErrProductNotFound
	}

	if len(p.Units) == 0 {
		return ResolvedUnit{
			Name:      entity.DefaultUnitName,
			Ratio:     1,
			UnitPrice: p.BasePrice(),
			Image:     p.Image,
		}, nil
	}

	unit := selectUnit(p.Units, unitName)

	ratio := unit.Ratio
	if ratio <= 0 {
		ratio = 1
	}

	price := RoundVND(float64(p.BasePrice()) / ratio)
	if unit.Price != nil && *unit.Price > 0 {
		price = *unit.Price
	}

	image := unit.Image
	if image == "" {
		image = p.Image
	}

	return ResolvedUnit{
		Name:        unit.Name,
		Ratio:       ratio,
		UnitPrice:   price,
		Image:       image,
		Description: unit.Description,
	}, nil
}

func selectUnit(units []entity.Unit, unitName string) entity.Unit {
	if unitName != "" {
		for _, u := range units {
			if u.Name == unitName {
				return u
			}
		}
	}

	for _, u := range units {
		if u.IsDefault {
			return u
		}
	}

	return units[0]
}

// Subtotaler is any priced line: cart lines and order items both qualify.
type Subtotaler interface {
	Subtotal() int64
}

// ComputeTotals sums lines into the order totals. It is the single totals
// implementation for the cart view, order placement and the order detail
// screen; computing totals anywhere else invites mismatches between them.
func ComputeTotals[L Subtotaler](lines []L) Totals {
	var items int64
	for _, line := range lines {
		items += line.Subtotal()
	}

	return Totals{ItemsPrice: items, TotalPrice: items}
}

// NormalizeUnits repairs a unit list at the store boundary so malformed rows
// never reach the pricing math: non-positive ratios become 1, non-positive
// price overrides are dropped, unnamed units are removed, duplicate names keep
// the first occurrence and only the first default flag survives.
//
// The returned issue list describes every repair so callers can log upstream
// data corruption. The input slice is not modified.
func NormalizeUnits(units []entity.Unit) ([]entity.Unit, []string) {
	if len(units) == 0 {
		return nil, nil
	}

	normalized := make([]entity.Unit, 0, len(units))
	var issues []string
	seen := make(map[string]struct{}, len(units))
	defaultSeen := false

	for i, u := range units {
		if u.Name == "" {
			issues = append(issues, fmt.Sprintf("unit %d: empty name, dropped", i))

			continue
		}
		if _, dup := seen[u.Name]; dup {
			issues = append(issues, fmt.Sprintf("unit %q: duplicate name, dropped", u.Name))

			continue
		}
		seen[u.Name] = struct{}{}

		if u.Ratio <= 0 {
			issues = append(issues, fmt.Sprintf("unit %q: ratio %v normalized to 1", u.Name, u.Ratio))
			u.Ratio = 1
		}
		if u.Price != nil && *u.Price <= 0 {
			issues = append(issues, fmt.Sprintf("unit %q: non-positive price override ignored", u.Name))
			u.Price = nil
		}
		if u.IsDefault {
			if defaultSeen {
				issues = append(issues, fmt.Sprintf("unit %q: extra default flag cleared", u.Name))
				u.IsDefault = false
			}
			defaultSeen = true
		}

		normalized = append(normalized, u)
	}

	return normalized, issues
}
