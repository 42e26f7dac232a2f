package service

import "context"

// Region is one Vietnamese administrative unit (province, district or ward).
type Region struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

// GeoDirectory lists administrative units for the shipping address cascade.
type GeoDirectory interface {
	// Provinces returns every province.
	Provinces(ctx context.Context) ([]Region, error)

	// Districts returns the districts of a province.
	Districts(ctx context.Context, provinceCode int) ([]Region, error)

	// Wards returns the wards of a district.
	Wards(ctx context.Context, districtCode int) ([]Region, error)
}
