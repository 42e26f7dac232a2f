// Package geo looks up Vietnamese administrative units from the public
// provinces API for the shipping address cascade.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"anha/config"
	"anha/internal/domain/service"
	"anha/internal/errors"
)

const (
	defaultBaseURL = "https://provinces.open-api.vn/api"
	defaultTimeout = 10 * time.Second
)

// directoryClient is the HTTP implementation of the GeoDirectory service.
type directoryClient struct {
	baseURL string
	client  *http.Client
}

// NewDirectoryClient is the constructor for directoryClient.
func NewDirectoryClient(cfg *config.Config) service.GeoDirectory {
	baseURL := defaultBaseURL
	timeout := defaultTimeout
	if cfg.Geo != nil {
		if cfg.Geo.BaseURL != "" {
			baseURL = cfg.Geo.BaseURL
		}
		if cfg.Geo.Timeout > 0 {
			timeout = cfg.Geo.Timeout
		}
	}

	return &directoryClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type provinceResponse struct {
	Code      int                `json:"code"`
	Name      string             `json:"name"`
	Districts []districtResponse `json:"districts"`
}

type districtResponse struct {
	Code  int            `json:"code"`
	Name  string         `json:"name"`
	Wards []wardResponse `json:"wards"`
}

type wardResponse struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

// Provinces returns every province.
func (c *directoryClient) Provinces(ctx context.Context) ([]service.Region, error) {
	var provinces []provinceResponse
	if err := c.get(ctx, "/p/", &provinces); err != nil {
		return nil, err
	}

	regions := make([]service.Region, 0, len(provinces))
	for _, p := range provinces {
		regions = append(regions, service.Region{Code: p.Code, Name: p.Name})
	}

	return regions, nil
}

// Districts returns the districts of a province.
func (c *directoryClient) Districts(ctx context.Context, provinceCode int) ([]service.Region, error) {
	var province provinceResponse
	if err := c.get(ctx, fmt.Sprintf("/p/%d?depth=2", provinceCode), &province); err != nil {
		return nil, err
	}

	regions := make([]service.Region, 0, len(province.Districts))
	for _, d := range province.Districts {
		regions = append(regions, service.Region{Code: d.Code, Name: d.Name})
	}

	return regions, nil
}

// Wards returns the wards of a district.
func (c *directoryClient) Wards(ctx context.Context, districtCode int) ([]service.Region, error) {
	var district districtResponse
	if err := c.get(ctx, fmt.Sprintf("/d/%d?depth=2", districtCode), &district); err != nil {
		return nil, err
	}

	regions := make([]service.Region, 0, len(district.Wards))
	for _, w := range district.Wards {
		regions = append(regions, service.Region{Code: w.Code, Name: w.Name})
	}

	return regions, nil
}

func (c *directoryClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build directory request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "directory request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.New(fmt.Sprintf("directory API returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode directory response")
	}

	return nil
}
