package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anha/config"
	"anha/internal/domain/service"
)

func newTestDirectory(t *testing.T, handler http.HandlerFunc) service.GeoDirectory {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewDirectoryClient(&config.Config{Geo: &config.GeoConfig{BaseURL: server.URL}})
}

func TestDirectoryClient_Provinces(t *testing.T) {
	dir := newTestDirectory(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/p/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"code": 79, "name": "Thành phố Hồ Chí Minh"},
			{"code": 1, "name": "Thành phố Hà Nội"}
		]`))
	})

	provinces, err := dir.Provinces(context.Background())

	require.NoError(t, err)
	require.Len(t, provinces, 2)
	assert.Equal(t, 79, provinces[0].Code)
	assert.Equal(t, "Thành phố Hồ Chí Minh", provinces[0].Name)
}

func TestDirectoryClient_Districts(t *testing.T) {
	dir := newTestDirectory(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/p/79", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("depth"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": 79,
			"name": "Thành phố Hồ Chí Minh",
			"districts": [{"code": 760, "name": "Quận 1"}]
		}`))
	})

	districts, err := dir.Districts(context.Background(), 79)

	require.NoError(t, err)
	require.Len(t, districts, 1)
	assert.Equal(t, "Quận 1", districts[0].Name)
}

func TestDirectoryClient_Wards(t *testing.T) {
	dir := newTestDirectory(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/d/760", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": 760,
			"name": "Quận 1",
			"wards": [{"code": 26734, "name": "Phường Bến Nghé"}]
		}`))
	})

	wards, err := dir.Wards(context.Background(), 760)

	require.NoError(t, err)
	require.Len(t, wards, 1)
	assert.Equal(t, "Phường Bến Nghé", wards[0].Name)
}

func TestDirectoryClient_UpstreamError(t *testing.T) {
	dir := newTestDirectory(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := dir.Provinces(context.Background())

	assert.Error(t, err)
}
