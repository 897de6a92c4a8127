package geocoding_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/SophiaPhilean/UFOTRAC/internal/geocoding"
	"github.com/SophiaPhilean/UFOTRAC/internal/locality"
	"github.com/SophiaPhilean/UFOTRAC/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func newMapboxAdapter(client geocoding.HTTPClient) *geocoding.MapboxAdapter {
	return geocoding.NewMapboxAdapterWithClient(
		client, "test-token", "us", locality.NewFilter("us"), 5, slog.Default(),
	)
}

const mapboxPoiFeature = `{
	"place_type": ["poi"],
	"place_name": "Post Office, 2 Glen St, Glen Cove, New York 11542, United States",
	"center": [-73.6337, 40.8623],
	"context": [
		{"id": "place.123", "text": "Glen Cove"},
		{"id": "region.456", "text": "New York", "short_code": "US-NY"},
		{"id": "country.789", "text": "United States", "short_code": "US"}
	]
}`

func TestMapboxAdapter_FindHit(t *testing.T) {
	ctx := context.Background()

	t.Run("successful hit with structured meta", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "GET", req.Method)
				assert.Contains(t, req.URL.String(), "api.mapbox.com")
				assert.Contains(t, req.URL.EscapedPath(), "Post%20Office.json")
				assert.Equal(t, "test-token", req.URL.Query().Get("access_token"))
				assert.Equal(t, "us", req.URL.Query().Get("country"))
				assert.Equal(t, "5", req.URL.Query().Get("limit"))

				return jsonResponse(http.StatusOK, `{"features":[`+mapboxPoiFeature+`]}`), nil
			},
		}

		adapter := newMapboxAdapter(mockClient)
		hit, err := adapter.FindHit(ctx, "Post Office", nil, models.Expectation{})

		require.NoError(t, err)
		require.NotNil(t, hit)
		assert.Equal(t, "mapbox", hit.Provider)
		assert.InEpsilon(t, 40.8623, hit.Lat, 0.0001)
		assert.InEpsilon(t, -73.6337, hit.Lng, 0.0001)
		assert.Equal(t, "Glen Cove", hit.Meta.City)
		assert.Equal(t, "NY", hit.Meta.RegionCode)
		assert.Equal(t, "New York", hit.Meta.Region)
		assert.Equal(t, "us", hit.Meta.CountryCode)
	})

	t.Run("near bias becomes proximity parameter", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.NotEmpty(t, req.URL.Query().Get("proximity"))
				return jsonResponse(http.StatusOK, `{"features":[]}`), nil
			},
		}

		adapter := newMapboxAdapter(mockClient)
		_, err := adapter.FindHit(ctx, "Post Office", &models.Coordinates{Lat: 40.86, Lng: -73.63}, models.Expectation{})

		require.ErrorIs(t, err, geocoding.ErrNoMatch)
	})

	t.Run("coarse place feature rejected", func(t *testing.T) {
		coarse := `{"place_type":["place"],"place_name":"Glen Cove, New York, United States","center":[-73.63,40.86]}`
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"features":[`+coarse+`]}`), nil
			},
		}

		adapter := newMapboxAdapter(mockClient)
		hit, err := adapter.FindHit(ctx, "Glen Cove", nil, models.Expectation{})

		require.ErrorIs(t, err, geocoding.ErrNoMatch)
		assert.Nil(t, hit)
	})

	t.Run("locality expectation filters", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"features":[`+mapboxPoiFeature+`]}`), nil
			},
		}

		adapter := newMapboxAdapter(mockClient)
		hit, err := adapter.FindHit(ctx, "Post Office", nil, models.Expectation{City: "Hempstead", RegionCode: "NY"})

		require.ErrorIs(t, err, geocoding.ErrNoMatch)
		assert.Nil(t, hit)
	})

	t.Run("unauthorized", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusUnauthorized, `{"message":"Not Authorized"}`), nil
			},
		}

		adapter := newMapboxAdapter(mockClient)
		hit, err := adapter.FindHit(ctx, "Post Office", nil, models.Expectation{})

		require.ErrorIs(t, err, geocoding.ErrMapboxUnauthorized)
		assert.Nil(t, hit)
	})

	t.Run("HTTP error status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusTooManyRequests, `{"message":"rate limited"}`), nil
			},
		}

		adapter := newMapboxAdapter(mockClient)
		_, err := adapter.FindHit(ctx, "Post Office", nil, models.Expectation{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "mapbox API returned status 429")
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `invalid json`), nil
			},
		}

		adapter := newMapboxAdapter(mockClient)
		_, err := adapter.FindHit(ctx, "Post Office", nil, models.Expectation{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode mapbox response")
	})

	t.Run("HTTP client returns error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		adapter := newMapboxAdapter(mockClient)
		_, err := adapter.FindHit(ctx, "Post Office", nil, models.Expectation{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute geocoding request")
	})
}

func TestMapboxAdapter_FindCandidates(t *testing.T) {
	ctx := context.Background()

	t.Run("mixes poi and address entries", func(t *testing.T) {
		address := `{"place_type":["address"],"place_name":"2 Glen St, Glen Cove, New York 11542, United States","center":[-73.6331,40.8621]}`
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"features":[`+mapboxPoiFeature+`,`+address+`]}`), nil
			},
		}

		adapter := newMapboxAdapter(mockClient)
		candidates, err := adapter.FindCandidates(ctx, "Glen St", nil)

		require.NoError(t, err)
		require.Len(t, candidates, 2)
		assert.Equal(t, "mapbox", candidates[0].Provider)
	})

	t.Run("empty feature list", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"features":[]}`), nil
			},
		}

		adapter := newMapboxAdapter(mockClient)
		candidates, err := adapter.FindCandidates(ctx, "nowhere", nil)

		require.ErrorIs(t, err, geocoding.ErrNoMatch)
		assert.Empty(t, candidates)
	})
}
