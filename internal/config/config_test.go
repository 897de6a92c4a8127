package config_test

import (
	"testing"
	"time"

	"github.com/SophiaPhilean/UFOTRAC/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestMustLoad(t *testing.T) {
	t.Setenv("UFOTRAC_ENV", "local")
	t.Setenv("UFOTRAC_GOOGLE_API_KEY", "testGoogleKey")
	t.Setenv("UFOTRAC_MAPBOX_TOKEN", "testMapboxToken")
	t.Setenv("UFOTRAC_HERE_API_KEY", "testHereKey")
	t.Setenv("UFOTRAC_ADAPTER_TIMEOUT", "2s")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "testGoogleKey", cfg.GoogleAPIKey)
	assert.Equal(t, "testMapboxToken", cfg.MapboxToken)
	assert.Equal(t, "testHereKey", cfg.HereAPIKey)
	assert.True(t, cfg.NominatimEnabled)
	assert.Equal(t, "us", cfg.CountryCode)
	assert.Equal(t, 2*time.Second, cfg.AdapterTimeout)
	assert.InEpsilon(t, 30.0, cfg.RegionBoost, 0.0001)
	assert.InEpsilon(t, 20.0, cfg.CityBoost, 0.0001)
	assert.Equal(t, 8, cfg.MaxCandidates)
	assert.Equal(t, 5, cfg.ProviderCap)
}

func TestMustLoad_NominatimDisabled(t *testing.T) {
	t.Setenv("UFOTRAC_NOMINATIM_ENABLED", "false")

	cfg := config.MustLoad()

	assert.False(t, cfg.NominatimEnabled)
}

func TestMustLoad_PortError(t *testing.T) {
	t.Setenv("UFOTRAC_PORT", "error_value")

	assert.PanicsWithValue(t, "failed to parse port from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_TimeoutError(t *testing.T) {
	t.Setenv("UFOTRAC_ADAPTER_TIMEOUT", "error_value")

	assert.PanicsWithValue(t, "failed to parse adapter timeout from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_BoostError(t *testing.T) {
	t.Setenv("UFOTRAC_REGION_BOOST", "error_value")

	assert.PanicsWithValue(t, "failed to parse region boost from configuration", func() {
		config.MustLoad()
	})
}
