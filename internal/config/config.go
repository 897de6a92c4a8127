package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the address resolution
// service: the environment, server port, one credential per geocoding
// provider, the per-adapter deadline, and the candidate-mode scoring
// knobs. A provider whose credential is absent is simply excluded from
// the adapter chain; it is not an error.
type Config struct {
	Env              string        // Env is the current environment: local, development, production.
	Port             int           // Port is the HTTP server port.
	GoogleAPIKey     string        // API key for the Google Places text-search API.
	GoogleRateLimit  int           // Requests per second allowed against the Google API.
	MapboxToken      string        // Access token for the Mapbox geocoding API.
	HereAPIKey       string        // API key for the HERE geocoding API.
	NominatimEnabled bool          // Whether the keyless Nominatim adapter joins the chain.
	CountryCode      string        // Lowercase ISO code of the supported country.
	AdapterTimeout   time.Duration // Deadline applied to each individual adapter call.
	RegionBoost      float64       // Score boost for an exact region code/name match.
	CityBoost        float64       // Score boost for a city-token match.
	MaxCandidates    int           // Cap on the returned candidate list.
	ProviderCap      int           // Cap on candidates collected per provider.
}

// MustLoad loads the configuration from the process environment (after an
// optional .env file) and panics on malformed values.
func MustLoad() *Config {
	_ = godotenv.Load()

	port, err := strconv.Atoi(setDefaultEnv("UFOTRAC_PORT", "8080"))
	if err != nil {
		panic("failed to parse port from configuration")
	}

	googleRate, err := strconv.Atoi(setDefaultEnv("UFOTRAC_GOOGLE_RATE_LIMIT", "10"))
	if err != nil {
		panic("failed to parse google rate limit from configuration, must be an integer")
	}

	adapterTimeout, err := time.ParseDuration(setDefaultEnv("UFOTRAC_ADAPTER_TIMEOUT", "5s"))
	if err != nil {
		panic("failed to parse adapter timeout from configuration")
	}

	regionBoost, err := strconv.ParseFloat(setDefaultEnv("UFOTRAC_REGION_BOOST", "30"), 64)
	if err != nil {
		panic("failed to parse region boost from configuration")
	}

	cityBoost, err := strconv.ParseFloat(setDefaultEnv("UFOTRAC_CITY_BOOST", "20"), 64)
	if err != nil {
		panic("failed to parse city boost from configuration")
	}

	maxCandidates, err := strconv.Atoi(setDefaultEnv("UFOTRAC_MAX_CANDIDATES", "8"))
	if err != nil {
		panic("failed to parse max candidates from configuration, must be an integer")
	}

	providerCap, err := strconv.Atoi(setDefaultEnv("UFOTRAC_PROVIDER_CAP", "5"))
	if err != nil {
		panic("failed to parse provider candidate cap from configuration, must be an integer")
	}

	return &Config{
		Env:              setDefaultEnv("UFOTRAC_ENV", "production"),
		Port:             port,
		GoogleAPIKey:     os.Getenv("UFOTRAC_GOOGLE_API_KEY"),
		GoogleRateLimit:  googleRate,
		MapboxToken:      os.Getenv("UFOTRAC_MAPBOX_TOKEN"),
		HereAPIKey:       os.Getenv("UFOTRAC_HERE_API_KEY"),
		NominatimEnabled: setDefaultEnv("UFOTRAC_NOMINATIM_ENABLED", "true") == "true",
		CountryCode:      setDefaultEnv("UFOTRAC_COUNTRY_CODE", "us"),
		AdapterTimeout:   adapterTimeout,
		RegionBoost:      regionBoost,
		CityBoost:        cityBoost,
		MaxCandidates:    maxCandidates,
		ProviderCap:      providerCap,
	}
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
