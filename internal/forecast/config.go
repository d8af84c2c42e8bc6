package forecast

import (
	"os"
	"strconv"

	"github.com/alexanderramin/cashgrid/internal/domain"
)

// Config holds all configuration for the forecast subsystem.
type Config struct {
	Enabled       bool
	LogCalls      bool
	Endpoint      string
	TimeoutMs     int
	MaxRetries    int
	Horizon       int // forecast buckets requested per call
	DefaultMethod domain.ForecastMethod
}

// DefaultConfig returns a Config with sensible defaults.
// Forecasting is disabled by default.
func DefaultConfig() Config {
	return Config{
		Enabled:       false,
		LogCalls:      false,
		Endpoint:      "http://localhost:8090",
		TimeoutMs:     15000,
		MaxRetries:    1,
		Horizon:       4,
		DefaultMethod: domain.MethodAuto,
	}
}

// LoadConfig reads forecast configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("CASHGRID_FORECAST_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CASHGRID_FORECAST_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CASHGRID_FORECAST_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("CASHGRID_FORECAST_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("CASHGRID_FORECAST_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("CASHGRID_FORECAST_HORIZON"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Horizon = n
		}
	}
	if v := os.Getenv("CASHGRID_FORECAST_METHOD"); v != "" && domain.ValidForecastMethods[v] {
		cfg.DefaultMethod = domain.ForecastMethod(v)
	}

	return cfg
}
