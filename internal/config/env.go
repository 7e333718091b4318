package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"traceflow-pricing/internal/errors"
)

// Environment variables that override file configuration.
const (
	EnvCatalog     = "TRACEFLOW_CATALOG"
	EnvAddr        = "TRACEFLOW_ADDR"
	EnvLogLevel    = "TRACEFLOW_LOG_LEVEL"
	EnvRateLimit   = "TRACEFLOW_RATE_LIMIT"
	EnvConcurrency = "TRACEFLOW_CONCURRENCY"
)

// LoadDotEnv loads the first .env file found in paths into the process
// environment. Variables already set are not overwritten.
func LoadDotEnv(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

// ApplyEnv overlays TRACEFLOW_* variables onto c.
func (c *Config) ApplyEnv() error {
	c.Pricing.CatalogPath = getEnvString(EnvCatalog, c.Pricing.CatalogPath)
	c.Server.Addr = getEnvString(EnvAddr, c.Server.Addr)
	c.Logging.Level = getEnvString(EnvLogLevel, c.Logging.Level)

	if v := os.Getenv(EnvRateLimit); v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Config(EnvRateLimit+" must be a number", err)
		}
		c.Server.RateLimit = limit
	}

	if v := os.Getenv(EnvConcurrency); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return errors.Config(EnvConcurrency+" must be a positive integer", err)
		}
		c.Scenario.Concurrency = n
	}

	return nil
}

func getEnvString(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
