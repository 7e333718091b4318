// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"traceflow-pricing/core/savings"
	"traceflow-pricing/internal/errors"
	"traceflow-pricing/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Pricing selects the tier catalog
	Pricing PricingConfig `json:"pricing"`

	// Model holds the savings model constants
	Model ModelConfig `json:"model"`

	// Server contains HTTP API settings
	Server ServerConfig `json:"server"`

	// Scenario contains batch evaluation settings
	Scenario ScenarioConfig `json:"scenario"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// CatalogPath is an HCL tier catalog; empty uses the built-in table
	CatalogPath string `json:"catalog_path,omitempty"`

	// WatchCatalog reloads the catalog when the file changes (server only)
	WatchCatalog bool `json:"watch_catalog"`
}

// ModelConfig mirrors savings.Model in config-file friendly units
type ModelConfig struct {
	SessionsPerTicket          int64   `json:"sessions_per_ticket"`
	CostPerTicketUSD           float64 `json:"cost_per_ticket_usd"`
	MaxEngineeringHoursPerWeek int64   `json:"max_engineering_hours_per_week"`
	EngineeringHourlyRateUSD   float64 `json:"engineering_hourly_rate_usd"`
	WeeksPerYear               int64   `json:"weeks_per_year"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// RateLimit is the sustained requests per second (0 disables limiting)
	RateLimit float64 `json:"rate_limit"`

	// RateBurst is the token bucket size
	RateBurst int `json:"rate_burst"`

	// ReadTimeoutSeconds bounds request reads
	ReadTimeoutSeconds int `json:"read_timeout_seconds"`
}

// ScenarioConfig contains batch evaluation settings
type ScenarioConfig struct {
	// Concurrency bounds parallel scenario evaluation
	Concurrency int `json:"concurrency"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`

	// ShowAssumptions lists the model assumptions under each estimate
	ShowAssumptions bool `json:"show_assumptions"`

	// NoColor disables styled terminal output
	NoColor bool `json:"no_color"`
}

// Default returns a default configuration
func Default() *Config {
	model := savings.DefaultModel()
	costPerTicket, _ := model.CostPerTicketUSD.Float64()
	hourlyRate, _ := model.EngineeringHourlyRateUSD.Float64()

	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			WatchCatalog: false,
		},
		Model: ModelConfig{
			SessionsPerTicket:          model.SessionsPerTicket,
			CostPerTicketUSD:           costPerTicket,
			MaxEngineeringHoursPerWeek: model.MaxEngineeringHoursPerWeek,
			EngineeringHourlyRateUSD:   hourlyRate,
			WeeksPerYear:               model.WeeksPerYear,
		},
		Server: ServerConfig{
			Addr:               ":8080",
			RateLimit:          50,
			RateBurst:          100,
			ReadTimeoutSeconds: 10,
		},
		Scenario: ScenarioConfig{
			Concurrency: 4,
		},
		Output: OutputConfig{
			DefaultFormat:   "cli",
			ShowAssumptions: false,
		},
		Logging: logging.DefaultConfig(),
	}
}

// SavingsModel converts the model section into a validated savings.Model
func (c ModelConfig) SavingsModel() (savings.Model, error) {
	m := savings.Model{
		SessionsPerTicket:          c.SessionsPerTicket,
		CostPerTicketUSD:           decimal.NewFromFloat(c.CostPerTicketUSD),
		MaxEngineeringHoursPerWeek: c.MaxEngineeringHoursPerWeek,
		EngineeringHourlyRateUSD:   decimal.NewFromFloat(c.EngineeringHourlyRateUSD),
		WeeksPerYear:               c.WeeksPerYear,
	}
	if err := m.Validate(); err != nil {
		return savings.Model{}, errors.Config("invalid savings model", err)
	}
	return m, nil
}

// DefaultPath returns $HOME/.traceflow-pricing.json
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".traceflow-pricing.json"
	}
	return filepath.Join(homeDir, ".traceflow-pricing.json")
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("reading config "+path, err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Config("decoding config "+path, err)
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
