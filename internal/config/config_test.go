package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traceflow-pricing/core/savings"
	"traceflow-pricing/internal/errors"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "pricing": {"catalog_path": "/etc/traceflow/tiers.hcl"},
  "model": {"cost_per_ticket_usd": 35.5},
  "server": {"addr": ":9090"}
}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/etc/traceflow/tiers.hcl", cfg.Pricing.CatalogPath)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 35.5, cfg.Model.CostPerTicketUSD)
	// untouched keys keep their defaults
	assert.Equal(t, int64(1_000), cfg.Model.SessionsPerTicket)
	assert.Equal(t, 4, cfg.Scenario.Concurrency)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server": `), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Default()
	cfg.Output.DefaultFormat = "markdown"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "markdown", loaded.Output.DefaultFormat)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvCatalog, "/tmp/tiers.hcl")
	t.Setenv(EnvAddr, "127.0.0.1:7000")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvRateLimit, "2.5")
	t.Setenv(EnvConcurrency, "8")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "/tmp/tiers.hcl", cfg.Pricing.CatalogPath)
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 2.5, cfg.Server.RateLimit)
	assert.Equal(t, 8, cfg.Scenario.Concurrency)
}

func TestApplyEnvRejectsBadNumbers(t *testing.T) {
	t.Setenv(EnvConcurrency, "0")
	assert.True(t, errors.IsType(Default().ApplyEnv(), errors.TypeConfig))

	t.Setenv(EnvConcurrency, "")
	t.Setenv(EnvRateLimit, "fast")
	assert.True(t, errors.IsType(Default().ApplyEnv(), errors.TypeConfig))
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TRACEFLOW_ADDR=:1111\nTRACEFLOW_LOG_LEVEL=warn\n"), 0o644))

	t.Setenv(EnvAddr, ":2222")
	t.Setenv(EnvLogLevel, "")
	require.NoError(t, os.Unsetenv(EnvLogLevel))

	LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), path)
	assert.Equal(t, ":2222", os.Getenv(EnvAddr))
	assert.Equal(t, "warn", os.Getenv(EnvLogLevel))
}

func TestSavingsModel(t *testing.T) {
	m, err := Default().Model.SavingsModel()
	require.NoError(t, err)
	assert.True(t, m.Equal(savings.DefaultModel()))

	bad := Default().Model
	bad.WeeksPerYear = 0
	_, err = bad.SavingsModel()
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}
