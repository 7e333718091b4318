package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "absent.json")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestResolveCommand(t *testing.T) {
	out, err := execute(t, "resolve", "100001")
	require.NoError(t, err)
	assert.Contains(t, out, "100,001 sessions/month: growth tier, $999/month")

	out, err = execute(t, "resolve", "6000000")
	require.NoError(t, err)
	assert.Contains(t, out, "custom quote required")

	_, err = execute(t, "resolve", "many")
	assert.Error(t, err)
}

func TestEstimateCommandJSON(t *testing.T) {
	out, err := execute(t, "estimate", "-s", "500000", "-c", "8000", "-r", "45", "-f", "json")
	require.NoError(t, err)

	var report struct {
		Entries []struct {
			Tier    string `json:"tier"`
			Rounded struct {
				Total int64 `json:"total_annual_savings_usd"`
				ROI   int64 `json:"roi_percentage"`
			} `json:"rounded"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report), out)
	require.Len(t, report.Entries, 1)
	assert.Equal(t, "scale", report.Entries[0].Tier)
	assert.Equal(t, int64(279_612), report.Entries[0].Rounded.Total)
	assert.Equal(t, int64(1_295), report.Entries[0].Rounded.ROI)
}

func TestBatchCommandStrict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scenarios:
  - name: mid-market
    monthly_sessions: 500000
    current_monthly_cost_usd: 8000
    expected_ticket_reduction_pct: 45
  - name: unpriced
    monthly_sessions: 9000000
    current_monthly_cost_usd: 20000
    expected_ticket_reduction_pct: 30
`), 0o644))

	out, err := execute(t, "batch", path, "-f", "markdown", "--strict=false")
	require.NoError(t, err)
	assert.Contains(t, out, "| mid-market |")
	assert.Contains(t, out, "| unpriced | error:")

	_, err = execute(t, "batch", path, "-f", "markdown", "--strict")
	assert.EqualError(t, err, "1 of 2 scenarios failed")
}

func TestBatchCommandRejectsMissingInputs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scenarios:
  - name: no cost
    monthly_sessions: 500000
    expected_ticket_reduction_pct: 45
`), 0o644))

	_, err := execute(t, "batch", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "current_monthly_cost_usd is required")
}

func TestEstimateCommandKeepsDecimalInput(t *testing.T) {
	out, err := execute(t, "estimate", "-s", "100000", "-c", "999999999999999.85", "-r", "0", "-f", "json")
	require.NoError(t, err)

	var report struct {
		Entries []struct {
			Rounded struct {
				Total int64 `json:"total_annual_savings_usd"`
			} `json:"rounded"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report), out)
	require.Len(t, report.Entries, 1)
	assert.Equal(t, int64(11_999_999_999_994_010), report.Entries[0].Rounded.Total)

	_, err = execute(t, "estimate", "-s", "100000", "-c", "lots")
	assert.Error(t, err)
}

func resetSweepFlags() {
	for _, name := range []string{"from", "to"} {
		sweepCmd.Flags().Lookup(name).Changed = false
	}
	sweepFrom, sweepTo = 0, 0
}

func TestSweepCommandRange(t *testing.T) {
	defer resetSweepFlags()

	out, err := execute(t, "sweep", "-c", "8000", "-r", "45", "--steps", "10", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "(10k to 5M)")

	_, err = execute(t, "sweep", "--from", "-5", "--to", "100", "-c", "10", "-r", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "from")

	resetSweepFlags()
	out, err = execute(t, "sweep", "--from", "0", "--to", "100000", "--steps", "5", "-c", "10", "-r", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "(0 to 100k)")
}

func TestTiersCommandWithCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiers.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
tier "solo" {
  max_sessions      = 5000
  monthly_price_usd = 49
}
`), 0o644))

	out, err := execute(t, "--catalog", path, "--no-color", "tiers")
	require.NoError(t, err)
	assert.Contains(t, out, "solo")
	assert.Contains(t, out, "$49")
	assert.Contains(t, out, "Catalog: "+path)

	// reset the persistent flag for later tests
	catalogFile = ""
}
