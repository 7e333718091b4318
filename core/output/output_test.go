package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traceflow-pricing/core/pricing"
	"traceflow-pricing/core/savings"
	"traceflow-pricing/core/scenario"
	"traceflow-pricing/core/types"
)

func midMarket(t *testing.T) *types.SavingsEstimate {
	t.Helper()
	est, err := savings.Estimate(types.CalculatorInput{
		MonthlySessions:            500_000,
		CurrentMonthlyCostUSD:      decimal.NewFromInt(8_000),
		ExpectedTicketReductionPct: decimal.NewFromInt(45),
	})
	require.NoError(t, err)
	return est
}

func testReport(t *testing.T) *Report {
	return &Report{
		Title: "Savings",
		Entries: []Entry{
			{Name: "mid-market", Estimate: midMarket(t)},
			{Name: "too big", Err: fmt.Errorf("custom tier requires a negotiated monthly price")},
		},
		ShowAssumptions: true,
		Metadata:        Metadata{Version: "test", CatalogSource: "builtin"},
	}
}

// TestCLIFormatter checks the terminal report carries every rounded figure
func TestCLIFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCLIFormatter().Render(&buf, testReport(t)))
	out := buf.String()

	for _, want := range []string{
		"Savings",
		"mid-market",
		"scale ($1,799/mo)",
		"500,000",
		"$74,412/yr",
		"$135,000/yr",
		"(225 of 500 tickets/mo)",
		"$70,200/yr",
		"(9 h/week)",
		"$279,612/yr",
		"1,295%",
		"custom tier requires a negotiated monthly price",
		"Assumptions",
		"support.cost_per_ticket = 50 USD (default)",
	} {
		assert.Contains(t, out, want)
	}
}

// TestJSONFormatter checks entries and report-level assumptions
func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Render(&buf, testReport(t)))

	var decoded struct {
		Entries []struct {
			Name     string                 `json:"name"`
			Tier     string                 `json:"tier"`
			Rounded  *types.RoundedSavings  `json:"rounded"`
			Estimate map[string]interface{} `json:"estimate"`
			Error    string                 `json:"error"`
		} `json:"entries"`
		Assumptions []types.Assumption `json:"assumptions"`
		Metadata    Metadata           `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded.Entries, 2)
	first := decoded.Entries[0]
	assert.Equal(t, "scale", first.Tier)
	require.NotNil(t, first.Rounded)
	assert.Equal(t, int64(279_612), first.Rounded.TotalAnnualSavingsUSD)
	assert.Equal(t, int64(1_295), first.Rounded.ROIPercentage)
	assert.NotContains(t, first.Estimate, "assumptions")

	assert.Nil(t, decoded.Entries[1].Rounded)
	assert.Contains(t, decoded.Entries[1].Error, "negotiated")

	assert.Len(t, decoded.Assumptions, 6)
	assert.Equal(t, "builtin", decoded.Metadata.CatalogSource)
}

// TestMarkdownFormatter checks the table row and the escaped error row
func TestMarkdownFormatter(t *testing.T) {
	report := testReport(t)
	report.Entries[1].Err = fmt.Errorf("a | b")

	var buf bytes.Buffer
	require.NoError(t, NewMarkdownFormatter().Render(&buf, report))
	out := buf.String()

	assert.Contains(t, out, "## Savings")
	assert.Contains(t, out, "| mid-market | scale ($1,799/mo) | $74,412 | $135,000 | $70,200 | **$279,612** | 1,295% |")
	assert.Contains(t, out, `error: a \| b`)
	assert.Contains(t, out, "- `engineering.hourly_rate` = 150 USD")
}

// TestROIUndefined proves a zero annual cost renders as n/a
func TestROIUndefined(t *testing.T) {
	assert.Equal(t, "n/a", ROI(types.RoundedSavings{}))
	assert.Equal(t, "0%", ROI(types.RoundedSavings{ROIDefined: true}))
	assert.Equal(t, "-$1,500", USD(-1_500))
}

// TestRegistry covers lookup of built-in and unknown formats
func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []Format{FormatCLI, FormatJSON, FormatMarkdown}, r.Formats())

	f, err := r.Get(FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, f.Format())

	_, err = r.Get("html")
	assert.Error(t, err)
}

// TestRenderTiers checks the canonical table and the trailing custom row
func TestRenderTiers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderTiers(&buf, pricing.DefaultCatalog().Table()))
	out := buf.String()

	assert.Contains(t, out, "starter")
	assert.Contains(t, out, "$499")
	assert.Contains(t, out, "5,000,000")
	assert.Contains(t, out, "> 5,000,000")
	assert.Contains(t, out, "contact us")
	assert.Contains(t, out, "Calculator range: 10,000 to 5,000,000 sessions/month (USD)")
}

// TestRenderSweepChart plots successful points and rejects unknown metrics
func TestRenderSweepChart(t *testing.T) {
	base := types.CalculatorInput{
		CurrentMonthlyCostUSD:      decimal.NewFromInt(8_000),
		ExpectedTicketReductionPct: decimal.NewFromInt(45),
	}
	points, err := scenario.Sweep(savings.DefaultEstimator(), base, 100_000, 5_000_000, 8)
	require.NoError(t, err)

	chart, err := RenderSweepChart(points, MetricTotalSavings, 40, 8)
	require.NoError(t, err)
	assert.Contains(t, chart, "savings vs monthly sessions (100k to 5M)")
	assert.Greater(t, strings.Count(chart, "\n"), 6)

	_, err = RenderSweepChart(points, "margin", 40, 8)
	assert.Error(t, err)

	empty, err := RenderSweepChart([]scenario.Point{{Sessions: 1, Err: fmt.Errorf("x")}}, MetricROI, 40, 8)
	require.NoError(t, err)
	assert.Equal(t, "no data to plot", empty)
}

// TestCLIFormatterNoColor proves the plain renderer emits no escape sequences
func TestCLIFormatterNoColor(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CLIFormatter{NoColor: true}).Render(&buf, testReport(t)))
	assert.NotContains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "$279,612/yr")
}
