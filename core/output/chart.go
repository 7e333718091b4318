package output

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"traceflow-pricing/core/scenario"
	"traceflow-pricing/core/types"
)

// SweepMetric selects the value a sweep chart plots
type SweepMetric string

const (
	MetricTotalSavings SweepMetric = "savings"
	MetricROI          SweepMetric = "roi"
	MetricPrice        SweepMetric = "price"
)

func (m SweepMetric) value(est *types.SavingsEstimate) float64 {
	switch m {
	case MetricROI:
		return float64(est.ROIPercentage)
	case MetricPrice:
		f, _ := est.EffectiveMonthlyPriceUSD.Float64()
		return f
	default:
		f, _ := est.TotalAnnualSavingsUSD.Float64()
		return f
	}
}

// RenderSweepChart plots metric across a sweep. Points that failed (custom
// tiers without a negotiated price) are left out of the series.
func RenderSweepChart(points []scenario.Point, metric SweepMetric, width, height int) (string, error) {
	switch metric {
	case MetricTotalSavings, MetricROI, MetricPrice:
	default:
		return "", fmt.Errorf("unknown sweep metric %q", metric)
	}

	data := scenario.Series(points, metric.value)
	if len(data) == 0 {
		return "no data to plot", nil
	}

	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	first, last := points[0].Sessions, points[len(points)-1].Sessions
	caption := fmt.Sprintf("%s vs monthly sessions (%s to %s)", metric,
		humanizeSessions(first), humanizeSessions(last))

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	), nil
}

func humanizeSessions(n int64) string {
	switch {
	case n >= 1_000_000 && n%100_000 == 0:
		return fmt.Sprintf("%gM", float64(n)/1_000_000)
	case n >= 1_000 && n%100 == 0:
		return fmt.Sprintf("%gk", float64(n)/1_000)
	default:
		return fmt.Sprint(n)
	}
}
