// Package cmd - sweep command
package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"traceflow-pricing/core/output"
	"traceflow-pricing/core/scenario"
	"traceflow-pricing/core/types"
)

var (
	sweepFrom      int64
	sweepTo        int64
	sweepSteps     int
	sweepCost      decimal.Decimal
	sweepReduction decimal.Decimal
	sweepMetric    string
	sweepWidth     int
	sweepHeight    int
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Chart savings across session volumes",
	Long: `Evaluate the estimate across a range of monthly session volumes and
plot it. The range defaults to the catalog's calculator bounds. Volumes that
fall in a custom tier are skipped.

Examples:
  traceflow-pricing sweep --cost 8000 --reduction 45
  traceflow-pricing sweep --cost 8000 --reduction 45 --metric roi --steps 60`,
	Args: cobra.NoArgs,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().Int64Var(&sweepFrom, "from", 0, "first session volume (default: catalog minimum)")
	sweepCmd.Flags().Int64Var(&sweepTo, "to", 0, "last session volume (default: catalog maximum)")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 50, "number of volumes to evaluate")
	sweepCmd.Flags().VarP(newDecimalValue(&sweepCost), "cost", "c", "current monthly tooling cost in USD")
	sweepCmd.Flags().VarP(newDecimalValue(&sweepReduction), "reduction", "r", "expected support ticket reduction, 0-100")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", string(output.MetricTotalSavings), "metric to plot (savings, roi, price)")
	sweepCmd.Flags().IntVar(&sweepWidth, "width", 70, "chart width")
	sweepCmd.Flags().IntVar(&sweepHeight, "height", 15, "chart height")

	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	est, catalog, err := newEstimator()
	if err != nil {
		return err
	}

	bounds := catalog.Bounds()
	from, to := sweepFrom, sweepTo
	if !cmd.Flags().Changed("from") {
		from = bounds.Min
	}
	if !cmd.Flags().Changed("to") {
		to = bounds.Max
	}

	base := types.CalculatorInput{
		CurrentMonthlyCostUSD:      sweepCost,
		ExpectedTicketReductionPct: sweepReduction,
	}

	points, err := scenario.Sweep(est, base, from, to, sweepSteps)
	if err != nil {
		return err
	}

	chart, err := output.RenderSweepChart(points, output.SweepMetric(sweepMetric), sweepWidth, sweepHeight)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), chart)

	skipped := 0
	for _, p := range points {
		if p.Err != nil {
			skipped++
		}
	}
	if skipped > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d volumes skipped (custom tier or invalid input)\n", skipped)
	}
	return nil
}
