// Package cmd - estimate command
package cmd

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"traceflow-pricing/core/output"
	"traceflow-pricing/core/types"
	"traceflow-pricing/internal/logging"
)

var (
	estimateSessions        int64
	estimateCost            decimal.Decimal
	estimateReduction       decimal.Decimal
	estimateNegotiatedPrice decimal.Decimal
	estimateFormat          string
	estimateAssumptions     bool
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate annual savings and ROI",
	Long: `Estimate the annual savings and ROI of switching to TRACEFLOW.

Volumes above the largest tier need a negotiated monthly price.

Examples:
  traceflow-pricing estimate --sessions 500000 --cost 8000 --reduction 45
  traceflow-pricing estimate -s 6000000 -c 20000 -r 30 --negotiated-price 14000
  traceflow-pricing estimate -s 250000 -c 3000 -r 20 --format json`,
	Args: cobra.NoArgs,
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().Int64VarP(&estimateSessions, "sessions", "s", 0, "monthly sessions")
	estimateCmd.Flags().VarP(newDecimalValue(&estimateCost), "cost", "c", "current monthly tooling cost in USD")
	estimateCmd.Flags().VarP(newDecimalValue(&estimateReduction), "reduction", "r", "expected support ticket reduction, 0-100")
	estimateCmd.Flags().Var(newDecimalValue(&estimateNegotiatedPrice), "negotiated-price", "monthly price for a custom tier")
	estimateCmd.Flags().StringVarP(&estimateFormat, "format", "f", "", "output format (cli, json, markdown)")
	estimateCmd.Flags().BoolVar(&estimateAssumptions, "assumptions", false, "list model assumptions")
	_ = estimateCmd.MarkFlagRequired("sessions")

	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	est, catalog, err := newEstimator()
	if err != nil {
		return err
	}

	in := types.CalculatorInput{
		MonthlySessions:            estimateSessions,
		CurrentMonthlyCostUSD:      estimateCost,
		ExpectedTicketReductionPct: estimateReduction,
	}
	if cmd.Flags().Changed("negotiated-price") {
		p := estimateNegotiatedPrice
		in.NegotiatedMonthlyPriceUSD = &p
	}

	logging.Debug("estimating",
		zap.Int64("sessions", in.MonthlySessions),
		zap.String("cost", in.CurrentMonthlyCostUSD.String()),
		zap.String("reduction", in.ExpectedTicketReductionPct.String()))

	result, err := est.Estimate(in)
	if err != nil {
		return err
	}

	return render(cmd, &output.Report{
		Title:           "TRACEFLOW ROI estimate",
		Entries:         []output.Entry{{Estimate: result}},
		ShowAssumptions: estimateAssumptions,
		Metadata:        output.Metadata{CatalogSource: catalog.Source()},
	}, estimateFormat)
}
