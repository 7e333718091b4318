// Package cmd - batch command
package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"traceflow-pricing/core/output"
	"traceflow-pricing/core/scenario"
	"traceflow-pricing/internal/config"
	"traceflow-pricing/internal/logging"
)

var (
	batchFormat      string
	batchAssumptions bool
	batchStrict      bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <scenarios.yaml>",
	Short: "Estimate every scenario in a YAML file",
	Long: `Estimate savings for every scenario in a YAML file:

  scenarios:
    - name: mid-market
      monthly_sessions: 500000
      current_monthly_cost_usd: 8000
      expected_ticket_reduction_pct: 45
    - name: large
      monthly_sessions: 6000000
      current_monthly_cost_usd: 25000
      expected_ticket_reduction_pct: 30
      negotiated_monthly_price_usd: 14000

Scenarios run in parallel (scenario.concurrency in config). Invalid
scenarios are reported inline; --strict makes them fail the command.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", "", "output format (cli, json, markdown)")
	batchCmd.Flags().BoolVar(&batchAssumptions, "assumptions", false, "list model assumptions")
	batchCmd.Flags().BoolVar(&batchStrict, "strict", false, "exit non-zero if any scenario fails")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenarios, err := scenario.LoadFile(args[0])
	if err != nil {
		return err
	}

	est, catalog, err := newEstimator()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	concurrency := config.Get().Scenario.Concurrency
	logging.Debug("running scenarios", zap.Int("count", len(scenarios)), zap.Int("concurrency", concurrency))

	outcomes, err := scenario.NewRunner(est, concurrency).RunAll(ctx, scenarios)
	if err != nil {
		return err
	}

	report := &output.Report{
		Title:           "TRACEFLOW ROI scenarios",
		ShowAssumptions: batchAssumptions,
		Metadata:        output.Metadata{CatalogSource: catalog.Source()},
	}
	for _, o := range outcomes {
		report.Entries = append(report.Entries, output.Entry{Name: o.Scenario.Name, Estimate: o.Estimate, Err: o.Err})
	}

	if err := render(cmd, report, batchFormat); err != nil {
		return err
	}

	failed := scenario.Failed(outcomes)
	if failed > 0 {
		logging.Warn("scenarios failed", zap.Int("failed", failed), zap.Int("total", len(outcomes)))
	}
	if batchStrict && failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(outcomes))
	}
	return nil
}
