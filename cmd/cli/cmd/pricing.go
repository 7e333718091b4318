// Package cmd - tier table commands
package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"traceflow-pricing/core/output"
)

var tiersJSON bool

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "List the pricing tiers",
	Long: `List the active tier table: the built-in table, or the HCL catalog
given with --catalog or TRACEFLOW_CATALOG.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		if tiersJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(catalog.Table())
		}
		if err := output.RenderTiers(cmd.OutOrStdout(), catalog.Table()); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Catalog: %s (%s)\n", catalog.Source(), catalog.Hash()[:12])
		return err
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <monthly-sessions>",
	Short: "Resolve a session volume to its tier price",
	Long: `Resolve a monthly session volume to its flat monthly price.

A volume equal to a tier threshold belongs to that tier. Volumes above
the largest threshold resolve to a custom quote.

Examples:
  traceflow-pricing resolve 100000
  traceflow-pricing resolve 6000000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid session count %q: %w", args[0], err)
		}

		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		quote, err := catalog.Resolve(sessions)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if quote.Custom {
			fmt.Fprintf(out, "%s sessions/month: custom quote required\n", humanize.Comma(sessions))
			return nil
		}
		fmt.Fprintf(out, "%s sessions/month: %s tier, %s/month\n",
			humanize.Comma(sessions), quote.TierName(), output.USD(quote.MonthlyPriceUSD))
		return nil
	},
}

func init() {
	tiersCmd.Flags().BoolVar(&tiersJSON, "json", false, "print the table as JSON")

	rootCmd.AddCommand(tiersCmd)
	rootCmd.AddCommand(resolveCmd)
}
