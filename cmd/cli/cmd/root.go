// Package cmd provides the CLI commands for traceflow-pricing.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"traceflow-pricing/core/output"
	"traceflow-pricing/core/pricing"
	"traceflow-pricing/core/savings"
	"traceflow-pricing/internal/config"
	"traceflow-pricing/internal/logging"
)

// Version is the CLI version
const Version = "0.3.0"

var (
	cfgFile     string
	catalogFile string
	verbose     bool
	noColor     bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "traceflow-pricing",
	Short: "Resolve TRACEFLOW pricing tiers and estimate ROI",
	Long: `traceflow-pricing resolves monthly session volumes to TRACEFLOW pricing
tiers and estimates the annual savings and ROI of switching.

Examples:
  traceflow-pricing tiers
  traceflow-pricing resolve 500000
  traceflow-pricing estimate --sessions 500000 --cost 8000 --reduction 45
  traceflow-pricing batch scenarios.yaml --format markdown
  traceflow-pricing sweep --cost 8000 --reduction 45`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.traceflow-pricing.json)")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "HCL tier catalog (default is the built-in table)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled terminal output")

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	config.LoadDotEnv(".env")

	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error applying environment: %v\n", err)
		os.Exit(1)
	}
	if catalogFile != "" {
		cfg.Pricing.CatalogPath = catalogFile
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if noColor || os.Getenv("NO_COLOR") != "" {
		cfg.Output.NoColor = true
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// loadCatalog returns the configured catalog or the built-in table
func loadCatalog() (*pricing.Catalog, error) {
	path := config.Get().Pricing.CatalogPath
	if path == "" {
		return pricing.DefaultCatalog(), nil
	}
	catalog, err := pricing.LoadCatalogFile(path)
	if err != nil {
		return nil, err
	}
	logging.Debug("loaded catalog", zap.String("path", path), zap.Int("tiers", len(catalog.Table().Tiers)))
	return catalog, nil
}

// newEstimator builds an estimator from configuration
func newEstimator() (*savings.Estimator, *pricing.Catalog, error) {
	catalog, err := loadCatalog()
	if err != nil {
		return nil, nil, err
	}
	model, err := config.Get().Model.SavingsModel()
	if err != nil {
		return nil, nil, err
	}
	est, err := savings.NewEstimator(catalog, model)
	if err != nil {
		return nil, nil, err
	}
	return est, catalog, nil
}

// render writes report in format, falling back to the configured default
func render(cmd *cobra.Command, report *output.Report, format string) error {
	cfg := config.Get()
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	report.ShowAssumptions = report.ShowAssumptions || cfg.Output.ShowAssumptions
	report.Metadata.Version = Version
	report.Metadata.Timestamp = time.Now().UTC().Format(time.RFC3339)

	registry := output.NewRegistry()
	if cfg.Output.NoColor {
		registry.Register(&output.CLIFormatter{NoColor: true})
	}
	f, err := registry.Get(output.Format(format))
	if err != nil {
		return err
	}
	return f.Render(cmd.OutOrStdout(), report)
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "traceflow-pricing version %s\n", Version)
	},
}
