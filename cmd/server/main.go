// Package main - Entry point for the TRACEFLOW pricing API server
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"traceflow-pricing/api"
	"traceflow-pricing/core/pricing"
	"traceflow-pricing/internal/config"
	"traceflow-pricing/internal/logging"
)

const version = "0.3.0"

var (
	cfgFile string
	addr    string
	catalog string
	watch   bool
)

var rootCmd = &cobra.Command{
	Use:          "traceflow-pricing-server",
	Short:        "Serve the TRACEFLOW pricing and ROI API",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.traceflow-pricing.json)")
	rootCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	rootCmd.Flags().StringVar(&catalog, "catalog", "", "HCL tier catalog (overrides config)")
	rootCmd.Flags().BoolVar(&watch, "watch", false, "reload the catalog when the file changes")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	config.LoadDotEnv(".env")

	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if catalog != "" {
		cfg.Pricing.CatalogPath = catalog
	}
	if cmd.Flags().Changed("watch") {
		cfg.Pricing.WatchCatalog = watch
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer logging.Sync()

	initial := pricing.DefaultCatalog()
	if cfg.Pricing.CatalogPath != "" {
		initial, err = pricing.LoadCatalogFile(cfg.Pricing.CatalogPath)
		if err != nil {
			return err
		}
	}
	store := pricing.NewStore(initial)

	model, err := cfg.Model.SavingsModel()
	if err != nil {
		return err
	}

	server, err := api.NewServer(api.Options{
		Version:     version,
		Store:       store,
		Model:       &model,
		Concurrency: cfg.Scenario.Concurrency,
		RateLimit:   cfg.Server.RateLimit,
		RateBurst:   cfg.Server.RateBurst,
		ReadTimeout: time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		Logger:      logging.Named("api"),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("starting pricing API",
		zap.String("version", version),
		zap.String("addr", cfg.Server.Addr),
		zap.String("catalog", initial.Source()))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(ctx, cfg.Server.Addr)
	})
	if cfg.Pricing.WatchCatalog && cfg.Pricing.CatalogPath != "" {
		watcher := pricing.NewWatcher(cfg.Pricing.CatalogPath, store, logging.Named("catalog"))
		g.Go(func() error {
			return watcher.Run(ctx)
		})
	}
	if err := g.Wait(); err != nil {
		logging.Error("pricing API stopped", zap.Error(err))
		return err
	}
	logging.Info("pricing API stopped")
	return nil
}
