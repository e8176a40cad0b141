package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"InvestTracker/internal/chart"
	"InvestTracker/internal/client"
	"InvestTracker/internal/collector"
	"InvestTracker/internal/config"
	"InvestTracker/internal/model"
	"InvestTracker/internal/networth"

	"github.com/spf13/cobra"
)

// app holds the components shared by every command.
type app struct {
	cfg       *config.Config
	client    *client.Client
	collector *collector.Collector
	charts    *chart.Renderer
	window    model.LookbackWindow
}

func newApp(cfgPath string) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	c := client.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, cfg.Proxy)
	fetcher := collector.NewBackendFetcher(c)
	log.Printf("[INFO] data source: %s (%s)", fetcher.Name(), cfg.Backend.BaseURL)

	window, _ := model.WindowByLabel(cfg.Chart.Window)
	return &app{
		cfg:       cfg,
		client:    c,
		collector: collector.NewCollector(fetcher),
		charts: chart.NewRenderer(chart.Options{
			Width:     cfg.Chart.Width,
			Height:    cfg.Chart.Height,
			SMAPeriod: cfg.Chart.SMAPeriod,
			CacheTTL:  cfg.Chart.CacheTTL,
		}),
		window: window,
	}, nil
}

func (a *app) netWorth(ctx context.Context) (networth.Summary, error) {
	return networth.Fetch(ctx, a.client)
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}

	var a *app
	root := &cobra.Command{
		Use:           "tracker",
		Short:         "Track investment performance and net worth",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			a, err = newApp(cfgPath)
			return err
		},
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", cfgPath, "path to the YAML config file")

	// Commands read the shared app lazily, after PersistentPreRunE has built it.
	get := func() *app { return a }
	root.AddCommand(
		newServeCmd(get),
		newPerformanceCmd(get),
		newChartCmd(get),
		newNetWorthCmd(get),
		newBackupCmd(get, false),
		newBackupCmd(get, true),
	)

	if err := root.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
}
