package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"InvestTracker/internal/collector"
	"InvestTracker/internal/notifier"
	"InvestTracker/internal/recorder"
	"InvestTracker/internal/scheduler"
	"InvestTracker/internal/server"

	"github.com/spf13/cobra"
)

func newServeCmd(get func() *app) *cobra.Command {
	var runOnStart bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the scheduler, Telegram polling and HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(get(), runOnStart || os.Getenv("RUN_ON_START") == "true")
		},
	}
	cmd.Flags().BoolVar(&runOnStart, "run-on-start", false, "send the watchlist digest immediately")
	return cmd
}

func serve(a *app, runOnStart bool) error {
	log.Println("[INFO] InvestTracker starting...")
	cfg := a.cfg

	// Init notifier
	var n notifier.Notifier = notifier.Noop{}
	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		n = tn
	} else {
		log.Println("[WARN] telegram not configured, notifications are logged only")
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := scheduler.Options{
		Collector:   a.collector,
		Charts:      a.charts,
		Notifier:    n,
		Recorder:    rec,
		NetWorth:    a.netWorth,
		Watchlist:   cfg.Watchlist,
		Currency:    cfg.Currency,
		ChartWindow: a.window,
		SMAPeriod:   cfg.Chart.SMAPeriod,
	}
	if cfg.Quotes.Enabled {
		quotes := collector.NewYahooQuotes(cfg.Proxy, cfg.Quotes.SymbolMap)
		opts.Quotes = quotes
		opts.Writer = collector.NewBackendFetcher(a.client)
		opts.QuoteDays = cfg.Quotes.Days
		log.Printf("[INFO] price refresh enabled from %s", quotes.Name())
	}

	sched := scheduler.NewScheduler(ctx, opts)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron, cfg.Schedule.WeeklyCron, cfg.Schedule.RefreshCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	if runOnStart {
		log.Println("[INFO] run on start enabled, sending digest now")
		go sched.RunDailyNow()
	}

	mux := server.NewHTTPMux(&server.Handlers{
		Collector:   a.collector,
		Charts:      a.charts,
		NetWorth:    a.netWorth,
		ChartWindow: a.window,
	})
	log.Println("[INFO] InvestTracker is running. Press Ctrl+C to stop.")
	if err := server.ListenAndServe(ctx, cfg.Server.Addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Println("[INFO] InvestTracker stopped")
	return nil
}
