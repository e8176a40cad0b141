package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"InvestTracker/internal/chart"
	"InvestTracker/internal/collector"
	"InvestTracker/internal/model"
	"InvestTracker/internal/networth"
	"InvestTracker/internal/notifier"
	"InvestTracker/internal/recorder"

	"github.com/robfig/cron/v3"
)

// NetWorthFunc loads the current net worth summary.
type NetWorthFunc func(ctx context.Context) (networth.Summary, error)

// Options carries the dependencies and settings of a Scheduler.
type Options struct {
	Collector   *collector.Collector
	Charts      *chart.Renderer
	Notifier    notifier.Notifier
	Recorder    recorder.Recorder
	NetWorth    NetWorthFunc
	Watchlist   []string
	Currency    string
	ChartWindow model.LookbackWindow
	SMAPeriod   int

	// Quotes and Writer enable the price refresh job when both are set.
	Quotes    collector.QuoteSource
	Writer    collector.PriceWriter
	QuoteDays int
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Options
	Cron *cron.Cron
	Ctx  context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, opts Options) *Scheduler {
	if opts.Recorder == nil {
		opts.Recorder = recorder.NewNoopRecorder()
	}
	if opts.Notifier == nil {
		opts.Notifier = notifier.Noop{}
	}
	if opts.ChartWindow.Label == "" {
		opts.ChartWindow = model.Window3M
	}
	return &Scheduler{
		Options: opts,
		Cron:    cron.New(cron.WithSeconds()),
		Ctx:     ctx,
	}
}

// RegisterAll registers the daily digest, the weekly net worth summary and,
// when a quote source is configured, the price refresh.
func (s *Scheduler) RegisterAll(dailyCron, weeklyCron, refreshCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyTask); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	if s.Quotes != nil && s.Writer != nil {
		if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
			return fmt.Errorf("register refresh task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunDailyNow executes the daily digest immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunDailyNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	log.Printf("[INFO] running daily digest for %d tickers", len(s.Watchlist))
	if len(s.Watchlist) == 0 {
		log.Println("[WARN] watchlist is empty, nothing to report")
		return
	}

	var items []*model.TickerPerformance
	var failed []string
	for _, ref := range s.Watchlist {
		tp, err := s.Collector.Collect(s.Ctx, ref)
		if err != nil {
			log.Printf("[ERROR] collect %s: %v", ref, err)
			failed = append(failed, notifier.FormatError(ref, err))
			continue
		}
		items = append(items, tp)
		s.record(tp, "daily")
	}

	if len(items) > 0 {
		s.trySend(notifier.FormatPerformanceTable(items))
		for _, tp := range items {
			s.sendChart(tp, s.ChartWindow)
		}
	}
	if len(failed) > 0 {
		s.trySend(strings.Join(failed, "\n"))
	}
}

func (s *Scheduler) weeklyTask() {
	log.Println("[INFO] running weekly net worth summary")
	if s.NetWorth == nil {
		log.Println("[WARN] net worth source not configured")
		return
	}
	summary, err := s.NetWorth(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] net worth: %v", err)
		s.trySend(notifier.FormatError("Net worth", err))
		return
	}
	s.trySend(notifier.FormatNetWorth(summary, s.Currency))
	if err := s.Recorder.RecordNetWorth(&recorder.NetWorthSnapshot{Summary: summary, Currency: s.Currency}); err != nil {
		log.Printf("[ERROR] record net worth: %v", err)
	}
}

func (s *Scheduler) refreshTask() {
	log.Printf("[INFO] refreshing prices from %s", s.Quotes.Name())
	for _, ref := range s.Watchlist {
		if _, err := s.Collector.RefreshPrices(s.Ctx, ref, s.Quotes, s.Writer, s.QuoteDays); err != nil {
			log.Printf("[ERROR] refresh %s: %v", ref, err)
		}
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	switch strings.ToLower(fields[0]) {
	case "/perf", "/performance":
		if len(fields) < 2 {
			return "Usage: /perf SYMBOL"
		}
		tp, err := s.Collector.Collect(ctx, fields[1])
		if err != nil {
			return notifier.FormatError("Performance", err)
		}
		s.record(tp, "command")
		return notifier.FormatPerformanceReport(tp, s.SMAPeriod)
	case "/chart":
		if len(fields) < 2 {
			return "Usage: /chart SYMBOL [1D|1W|1M|3M|1Y]"
		}
		window := s.ChartWindow
		if len(fields) > 2 {
			w, ok := model.WindowByLabel(fields[2])
			if !ok {
				return fmt.Sprintf("Unknown window %q. Use 1D, 1W, 1M, 3M or 1Y.", fields[2])
			}
			window = w
		}
		tp, err := s.Collector.Collect(ctx, fields[1])
		if err != nil {
			return notifier.FormatError("Chart", err)
		}
		if err := s.sendChartCtx(ctx, tp, window); err != nil {
			if errors.Is(err, chart.ErrNoData) {
				return fmt.Sprintf("%s has no price history yet.", strings.ToUpper(tp.Ticker.TickerSymbol))
			}
			return notifier.FormatError("Chart", err)
		}
		return ""
	case "/networth":
		if s.NetWorth == nil {
			return "Net worth is not configured."
		}
		summary, err := s.NetWorth(ctx)
		if err != nil {
			return notifier.FormatError("Net worth", err)
		}
		return notifier.FormatNetWorth(summary, s.Currency)
	case "/digest":
		go s.dailyTask()
		return "Building the watchlist digest..."
	default:
		return helpText
	}
}

const helpText = `Available commands:
• /perf SYMBOL - performance over 1D, 1W, 1M, 3M, 1Y
• /chart SYMBOL [WINDOW] - price chart
• /networth - accounts and properties summary
• /digest - watchlist digest now`

func (s *Scheduler) record(tp *model.TickerPerformance, trigger string) {
	if err := s.Recorder.RecordPerformance(&recorder.PerformanceSnapshot{Performance: tp, Trigger: trigger}); err != nil {
		log.Printf("[ERROR] record performance for %s: %v", tp.Ticker.TickerSymbol, err)
	}
}

func (s *Scheduler) sendChart(tp *model.TickerPerformance, window model.LookbackWindow) {
	if err := s.sendChartCtx(s.Ctx, tp, window); err != nil && !errors.Is(err, chart.ErrNoData) {
		log.Printf("[ERROR] chart for %s: %v", tp.Ticker.TickerSymbol, err)
	}
}

func (s *Scheduler) sendChartCtx(ctx context.Context, tp *model.TickerPerformance, window model.LookbackWindow) error {
	if s.Charts == nil {
		return errors.New("charts are not configured")
	}
	png, err := s.Charts.Render(tp.Ticker.TickerSymbol, tp.Series, window)
	if err != nil {
		return err
	}
	caption := fmt.Sprintf("%s %s", strings.ToUpper(tp.Ticker.TickerSymbol), window.Label)
	if r, ok := tp.Result(window.Label); ok {
		caption += " " + notifier.FormatPercent(r)
	}
	return s.Notifier.SendPhoto(ctx, caption, png)
}

func (s *Scheduler) trySend(text string) {
	if err := notifier.SendWithRetry(s.Ctx, s.Notifier, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
