package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"InvestTracker/internal/chart"
	"InvestTracker/internal/collector"
	"InvestTracker/internal/date"
	"InvestTracker/internal/model"
	"InvestTracker/internal/networth"
	"InvestTracker/internal/recorder"

	"github.com/shopspring/decimal"
)

type captureNotifier struct {
	mu       sync.Mutex
	texts    []string
	captions []string
}

func (c *captureNotifier) Send(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.texts = append(c.texts, text)
	return nil
}

func (c *captureNotifier) SendPhoto(_ context.Context, caption string, png []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(png) == 0 {
		return errors.New("empty photo")
	}
	c.captions = append(c.captions, caption)
	return nil
}

type captureRecorder struct {
	perf     []*recorder.PerformanceSnapshot
	networth []*recorder.NetWorthSnapshot
}

func (c *captureRecorder) RecordPerformance(s *recorder.PerformanceSnapshot) error {
	c.perf = append(c.perf, s)
	return nil
}

func (c *captureRecorder) RecordNetWorth(s *recorder.NetWorthSnapshot) error {
	c.networth = append(c.networth, s)
	return nil
}

func (c *captureRecorder) Close() error { return nil }

func newTestScheduler(t *testing.T) (*Scheduler, *captureNotifier, *captureRecorder) {
	t.Helper()
	fetcher := &collector.MockFetcher{
		Tickers: []model.Ticker{{TickerID: 1, TickerSymbol: "ACME"}, {TickerID: 2, TickerSymbol: "NEW"}},
		Prices: map[int64][]model.TickerPrice{
			1: {
				{TickerID: 1, Date: date.MustParse("2023-01-01"), Price: 100},
				{TickerID: 1, Date: date.MustParse("2023-01-02"), Price: 110},
			},
		},
	}
	n := &captureNotifier{}
	rec := &captureRecorder{}
	s := NewScheduler(context.Background(), Options{
		Collector: collector.NewCollector(fetcher),
		Charts:    chart.NewRenderer(chart.Options{Width: 400, Height: 200}),
		Notifier:  n,
		Recorder:  rec,
		NetWorth: func(context.Context) (networth.Summary, error) {
			return networth.Summary{Investments: decimal.NewFromInt(100), Total: decimal.NewFromInt(100)}, nil
		},
		Watchlist:   []string{"ACME", "NEW", "GONE"},
		Currency:    "USD",
		ChartWindow: model.Window1M,
		SMAPeriod:   2,
	})
	return s, n, rec
}

func TestRegisterAll(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	if err := s.RegisterAll("0 0 22 * * 1-5", "0 0 9 * * 0", "0 30 21 * * 1-5"); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	if got := len(s.Cron.Entries()); got != 2 {
		t.Errorf("expected 2 jobs without a quote source, got %d", got)
	}
	if err := s.RegisterAll("not a cron", "0 0 9 * * 0", ""); err == nil {
		t.Error("expected error for invalid cron spec")
	}
}

func TestHandleCommand_Perf(t *testing.T) {
	s, _, rec := newTestScheduler(t)
	reply := s.HandleCommand(context.Background(), "/perf acme")
	if !strings.Contains(reply, "<b>ACME</b>") || !strings.Contains(reply, "+10.00%") {
		t.Errorf("unexpected reply:\n%s", reply)
	}
	if len(rec.perf) != 1 || rec.perf[0].Trigger != "command" {
		t.Errorf("expected one recorded snapshot, got %+v", rec.perf)
	}

	reply = s.HandleCommand(context.Background(), "/perf GONE")
	if !strings.Contains(reply, "ticker not found") {
		t.Errorf("unexpected reply for unknown ticker: %s", reply)
	}
	if reply := s.HandleCommand(context.Background(), "/perf"); !strings.HasPrefix(reply, "Usage") {
		t.Errorf("expected usage, got %s", reply)
	}
}

func TestHandleCommand_Chart(t *testing.T) {
	s, n, _ := newTestScheduler(t)
	if reply := s.HandleCommand(context.Background(), "/chart ACME 1w"); reply != "" {
		t.Fatalf("unexpected reply: %s", reply)
	}
	if len(n.captions) != 1 || n.captions[0] != "ACME 1W +10.00%" {
		t.Errorf("captions = %v", n.captions)
	}
	if reply := s.HandleCommand(context.Background(), "/chart ACME 2W"); !strings.Contains(reply, "Unknown window") {
		t.Errorf("unexpected reply: %s", reply)
	}
	if reply := s.HandleCommand(context.Background(), "/chart NEW"); reply != "NEW has no price history yet." {
		t.Errorf("unexpected reply: %s", reply)
	}
}

func TestHandleCommand_NetWorthAndHelp(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	if reply := s.HandleCommand(context.Background(), "/networth"); !strings.Contains(reply, "Total: $100.00") {
		t.Errorf("unexpected reply:\n%s", reply)
	}
	if reply := s.HandleCommand(context.Background(), "hello"); reply != helpText {
		t.Errorf("expected help text, got %s", reply)
	}
}

func TestDailyTask(t *testing.T) {
	s, n, rec := newTestScheduler(t)
	s.dailyTask()

	if len(rec.perf) != 2 {
		t.Errorf("expected 2 recorded snapshots, got %d", len(rec.perf))
	}
	if len(n.texts) != 2 {
		t.Fatalf("expected digest and failure messages, got %d", len(n.texts))
	}
	if !strings.Contains(n.texts[0], "ACME") || !strings.Contains(n.texts[0], "NEW") {
		t.Errorf("digest missing tickers:\n%s", n.texts[0])
	}
	if !strings.Contains(n.texts[1], "GONE failed") {
		t.Errorf("failure message missing:\n%s", n.texts[1])
	}
	if len(n.captions) != 1 || n.captions[0] != "ACME 1M +10.00%" {
		t.Errorf("captions = %v", n.captions)
	}
}

func TestWeeklyTask(t *testing.T) {
	s, n, rec := newTestScheduler(t)
	s.weeklyTask()
	if len(n.texts) != 1 || !strings.Contains(n.texts[0], "Net worth") {
		t.Errorf("texts = %v", n.texts)
	}
	if len(rec.networth) != 1 || rec.networth[0].Currency != "USD" {
		t.Errorf("recorded = %+v", rec.networth)
	}
}

func TestRefreshTask(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	fetcher := s.Collector.Fetcher.(*collector.MockFetcher)
	s.Quotes = stubQuotes{points: []model.PricePoint{
		{Date: date.MustParse("2023-01-02"), Price: decimal.NewFromInt(110)},
		{Date: date.MustParse("2023-01-03"), Price: decimal.NewFromInt(121)},
	}}
	s.Writer = fetcher
	s.Watchlist = []string{"ACME"}
	s.QuoteDays = 5
	s.refreshTask()
	if len(fetcher.Created) != 1 || fetcher.Created[0].Date != date.MustParse("2023-01-03") {
		t.Errorf("created = %+v", fetcher.Created)
	}
}

type stubQuotes struct{ points []model.PricePoint }

func (stubQuotes) Name() string { return "stub" }

func (q stubQuotes) FetchDailyCloses(context.Context, string, int) ([]model.PricePoint, error) {
	return q.points, nil
}
