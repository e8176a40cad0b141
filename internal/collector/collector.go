package collector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"InvestTracker/internal/calculator"
	"InvestTracker/internal/date"
	"InvestTracker/internal/model"
)

// ErrTickerNotFound is returned when a reference matches no tracked ticker.
var ErrTickerNotFound = errors.New("ticker not found")

// MockFetcher returns fixed data for development and testing.
type MockFetcher struct {
	Tickers []model.Ticker
	Prices  map[int64][]model.TickerPrice
	Err     error
	Created []model.TickerPriceCreate
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) ListTickers(_ context.Context) ([]model.Ticker, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Tickers, nil
}

func (m *MockFetcher) GetTicker(_ context.Context, id int64) (*model.Ticker, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, t := range m.Tickers {
		if t.TickerID == id {
			return &t, nil
		}
	}
	return nil, ErrTickerNotFound
}

func (m *MockFetcher) FetchPrices(_ context.Context, tickerID int64) ([]model.TickerPrice, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Prices[tickerID], nil
}

func (m *MockFetcher) CreatePrice(_ context.Context, p model.TickerPriceCreate) error {
	if m.Err != nil {
		return m.Err
	}
	m.Created = append(m.Created, p)
	if m.Prices == nil {
		m.Prices = map[int64][]model.TickerPrice{}
	}
	m.Prices[p.TickerID] = append(m.Prices[p.TickerID], model.TickerPrice{TickerID: p.TickerID, Date: p.Date, Price: p.Price})
	return nil
}

// Collector orchestrates fetching a ticker's series and computing its performance.
type Collector struct {
	Fetcher Fetcher
	Windows []model.LookbackWindow
	Now     func() time.Time
}

// NewCollector creates a Collector over the default lookback windows.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher, Windows: model.DefaultWindows(), Now: time.Now}
}

// ResolveTicker finds a ticker by numeric id or by symbol, case-insensitively.
func (c *Collector) ResolveTicker(ctx context.Context, ref string) (*model.Ticker, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrTickerNotFound)
	}
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		t, err := c.Fetcher.GetTicker(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get ticker %d: %w", id, err)
		}
		return t, nil
	}
	tickers, err := c.Fetcher.ListTickers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tickers: %w", err)
	}
	for _, t := range tickers {
		if strings.EqualFold(t.TickerSymbol, ref) {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, ref)
}

// Collect resolves the ticker, fetches its full price history and computes
// the performance of every window on the sorted snapshot.
func (c *Collector) Collect(ctx context.Context, ref string) (*model.TickerPerformance, error) {
	ticker, err := c.ResolveTicker(ctx, ref)
	if err != nil {
		return nil, err
	}
	prices, err := c.Fetcher.FetchPrices(ctx, ticker.TickerID)
	if err != nil {
		return nil, fmt.Errorf("fetch prices for %s: %w", ticker.TickerSymbol, err)
	}

	series := calculator.SeriesFromPrices(prices)
	if len(series) == 0 {
		log.Printf("[WARN] %s has no price history", ticker.TickerSymbol)
	}
	return &model.TickerPerformance{
		Ticker:    *ticker,
		Series:    series,
		Results:   calculator.ComputePerformance(series, c.Windows),
		FetchedAt: c.Now(),
	}, nil
}

// RefreshPrices pulls recent daily closes from the quote source and stores
// those whose date is not yet in the ticker's history. It returns the number
// of samples added.
func (c *Collector) RefreshPrices(ctx context.Context, ref string, quotes QuoteSource, writer PriceWriter, days int) (int, error) {
	ticker, err := c.ResolveTicker(ctx, ref)
	if err != nil {
		return 0, err
	}
	existing, err := c.Fetcher.FetchPrices(ctx, ticker.TickerID)
	if err != nil {
		return 0, fmt.Errorf("fetch prices for %s: %w", ticker.TickerSymbol, err)
	}
	known := make(map[date.Date]bool, len(existing))
	for _, p := range existing {
		known[p.Date] = true
	}

	points, err := quotes.FetchDailyCloses(ctx, ticker.TickerSymbol, days)
	if err != nil {
		return 0, fmt.Errorf("%s quotes for %s: %w", quotes.Name(), ticker.TickerSymbol, err)
	}
	added := 0
	for _, p := range points {
		if known[p.Date] {
			continue
		}
		err := writer.CreatePrice(ctx, model.TickerPriceCreate{
			TickerID: ticker.TickerID,
			Date:     p.Date,
			Price:    p.Price.InexactFloat64(),
		})
		if err != nil {
			return added, fmt.Errorf("store %s price on %s: %w", ticker.TickerSymbol, p.Date, err)
		}
		known[p.Date] = true
		added++
	}
	log.Printf("[INFO] %s: %d new prices from %s", ticker.TickerSymbol, added, quotes.Name())
	return added, nil
}
