package collector

import (
	"context"

	"InvestTracker/internal/model"
)

// Fetcher reads tickers and their price history.
type Fetcher interface {
	ListTickers(ctx context.Context) ([]model.Ticker, error)
	GetTicker(ctx context.Context, id int64) (*model.Ticker, error)
	FetchPrices(ctx context.Context, tickerID int64) ([]model.TickerPrice, error)
	Name() string
}

// PriceWriter stores new price samples.
type PriceWriter interface {
	CreatePrice(ctx context.Context, p model.TickerPriceCreate) error
}

// QuoteSource provides daily closing prices from a market data vendor.
type QuoteSource interface {
	FetchDailyCloses(ctx context.Context, symbol string, days int) ([]model.PricePoint, error)
	Name() string
}
