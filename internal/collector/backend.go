package collector

import (
	"context"

	"InvestTracker/internal/client"
	"InvestTracker/internal/model"
)

// BackendFetcher implements Fetcher and PriceWriter on top of the REST backend.
type BackendFetcher struct {
	Client *client.Client
}

func NewBackendFetcher(c *client.Client) *BackendFetcher {
	return &BackendFetcher{Client: c}
}

func (f *BackendFetcher) Name() string { return "backend" }

func (f *BackendFetcher) ListTickers(ctx context.Context) ([]model.Ticker, error) {
	return f.Client.Tickers.List(ctx)
}

func (f *BackendFetcher) GetTicker(ctx context.Context, id int64) (*model.Ticker, error) {
	return f.Client.Tickers.Get(ctx, id)
}

func (f *BackendFetcher) FetchPrices(ctx context.Context, tickerID int64) ([]model.TickerPrice, error) {
	return f.Client.TickerPrices.ListByTicker(ctx, tickerID)
}

func (f *BackendFetcher) CreatePrice(ctx context.Context, p model.TickerPriceCreate) error {
	_, err := f.Client.TickerPrices.Create(ctx, p)
	return err
}
