package client

import (
	"context"
	"fmt"
	"net/http"

	"InvestTracker/internal/model"
)

// Resource is a standard REST collection: list, get, create, update, delete.
type Resource[T, C, U any] struct {
	c    *Client
	path string
}

func newResource[T, C, U any](c *Client, path string) *Resource[T, C, U] {
	return &Resource[T, C, U]{c: c, path: path}
}

func (r *Resource[T, C, U]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.c.do(ctx, http.MethodGet, r.path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resource[T, C, U]) Get(ctx context.Context, id int64) (*T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodGet, r.item(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T, C, U]) Create(ctx context.Context, in C) (*T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodPost, r.path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T, C, U]) Update(ctx context.Context, id int64, in U) (*T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodPut, r.item(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T, C, U]) Delete(ctx context.Context, id int64) error {
	return r.c.do(ctx, http.MethodDelete, r.item(id), nil, nil)
}

func (r *Resource[T, C, U]) item(id int64) string {
	return fmt.Sprintf("%s/%d", r.path, id)
}

// TickerPrices adds the per-ticker listing to the price collection.
type TickerPrices struct {
	*Resource[model.TickerPrice, model.TickerPriceCreate, model.TickerPriceUpdate]
}

// ListByTicker returns every price sample of a ticker, in backend order.
func (r *TickerPrices) ListByTicker(ctx context.Context, tickerID int64) ([]model.TickerPrice, error) {
	var out []model.TickerPrice
	if err := r.c.do(ctx, http.MethodGet, fmt.Sprintf("%s/ticker/%d", r.path, tickerID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
