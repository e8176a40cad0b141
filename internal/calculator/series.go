package calculator

import (
	"log"
	"slices"

	"InvestTracker/internal/model"

	"github.com/shopspring/decimal"
)

// SeriesFromPrices projects backend price records to price points in
// ascending date order. Records with a negative price are dropped.
func SeriesFromPrices(prices []model.TickerPrice) []model.PricePoint {
	series := make([]model.PricePoint, 0, len(prices))
	for _, p := range prices {
		if p.Price < 0 {
			log.Printf("[WARN] dropping negative price %.4f for ticker %d on %s", p.Price, p.TickerID, p.Date)
			continue
		}
		series = append(series, model.PricePoint{Date: p.Date, Price: decimal.NewFromFloat(p.Price)})
	}
	SortSeries(series)
	return series
}

// SortSeries sorts points by date in place. Points sharing a date keep their
// relative order.
func SortSeries(series []model.PricePoint) {
	slices.SortStableFunc(series, func(a, b model.PricePoint) int {
		return a.Date.Sub(b.Date)
	})
}
