package model

import (
	"encoding/json"
	"time"

	"InvestTracker/internal/date"

	"github.com/shopspring/decimal"
)

// PricePoint is a single (date, price) observation of a ticker.
type PricePoint struct {
	Date  date.Date       `json:"date"`
	Price decimal.Decimal `json:"price"`
}

// MarshalJSON writes the price as a JSON number rather than a quoted string.
func (p PricePoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date  string      `json:"date"`
		Price json.Number `json:"price"`
	}{p.Date.String(), json.Number(p.Price.String())})
}

// TickerPerformance is a materialized snapshot of one ticker: its sorted
// series and the performance over each lookback window.
type TickerPerformance struct {
	Ticker    Ticker              `json:"ticker"`
	Series    []PricePoint        `json:"series"`
	Results   []PerformanceResult `json:"results"`
	FetchedAt time.Time           `json:"fetched_at"`
}

// Current returns the last point of the series, if any.
func (tp *TickerPerformance) Current() (PricePoint, bool) {
	if len(tp.Series) == 0 {
		return PricePoint{}, false
	}
	return tp.Series[len(tp.Series)-1], true
}

// Result returns the result for the given window label.
func (tp *TickerPerformance) Result(label string) (PerformanceResult, bool) {
	for _, r := range tp.Results {
		if r.Label == label {
			return r, true
		}
	}
	return PerformanceResult{}, false
}
