package calculator

import (
	"errors"

	"InvestTracker/internal/model"

	"github.com/shopspring/decimal"
)

// TrimToWindow returns the suffix of a sorted series whose dates fall within
// days of the last point. days <= 0 returns the whole series.
func TrimToWindow(series []model.PricePoint, days int) []model.PricePoint {
	if len(series) == 0 || days <= 0 {
		return series
	}
	start := series[len(series)-1].Date.Add(-days)
	for i, p := range series {
		if !p.Date.Before(start) {
			return series[i:]
		}
	}
	return series[len(series)-1:]
}

// PriceRange returns the high and low prices over the trailing window of a
// sorted series.
func PriceRange(series []model.PricePoint, days int) (high, low decimal.Decimal, err error) {
	window := TrimToWindow(series, days)
	if len(window) == 0 {
		return decimal.Zero, decimal.Zero, errors.New("no price points provided")
	}
	high, low = window[0].Price, window[0].Price
	for _, p := range window[1:] {
		high = decimal.Max(high, p.Price)
		low = decimal.Min(low, p.Price)
	}
	return high, low, nil
}

// RangePosition returns where current sits within [low, high], clamped to 0..1.
func RangePosition(current, high, low decimal.Decimal) (decimal.Decimal, error) {
	if high.Equal(low) {
		return decimal.NewFromFloat(0.5), nil
	}
	if high.LessThan(low) {
		return decimal.Zero, errors.New("high must be >= low")
	}
	pos := current.Sub(low).Div(high.Sub(low))
	if pos.IsNegative() {
		pos = decimal.Zero
	}
	if pos.GreaterThan(decimal.NewFromInt(1)) {
		pos = decimal.NewFromInt(1)
	}
	return pos, nil
}
