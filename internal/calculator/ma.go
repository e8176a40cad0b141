package calculator

import (
	"errors"

	"InvestTracker/internal/model"

	"github.com/shopspring/decimal"
)

// CalculateSMA computes the simple moving average of the last period prices.
func CalculateSMA(prices []decimal.Decimal, period int) (decimal.Decimal, error) {
	if period <= 0 {
		return decimal.Zero, errors.New("period must be positive")
	}
	if len(prices) < period {
		return decimal.Zero, errors.New("not enough data for SMA calculation")
	}
	return decimal.Avg(prices[len(prices)-period], prices[len(prices)-period+1:]...), nil
}

// CalculateSeriesSMA returns the SMA over the last period points of a series.
func CalculateSeriesSMA(series []model.PricePoint, period int) (decimal.Decimal, error) {
	return CalculateSMA(extractPrices(series), period)
}

func extractPrices(series []model.PricePoint) []decimal.Decimal {
	prices := make([]decimal.Decimal, len(series))
	for i, p := range series {
		prices[i] = p.Price
	}
	return prices
}
