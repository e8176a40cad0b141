package calculator

import (
	"InvestTracker/internal/date"
	"InvestTracker/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputePerformance returns one result per window, in the order of windows.
//
// The current price is the last element of series as given; the caller must
// supply the series in non-decreasing date order. The series is never modified.
// Missing data never produces an error: the affected windows are absent.
func ComputePerformance(series []model.PricePoint, windows []model.LookbackWindow) []model.PerformanceResult {
	results := make([]model.PerformanceResult, len(windows))
	for i, w := range windows {
		results[i] = computeWindow(series, w)
	}
	return results
}

func computeWindow(series []model.PricePoint, w model.LookbackWindow) model.PerformanceResult {
	if len(series) == 0 {
		return model.Absent(w.Label, model.EmptySeries)
	}
	current := series[len(series)-1]
	target := current.Date.Add(-w.Days)

	ref, ok := nearestReference(series, current.Date, target)
	if !ok {
		return model.Absent(w.Label, model.NoEligibleReference)
	}
	if ref.Price.IsZero() {
		return model.Absent(w.Label, model.ZeroReferencePrice).WithReference(ref)
	}

	change := current.Price.Sub(ref.Price).Mul(hundred).Div(ref.Price)
	return model.Changed(w.Label, ref, change)
}

// nearestReference scans every sample dated on or before current and keeps the
// one closest to target. Only a strictly smaller distance replaces the running
// best, so the first sample seen wins a tie.
func nearestReference(series []model.PricePoint, current, target date.Date) (model.PricePoint, bool) {
	best := -1
	bestDist := 0
	for i, p := range series {
		if p.Date.After(current) {
			continue
		}
		dist := absDays(target.Sub(p.Date))
		if best < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best < 0 {
		return model.PricePoint{}, false
	}
	return series[best], true
}

func absDays(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
