package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// MissingReason tells why a window has no percentage change.
type MissingReason int

const (
	NotMissing MissingReason = iota
	EmptySeries
	NoEligibleReference
	ZeroReferencePrice
)

func (r MissingReason) String() string {
	switch r {
	case NotMissing:
		return ""
	case EmptySeries:
		return "empty_series"
	case NoEligibleReference:
		return "no_eligible_reference"
	case ZeroReferencePrice:
		return "zero_reference_price"
	default:
		return "unknown"
	}
}

// PerformanceResult is the change over one lookback window. It either holds a
// percentage change or is absent, in which case Missing says why.
type PerformanceResult struct {
	Label     string
	Reference PricePoint // zero when no reference sample was selected
	Missing   MissingReason

	change decimal.Decimal
}

// Changed builds a present result.
func Changed(label string, reference PricePoint, change decimal.Decimal) PerformanceResult {
	return PerformanceResult{Label: label, Reference: reference, change: change}
}

// Absent builds a result with no percentage change.
func Absent(label string, reason MissingReason) PerformanceResult {
	return PerformanceResult{Label: label, Missing: reason}
}

// WithReference attaches the selected sample to an absent result.
func (r PerformanceResult) WithReference(p PricePoint) PerformanceResult {
	r.Reference = p
	return r
}

// Available reports whether a percentage change exists.
func (r PerformanceResult) Available() bool { return r.Missing == NotMissing }

// PercentChange returns the full-precision change in percent.
func (r PerformanceResult) PercentChange() (decimal.Decimal, bool) {
	if !r.Available() {
		return decimal.Zero, false
	}
	return r.change, true
}

// Rounded returns the change rounded to 2 decimal places for display.
func (r PerformanceResult) Rounded() (decimal.Decimal, bool) {
	c, ok := r.PercentChange()
	if !ok {
		return decimal.Zero, false
	}
	return c.Round(2), true
}

// String renders the change for display: a "+" prefix for zero or gains, the
// magnitude's own minus sign for losses, two decimals and a "%" suffix.
// An absent result renders as "N/A".
func (r PerformanceResult) String() string {
	c, ok := r.Rounded()
	if !ok {
		return "N/A"
	}
	if c.IsNegative() {
		return c.StringFixed(2) + "%"
	}
	return "+" + c.StringFixed(2) + "%"
}

type resultJSON struct {
	Label         string       `json:"label"`
	PercentChange *json.Number `json:"percent_change"`
	Reference     *PricePoint  `json:"reference"`
	Missing       string       `json:"missing,omitempty"`
}

func (r PerformanceResult) MarshalJSON() ([]byte, error) {
	out := resultJSON{Label: r.Label, Missing: r.Missing.String()}
	if c, ok := r.Rounded(); ok {
		n := json.Number(c.StringFixed(2))
		out.PercentChange = &n
	}
	if !r.Reference.Date.IsZero() {
		ref := r.Reference
		out.Reference = &ref
	}
	return json.Marshal(out)
}
