package recorder

import (
	"InvestTracker/internal/model"
	"InvestTracker/internal/networth"
)

// PerformanceSnapshot holds one computed ticker performance.
type PerformanceSnapshot struct {
	Performance *model.TickerPerformance
	Trigger     string // "daily", "command", "cli"
}

// NetWorthSnapshot holds one net worth summary.
type NetWorthSnapshot struct {
	Summary  networth.Summary
	Currency string
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordPerformance(snap *PerformanceSnapshot) error
	RecordNetWorth(snap *NetWorthSnapshot) error
	Close() error
}
