package main

import (
	"bytes"
	"strings"
	"testing"

	"InvestTracker/internal/calculator"
	"InvestTracker/internal/date"
	"InvestTracker/internal/model"
	"InvestTracker/internal/networth"

	"github.com/shopspring/decimal"
)

func TestPrintPerformance(t *testing.T) {
	series := []model.PricePoint{
		{Date: date.MustParse("2023-01-01"), Price: decimal.NewFromInt(100)},
		{Date: date.MustParse("2023-01-02"), Price: decimal.NewFromInt(110)},
	}
	tp := &model.TickerPerformance{
		Ticker:  model.Ticker{TickerSymbol: "acme"},
		Series:  series,
		Results: calculator.ComputePerformance(series, model.DefaultWindows()),
	}
	var buf bytes.Buffer
	printPerformance(&buf, tp)
	out := buf.String()
	if !strings.HasPrefix(out, "ACME  2023-01-02  110.00\n") {
		t.Errorf("unexpected header:\n%s", out)
	}
	if strings.Count(out, "+10.00%") != 5 || !strings.Contains(out, "2023-01-01 @ 100.00") {
		t.Errorf("unexpected rows:\n%s", out)
	}
}

func TestPrintPerformance_NoHistory(t *testing.T) {
	var buf bytes.Buffer
	printPerformance(&buf, &model.TickerPerformance{Ticker: model.Ticker{TickerSymbol: "new"}})
	if buf.String() != "NEW: no price history\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestPrintNetWorth(t *testing.T) {
	var buf bytes.Buffer
	printNetWorth(&buf, networth.Summary{Total: decimal.NewFromInt(1234)}, "USD")
	if !strings.Contains(buf.String(), "$1,234.00") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}
