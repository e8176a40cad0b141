package recorder

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"InvestTracker/internal/date"
	"InvestTracker/internal/model"
	"InvestTracker/internal/networth"

	"github.com/shopspring/decimal"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "tracker.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRecordPerformance(t *testing.T) {
	r := openTestRecorder(t)

	ref := model.PricePoint{Date: date.MustParse("2023-01-01"), Price: decimal.NewFromInt(100)}
	cur := model.PricePoint{Date: date.MustParse("2023-01-02"), Price: decimal.NewFromInt(110)}
	tp := &model.TickerPerformance{
		Ticker: model.Ticker{TickerID: 7, TickerSymbol: "ACME"},
		Series: []model.PricePoint{ref, cur},
		Results: []model.PerformanceResult{
			model.Changed("1D", ref, decimal.NewFromInt(10)),
			model.Absent("1W", model.ZeroReferencePrice).WithReference(model.PricePoint{Date: ref.Date, Price: decimal.Zero}),
		},
		FetchedAt: time.Now(),
	}
	if err := r.RecordPerformance(&PerformanceSnapshot{Performance: tp, Trigger: "cli"}); err != nil {
		t.Fatalf("RecordPerformance: %v", err)
	}

	var symbol, price string
	var samples int
	if err := r.db.QueryRow(`SELECT ticker_symbol, last_price, samples FROM performance_runs`).Scan(&symbol, &price, &samples); err != nil {
		t.Fatalf("query run: %v", err)
	}
	if symbol != "ACME" || price != "110" || samples != 2 {
		t.Errorf("run row = (%s, %s, %d)", symbol, price, samples)
	}

	rows, err := r.db.Query(`SELECT window_label, percent_change, missing FROM performance_results ORDER BY id`)
	if err != nil {
		t.Fatalf("query results: %v", err)
	}
	defer rows.Close()

	type row struct {
		label   string
		change  sql.NullString
		missing sql.NullString
	}
	var got []row
	for rows.Next() {
		var rw row
		if err := rows.Scan(&rw.label, &rw.change, &rw.missing); err != nil {
			t.Fatal(err)
		}
		got = append(got, rw)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 result rows, got %d", len(got))
	}
	if got[0].label != "1D" || got[0].change.String != "10" || got[0].missing.Valid {
		t.Errorf("1D row = %+v", got[0])
	}
	if got[1].change.Valid || got[1].missing.String != "zero_reference_price" {
		t.Errorf("1W row = %+v", got[1])
	}
}

func TestRecordPerformanceRejectsNil(t *testing.T) {
	r := openTestRecorder(t)
	if err := r.RecordPerformance(&PerformanceSnapshot{}); err == nil {
		t.Error("expected error for empty snapshot")
	}
}

func TestRecordNetWorth(t *testing.T) {
	r := openTestRecorder(t)
	snap := &NetWorthSnapshot{
		Currency: "USD",
		Summary: networth.Summary{
			Investments: decimal.RequireFromString("1500.25"),
			Equity:      decimal.NewFromInt(200000),
			Total:       decimal.RequireFromString("201500.25"),
		},
	}
	if err := r.RecordNetWorth(snap); err != nil {
		t.Fatalf("RecordNetWorth: %v", err)
	}
	if err := r.RecordNetWorth(snap); err != nil {
		t.Fatalf("second RecordNetWorth: %v", err)
	}

	var n int
	var total string
	if err := r.db.QueryRow(`SELECT COUNT(*), MAX(total) FROM networth_snapshots`).Scan(&n, &total); err != nil {
		t.Fatal(err)
	}
	if n != 2 || total != "201500.25" {
		t.Errorf("got %d rows, total %s", n, total)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.db")
	for i := 0; i < 2; i++ {
		r, err := NewSQLiteRecorder(path)
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}
		r.Close()
	}
}
