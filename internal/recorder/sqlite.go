package recorder

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while the tracker writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, now: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS performance_runs (
			run_id        TEXT PRIMARY KEY,
			timestamp     INTEGER NOT NULL,
			source        TEXT,
			ticker_id     INTEGER NOT NULL,
			ticker_symbol TEXT NOT NULL,
			last_date  TEXT,
			last_price TEXT,
			samples       INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_perf_runs_symbol ON performance_runs(ticker_symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS performance_results (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id          TEXT NOT NULL REFERENCES performance_runs(run_id),
			window_label    TEXT NOT NULL,
			reference_date  TEXT,
			reference_price TEXT,
			percent_change  TEXT,
			missing         TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_perf_results_run ON performance_results(run_id)`,

		`CREATE TABLE IF NOT EXISTS networth_snapshots (
			run_id      TEXT PRIMARY KEY,
			timestamp   INTEGER NOT NULL,
			currency    TEXT,
			investments TEXT,
			unvested    TEXT,
			equity      TEXT,
			total       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_networth_ts ON networth_snapshots(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordPerformance stores the run header and one row per window. Absent
// windows keep a NULL percent_change and their missing reason.
func (r *SQLiteRecorder) RecordPerformance(snap *PerformanceSnapshot) error {
	if snap == nil || snap.Performance == nil {
		return errors.New("nil performance snapshot")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	tp := snap.Performance
	runID := uuid.NewString()

	var curDate, curPrice sql.NullString
	if cur, ok := tp.Current(); ok {
		curDate = sql.NullString{String: cur.Date.String(), Valid: true}
		curPrice = sql.NullString{String: cur.Price.String(), Valid: true}
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO performance_runs
		(run_id, timestamp, source, ticker_id, ticker_symbol, last_date, last_price, samples)
		VALUES (?,?,?,?,?,?,?,?)`,
		runID, r.now().Unix(), snap.Trigger, tp.Ticker.TickerID, tp.Ticker.TickerSymbol,
		curDate, curPrice, len(tp.Series),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, res := range tp.Results {
		var refDate, refPrice, change, missing sql.NullString
		if !res.Reference.Date.IsZero() {
			refDate = sql.NullString{String: res.Reference.Date.String(), Valid: true}
			refPrice = sql.NullString{String: res.Reference.Price.String(), Valid: true}
		}
		if pct, ok := res.PercentChange(); ok {
			change = sql.NullString{String: pct.String(), Valid: true}
		} else {
			missing = sql.NullString{String: res.Missing.String(), Valid: true}
		}
		if _, err := tx.Exec(`INSERT INTO performance_results
			(run_id, window_label, reference_date, reference_price, percent_change, missing)
			VALUES (?,?,?,?,?,?)`,
			runID, res.Label, refDate, refPrice, change, missing,
		); err != nil {
			return fmt.Errorf("insert %s result: %w", res.Label, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordNetWorth(snap *NetWorthSnapshot) error {
	if snap == nil {
		return errors.New("nil net worth snapshot")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	s := snap.Summary
	_, err := r.db.Exec(`INSERT INTO networth_snapshots
		(run_id, timestamp, currency, investments, unvested, equity, total)
		VALUES (?,?,?,?,?,?,?)`,
		uuid.NewString(), r.now().Unix(), snap.Currency,
		s.Investments.String(), s.Unvested.String(), s.Equity.String(), s.Total.String(),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
