package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists the audit trail to a SQLite database.
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

	// WAL mode so readers do not block the writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, now: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			ticker          TEXT NOT NULL,
			searched_for    TEXT,
			source          TEXT,
			price           REAL,
			change_percent  REAL,
			signal_label    TEXT,
			signal_strength REAL,
			rsi             REAL,
			forecast_status TEXT,
			history_rows    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_ticker_ts ON analyses(ticker, timestamp)`,

		`CREATE TABLE IF NOT EXISTS watchlist_runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			symbols     INTEGER,
			failures    INTEGER,
			duration_ms INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_watchlist_ts ON watchlist_runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) stamp(t time.Time) int64 {
	if t.IsZero() {
		t = r.now()
	}
	return t.Unix()
}

func (r *SQLiteRecorder) RecordAnalysis(rec *AnalysisRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var rsi sql.NullFloat64
	if rec.RSI != nil {
		rsi = sql.NullFloat64{Float64: *rec.RSI, Valid: true}
	}
	_, err := r.db.Exec(`INSERT INTO analyses
		(timestamp, ticker, searched_for, source, price, change_percent,
		 signal_label, signal_strength, rsi, forecast_status, history_rows)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		r.stamp(rec.Time), rec.Ticker, rec.SearchedFor, rec.Source, rec.Price, rec.ChangePercent,
		rec.SignalLabel, rec.SignalStrength, rsi, rec.ForecastStatus, rec.HistoryRows,
	)
	return err
}

func (r *SQLiteRecorder) RecordWatchlistRun(run *WatchlistRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO watchlist_runs
		(timestamp, symbols, failures, duration_ms)
		VALUES (?,?,?,?)`,
		r.stamp(run.Time), run.Symbols, run.Failures, run.Duration.Milliseconds(),
	)
	return err
}

func (r *SQLiteRecorder) History(ticker string, limit int) ([]AnalysisRecord, error) {
	rows, err := r.db.Query(`SELECT timestamp, ticker, searched_for, source, price, change_percent,
			signal_label, signal_strength, rsi, forecast_status, history_rows
		FROM analyses WHERE ticker = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, ticker, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []AnalysisRecord
	for rows.Next() {
		var (
			rec AnalysisRecord
			ts  int64
			rsi sql.NullFloat64
		)
		if err := rows.Scan(&ts, &rec.Ticker, &rec.SearchedFor, &rec.Source, &rec.Price, &rec.ChangePercent,
			&rec.SignalLabel, &rec.SignalStrength, &rsi, &rec.ForecastStatus, &rec.HistoryRows); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		rec.Time = time.Unix(ts, 0)
		if rsi.Valid {
			v := rsi.Float64
			rec.RSI = &v
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
