package recorder

import "time"

// Forecast outcomes stored on an AnalysisRecord.
const (
	ForecastOK           = "ok"
	ForecastInsufficient = "insufficient"
	ForecastUnavailable  = "unavailable"
	ForecastSkipped      = "skipped"
)

// AnalysisRecord is one audited analysis. Forecast values are never stored;
// only whether a forecast could be produced.
type AnalysisRecord struct {
	Time           time.Time
	Ticker         string
	SearchedFor    string
	Source         string // api, watchlist, telegram, cli
	Price          float64
	ChangePercent  float64
	SignalLabel    string
	SignalStrength float64
	RSI            *float64
	ForecastStatus string
	HistoryRows    int
}

// WatchlistRun summarizes one scheduled scan.
type WatchlistRun struct {
	Time     time.Time
	Symbols  int
	Failures int
	Duration time.Duration
}

// Recorder persists an audit trail of analyses.
type Recorder interface {
	RecordAnalysis(rec *AnalysisRecord) error
	RecordWatchlistRun(run *WatchlistRun) error
	// History returns up to limit records for ticker, newest first.
	History(ticker string, limit int) ([]AnalysisRecord, error)
	Close() error
}
