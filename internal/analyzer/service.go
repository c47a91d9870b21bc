// Package analyzer composes market data, indicators, forecasts and signals
// into a per-request stock report. Nothing is cached between calls.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"StockAnalyzer/internal/calculator"
	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/forecast"
	"StockAnalyzer/internal/metrics"
	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/recorder"
	"StockAnalyzer/internal/strategy"
	"StockAnalyzer/internal/symbols"
	"StockAnalyzer/internal/trace"
)

const (
	MinHorizon = 1
	MaxHorizon = 30
	// DefaultHorizon is the forecast length included in a full report.
	DefaultHorizon = 7

	historyMonths = 3
	signalMonths  = 1
)

// Report is the full analysis of one ticker.
type Report struct {
	SearchedFor string
	Ticker      string
	Quote       *model.Quote
	History     []model.IndicatorRow
	// Forecast is nil when ForecastErr is set.
	Forecast    *model.ForecastResult
	ForecastErr error
	Signal      model.SignalResult
	GeneratedAt time.Time
}

// Prediction is a standalone forecast.
type Prediction struct {
	SearchedFor string
	Ticker      string
	Forecast    *model.ForecastResult
}

// Service runs analyses. It is safe for concurrent use.
type Service struct {
	collector  *collector.Collector
	directory  *symbols.Directory
	forecaster *forecast.Forecaster
	recorder   recorder.Recorder
	metrics    *metrics.Metrics
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

func WithDirectory(d *symbols.Directory) Option { return func(s *Service) { s.directory = d } }
func WithRecorder(r recorder.Recorder) Option   { return func(s *Service) { s.recorder = r } }
func WithMetrics(m *metrics.Metrics) Option     { return func(s *Service) { s.metrics = m } }

// WithClock sets the clock used for report timestamps and forecast dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(c *collector.Collector, opts ...Option) *Service {
	s := &Service{
		collector: c,
		directory: symbols.Default(),
		recorder:  recorder.NewNoopRecorder(),
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.forecaster = forecast.New(forecast.WithClock(s.now))
	return s
}

// Directory returns the ticker directory used for resolution.
func (s *Service) Directory() *symbols.Directory { return s.directory }

// Resolve maps user input (company name or ticker) to a ticker.
func (s *Service) Resolve(input string) string { return s.directory.FindTicker(input) }

// Analyze builds a full Report for input. Only a failed quote lookup fails the
// call, as a *LookupError wrapping ErrNotFound; history, forecast and signal
// degrade independently. source labels the audit record.
func (s *Service) Analyze(ctx context.Context, input, source string) (*Report, error) {
	return s.AnalyzeHorizon(ctx, input, source, DefaultHorizon)
}

// AnalyzeHorizon is Analyze with a forecast of days instead of DefaultHorizon.
func (s *Service) AnalyzeHorizon(ctx context.Context, input, source string, days int) (rep *Report, err error) {
	if days < MinHorizon || days > MaxHorizon {
		return nil, &HorizonError{Days: days}
	}
	ticker := s.Resolve(input)
	ctx, span := trace.StartSpan(ctx, "analyzer.analyze",
		attribute.String("input", input),
		attribute.String("ticker", ticker))
	defer func() { trace.End(span, err) }()

	start := time.Now()
	defer func() { s.metrics.ObserveAnalysis(time.Since(start)) }()

	log.Info().Str("searched_for", input).Str("ticker", ticker).Msg("analyzing")

	quote, err := s.collector.Quote(ctx, ticker)
	if err != nil {
		log.Warn().Str("ticker", ticker).Err(err).Msg("quote lookup failed")
		return nil, &LookupError{SearchedFor: input, ResolvedTo: ticker, Err: fmt.Errorf("%w: %w", ErrNotFound, err)}
	}

	rep = &Report{
		SearchedFor: input,
		Ticker:      ticker,
		Quote:       quote,
		History:     []model.IndicatorRow{},
		Signal:      model.NeutralSignal(),
		GeneratedAt: s.now(),
	}

	series, serr := s.collector.Series(ctx, ticker, collector.Period6Months)
	if serr != nil {
		log.Warn().Str("ticker", ticker).Err(serr).Msg("price history unavailable")
		rep.ForecastErr = fmt.Errorf("%w: %w", forecast.ErrUnavailable, serr)
		s.metrics.ForecastOutcome(outcome(rep.ForecastErr))
		s.metrics.Signal(string(rep.Signal.Label))
	} else {
		rep.History = calculator.Enrich(model.TrailingMonths(series, historyMonths))
		rep.Forecast, rep.ForecastErr = s.runForecast(ticker, series, days)
		rep.Signal = s.runSignal(ticker, series)
	}

	s.audit(rep, source)
	return rep, nil
}

// Predict forecasts days ahead for input. Horizons outside [MinHorizon,
// MaxHorizon] fail with a *HorizonError before any data is fetched.
func (s *Service) Predict(ctx context.Context, input string, days int) (p *Prediction, err error) {
	if days < MinHorizon || days > MaxHorizon {
		return nil, &HorizonError{Days: days}
	}
	ticker := s.Resolve(input)
	ctx, span := trace.StartSpan(ctx, "analyzer.predict",
		attribute.String("ticker", ticker),
		attribute.Int("days", days))
	defer func() { trace.End(span, err) }()

	series, err := s.collector.Series(ctx, ticker, collector.Period6Months)
	if err != nil {
		s.metrics.ForecastOutcome("unavailable")
		return nil, fmt.Errorf("%w: %w", forecast.ErrUnavailable, err)
	}
	res, err := s.runForecast(ticker, series, days)
	if err != nil {
		return nil, err
	}
	return &Prediction{SearchedFor: input, Ticker: ticker, Forecast: res}, nil
}

func (s *Service) runForecast(ticker string, series []model.PricePoint, days int) (*model.ForecastResult, error) {
	res, err := s.forecaster.Forecast(series, days)
	s.metrics.ForecastOutcome(outcome(err))
	if err != nil {
		log.Warn().Str("ticker", ticker).Int("rows", len(series)).Err(err).Msg("forecast unavailable")
		return nil, err
	}
	return res, nil
}

func (s *Service) runSignal(ticker string, series []model.PricePoint) model.SignalResult {
	window := model.TrailingMonths(series, signalMonths)
	sig, err := strategy.Evaluate(model.Closes(window))
	if err != nil {
		log.Warn().Str("ticker", ticker).Int("rows", len(window)).Err(err).Msg("signal degraded to neutral")
	}
	s.metrics.Signal(string(sig.Label))
	return sig
}

func (s *Service) audit(rep *Report, source string) {
	rec := &recorder.AnalysisRecord{
		Time:           rep.GeneratedAt,
		Ticker:         rep.Ticker,
		SearchedFor:    rep.SearchedFor,
		Source:         source,
		Price:          rep.Quote.CurrentPrice,
		ChangePercent:  rep.Quote.ChangePercent,
		SignalLabel:    string(rep.Signal.Label),
		SignalStrength: rep.Signal.Strength,
		RSI:            rep.Signal.RSI,
		ForecastStatus: outcome(rep.ForecastErr),
		HistoryRows:    len(rep.History),
	}
	if err := s.recorder.RecordAnalysis(rec); err != nil {
		log.Error().Str("ticker", rep.Ticker).Err(err).Msg("record analysis failed")
	}
}

// outcome maps a forecast error to its recorder status.
func outcome(err error) string {
	switch {
	case err == nil:
		return recorder.ForecastOK
	case errors.Is(err, forecast.ErrInsufficientData):
		return recorder.ForecastInsufficient
	default:
		return recorder.ForecastUnavailable
	}
}
