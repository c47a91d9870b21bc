package collector

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"StockAnalyzer/internal/calculator"
	"StockAnalyzer/internal/metrics"
	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/trace"
)

// Collector wraps a Fetcher with quote normalization, tracing and metrics.
// It holds no per-request state and is safe for concurrent use.
type Collector struct {
	Fetcher Fetcher
	Metrics *metrics.Metrics
	Now     func() time.Time
}

// NewCollector creates a new Collector. m may be nil.
func NewCollector(fetcher Fetcher, m *metrics.Metrics) *Collector {
	return &Collector{Fetcher: fetcher, Metrics: m, Now: time.Now}
}

// Series returns daily bars for symbol over period, or ErrNoData when the
// source has none.
func (c *Collector) Series(ctx context.Context, symbol string, period Period) (bars []model.PricePoint, err error) {
	ctx, span := trace.StartSpan(ctx, "collector.series",
		attribute.String("ticker", symbol),
		attribute.String("period", string(period)),
		attribute.String("source", c.Fetcher.Name()))
	defer func() { trace.End(span, err) }()

	start := time.Now()
	bars, err = c.Fetcher.FetchDailyBars(ctx, symbol, period)
	c.Metrics.ObserveUpstream(c.Fetcher.Name(), "bars", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s %s: %w", symbol, period, ErrNoData)
	}
	span.SetAttributes(attribute.Int("rows", len(bars)))
	return bars, nil
}

// Quote fetches and normalizes the current quote for symbol. The current price
// falls back to the previous close; a missing current or previous price is
// ErrQuoteUnavailable. Missing 52-week bounds are derived from a year of bars,
// then default to the current price.
func (c *Collector) Quote(ctx context.Context, symbol string) (q *model.Quote, err error) {
	ctx, span := trace.StartSpan(ctx, "collector.quote",
		attribute.String("ticker", symbol),
		attribute.String("source", c.Fetcher.Name()))
	defer func() { trace.End(span, err) }()

	start := time.Now()
	q, err = c.Fetcher.FetchQuote(ctx, symbol)
	c.Metrics.ObserveUpstream(c.Fetcher.Name(), "quote", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("fetch quote: %w", err)
	}
	if q == nil {
		return nil, fmt.Errorf("%s: %w", symbol, ErrQuoteUnavailable)
	}

	if !usable(q.CurrentPrice) {
		q.CurrentPrice = q.PreviousClose
	}
	if !usable(q.CurrentPrice) || !usable(q.PreviousClose) {
		return nil, fmt.Errorf("%s: %w", symbol, ErrQuoteUnavailable)
	}

	q.Symbol = symbol
	if q.CompanyName == "" {
		q.CompanyName = symbol
	}
	q.Change = q.CurrentPrice - q.PreviousClose
	q.ChangePercent = q.Change / q.PreviousClose * 100
	q.FetchedAt = c.Now()

	if !usable(q.High52Week) || !usable(q.Low52Week) {
		c.fill52WeekRange(ctx, q)
	}
	return q, nil
}

func (c *Collector) fill52WeekRange(ctx context.Context, q *model.Quote) {
	high, low := q.CurrentPrice, q.CurrentPrice
	bars, err := c.Series(ctx, q.Symbol, Period1Year)
	if err == nil {
		if h, l, rerr := calculator.Calculate52WeekRange(bars); rerr == nil {
			high, low = h, l
		} else {
			err = rerr
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Warn().Str("ticker", q.Symbol).Err(err).Msg("52-week range unavailable, using current price")
	}
	if !usable(q.High52Week) {
		q.High52Week = high
	}
	if !usable(q.Low52Week) {
		q.Low52Week = low
	}
}

func usable(v float64) bool {
	return v != 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
