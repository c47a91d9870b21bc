package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAnalyzer/internal/metrics"
	"StockAnalyzer/internal/model"
)

func TestCollector_QuoteComputesChange(t *testing.T) {
	m := metrics.New()
	c := NewCollector(&MockFetcher{QuoteData: &model.Quote{
		CompanyName:   "Apple Inc.",
		CurrentPrice:  110,
		PreviousClose: 100,
		High52Week:    120,
		Low52Week:     80,
	}}, m)

	q, err := c.Quote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", q.Symbol)
	assert.InDelta(t, 10.0, q.Change, 1e-9)
	assert.InDelta(t, 10.0, q.ChangePercent, 1e-9)
	assert.Equal(t, 120.0, q.High52Week)
	assert.False(t, q.FetchedAt.IsZero())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("mock", "quote", "ok")))
}

func TestCollector_QuoteFallsBackToPreviousClose(t *testing.T) {
	c := NewCollector(&MockFetcher{QuoteData: &model.Quote{PreviousClose: 50, High52Week: 60, Low52Week: 40}}, nil)
	q, err := c.Quote(context.Background(), "XYZ")
	require.NoError(t, err)
	assert.Equal(t, 50.0, q.CurrentPrice)
	assert.Equal(t, 0.0, q.Change)
	assert.Equal(t, "XYZ", q.CompanyName)
}

func TestCollector_QuoteUnavailable(t *testing.T) {
	c := NewCollector(&MockFetcher{QuoteData: &model.Quote{CurrentPrice: 10}}, nil)
	_, err := c.Quote(context.Background(), "XYZ")
	assert.ErrorIs(t, err, ErrQuoteUnavailable)

	c = NewCollector(&MockFetcher{Err: errors.New("down")}, nil)
	_, err = c.Quote(context.Background(), "XYZ")
	assert.ErrorContains(t, err, "down")
}

func TestCollector_Quote52WeekFallback(t *testing.T) {
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	bars := generateMockBars(100, 260, end)
	c := NewCollector(&MockFetcher{
		Bars:      bars,
		QuoteData: &model.Quote{CurrentPrice: 100, PreviousClose: 99},
	}, nil)

	q, err := c.Quote(context.Background(), "XYZ")
	require.NoError(t, err)
	assert.Greater(t, q.High52Week, q.Low52Week)
	assert.Greater(t, q.High52Week, 100.0)
}

func TestCollector_Quote52WeekDefaultsToPrice(t *testing.T) {
	c := NewCollector(&MockFetcher{
		Bars:      []model.PricePoint{},
		QuoteData: &model.Quote{CurrentPrice: 42, PreviousClose: 40},
	}, nil)
	q, err := c.Quote(context.Background(), "XYZ")
	require.NoError(t, err)
	assert.Equal(t, 42.0, q.High52Week)
	assert.Equal(t, 42.0, q.Low52Week)
}

func TestCollector_SeriesEmptyIsNoData(t *testing.T) {
	c := NewCollector(&MockFetcher{Bars: []model.PricePoint{}}, nil)
	_, err := c.Series(context.Background(), "XYZ", Period6Months)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestMockFetcher_GeneratesWeekdays(t *testing.T) {
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC) // Friday
	f := &MockFetcher{Price: 100, End: end}
	bars, err := f.FetchDailyBars(context.Background(), "XYZ", Period6Months)
	require.NoError(t, err)
	require.Len(t, bars, Period6Months.Days())
	assert.Equal(t, end, bars[len(bars)-1].Date)
	for i, b := range bars {
		assert.NotEqual(t, time.Saturday, b.Date.Weekday())
		assert.NotEqual(t, time.Sunday, b.Date.Weekday())
		if i > 0 {
			assert.True(t, bars[i-1].Date.Before(b.Date))
		}
	}
}
