package collector

import (
	"context"
	"math"
	"time"

	"StockAnalyzer/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// When Bars or QuoteData are nil, a deterministic series around Price is
// generated instead.
type MockFetcher struct {
	Price     float64
	Bars      []model.PricePoint
	QuoteData *model.Quote
	Err       error
	// End is the date of the last generated bar; zero means today.
	End time.Time
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, _ string, period Period) ([]model.PricePoint, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return generateMockBars(m.Price, period.Days(), m.end()), nil
}

func (m *MockFetcher) FetchQuote(_ context.Context, symbol string) (*model.Quote, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.QuoteData != nil {
		q := *m.QuoteData
		return &q, nil
	}
	return &model.Quote{
		Symbol:        symbol,
		CompanyName:   symbol + " Mock Corp",
		CurrentPrice:  m.Price,
		PreviousClose: m.Price * 0.99,
		Volume:        1_000_000,
	}, nil
}

func (m *MockFetcher) end() time.Time {
	if !m.End.IsZero() {
		return m.End
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// generateMockBars builds count weekday bars ending on end with a gentle
// uptrend and a weekly oscillation.
func generateMockBars(basePrice float64, count int, end time.Time) []model.PricePoint {
	dates := make([]time.Time, 0, count)
	for d := end; len(dates) < count; d = d.AddDate(0, 0, -1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		dates = append(dates, d)
	}

	bars := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001 + 0.01*math.Sin(float64(i)/2))
		bars[i] = model.PricePoint{
			Date:   dates[count-1-i],
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1_000_000 + float64(i%5)*10_000,
		}
	}
	return bars
}
