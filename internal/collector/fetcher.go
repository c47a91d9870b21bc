package collector

import (
	"context"
	"errors"
	"fmt"

	"StockAnalyzer/internal/model"
)

var (
	// ErrNoData is returned when the source has no bars for a symbol.
	ErrNoData = errors.New("no market data")
	// ErrQuoteUnavailable is returned when a quote lacks a usable current or previous price.
	ErrQuoteUnavailable = errors.New("quote unavailable")
)

// Period is a lookback window understood by every Fetcher.
type Period string

const (
	Period1Month  Period = "1mo"
	Period3Months Period = "3mo"
	Period6Months Period = "6mo"
	Period1Year   Period = "1y"
)

// Days is the approximate number of trading days in p.
func (p Period) Days() int {
	switch p {
	case Period1Month:
		return 22
	case Period3Months:
		return 66
	case Period6Months:
		return 130
	default:
		return 252
	}
}

// ParsePeriod validates s as a Period.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case Period1Month, Period3Months, Period6Months, Period1Year:
		return p, nil
	}
	return "", fmt.Errorf("unsupported period %q", s)
}

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchDailyBars returns chronological daily bars covering period.
	FetchDailyBars(ctx context.Context, symbol string, period Period) ([]model.PricePoint, error)
	// FetchQuote returns the raw quote metadata. Missing prices are zero.
	FetchQuote(ctx context.Context, symbol string) (*model.Quote, error)
	Name() string
}
