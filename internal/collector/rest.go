package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"StockAnalyzer/internal/model"
)

// RESTFetcher implements Fetcher against a generic JSON market-data API
// exposing /api/v1/bars/daily and /api/v1/quote.
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	Limiter *rate.Limiter
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey string, opts HTTPOptions) *RESTFetcher {
	return &RESTFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  newHTTPClient(opts.Timeout, opts.ProxyURL),
		Limiter: NewLimiter(opts.RateLimitRPS, opts.Burst),
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape of one daily bar.
type restBar struct {
	Timestamp int64    `json:"timestamp"`
	Open      *float64 `json:"open"`
	High      *float64 `json:"high"`
	Low       *float64 `json:"low"`
	Close     *float64 `json:"close"`
	Volume    *float64 `json:"volume"`
}

type restQuote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	PreviousClose float64 `json:"previous_close"`
	High52Week    float64 `json:"high_52w"`
	Low52Week     float64 `json:"low_52w"`
	Volume        int64   `json:"volume"`
	MarketCap     int64   `json:"market_cap"`
}

func (f *RESTFetcher) header() http.Header {
	h := http.Header{}
	if f.APIKey != "" {
		h.Set("Authorization", "Bearer "+f.APIKey)
	}
	return h
}

func (f *RESTFetcher) FetchDailyBars(ctx context.Context, symbol string, period Period) ([]model.PricePoint, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&limit=%d",
		f.BaseURL, url.QueryEscape(symbol), period.Days())
	body, err := getBody(ctx, f.Client, f.Limiter, endpoint, f.header())
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}

	var raw []restBar
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}
	bars := make([]model.PricePoint, len(raw))
	for i, rb := range raw {
		bars[i] = model.PricePoint{
			Date:   time.Unix(rb.Timestamp, 0).UTC(),
			Open:   valueOrNaN(rb.Open),
			High:   valueOrNaN(rb.High),
			Low:    valueOrNaN(rb.Low),
			Close:  valueOrNaN(rb.Close),
			Volume: valueOrNaN(rb.Volume),
		}
	}
	// Ensure chronological order
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

func (f *RESTFetcher) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	endpoint := fmt.Sprintf("%s/api/v1/quote?symbol=%s", f.BaseURL, url.QueryEscape(symbol))
	body, err := getBody(ctx, f.Client, f.Limiter, endpoint, f.header())
	if err != nil {
		return nil, fmt.Errorf("fetch quote: %w", err)
	}
	var q restQuote
	if err := json.Unmarshal(body, &q); err != nil {
		return nil, fmt.Errorf("decode quote: %w", err)
	}
	return &model.Quote{
		Symbol:        symbol,
		CompanyName:   q.Name,
		CurrentPrice:  q.Price,
		PreviousClose: q.PreviousClose,
		High52Week:    q.High52Week,
		Low52Week:     q.Low52Week,
		Volume:        q.Volume,
		MarketCap:     q.MarketCap,
	}, nil
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
