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

// DefaultYahooBaseURL is the public Yahoo Finance chart host.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	BaseURL   string
	Client    *http.Client
	Limiter   *rate.Limiter
	SymbolMap map[string]string // maps user-facing symbol to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher. An empty baseURL uses
// DefaultYahooBaseURL.
func NewYahooFetcher(baseURL string, opts HTTPOptions) *YahooFetcher {
	if baseURL == "" {
		baseURL = DefaultYahooBaseURL
	}
	return &YahooFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  newHTTPClient(opts.Timeout, opts.ProxyURL),
		Limiter: NewLimiter(opts.RateLimitRPS, opts.Burst),
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
			"NDX":    "^NDX",
			"DJI":    "^DJI",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
// Nil entries in the quote arrays are JSON nulls.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta       yahooMeta `json:"meta"`
			Timestamp  []int64   `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type yahooMeta struct {
	Symbol              string   `json:"symbol"`
	LongName            string   `json:"longName"`
	ShortName           string   `json:"shortName"`
	RegularMarketPrice  *float64 `json:"regularMarketPrice"`
	PreviousClose       *float64 `json:"previousClose"`
	ChartPreviousClose  *float64 `json:"chartPreviousClose"`
	FiftyTwoWeekHigh    *float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow     *float64 `json:"fiftyTwoWeekLow"`
	RegularMarketVolume *float64 `json:"regularMarketVolume"`
}

func at(vs []*float64, i int) float64 {
	if i >= len(vs) {
		return math.NaN()
	}
	return valueOrNaN(vs[i])
}

func orZero(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0
	}
	return *v
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol, interval, rng string) (*yahooChart, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)), interval, rng)

	header := http.Header{}
	header.Set("User-Agent", "Mozilla/5.0")
	body, err := getBody(ctx, f.Client, f.Limiter, u, header)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch %s: %w", symbol, err)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo %s: %w", symbol, ErrNoData)
	}
	return &chart, nil
}

func (f *YahooFetcher) FetchDailyBars(ctx context.Context, symbol string, period Period) ([]model.PricePoint, error) {
	chart, err := f.fetchChart(ctx, symbol, "1d", string(period))
	if err != nil {
		return nil, err
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.PricePoint, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o, h, l, c := at(quote.Open, i), at(quote.High, i), at(quote.Low, i), at(quote.Close, i)
		if math.IsNaN(o) && math.IsNaN(h) && math.IsNaN(l) && math.IsNaN(c) {
			continue // holidays and halted sessions
		}
		bars = append(bars, model.PricePoint{
			Date:   time.Unix(ts, 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: at(quote.Volume, i),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

func (f *YahooFetcher) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	chart, err := f.fetchChart(ctx, symbol, "1d", "5d")
	if err != nil {
		return nil, err
	}
	meta := chart.Chart.Result[0].Meta

	prev := orZero(meta.PreviousClose)
	if prev == 0 {
		prev = orZero(meta.ChartPreviousClose)
	}
	name := meta.LongName
	if name == "" {
		name = meta.ShortName
	}
	return &model.Quote{
		Symbol:        symbol,
		CompanyName:   name,
		CurrentPrice:  orZero(meta.RegularMarketPrice),
		PreviousClose: prev,
		High52Week:    orZero(meta.FiftyTwoWeekHigh),
		Low52Week:     orZero(meta.FiftyTwoWeekLow),
		Volume:        int64(orZero(meta.RegularMarketVolume)),
	}, nil
}
