package notifier

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"StockAnalyzer/internal/analyzer"
	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/recorder"
)

func f64(v float64) *float64 { return &v }

func sampleReport() *analyzer.Report {
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	return &analyzer.Report{
		Ticker: "AAPL",
		Quote: &model.Quote{
			Symbol: "AAPL", CompanyName: "Apple Inc.", CurrentPrice: 150,
			ChangePercent: 1.01, High52Week: 180, Low52Week: 120,
		},
		Forecast: &model.ForecastResult{
			Points: []model.ForecastPoint{
				{Date: day.AddDate(0, 0, 1), Price: f64(151.25)},
				{Date: day.AddDate(0, 0, 2), Price: f64(152.5)},
			},
			Confidence: 87.5,
			Model:      "Linear Regression",
		},
		Signal: model.SignalResult{Label: model.SignalBuy, Score: 1, Strength: 60, RSI: f64(45.5), PriceVsMA20: f64(1.2)},
	}
}

func TestFormatReport(t *testing.T) {
	msg := FormatReport(sampleReport())
	assert.Contains(t, msg, "<b>AAPL</b> | Apple Inc.")
	assert.Contains(t, msg, "Price: 150.00 (+1.01%)")
	assert.Contains(t, msg, "52W: 120.00 ~ 180.00")
	assert.Contains(t, msg, "<b>BUY</b> (strength 60)")
	assert.Contains(t, msg, "RSI: 45.50 | vs MA20: +1.20%")
	assert.Contains(t, msg, "2-day forecast")
	assert.Contains(t, msg, "2026-10-21  152.50")
}

func TestFormatReportDegraded(t *testing.T) {
	rep := sampleReport()
	rep.Forecast = nil
	rep.ForecastErr = errors.New("no data")
	rep.Signal = model.NeutralSignal()
	msg := FormatReport(rep)
	assert.Contains(t, msg, "Forecast unavailable")
	assert.Contains(t, msg, "RSI: n/a")
	assert.Contains(t, msg, "<b>HOLD</b> (strength 0)")
}

func TestFormatDigest(t *testing.T) {
	at := time.Date(2026, 10, 19, 16, 30, 0, 0, time.UTC)
	msg := FormatDigest([]*analyzer.Report{sampleReport()}, []string{"ZZZZ"}, at)
	assert.Contains(t, msg, "2026-10-19 16:30")
	assert.Contains(t, msg, "<b>AAPL</b> 150.00 (+1.01%) BUY 60 → 152.50")
	assert.Contains(t, msg, "Failed: ZZZZ")

	empty := FormatDigest(nil, nil, at)
	assert.Contains(t, empty, "No symbols analyzed.")
	assert.NotContains(t, empty, "Failed")
}

func TestFormatHistory(t *testing.T) {
	at := time.Date(2026, 10, 19, 9, 5, 0, 0, time.UTC)
	msg := FormatHistory("AAPL", []recorder.AnalysisRecord{
		{Time: at, Ticker: "AAPL", Price: 150, SignalLabel: "HOLD", SignalStrength: 50, Source: "api"},
	})
	assert.Contains(t, msg, "2026-10-19 09:05  150.00  HOLD 50  RSI n/a  [api]")
	assert.Contains(t, FormatHistory("MSFT", nil), "No analyses recorded.")
}

func TestFormatEscapes(t *testing.T) {
	assert.Equal(t, "❌ a &lt;b&gt;", FormatError("a <b>"))
	assert.Contains(t, FormatHelp(), "/predict")
}
