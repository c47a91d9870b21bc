package api

import (
	"math"
	"time"

	"StockAnalyzer/internal/analyzer"
	"StockAnalyzer/internal/model"
)

// timestampLayout matches a naive ISO-8601 timestamp with microseconds.
const timestampLayout = "2006-01-02T15:04:05.000000"

const dateLayout = "2006-01-02"

type currentDTO struct {
	Symbol        string  `json:"symbol"`
	CurrentPrice  float64 `json:"currentPrice"`
	PreviousClose float64 `json:"previousClose"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	High52Week    float64 `json:"high52Week"`
	Low52Week     float64 `json:"low52Week"`
	Volume        int64   `json:"volume"`
	MarketCap     int64   `json:"marketCap"`
	CompanyName   string  `json:"companyName"`
}

type historicalDTO struct {
	Date   string   `json:"date"`
	Open   *float64 `json:"open"`
	High   *float64 `json:"high"`
	Low    *float64 `json:"low"`
	Close  *float64 `json:"close"`
	Volume int64    `json:"volume"`
	MA7    *float64 `json:"ma7"`
	MA20   *float64 `json:"ma20"`
	MA50   *float64 `json:"ma50"`
	RSI    *float64 `json:"rsi"`
	MACD   *float64 `json:"macd"`
	Signal *float64 `json:"signal"`
}

type predictionPointDTO struct {
	Date           string   `json:"date"`
	PredictedPrice *float64 `json:"predictedPrice"`
}

type predictionsDTO struct {
	Predictions []predictionPointDTO `json:"predictions"`
	Confidence  float64              `json:"confidence"`
	Model       string               `json:"model"`
}

type sentimentDTO struct {
	Signal      string   `json:"signal"`
	Strength    float64  `json:"strength"`
	RSI         *float64 `json:"rsi"`
	PriceVsMA20 *float64 `json:"price_vs_ma20"`
}

type stockDTO struct {
	Current      currentDTO      `json:"current"`
	Historical   []historicalDTO `json:"historical"`
	Predictions  *predictionsDTO `json:"predictions"`
	Sentiment    sentimentDTO    `json:"sentiment"`
	Timestamp    string          `json:"timestamp"`
	SearchedFor  string          `json:"searchedFor"`
	ActualTicker string          `json:"actualTicker"`
}

type errorDTO struct {
	Error       string `json:"error"`
	SearchedFor string `json:"searchedFor,omitempty"`
	ResolvedTo  string `json:"resolvedTo,omitempty"`
}

func toCurrent(q *model.Quote) currentDTO {
	return currentDTO{
		Symbol:        q.Symbol,
		CurrentPrice:  model.Round2(q.CurrentPrice),
		PreviousClose: model.Round2(q.PreviousClose),
		Change:        model.Round2(q.Change),
		ChangePercent: model.Round2(q.ChangePercent),
		High52Week:    model.Round2(q.High52Week),
		Low52Week:     model.Round2(q.Low52Week),
		Volume:        q.Volume,
		MarketCap:     q.MarketCap,
		CompanyName:   q.CompanyName,
	}
}

func toHistorical(rows []model.IndicatorRow) []historicalDTO {
	out := make([]historicalDTO, len(rows))
	for i, r := range rows {
		out[i] = historicalDTO{
			Date:   r.Date.Format(dateLayout),
			Open:   model.RoundPtr(model.Finite(r.Open)),
			High:   model.RoundPtr(model.Finite(r.High)),
			Low:    model.RoundPtr(model.Finite(r.Low)),
			Close:  model.RoundPtr(model.Finite(r.Close)),
			Volume: volumeInt(r.Volume),
			MA7:    model.RoundPtr(r.MA7),
			MA20:   model.RoundPtr(r.MA20),
			MA50:   model.RoundPtr(r.MA50),
			RSI:    model.RoundPtr(r.RSI),
			MACD:   model.RoundPtr(r.MACD),
			Signal: model.RoundPtr(r.MACDSignal),
		}
	}
	return out
}

func toPredictions(f *model.ForecastResult) *predictionsDTO {
	if f == nil {
		return nil
	}
	points := make([]predictionPointDTO, len(f.Points))
	for i, p := range f.Points {
		points[i] = predictionPointDTO{
			Date:           p.Date.Format(dateLayout),
			PredictedPrice: model.RoundPtr(p.Price),
		}
	}
	return &predictionsDTO{
		Predictions: points,
		Confidence:  model.Round2(f.Confidence),
		Model:       f.Model,
	}
}

func toSentiment(s model.SignalResult) sentimentDTO {
	return sentimentDTO{
		Signal:      string(s.Label),
		Strength:    model.Round2(s.Strength),
		RSI:         model.RoundPtr(s.RSI),
		PriceVsMA20: model.RoundPtr(s.PriceVsMA20),
	}
}

func toStock(rep *analyzer.Report) stockDTO {
	return stockDTO{
		Current:      toCurrent(rep.Quote),
		Historical:   toHistorical(rep.History),
		Predictions:  toPredictions(rep.Forecast),
		Sentiment:    toSentiment(rep.Signal),
		Timestamp:    formatTimestamp(rep.GeneratedAt),
		SearchedFor:  rep.SearchedFor,
		ActualTicker: rep.Ticker,
	}
}

func formatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

func volumeInt(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int64(v)
}

// StockBody is the /api/stock response body for rep.
func StockBody(rep *analyzer.Report) any { return toStock(rep) }

// PredictionBody is the /api/predict response body for p.
func PredictionBody(p *analyzer.Prediction) any { return toPredictions(p.Forecast) }
