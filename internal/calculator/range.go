package calculator

import (
	"errors"
	"math"

	"StockAnalyzer/internal/model"
)

// TradingDaysPerYear bounds the 52-week window.
const TradingDaysPerYear = 252

// Calculate52WeekRange scans the most recent 252 trading days and returns the high and low.
// Bars with a non-finite high or low are skipped.
func Calculate52WeekRange(dailyBars []model.PricePoint) (high, low float64, err error) {
	if len(dailyBars) == 0 {
		return 0, 0, errors.New("no daily bars provided")
	}
	n := len(dailyBars)
	start := n - TradingDaysPerYear
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		if h := dailyBars[i].High; !math.IsNaN(h) && h > high {
			high = h
		}
		if l := dailyBars[i].Low; !math.IsNaN(l) && l < low {
			low = l
		}
	}
	if math.IsInf(high, 0) || math.IsInf(low, 0) {
		return 0, 0, errors.New("no finite high/low in range")
	}
	return high, low, nil
}
