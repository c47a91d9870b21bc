package model

// IndicatorRow is one PricePoint plus its derived indicators.
// Nil fields are absent: not enough history, or the value was not finite.
type IndicatorRow struct {
	PricePoint
	MA7        *float64
	MA20       *float64
	MA50       *float64
	RSI        *float64
	MACD       *float64
	MACDSignal *float64
}
