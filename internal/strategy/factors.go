package strategy

import "math"

// RSI thresholds.
const (
	RSIOversold   = 30.0
	RSIOverbought = 70.0
	// RSIFallback is used when the latest RSI is undefined.
	RSIFallback = 50.0
)

// scorePriceVsMA20 is +1 when the close sits above its 20-day average and -1
// below it. A close exactly on the average deliberately scores 0 rather than -1,
// so a flat series classifies as HOLD with strength 50.
func scorePriceVsMA20(price, ma20 float64) int {
	switch {
	case price > ma20:
		return 1
	case price < ma20:
		return -1
	default:
		return 0
	}
}

// scoreRSI is +2 when oversold and -2 when overbought.
func scoreRSI(rsi float64) int {
	switch {
	case rsi < RSIOversold:
		return 2
	case rsi > RSIOverbought:
		return -2
	default:
		return 0
	}
}

// deviationPct is the percentage distance of price from ma.
func deviationPct(price, ma float64) float64 {
	if ma == 0 {
		return 0
	}
	return (price - ma) / ma * 100
}

// strongStrength scales |score| against the maximum reachable magnitude of 3.
func strongStrength(score int) float64 {
	return math.Min(100, math.Abs(float64(score))/3*100)
}
