package calculator

import "math"

// MACD parameters.
const (
	MACDFast   = 12
	MACDSlow   = 26
	MACDSignal = 9
)

// EMASeries computes the exponential moving average aligned to values with
// smoothing α = 2/(span+1), seeded with the first value and no warm-up window:
//
//	ema[0] = v[0]
//	ema[i] = v[i]*α + ema[i-1]*(1-α)
//
// Leading NaNs stay NaN; a NaN after the seed carries the previous average.
func EMASeries(values []float64, span int) []float64 {
	out := nanSeries(len(values))
	if span <= 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)

	prev := math.NaN()
	for i, v := range values {
		switch {
		case math.IsNaN(v):
			out[i] = prev
			continue
		case math.IsNaN(prev):
			prev = v
		default:
			prev = v*alpha + prev*(1-alpha)
		}
		out[i] = prev
	}
	return out
}

// MACDSeries returns the MACD line, EMA(fast) - EMA(slow), and its EMA(signal)
// signal line, both aligned to closes and defined from row 0.
func MACDSeries(closes []float64, fast, slow, signal int) (macd, signalLine []float64) {
	fastEMA := EMASeries(closes, fast)
	slowEMA := EMASeries(closes, slow)
	macd = make([]float64, len(closes))
	for i := range closes {
		macd[i] = fastEMA[i] - slowEMA[i]
	}
	return macd, EMASeries(macd, signal)
}
