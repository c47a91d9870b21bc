package calculator

import "math"

// RSIPeriod is the lookback used for every RSI in the service.
const RSIPeriod = 14

// RSISeries computes RSI aligned to closes using simple rolling means of gains
// and losses over the last period deltas. The first period rows are NaN.
//
// A window whose mean loss is exactly zero has no relative strength and yields
// NaN rather than 100. Deltas touching a NaN close count as neither gain nor loss.
func RSISeries(closes []float64, period int) []float64 {
	out := nanSeries(len(closes))
	if period <= 0 || len(closes) <= period {
		return out
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		switch {
		case d > 0:
			gains[i] = d
		case d < 0:
			losses[i] = -d
		}
	}

	for i := period; i < len(closes); i++ {
		var g, l float64
		for j := i - period + 1; j <= i; j++ {
			g += gains[j]
			l += losses[j]
		}
		avgGain := g / float64(period)
		avgLoss := l / float64(period)
		if avgLoss == 0 {
			continue
		}
		rs := avgGain / avgLoss
		out[i] = 100.0 - 100.0/(1.0+rs)
	}
	return out
}

// LatestRSI returns the most recent RSI, or NaN when it is undefined.
func LatestRSI(closes []float64, period int) float64 {
	v := last(RSISeries(closes, period))
	if math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}
