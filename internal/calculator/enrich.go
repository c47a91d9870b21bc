package calculator

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"StockAnalyzer/internal/model"
)

// Enrich attaches MA7/MA20/MA50, RSI(14) and MACD(12,26,9) to every bar.
// The output has the same length and order as series; an empty series gives an
// empty result. A failure inside one indicator family leaves that family absent
// on every row without affecting the others.
func Enrich(series []model.PricePoint) []model.IndicatorRow {
	rows := make([]model.IndicatorRow, len(series))
	if len(series) == 0 {
		return rows
	}
	closes := model.Closes(series)

	ma7 := guard("ma7", len(closes), func() []float64 { return SMASeries(closes, MAShort) })
	ma20 := guard("ma20", len(closes), func() []float64 { return SMASeries(closes, MAMedium) })
	ma50 := guard("ma50", len(closes), func() []float64 { return SMASeries(closes, MALong) })
	rsi := guard("rsi", len(closes), func() []float64 { return RSISeries(closes, RSIPeriod) })

	var signal []float64
	macd := guard("macd", len(closes), func() []float64 {
		m, s := MACDSeries(closes, MACDFast, MACDSlow, MACDSignal)
		signal = s
		return m
	})
	if len(signal) != len(closes) {
		signal = nanSeries(len(closes))
	}

	for i, p := range series {
		rows[i] = model.IndicatorRow{
			PricePoint: p,
			MA7:        model.Finite(ma7[i]),
			MA20:       model.Finite(ma20[i]),
			MA50:       model.Finite(ma50[i]),
			RSI:        model.Finite(rsi[i]),
			MACD:       model.Finite(macd[i]),
			MACDSignal: model.Finite(signal[i]),
		}
	}
	return rows
}

// guard runs fn and returns an all-NaN series of length n if it panics or
// returns a series of the wrong length.
func guard(name string, n int, fn func() []float64) (out []float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Str("indicator", name).Str("panic", fmt.Sprint(r)).Msg("indicator computation failed")
			out = nanSeries(n)
		}
	}()
	out = fn()
	if len(out) != n {
		log.Warn().Str("indicator", name).Int("got", len(out)).Int("want", n).Msg("indicator length mismatch")
		return nanSeries(n)
	}
	return out
}
