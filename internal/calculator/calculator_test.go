package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAnalyzer/internal/model"
)

func seriesFromCloses(closes []float64) []model.PricePoint {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		out[i] = model.PricePoint{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1_000_000,
		}
	}
	return out
}

func TestCalculateSMA(t *testing.T) {
	v, err := CalculateSMA([]float64{1, 2, 3, 4, 5}, 3)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, v, 1e-12)

	_, err = CalculateSMA([]float64{1, 2}, 3)
	assert.Error(t, err)
	_, err = CalculateSMA([]float64{1, 2}, 0)
	assert.Error(t, err)
}

func TestSMASeries_Windows(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	out := SMASeries(values, 3)
	require.Len(t, out, len(values))
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.Equal(t, 2.0, out[2])
	assert.Equal(t, 9.0, out[9])
}

func TestSMASeries_NaNPoisonsWindow(t *testing.T) {
	values := []float64{1, 2, math.NaN(), 4, 5, 6}
	out := SMASeries(values, 2)
	assert.True(t, math.IsNaN(out[2]))
	assert.True(t, math.IsNaN(out[3]))
	assert.Equal(t, 4.5, out[4])
}

func TestRSISeries_FirstRowsAbsent(t *testing.T) {
	closes := []float64{100}
	for i := 0; i < 14; i++ {
		if i%2 == 0 {
			closes = append(closes, closes[len(closes)-1]+2)
		} else {
			closes = append(closes, closes[len(closes)-1]-1)
		}
	}
	out := RSISeries(closes, RSIPeriod)
	require.Len(t, out, 15)
	for i := 0; i < RSIPeriod; i++ {
		assert.True(t, math.IsNaN(out[i]), "row %d should be absent", i)
	}
	// mean gain 1, mean loss 0.5 -> RS 2
	assert.InDelta(t, 200.0/3.0, out[14], 1e-9)
}

func TestRSISeries_NoLossesIsAbsent(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	for i, v := range RSISeries(closes, RSIPeriod) {
		assert.True(t, math.IsNaN(v), "row %d should be absent", i)
	}
}

func TestRSISeries_Bounds(t *testing.T) {
	closes := make([]float64, 80)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)/3)
	}
	for _, v := range RSISeries(closes, RSIPeriod) {
		if math.IsNaN(v) {
			continue
		}
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
}

func TestEMASeries_Recurrence(t *testing.T) {
	out := EMASeries([]float64{1, 2, 3}, 3)
	assert.Equal(t, []float64{1, 1.5, 2.25}, out)
}

func TestEMASeries_SkipsLeadingNaN(t *testing.T) {
	out := EMASeries([]float64{math.NaN(), 4, math.NaN(), 8}, 3)
	assert.True(t, math.IsNaN(out[0]))
	assert.Equal(t, 4.0, out[1])
	assert.Equal(t, 4.0, out[2])
	assert.Equal(t, 6.0, out[3])
}

func TestMACDSeries_DefinedFromFirstRow(t *testing.T) {
	closes := []float64{10, 11, 12, 13}
	macd, signal := MACDSeries(closes, MACDFast, MACDSlow, MACDSignal)
	require.Len(t, macd, 4)
	require.Len(t, signal, 4)
	assert.Equal(t, 0.0, macd[0])
	assert.Equal(t, 0.0, signal[0])

	fast := EMASeries(closes, MACDFast)
	slow := EMASeries(closes, MACDSlow)
	for i := range closes {
		assert.Equal(t, fast[i]-slow[i], macd[i])
	}
	assert.Greater(t, macd[3], 0.0)
}

func TestMACDSeries_SignalFollowsRecurrence(t *testing.T) {
	closes := []float64{50, 52.5, 51, 49.75, 53, 55.25, 54, 51.5, 52, 56, 57.5, 55}
	macd, signal := MACDSeries(closes, MACDFast, MACDSlow, MACDSignal)
	require.Len(t, signal, len(closes))

	alpha := 2.0 / float64(MACDSignal+1)
	want := macd[0]
	assert.InDelta(t, want, signal[0], 1e-12)
	for i := 1; i < len(macd); i++ {
		want = macd[i]*alpha + want*(1-alpha)
		assert.InDelta(t, want, signal[i], 1e-12, "row %d", i)
	}
}

func TestEnrich_Empty(t *testing.T) {
	assert.Empty(t, Enrich(nil))
}

func TestEnrich_Alignment(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i%7) - float64(i%3)
	}
	series := seriesFromCloses(closes)
	rows := Enrich(series)
	require.Len(t, rows, len(series))

	for i, row := range rows {
		assert.Equal(t, series[i], row.PricePoint)
		assert.Equal(t, i >= MAShort-1, row.MA7 != nil, "ma7 row %d", i)
		assert.Equal(t, i >= MAMedium-1, row.MA20 != nil, "ma20 row %d", i)
		assert.Equal(t, i >= MALong-1, row.MA50 != nil, "ma50 row %d", i)
		assert.NotNil(t, row.MACD, "macd row %d", i)
		assert.NotNil(t, row.MACDSignal, "signal row %d", i)
		if i < RSIPeriod {
			assert.Nil(t, row.RSI, "rsi row %d", i)
		}
	}
}

func TestEnrich_Idempotent(t *testing.T) {
	closes := make([]float64, 70)
	for i := range closes {
		closes[i] = 50 + 5*math.Cos(float64(i)/4) + float64(i)/10
	}
	series := seriesFromCloses(closes)
	assert.Equal(t, Enrich(series), Enrich(series))
}

func TestGuard_RecoversPanic(t *testing.T) {
	out := guard("boom", 3, func() []float64 { panic("bad input") })
	require.Len(t, out, 3)
	for _, v := range out {
		assert.True(t, math.IsNaN(v))
	}
}

func TestCalculate52WeekRange(t *testing.T) {
	series := seriesFromCloses([]float64{10, 20, 15})
	high, low, err := Calculate52WeekRange(series)
	require.NoError(t, err)
	assert.Equal(t, 21.0, high)
	assert.Equal(t, 9.0, low)

	_, _, err = Calculate52WeekRange(nil)
	assert.Error(t, err)
}
