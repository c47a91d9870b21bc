package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAnalyzer/internal/model"
)

func flat(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// alternate appends steps deltas alternating between up and down to closes.
func alternate(closes []float64, steps int, up, down float64) []float64 {
	for i := 0; i < steps; i++ {
		d := up
		if i%2 == 1 {
			d = down
		}
		closes = append(closes, closes[len(closes)-1]+d)
	}
	return closes
}

func TestEvaluate_FlatSeriesIsHold(t *testing.T) {
	sig, err := Evaluate(flat(25, 100))
	require.NoError(t, err)
	assert.Equal(t, model.SignalHold, sig.Label)
	assert.Equal(t, 50.0, sig.Strength)
	assert.Equal(t, 0, sig.Score)
	require.NotNil(t, sig.PriceVsMA20)
	assert.Equal(t, 0.0, *sig.PriceVsMA20)
	require.NotNil(t, sig.RSI)
	assert.Equal(t, RSIFallback, *sig.RSI)
}

func TestEvaluate_ShortSeriesIsNeutral(t *testing.T) {
	sig, err := Evaluate(flat(19, 100))
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.Equal(t, model.SignalHold, sig.Label)
	assert.Equal(t, 0.0, sig.Strength)
	assert.Nil(t, sig.RSI)
	assert.Nil(t, sig.PriceVsMA20)
}

func TestEvaluate_StrongSell(t *testing.T) {
	closes := append(flat(15, 200), 100)
	closes = alternate(closes, 14, 3, -1)
	require.Len(t, closes, 30)

	sig, err := Evaluate(closes)
	require.NoError(t, err)
	assert.Equal(t, model.SignalStrongSell, sig.Label)
	assert.Equal(t, -3, sig.Score)
	assert.Equal(t, 100.0, sig.Strength)
	require.NotNil(t, sig.RSI)
	assert.InDelta(t, 75.0, *sig.RSI, 1e-9)
	require.NotNil(t, sig.PriceVsMA20)
	assert.InDelta(t, (114-130.95)/130.95*100, *sig.PriceVsMA20, 1e-9)
}

func TestEvaluate_StrongBuy(t *testing.T) {
	closes := append(flat(15, 100), 200)
	closes = alternate(closes, 14, -3, 1)

	sig, err := Evaluate(closes)
	require.NoError(t, err)
	assert.Equal(t, model.SignalStrongBuy, sig.Label)
	assert.Equal(t, 3, sig.Score)
	assert.Equal(t, 100.0, sig.Strength)
	assert.InDelta(t, 25.0, *sig.RSI, 1e-9)
	assert.Greater(t, *sig.PriceVsMA20, 0.0)
}

func TestEvaluate_Buy(t *testing.T) {
	closes := alternate([]float64{100}, 29, 2, -1)

	sig, err := Evaluate(closes)
	require.NoError(t, err)
	assert.Equal(t, model.SignalBuy, sig.Label)
	assert.Equal(t, 60.0, sig.Strength)
	assert.InDelta(t, 200.0/3.0, *sig.RSI, 1e-9)
}

func TestEvaluate_Sell(t *testing.T) {
	closes := alternate([]float64{100}, 29, -2, 1)

	sig, err := Evaluate(closes)
	require.NoError(t, err)
	assert.Equal(t, model.SignalSell, sig.Label)
	assert.Equal(t, 60.0, sig.Strength)
	assert.InDelta(t, 100.0/3.0, *sig.RSI, 1e-9)
	assert.Less(t, *sig.PriceVsMA20, 0.0)
}

func TestEvaluate_NonFiniteCloseIsNeutral(t *testing.T) {
	closes := flat(25, 100)
	closes[24] = math.NaN()
	sig, err := Evaluate(closes)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, model.NeutralSignal(), sig)
}

func TestMapLabel(t *testing.T) {
	cases := []struct {
		score    int
		label    model.SignalLabel
		strength float64
	}{
		{3, model.SignalStrongBuy, 100},
		{2, model.SignalStrongBuy, 200.0 / 3.0},
		{1, model.SignalBuy, 60},
		{0, model.SignalHold, 50},
		{-1, model.SignalSell, 60},
		{-2, model.SignalStrongSell, 200.0 / 3.0},
		{-3, model.SignalStrongSell, 100},
	}
	for _, c := range cases {
		label, strength := mapLabel(c.score)
		assert.Equal(t, c.label, label, "score %d", c.score)
		assert.InDelta(t, c.strength, strength, 1e-9, "score %d", c.score)
	}
}

func TestScoreRSI(t *testing.T) {
	assert.Equal(t, 2, scoreRSI(29.9))
	assert.Equal(t, 0, scoreRSI(30))
	assert.Equal(t, 0, scoreRSI(70))
	assert.Equal(t, -2, scoreRSI(70.1))
}
