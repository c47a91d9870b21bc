// Package strategy classifies recent price action into a discrete signal.
package strategy

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"StockAnalyzer/internal/calculator"
	"StockAnalyzer/internal/model"
)

// MinRows is the shortest close series Evaluate will classify.
const MinRows = 20

var (
	ErrInsufficientData = errors.New("insufficient data for signal")
	ErrUnavailable      = errors.New("signal unavailable")
)

// Fixed strengths for the non-strong labels.
const (
	StrengthSingle = 60.0
	StrengthHold   = 50.0
)

// mapLabel maps a total score to a label and strength.
func mapLabel(score int) (model.SignalLabel, float64) {
	switch {
	case score >= 2:
		return model.SignalStrongBuy, strongStrength(score)
	case score == 1:
		return model.SignalBuy, StrengthSingle
	case score == -1:
		return model.SignalSell, StrengthSingle
	case score <= -2:
		return model.SignalStrongSell, strongStrength(score)
	default:
		return model.SignalHold, StrengthHold
	}
}

// Evaluate classifies the latest close in closes (chronological, roughly one
// month). Series shorter than MinRows yield the neutral result together with
// ErrInsufficientData; any other failure yields the neutral result with
// ErrUnavailable. The returned result is always usable.
func Evaluate(closes []float64) (sig model.SignalResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("panic", fmt.Sprint(r)).Msg("signal classifier panicked")
			sig, err = model.NeutralSignal(), ErrUnavailable
		}
	}()

	if len(closes) < MinRows {
		return model.NeutralSignal(), fmt.Errorf("%w: %d rows, need %d", ErrInsufficientData, len(closes), MinRows)
	}

	price := closes[len(closes)-1]
	ma20, err := calculator.CalculateSMA(closes, MinRows)
	if err != nil {
		return model.NeutralSignal(), fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !finite(price) || !finite(ma20) {
		return model.NeutralSignal(), fmt.Errorf("%w: non-finite close or MA20", ErrUnavailable)
	}

	rsi := calculator.LatestRSI(closes, calculator.RSIPeriod)
	if !finite(rsi) {
		rsi = RSIFallback
	}

	score := scorePriceVsMA20(price, ma20) + scoreRSI(rsi)
	label, strength := mapLabel(score)

	return model.SignalResult{
		Label:       label,
		Score:       score,
		Strength:    strength,
		RSI:         model.Finite(rsi),
		PriceVsMA20: model.Finite(deviationPct(price, ma20)),
	}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
