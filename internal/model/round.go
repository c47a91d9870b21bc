package model

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 rounds v to 2 decimal places. Non-finite values pass through unchanged.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// RoundPtr rounds a present value to 2 decimal places; absent stays absent.
func RoundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return Finite(Round2(*v))
}
