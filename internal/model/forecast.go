package model

import "time"

// ForecastPoint pairs a future calendar date with a predicted close.
// Price is nil only when the model produced a non-finite value.
type ForecastPoint struct {
	Date  time.Time
	Price *float64
}

// ForecastResult is a fresh, never-cached multi-day forecast.
type ForecastResult struct {
	Points     []ForecastPoint
	Confidence float64 // 0 ~ 100, training-set R²
	Model      string
}
