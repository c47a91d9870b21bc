package model

import (
	"math"
	"time"
)

// PricePoint represents a single daily bar.
type PricePoint struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Quote is the current-price metadata record for a symbol.
type Quote struct {
	Symbol        string
	CompanyName   string
	CurrentPrice  float64
	PreviousClose float64
	Change        float64
	ChangePercent float64
	High52Week    float64
	Low52Week     float64
	Volume        int64
	MarketCap     int64
	FetchedAt     time.Time
}

// Closes extracts the close prices of a series.
func Closes(points []PricePoint) []float64 {
	closes := make([]float64, len(points))
	for i, p := range points {
		closes[i] = p.Close
	}
	return closes
}

// Volumes extracts the volumes of a series.
func Volumes(points []PricePoint) []float64 {
	vols := make([]float64, len(points))
	for i, p := range points {
		vols[i] = p.Volume
	}
	return vols
}

// TrailingMonths returns the suffix of points dated after the last point minus
// the given number of calendar months. The input must be chronological.
func TrailingMonths(points []PricePoint, months int) []PricePoint {
	if len(points) == 0 || months <= 0 {
		return points
	}
	cutoff := points[len(points)-1].Date.AddDate(0, -months, 0)
	start := len(points)
	for start > 0 && points[start-1].Date.After(cutoff) {
		start--
	}
	return points[start:]
}

// Finite returns a pointer to v, or nil when v is NaN or infinite.
func Finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
