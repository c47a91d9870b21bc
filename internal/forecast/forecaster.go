// Package forecast projects future closes with a min-max scaled linear
// regression over day index, volume and the 5-day close average.
package forecast

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"StockAnalyzer/internal/calculator"
	"StockAnalyzer/internal/model"
)

const (
	// ModelName identifies results produced by this package.
	ModelName = "Linear Regression"

	MinRawRows   = 30
	MinCleanRows = 20
	MAWindow     = 5
)

var (
	ErrInsufficientData = errors.New("insufficient data for forecast")
	ErrUnavailable      = errors.New("forecast unavailable")
)

// Forecaster is stateless apart from its clock; one instance is safe for
// concurrent use.
type Forecaster struct {
	now func() time.Time
}

// Option configures a Forecaster.
type Option func(*Forecaster)

// WithClock sets the clock used to date forecast points.
func WithClock(now func() time.Time) Option {
	return func(f *Forecaster) { f.now = now }
}

func New(opts ...Option) *Forecaster {
	f := &Forecaster{now: time.Now}
	for _, o := range opts {
		o(f)
	}
	return f
}

type trainingRow struct {
	index  float64
	volume float64
	ma     float64
	close  float64
}

// Forecast projects days future closes from series. It returns
// ErrInsufficientData when there are too few usable rows and ErrUnavailable
// for any other failure; a non-nil result is always complete.
func (f *Forecaster) Forecast(series []model.PricePoint, days int) (res *model.ForecastResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("panic", fmt.Sprint(r)).Msg("forecast pipeline panicked")
			res, err = nil, ErrUnavailable
		}
	}()

	if days < 1 {
		return nil, fmt.Errorf("%w: horizon %d", ErrUnavailable, days)
	}
	if len(series) < MinRawRows {
		return nil, fmt.Errorf("%w: %d rows, need %d", ErrInsufficientData, len(series), MinRawRows)
	}

	rows := buildTrainingRows(series)
	if len(rows) < MinCleanRows {
		return nil, fmt.Errorf("%w: %d clean rows, need %d", ErrInsufficientData, len(rows), MinCleanRows)
	}

	features := make([][]float64, len(rows))
	targets := make([][]float64, len(rows))
	for i, r := range rows {
		features[i] = []float64{r.index, r.volume, r.ma}
		targets[i] = []float64{r.close}
	}
	xScaler := fitMinMax(features)
	yScaler := fitMinMax(targets)

	xs := make([][]float64, len(rows))
	ys := make([]float64, len(rows))
	for i := range rows {
		xs[i] = xScaler.transform(features[i])
		ys[i] = yScaler.transform(targets[i])[0]
	}

	lm, err := fitOLS(xs, ys)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	lastRow := rows[len(rows)-1]
	volume := heldVolume(rows)
	ma := lastRow.ma
	today := f.now()

	points := make([]model.ForecastPoint, days)
	for k := 1; k <= days; k++ {
		x := xScaler.transform([]float64{lastRow.index + float64(k), volume, ma})
		price := yScaler.inverse([]float64{lm.predict(x)})[0]

		point := model.ForecastPoint{Date: today.AddDate(0, 0, k)}
		if !math.IsNaN(price) && !math.IsInf(price, 0) {
			point.Price = model.Finite(model.Round2(price))
			ma = (ma*4 + price) / 5
		}
		points[k-1] = point
	}

	confidence := lm.r2(xs, ys) * 100
	if math.IsNaN(confidence) {
		confidence = 0
	}
	confidence = math.Max(0, math.Min(100, confidence))

	return &model.ForecastResult{
		Points:     points,
		Confidence: confidence,
		Model:      ModelName,
	}, nil
}

// buildTrainingRows keeps rows with a defined 5-day average and finite features.
// The day index is the row's position in the raw series.
func buildTrainingRows(series []model.PricePoint) []trainingRow {
	ma := calculator.SMASeries(model.Closes(series), MAWindow)
	rows := make([]trainingRow, 0, len(series))
	for i, p := range series {
		if !finite(ma[i]) || !finite(p.Volume) || !finite(p.Close) {
			continue
		}
		rows = append(rows, trainingRow{
			index:  float64(i),
			volume: p.Volume,
			ma:     ma[i],
			close:  p.Close,
		})
	}
	return rows
}

// heldVolume is the volume of the last training row, or the mean of the
// finite training volumes when it is not finite.
func heldVolume(rows []trainingRow) float64 {
	if v := rows[len(rows)-1].volume; finite(v) {
		return v
	}
	sum, n := 0.0, 0
	for _, r := range rows {
		if finite(r.volume) {
			sum += r.volume
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
