package analysis

import (
	"errors"
	"math"
	"time"
)

// ErrNoData is returned when a fit or forecast has nothing to work with
var ErrNoData = errors.New("no data points")

// daysPerStep is the width of one unit on the month axis
const daysPerStep = 30.0

// LinearModel is y = Slope*x + Intercept
type LinearModel struct {
	Slope     float64
	Intercept float64
}

// Predict evaluates the model at x
func (m LinearModel) Predict(x float64) float64 {
	return m.Slope*x + m.Intercept
}

// FitLinear fits an ordinary least squares line through (xs[i], ys[i]).
// With a single distinct x the slope is 0 and the intercept is the mean of ys.
func FitLinear(xs, ys []float64) (LinearModel, error) {
	if len(xs) != len(ys) {
		return LinearModel{}, errors.New("xs and ys differ in length")
	}
	n := float64(len(xs))
	if n == 0 {
		return LinearModel{}, ErrNoData
	}

	var meanX, meanY float64
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= n
	meanY /= n

	var sxy, sxx float64
	for i := range xs {
		dx := xs[i] - meanX
		sxy += dx * (ys[i] - meanY)
		sxx += dx * dx
	}

	if sxx == 0 {
		return LinearModel{Slope: 0, Intercept: meanY}, nil
	}
	slope := sxy / sxx
	return LinearModel{Slope: slope, Intercept: meanY - slope*meanX}, nil
}

// EncodeMonth maps a month onto the regression axis: days since origin divided by 30.
func EncodeMonth(month, origin time.Time) float64 {
	return month.Sub(origin).Hours() / 24 / daysPerStep
}

// Forecast is the trend prediction for the month after the last observed one
type Forecast struct {
	Origin    time.Time // earliest month, x = 0
	NextMonth time.Time
	Model     LinearModel
	Raw       float64 // model output before clamping
	Value     float64 // Raw clamped at zero
}

// Predicted is the forecast truncated to whole currency units
func (f Forecast) Predicted() int64 {
	return int64(math.Trunc(f.Value))
}

// PredictNextMonth fits a trend over the monthly totals and evaluates it one calendar
// month after the latest month. Negative predictions are clamped to zero.
func PredictNextMonth(totals []MonthlyTotal) (Forecast, error) {
	if len(totals) == 0 {
		return Forecast{}, ErrNoData
	}

	origin, latest := totals[0].Month, totals[0].Month
	for _, t := range totals {
		if t.Month.Before(origin) {
			origin = t.Month
		}
		if t.Month.After(latest) {
			latest = t.Month
		}
	}

	xs := make([]float64, len(totals))
	ys := make([]float64, len(totals))
	for i, t := range totals {
		xs[i] = EncodeMonth(t.Month, origin)
		ys[i] = t.Amount.InexactFloat64()
	}

	model, err := FitLinear(xs, ys)
	if err != nil {
		return Forecast{}, err
	}

	next := AddMonths(latest, 1)
	raw := model.Predict(EncodeMonth(next, origin))
	return Forecast{
		Origin:    origin,
		NextMonth: next,
		Model:     model,
		Raw:       raw,
		Value:     math.Max(0, raw),
	}, nil
}
