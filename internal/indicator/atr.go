package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-indicators/internal/types"
)

// AverageTrueRange approximates the ATR from close prices alone.
//
// With no high/low data the true range of a step is the absolute change
// between consecutive prices, and the result is the mean of those changes.
// A single-sample series has no steps and yields 0.
func AverageTrueRange(series types.PriceSeries) (float64, error) {
	if err := requireSamples(types.IndicatorTypeATR, series, 1); err != nil {
		return 0, err
	}

	if len(series) < 2 {
		return 0, nil
	}

	steps := len(series) - 1

	sum := 0.0
	for i := 1; i < len(series); i++ {
		sum += math.Abs(series[i].Price - series[i-1].Price)
	}

	if !math.IsInf(sum, 0) {
		return finiteResult(types.IndicatorTypeATR, sum/float64(steps))
	}

	mean := 0.0
	for i := 1; i < len(series); i++ {
		n := float64(i)
		mean += math.Abs(series[i].Price-series[i-1].Price)/n - mean/n
	}

	return finiteResult(types.IndicatorTypeATR, mean)
}

// ATR represents the close-to-close Average True Range indicator.
type ATR struct{}

// NewATR creates a new ATR indicator.
func NewATR() Indicator {
	return &ATR{}
}

// Name returns the name of the indicator.
func (a *ATR) Name() types.IndicatorType {
	return types.IndicatorTypeATR
}

// Config accepts no parameters.
func (a *ATR) Config(params ...any) error {
	return noConfig(a.Name(), params)
}

// Calculate computes the ATR of the series.
func (a *ATR) Calculate(series types.PriceSeries) (types.IndicatorResult, error) {
	value, err := AverageTrueRange(series)
	if err != nil {
		return types.IndicatorResult{}, err
	}

	return types.NewScalarResult(a.Name(), value), nil
}

// RawValue implements the Indicator interface.
// It accepts parameters: series (types.PriceSeries).
func (a *ATR) RawValue(params ...any) (float64, error) {
	series, err := seriesParam(params)
	if err != nil {
		return 0, err
	}

	return AverageTrueRange(series)
}
