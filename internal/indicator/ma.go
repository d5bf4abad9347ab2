package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-indicators/internal/types"
)

// MovingAverage returns the arithmetic mean of every price in the series.
func MovingAverage(series types.PriceSeries) (float64, error) {
	if err := requireSamples(types.IndicatorTypeMA, series, 1); err != nil {
		return 0, err
	}

	return finiteResult(types.IndicatorTypeMA, calculateSimpleMovingAverage(series))
}

// calculateSimpleMovingAverage calculates the mean price of a non-empty series.
func calculateSimpleMovingAverage(series types.PriceSeries) float64 {
	sum := 0.0
	for _, sample := range series {
		sum += sample.Price
	}

	if !math.IsInf(sum, 0) {
		return sum / float64(len(series))
	}

	// the sum overflowed, fall back to a running mean
	mean := 0.0
	for i, sample := range series {
		n := float64(i + 1)
		mean += sample.Price/n - mean/n
	}

	return mean
}

// MA indicator implements Simple Moving Average calculation over the whole series.
type MA struct{}

// NewMA creates a new MA indicator.
func NewMA() Indicator {
	return &MA{}
}

// Name returns the name of the indicator.
func (m *MA) Name() types.IndicatorType {
	return types.IndicatorTypeMA
}

// Config accepts no parameters; the average always spans the whole series.
func (m *MA) Config(params ...any) error {
	return noConfig(m.Name(), params)
}

// Calculate computes the moving average of the series.
func (m *MA) Calculate(series types.PriceSeries) (types.IndicatorResult, error) {
	value, err := MovingAverage(series)
	if err != nil {
		return types.IndicatorResult{}, err
	}

	return types.NewScalarResult(m.Name(), value), nil
}

// RawValue implements the Indicator interface.
// It accepts parameters: series (types.PriceSeries).
func (m *MA) RawValue(params ...any) (float64, error) {
	series, err := seriesParam(params)
	if err != nil {
		return 0, err
	}

	return MovingAverage(series)
}
