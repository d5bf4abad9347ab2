package indicator

import (
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// StochasticOscillator locates the last price within the range of the whole series.
//
// The result is 100 * (last - min) / (max - min) and always lies in [0, 100].
// A flat series has no range and fails with a DegenerateRangeError.
func StochasticOscillator(series types.PriceSeries) (float64, error) {
	if err := requireSamples(types.IndicatorTypeStochasticOscillator, series, 1); err != nil {
		return 0, err
	}

	lowest := series[0].Price
	highest := series[0].Price

	for _, sample := range series[1:] {
		if sample.Price < lowest {
			lowest = sample.Price
		}

		if sample.Price > highest {
			highest = sample.Price
		}
	}

	if highest == lowest {
		return 0, errors.NewDegenerateRangeErrorf(string(types.IndicatorTypeStochasticOscillator),
			"price range is zero: every sample is %v", highest)
	}

	return finiteResult(types.IndicatorTypeStochasticOscillator, 100*(series.Last().Price-lowest)/(highest-lowest))
}

// Stochastic represents the Stochastic Oscillator indicator.
type Stochastic struct{}

// NewStochastic creates a new Stochastic Oscillator indicator.
func NewStochastic() Indicator {
	return &Stochastic{}
}

// Name returns the name of the indicator.
func (s *Stochastic) Name() types.IndicatorType {
	return types.IndicatorTypeStochasticOscillator
}

// Config accepts no parameters; the range always spans the whole series.
func (s *Stochastic) Config(params ...any) error {
	return noConfig(s.Name(), params)
}

// Calculate computes the stochastic oscillator of the series.
func (s *Stochastic) Calculate(series types.PriceSeries) (types.IndicatorResult, error) {
	value, err := StochasticOscillator(series)
	if err != nil {
		return types.IndicatorResult{}, err
	}

	return types.NewScalarResult(s.Name(), value), nil
}

// RawValue implements the Indicator interface.
// It accepts parameters: series (types.PriceSeries).
func (s *Stochastic) RawValue(params ...any) (float64, error) {
	series, err := seriesParam(params)
	if err != nil {
		return 0, err
	}

	return StochasticOscillator(series)
}
