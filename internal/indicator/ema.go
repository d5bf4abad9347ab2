package indicator

import (
	"github.com/rxtech-lab/argo-indicators/internal/types"
)

const defaultEMAPeriod = 7

// ExponentialMovingAverage computes the EMA of the series for the given period.
//
// The EMA is seeded with the first price and then updated with every
// remaining sample, where Multiplier = 2 / (Period + 1). The whole series is
// consumed regardless of period, so a single-sample series returns its price.
func ExponentialMovingAverage(series types.PriceSeries, period int) (float64, error) {
	if err := validatePeriod(period); err != nil {
		return 0, err
	}

	if err := requireSamples(types.IndicatorTypeEMA, series, 1); err != nil {
		return 0, err
	}

	return finiteResult(types.IndicatorTypeEMA, calculateExponentialMovingAverage(series, period))
}

// calculateExponentialMovingAverage runs the EMA recurrence over a non-empty series.
func calculateExponentialMovingAverage(series types.PriceSeries, period int) float64 {
	multiplier := 2.0 / float64(period+1)

	ema := series[0].Price
	for i := 1; i < len(series); i++ {
		ema = (series[i].Price-ema)*multiplier + ema
	}

	return ema
}

// EMA indicator implements Exponential Moving Average calculation.
type EMA struct {
	period int
}

// NewEMA creates a new EMA indicator with default configuration.
func NewEMA() Indicator {
	return &EMA{
		period: defaultEMAPeriod,
	}
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Config configures the EMA indicator. Expected parameters: period (int).
func (e *EMA) Config(params ...any) error {
	period, err := periodConfig(params)
	if err != nil {
		return err
	}

	e.period = period

	return nil
}

// Calculate computes the EMA with the configured period.
func (e *EMA) Calculate(series types.PriceSeries) (types.IndicatorResult, error) {
	value, err := ExponentialMovingAverage(series, e.period)
	if err != nil {
		return types.IndicatorResult{}, err
	}

	return types.NewScalarResult(e.Name(), value), nil
}

// RawValue calculates the EMA value for a series and an optional period.
// It accepts parameters: series (types.PriceSeries), period (int or optional.Option[int], optional).
func (e *EMA) RawValue(params ...any) (float64, error) {
	series, err := seriesParam(params)
	if err != nil {
		return 0, err
	}

	period, err := periodOverride(params, 1, e.period)
	if err != nil {
		return 0, err
	}

	return ExponentialMovingAverage(series, period)
}
