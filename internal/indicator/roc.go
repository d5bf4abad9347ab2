package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// RateOfChange returns the percentage change from the first price to the last.
//
// A series that starts at zero has no base to compare against and fails with
// a DegenerateRangeError.
func RateOfChange(series types.PriceSeries) (float64, error) {
	if err := requireSamples(types.IndicatorTypeROC, series, 1); err != nil {
		return 0, err
	}

	first := series.First().Price
	if first == 0 {
		return 0, errors.NewDegenerateRangeError(string(types.IndicatorTypeROC), "first price is zero")
	}

	change := 100 * (series.Last().Price - first) / first
	if math.IsInf(change, 0) {
		// scaling first can overflow for extreme prices
		change = (series.Last().Price - first) / first * 100
	}

	return finiteResult(types.IndicatorTypeROC, change)
}

// ROC represents the Rate of Change indicator.
type ROC struct{}

// NewROC creates a new ROC indicator.
func NewROC() Indicator {
	return &ROC{}
}

// Name returns the name of the indicator.
func (r *ROC) Name() types.IndicatorType {
	return types.IndicatorTypeROC
}

// Config accepts no parameters.
func (r *ROC) Config(params ...any) error {
	return noConfig(r.Name(), params)
}

// Calculate computes the rate of change of the series.
func (r *ROC) Calculate(series types.PriceSeries) (types.IndicatorResult, error) {
	value, err := RateOfChange(series)
	if err != nil {
		return types.IndicatorResult{}, err
	}

	return types.NewScalarResult(r.Name(), value), nil
}

// RawValue implements the Indicator interface.
// It accepts parameters: series (types.PriceSeries).
func (r *ROC) RawValue(params ...any) (float64, error) {
	series, err := seriesParam(params)
	if err != nil {
		return 0, err
	}

	return RateOfChange(series)
}
