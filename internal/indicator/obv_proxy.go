package indicator

import (
	"github.com/rxtech-lab/argo-indicators/internal/types"
)

// OnBalanceVolumeProxy counts up-ticks minus down-ticks across the series.
//
// Volume is not available, so every step contributes +1 when the price rises,
// -1 when it falls and nothing when it is unchanged. The result always lies in
// [-(n-1), n-1] and is 0 for a single sample.
func OnBalanceVolumeProxy(series types.PriceSeries) (int, error) {
	if err := requireSamples(types.IndicatorTypeOBVProxy, series, 1); err != nil {
		return 0, err
	}

	obv := 0

	for i := 1; i < len(series); i++ {
		switch {
		case series[i].Price > series[i-1].Price:
			obv++
		case series[i].Price < series[i-1].Price:
			obv--
		}
	}

	return obv, nil
}

// OBVProxy represents the tick-counting On-Balance-Volume proxy.
type OBVProxy struct{}

// NewOBVProxy creates a new OBV proxy indicator.
func NewOBVProxy() Indicator {
	return &OBVProxy{}
}

// Name returns the name of the indicator.
func (o *OBVProxy) Name() types.IndicatorType {
	return types.IndicatorTypeOBVProxy
}

// Config accepts no parameters.
func (o *OBVProxy) Config(params ...any) error {
	return noConfig(o.Name(), params)
}

// Calculate computes the OBV proxy of the series.
func (o *OBVProxy) Calculate(series types.PriceSeries) (types.IndicatorResult, error) {
	value, err := o.RawValue(series)
	if err != nil {
		return types.IndicatorResult{}, err
	}

	return types.NewScalarResult(o.Name(), value), nil
}

// RawValue implements the Indicator interface.
// It accepts parameters: series (types.PriceSeries).
func (o *OBVProxy) RawValue(params ...any) (float64, error) {
	series, err := seriesParam(params)
	if err != nil {
		return 0, err
	}

	obv, err := OnBalanceVolumeProxy(series)
	if err != nil {
		return 0, err
	}

	return float64(obv), nil
}
