// Package indicator computes technical indicators over a price series.
//
// Every calculation is a pure function of the series it is given: nothing is
// cached between calls, the input is never modified and nothing is logged.
// Calling the same function twice on the same series yields bit-identical
// results, and independent goroutines may share a series without locking.
//
// The package exposes each calculation twice: as a plain function
// (RelativeStrengthIndex, MovingAverage, ...) and as a configurable Indicator
// that can be registered in an IndicatorRegistry.
package indicator

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// Indicator interface defines methods that any technical indicator must implement
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Calculate computes the indicator over the whole series
	Calculate(series types.PriceSeries) (types.IndicatorResult, error)
	// RawValue returns the primary value of the indicator
	RawValue(params ...any) (float64, error)
	// Config updates the indicator parameters
	Config(params ...any) error
}

// seriesParam extracts the price series from the first RawValue parameter.
func seriesParam(params []any) (types.PriceSeries, error) {
	if len(params) < 1 {
		return nil, errors.New(errors.ErrCodeMissingParameter, "RawValue requires at least 1 parameter: series (types.PriceSeries)")
	}

	series, ok := params[0].(types.PriceSeries)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidType, "first parameter must be of type types.PriceSeries")
	}

	return series, nil
}

// periodOverride returns the period passed at params[index], or fallback when
// the parameter is absent or an empty optional.
func periodOverride(params []any, index int, fallback int) (int, error) {
	if len(params) <= index {
		return fallback, nil
	}

	switch p := params[index].(type) {
	case int:
		return p, nil
	case optional.Option[int]:
		if p.IsNone() {
			return fallback, nil
		}

		period, err := p.Take()
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeInvalidParameter, "failed to get period value", err)
		}

		return period, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidType, "invalid type for period parameter, expected int or optional.Option[int]")
	}
}

// periodConfig parses the single period parameter accepted by Config.
func periodConfig(params []any) (int, error) {
	if len(params) != 1 {
		return 0, errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	return periodParam("period", params[0])
}

// periodParam converts one Config parameter into a positive period.
func periodParam(name string, param any) (int, error) {
	var period int

	switch p := param.(type) {
	case int:
		period = p
	case float64:
		// YAML and JSON decoders hand numbers over as float64
		period = int(p)
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected int or float", name)
	}

	if period <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a positive integer, got %d", name, period)
	}

	return period, nil
}

// noConfig rejects parameters for indicators that have nothing to configure.
func noConfig(name types.IndicatorType, params []any) error {
	if len(params) != 0 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "%s takes no configuration, got %d parameters", name, len(params))
	}

	return nil
}

func validatePeriod(period int) error {
	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	return nil
}

func requireSamples(indicator types.IndicatorType, series types.PriceSeries, required int) error {
	if len(series) < required {
		return errors.NewInsufficientDataErrorf(string(indicator), required, len(series),
			"insufficient data for %s: required %d samples, got %d", indicator, required, len(series))
	}

	return nil
}

// finiteResult rejects NaN and infinite results, which extreme but finite
// prices can still produce.
func finiteResult(indicator types.IndicatorType, value float64) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errors.Newf(errors.ErrCodeNumericOverflow, "%s result is not finite (%v): prices are out of range", indicator, value)
	}

	return value, nil
}
