package indicator

import (
	"github.com/rxtech-lab/argo-indicators/internal/types"
)

const defaultRSIPeriod = 14

// RelativeStrengthIndex computes the RSI over the last period price changes of the series.
//
// Gains and losses are summed over the window and averaged by period, without
// Wilder smoothing. The series needs at least period+1 samples. A window with
// no losses yields exactly 100.
func RelativeStrengthIndex(series types.PriceSeries, period int) (float64, error) {
	if err := validatePeriod(period); err != nil {
		return 0, err
	}

	if err := requireSamples(types.IndicatorTypeRSI, series, period+1); err != nil {
		return 0, err
	}

	gain, loss := 0.0, 0.0

	for i := len(series) - period; i < len(series); i++ {
		change := series[i].Price - series[i-1].Price
		if change > 0 {
			gain += change
		} else {
			loss -= change
		}
	}

	avgGain := gain / float64(period)
	avgLoss := loss / float64(period)

	if avgLoss == 0 {
		return 100, nil
	}

	rs := avgGain / avgLoss

	return finiteResult(types.IndicatorTypeRSI, 100-(100/(1+rs)))
}

// RSI represents the Relative Strength Index indicator.
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator with default configuration.
func NewRSI() Indicator {
	return &RSI{
		period: defaultRSIPeriod,
	}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Config configures the RSI indicator. Expected parameters: period (int).
func (r *RSI) Config(params ...any) error {
	period, err := periodConfig(params)
	if err != nil {
		return err
	}

	r.period = period

	return nil
}

// Calculate computes the RSI with the configured period.
func (r *RSI) Calculate(series types.PriceSeries) (types.IndicatorResult, error) {
	value, err := RelativeStrengthIndex(series, r.period)
	if err != nil {
		return types.IndicatorResult{}, err
	}

	return types.NewScalarResult(r.Name(), value), nil
}

// RawValue implements the Indicator interface.
// It accepts parameters: series (types.PriceSeries), period (int or optional.Option[int], optional).
func (r *RSI) RawValue(params ...any) (float64, error) {
	series, err := seriesParam(params)
	if err != nil {
		return 0, err
	}

	period, err := periodOverride(params, 1, r.period)
	if err != nil {
		return 0, err
	}

	return RelativeStrengthIndex(series, period)
}
