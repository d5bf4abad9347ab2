package indicator

import (
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

const (
	defaultMACDFastPeriod   = 12
	defaultMACDSlowPeriod   = 26
	defaultMACDSignalPeriod = 9
)

// MovingAverageConvergenceDivergence computes the MACD line and signal with the
// standard 12/26/9 periods.
//
// The MACD line is EMA(12) - EMA(26). The signal is the 9-period EMA of the
// prices themselves, not of the MACD line.
//
// The series needs at least 26 samples, the longest of the three EMA windows.
// Every EMA is seeded with the first price, so a 27th sample is not needed to
// form a first difference.
func MovingAverageConvergenceDivergence(series types.PriceSeries) (types.MACDValue, error) {
	return calculateMACD(series, defaultMACDFastPeriod, defaultMACDSlowPeriod, defaultMACDSignalPeriod)
}

func calculateMACD(series types.PriceSeries, fastPeriod, slowPeriod, signalPeriod int) (types.MACDValue, error) {
	if err := requireSamples(types.IndicatorTypeMACD, series, max(fastPeriod, slowPeriod, signalPeriod)); err != nil {
		return types.MACDValue{}, err
	}

	fastEMA, err := ExponentialMovingAverage(series, fastPeriod)
	if err != nil {
		return types.MACDValue{}, err
	}

	slowEMA, err := ExponentialMovingAverage(series, slowPeriod)
	if err != nil {
		return types.MACDValue{}, err
	}

	signal, err := ExponentialMovingAverage(series, signalPeriod)
	if err != nil {
		return types.MACDValue{}, err
	}

	line, err := finiteResult(types.IndicatorTypeMACD, fastEMA-slowEMA)
	if err != nil {
		return types.MACDValue{}, err
	}

	return types.MACDValue{
		MACD:   line,
		Signal: signal,
	}, nil
}

// MACD represents the Moving Average Convergence Divergence indicator.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD indicator with default configuration.
func NewMACD() Indicator {
	return &MACD{
		fastPeriod:   defaultMACDFastPeriod,
		slowPeriod:   defaultMACDSlowPeriod,
		signalPeriod: defaultMACDSignalPeriod,
	}
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Config configures the MACD indicator. Expected parameters: fastPeriod, slowPeriod, signalPeriod (int or float64).
func (m *MACD) Config(params ...any) error {
	if len(params) != 3 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 3 parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int)")
	}

	names := []string{"fastPeriod", "slowPeriod", "signalPeriod"}
	periods := make([]int, len(params))

	for i, param := range params {
		period, err := periodParam(names[i], param)
		if err != nil {
			return err
		}

		periods[i] = period
	}

	if periods[0] >= periods[1] {
		return errors.Newf(errors.ErrCodeInvalidParameter, "fastPeriod (%d) must be less than slowPeriod (%d)", periods[0], periods[1])
	}

	m.fastPeriod = periods[0]
	m.slowPeriod = periods[1]
	m.signalPeriod = periods[2]

	return nil
}

// Calculate computes the MACD line and signal. The result carries both values
// under the keys "macd" and "signal".
func (m *MACD) Calculate(series types.PriceSeries) (types.IndicatorResult, error) {
	value, err := calculateMACD(series, m.fastPeriod, m.slowPeriod, m.signalPeriod)
	if err != nil {
		return types.IndicatorResult{}, err
	}

	return types.IndicatorResult{
		Indicator: m.Name(),
		Values: map[string]float64{
			types.MACDLineKey:   value.MACD,
			types.MACDSignalKey: value.Signal,
		},
	}, nil
}

// RawValue returns the MACD line value.
// It accepts parameters: series (types.PriceSeries).
func (m *MACD) RawValue(params ...any) (float64, error) {
	series, err := seriesParam(params)
	if err != nil {
		return 0, err
	}

	value, err := calculateMACD(series, m.fastPeriod, m.slowPeriod, m.signalPeriod)
	if err != nil {
		return 0, err
	}

	return value.MACD, nil
}
