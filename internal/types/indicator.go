package types

type IndicatorType string

const (
	IndicatorTypeRSI                  IndicatorType = "rsi"
	IndicatorTypeMA                   IndicatorType = "ma"
	IndicatorTypeEMA                  IndicatorType = "ema"
	IndicatorTypeMACD                 IndicatorType = "macd"
	IndicatorTypeATR                  IndicatorType = "atr"
	IndicatorTypeStochasticOscillator IndicatorType = "stochastic_oscillator"
	IndicatorTypeROC                  IndicatorType = "roc"
	// IndicatorTypeOBVProxy is the tick-direction stand-in for on-balance volume.
	// It carries no volume weighting.
	IndicatorTypeOBVProxy IndicatorType = "obv_proxy"
)

// AllIndicatorTypes returns every indicator in the order reports list them.
func AllIndicatorTypes() []IndicatorType {
	return []IndicatorType{
		IndicatorTypeRSI,
		IndicatorTypeMA,
		IndicatorTypeEMA,
		IndicatorTypeMACD,
		IndicatorTypeATR,
		IndicatorTypeStochasticOscillator,
		IndicatorTypeROC,
		IndicatorTypeOBVProxy,
	}
}

// Valid reports whether t is one of the known indicator types.
func (t IndicatorType) Valid() bool {
	for _, known := range AllIndicatorTypes() {
		if t == known {
			return true
		}
	}

	return false
}

// Component keys of a MACD IndicatorResult.
const (
	MACDLineKey   = "macd"
	MACDSignalKey = "signal"
)

// MACDValue is the vector result of the MACD indicator.
type MACDValue struct {
	// MACD is the fast EMA minus the slow EMA
	MACD float64 `json:"macd" yaml:"macd"`
	// Signal is the signal EMA
	Signal float64 `json:"signal" yaml:"signal"`
}

// IndicatorResult is a named scalar or a small fixed-size vector produced by one indicator.
type IndicatorResult struct {
	// Indicator is the indicator that produced the values
	Indicator IndicatorType
	// Values holds the components keyed by name. The primary component
	// is keyed by the indicator name itself.
	Values map[string]float64
}

// NewScalarResult creates a single-value result keyed by the indicator name.
func NewScalarResult(indicator IndicatorType, value float64) IndicatorResult {
	return IndicatorResult{
		Indicator: indicator,
		Values: map[string]float64{
			string(indicator): value,
		},
	}
}

// Value returns the primary component of the result.
func (r IndicatorResult) Value() float64 {
	return r.Values[string(r.Indicator)]
}

// IsScalar reports whether the result carries exactly one component.
func (r IndicatorResult) IsScalar() bool {
	return len(r.Values) == 1
}
