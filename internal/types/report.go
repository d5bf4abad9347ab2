package types

import "time"

// IndicatorReport collects every indicator computed over one price series.
type IndicatorReport struct {
	// ID uniquely identifies the computation
	ID string
	// Symbol is the asset the series belongs to, if known
	Symbol string
	// Source is where the series was loaded from, if known
	Source string
	// Samples is the length of the series
	Samples int
	// Start is the time of the oldest sample
	Start time.Time
	// End is the time of the newest sample
	End time.Time
	// Results holds the indicators that were computed successfully
	Results map[IndicatorType]IndicatorResult
	// Errors holds the indicators that rejected the series
	Errors map[IndicatorType]error
}

// Succeeded reports whether every requested indicator produced a value.
func (r IndicatorReport) Succeeded() bool {
	return len(r.Errors) == 0
}

// Result returns the result for the given indicator, if any.
func (r IndicatorReport) Result(indicator IndicatorType) (IndicatorResult, bool) {
	result, ok := r.Results[indicator]

	return result, ok
}
