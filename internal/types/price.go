package types

import (
	"math"
	"time"

	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// PriceSample is a single observed price.
type PriceSample struct {
	// Timestamp is the sample time in epoch milliseconds
	Timestamp int64 `json:"timestamp" yaml:"timestamp"`
	// Price is the observed price. Positive prices are expected but not enforced.
	Price float64 `json:"price" yaml:"price"`
}

// Time returns the sample timestamp as a UTC time.
func (p PriceSample) Time() time.Time {
	return time.UnixMilli(p.Timestamp).UTC()
}

// PriceSeries is an ordered sequence of samples, oldest first.
// Indicator functions treat a series as read-only.
type PriceSeries []PriceSample

// Len returns the number of samples in the series.
func (s PriceSeries) Len() int {
	return len(s)
}

// Prices returns a copy of the price column.
func (s PriceSeries) Prices() []float64 {
	prices := make([]float64, len(s))
	for i, sample := range s {
		prices[i] = sample.Price
	}

	return prices
}

// First returns the oldest sample. The series must not be empty.
func (s PriceSeries) First() PriceSample {
	return s[0]
}

// Last returns the newest sample. The series must not be empty.
func (s PriceSeries) Last() PriceSample {
	return s[len(s)-1]
}

// IsSorted reports whether timestamps are monotonically non-decreasing.
func (s PriceSeries) IsSorted() bool {
	for i := 1; i < len(s); i++ {
		if s[i].Timestamp < s[i-1].Timestamp {
			return false
		}
	}

	return true
}

// Validate checks that the series is ordered by timestamp and that every price is finite.
// Duplicate timestamps are allowed.
func (s PriceSeries) Validate() error {
	for i, sample := range s {
		if math.IsNaN(sample.Price) || math.IsInf(sample.Price, 0) {
			return errors.Newf(errors.ErrCodeMarketDataParseFailed, "sample %d has a non-finite price: %v", i, sample.Price)
		}

		if i > 0 && sample.Timestamp < s[i-1].Timestamp {
			return errors.Newf(errors.ErrCodeUnorderedSeries, "sample %d at %d is older than sample %d at %d", i, sample.Timestamp, i-1, s[i-1].Timestamp)
		}
	}

	return nil
}

// NewPriceSeries builds a series from parallel timestamp and price slices.
func NewPriceSeries(timestamps []int64, prices []float64) (PriceSeries, error) {
	if len(timestamps) != len(prices) {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "timestamps and prices differ in length: %d != %d", len(timestamps), len(prices))
	}

	series := make(PriceSeries, len(prices))
	for i := range prices {
		series[i] = PriceSample{Timestamp: timestamps[i], Price: prices[i]}
	}

	return series, nil
}
