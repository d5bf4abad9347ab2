package indicator

import (
	"github.com/rxtech-lab/argo-indicators/internal/types"
)

// seriesOf builds a series with one-minute spaced timestamps.
func seriesOf(prices ...float64) types.PriceSeries {
	series := make(types.PriceSeries, len(prices))
	for i, price := range prices {
		series[i] = types.PriceSample{
			Timestamp: 1700000000000 + int64(i)*60_000,
			Price:     price,
		}
	}

	return series
}

func constantSeries(n int, price float64) types.PriceSeries {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = price
	}

	return seriesOf(prices...)
}

func linearSeries(n int, start, step float64) types.PriceSeries {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = start + float64(i)*step
	}

	return seriesOf(prices...)
}
