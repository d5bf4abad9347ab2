package types

import (
	"math"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type PriceTestSuite struct {
	suite.Suite
}

func TestPriceSuite(t *testing.T) {
	suite.Run(t, new(PriceTestSuite))
}

func (suite *PriceTestSuite) TestPriceSampleTime() {
	sample := PriceSample{Timestamp: 1700000000000, Price: 27450.1}
	suite.Equal(time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), sample.Time())
}

func (suite *PriceTestSuite) TestPricesReturnsCopy() {
	series := PriceSeries{{Timestamp: 1, Price: 10}, {Timestamp: 2, Price: 20}}
	prices := series.Prices()
	suite.Equal([]float64{10, 20}, prices)

	prices[0] = 99
	suite.Equal(10.0, series[0].Price)
}

func (suite *PriceTestSuite) TestFirstLast() {
	series := PriceSeries{{Timestamp: 1, Price: 10}, {Timestamp: 2, Price: 20}, {Timestamp: 3, Price: 30}}
	suite.Equal(3, series.Len())
	suite.Equal(10.0, series.First().Price)
	suite.Equal(30.0, series.Last().Price)
}

func (suite *PriceTestSuite) TestIsSorted() {
	suite.True(PriceSeries{}.IsSorted())
	suite.True(PriceSeries{{Timestamp: 1}, {Timestamp: 1}, {Timestamp: 2}}.IsSorted())
	suite.False(PriceSeries{{Timestamp: 2}, {Timestamp: 1}}.IsSorted())
}

func (suite *PriceTestSuite) TestValidate() {
	suite.NoError(PriceSeries{{Timestamp: 1, Price: 10}, {Timestamp: 1, Price: 11}}.Validate())

	err := PriceSeries{{Timestamp: 1, Price: math.NaN()}}.Validate()
	suite.Error(err)
	suite.Contains(err.Error(), "non-finite")
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataParseFailed))

	err = PriceSeries{{Timestamp: 1, Price: math.Inf(1)}}.Validate()
	suite.Error(err)

	err = PriceSeries{{Timestamp: 5, Price: 1}, {Timestamp: 4, Price: 1}}.Validate()
	suite.Error(err)
	suite.Contains(err.Error(), "older than")
	suite.True(errors.HasCode(err, errors.ErrCodeUnorderedSeries))
}

func (suite *PriceTestSuite) TestNewPriceSeries() {
	series, err := NewPriceSeries([]int64{1, 2}, []float64{10, 12})
	suite.NoError(err)
	suite.Equal(PriceSeries{{Timestamp: 1, Price: 10}, {Timestamp: 2, Price: 12}}, series)

	_, err = NewPriceSeries([]int64{1}, []float64{10, 12})
	suite.Error(err)
}
