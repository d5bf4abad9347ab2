package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ROCTestSuite struct {
	suite.Suite
}

func TestROCSuite(t *testing.T) {
	suite.Run(t, new(ROCTestSuite))
}

func (suite *ROCTestSuite) TestRateOfChange() {
	tests := []struct {
		name     string
		series   types.PriceSeries
		expected float64
	}{
		{name: "ten percent up", series: seriesOf(100, 110), expected: 10.0},
		{name: "half down", series: seriesOf(200, 250, 100), expected: -50.0},
		{name: "single sample", series: seriesOf(5), expected: 0.0},
		{name: "negative base", series: seriesOf(-10, -5), expected: -50.0},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			value, err := RateOfChange(tt.series)
			suite.NoError(err)
			suite.Equal(tt.expected, value)
		})
	}
}

func (suite *ROCTestSuite) TestZeroFirstPrice() {
	_, err := RateOfChange(seriesOf(0, 10, 20))
	suite.True(errors.IsDegenerateRangeError(err))

	var degenerate *errors.DegenerateRangeError
	suite.Require().ErrorAs(err, &degenerate)
	suite.Equal("roc", degenerate.Indicator)
}

func (suite *ROCTestSuite) TestEmptySeries() {
	_, err := RateOfChange(types.PriceSeries{})
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *ROCTestSuite) TestAdapter() {
	roc := NewROC()
	suite.Equal(types.IndicatorTypeROC, roc.Name())

	result, err := roc.Calculate(seriesOf(100, 110))
	suite.NoError(err)
	suite.Equal(10.0, result.Value())

	_, err = roc.RawValue(seriesOf(0, 1))
	suite.True(errors.IsDegenerateRangeError(err))
}

func (suite *ROCTestSuite) TestExtremePrices() {
	value, err := RateOfChange(seriesOf(1e300, 1e308))
	suite.Require().NoError(err)
	suite.False(math.IsInf(value, 0))

	_, err = RateOfChange(seriesOf(1e-300, 1e308))
	suite.True(errors.HasCode(err, errors.ErrCodeNumericOverflow))
}
