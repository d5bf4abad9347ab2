package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ATRTestSuite struct {
	suite.Suite
}

func TestATRSuite(t *testing.T) {
	suite.Run(t, new(ATRTestSuite))
}

func (suite *ATRTestSuite) TestAverageTrueRange() {
	tests := []struct {
		name     string
		series   types.PriceSeries
		expected float64
	}{
		{name: "single sample", series: seriesOf(27450.1), expected: 0.0},
		{name: "up then down", series: seriesOf(10, 15, 12), expected: 4.0},
		{name: "constant", series: constantSeries(10, 3), expected: 0.0},
		{name: "linear", series: linearSeries(20, 100, -2), expected: 2.0},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			value, err := AverageTrueRange(tt.series)
			suite.NoError(err)
			suite.Equal(tt.expected, value)
		})
	}
}

func (suite *ATRTestSuite) TestEmptySeries() {
	_, err := AverageTrueRange(types.PriceSeries{})
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *ATRTestSuite) TestAdapter() {
	atr := NewATR()
	suite.Equal(types.IndicatorTypeATR, atr.Name())
	suite.NoError(atr.Config())
	suite.Error(atr.Config(14))

	result, err := atr.Calculate(seriesOf(10, 15, 12))
	suite.NoError(err)
	suite.Equal(4.0, result.Value())

	value, err := atr.RawValue(seriesOf(10, 15, 12))
	suite.NoError(err)
	suite.Equal(4.0, value)
}

func (suite *ATRTestSuite) TestExtremePricesDoNotOverflow() {
	value, err := AverageTrueRange(seriesOf(1e308, 1e-300, 1e308))
	suite.Require().NoError(err)
	suite.False(math.IsInf(value, 0))
	suite.InDelta(1e308, value, 1e294)
}

func (suite *ATRTestSuite) TestNonFiniteResultIsRejected() {
	_, err := AverageTrueRange(seriesOf(-math.MaxFloat64, math.MaxFloat64))
	suite.True(errors.HasCode(err, errors.ErrCodeNumericOverflow))

	_, err = NewATR().Calculate(seriesOf(math.MaxFloat64, -math.MaxFloat64))
	suite.True(errors.HasCode(err, errors.ErrCodeNumericOverflow))
}
