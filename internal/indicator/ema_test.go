package indicator

import (
	"math"
	"testing"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type EMATestSuite struct {
	suite.Suite
}

func TestEMASuite(t *testing.T) {
	suite.Run(t, new(EMATestSuite))
}

func (suite *EMATestSuite) TestNewEMA() {
	ema := NewEMA()
	suite.Equal(7, ema.(*EMA).period)
	suite.Equal(types.IndicatorTypeEMA, ema.Name())
}

func (suite *EMATestSuite) TestSingleSampleReturnsPrice() {
	for _, period := range []int{1, 2, 7, 30, 1000} {
		value, err := ExponentialMovingAverage(seriesOf(42.0), period)
		suite.NoError(err)
		suite.Equal(42.0, value, "period %d", period)
	}
}

func (suite *EMATestSuite) TestRecurrence() {
	// multiplier 2/(3+1) = 0.5
	// ema: 10 -> 15 -> 22.5
	value, err := ExponentialMovingAverage(seriesOf(10, 20, 30), 3)
	suite.NoError(err)
	suite.Equal(22.5, value)
}

func (suite *EMATestSuite) TestPeriodOneTracksLastPrice() {
	value, err := ExponentialMovingAverage(seriesOf(3, 9, 4, 11), 1)
	suite.NoError(err)
	suite.Equal(11.0, value)
}

func (suite *EMATestSuite) TestIteratesWholeSeries() {
	// a window-truncated EMA would ignore the first sample entirely
	long := seriesOf(1000, 10, 10, 10)
	short := seriesOf(10, 10, 10)

	withSeed, err := ExponentialMovingAverage(long, 3)
	suite.NoError(err)

	withoutSeed, err := ExponentialMovingAverage(short, 3)
	suite.NoError(err)

	suite.NotEqual(withSeed, withoutSeed)
	suite.Equal(10.0, withoutSeed)
	suite.InDelta(10+990*math.Pow(0.5, 3), withSeed, 1e-9)
}

func (suite *EMATestSuite) TestErrors() {
	_, err := ExponentialMovingAverage(types.PriceSeries{}, 7)
	suite.True(errors.IsInsufficientDataError(err))

	_, err = ExponentialMovingAverage(seriesOf(1), 0)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}

func (suite *EMATestSuite) TestConfig() {
	ema := NewEMA()
	suite.NoError(ema.Config(30))
	suite.Equal(30, ema.(*EMA).period)

	suite.True(errors.HasCode(ema.Config(0), errors.ErrCodeInvalidPeriod))
	suite.True(errors.HasCode(ema.Config(1, 2), errors.ErrCodeMissingParameter))
	suite.True(errors.HasCode(ema.Config(true), errors.ErrCodeInvalidType))
}

func (suite *EMATestSuite) TestCalculateAndRawValue() {
	ema := NewEMA()
	suite.Require().NoError(ema.Config(3))

	result, err := ema.Calculate(seriesOf(10, 20, 30))
	suite.NoError(err)
	suite.Equal(22.5, result.Value())

	value, err := ema.RawValue(seriesOf(10, 20, 30))
	suite.NoError(err)
	suite.Equal(22.5, value)

	// period 1 override follows the last price
	value, err = ema.RawValue(seriesOf(10, 20, 30), optional.Some(1))
	suite.NoError(err)
	suite.Equal(30.0, value)
}
