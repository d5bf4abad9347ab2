package datasource

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/stretchr/testify/suite"
)

const marketChartJSON = `{
  "prices": [
    [1700000120000, 37012.5],
    [1700000000000, 36950.1],
    [1700000060000, 36980.0]
  ],
  "market_caps": [[1700000000000, 722000000000]],
  "total_volumes": [[1700000000000, 18000000000]]
}`

type CoinGeckoTestSuite struct {
	suite.Suite
}

func TestCoinGeckoSuite(t *testing.T) {
	suite.Run(t, new(CoinGeckoTestSuite))
}

func (suite *CoinGeckoTestSuite) TestParseMarketChartSorts() {
	series, err := ParseMarketChart(strings.NewReader(marketChartJSON))
	suite.Require().NoError(err)
	suite.Equal(types.PriceSeries{
		{Timestamp: 1700000000000, Price: 36950.1},
		{Timestamp: 1700000060000, Price: 36980.0},
		{Timestamp: 1700000120000, Price: 37012.5},
	}, series)
}

func (suite *CoinGeckoTestSuite) TestParseMarketChartKeepsOrderOfEqualTimestamps() {
	series, err := ParseMarketChart(strings.NewReader(`{"prices": [[2, 5], [1, 3], [1, 4]]}`))
	suite.Require().NoError(err)
	suite.Equal([]float64{3, 4, 5}, series.Prices())
}

func (suite *CoinGeckoTestSuite) TestParseMarketChartErrors() {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: `prices`},
		{name: "missing prices", payload: `{"market_caps": []}`},
		{name: "short point", payload: `{"prices": [[1700000000000]]}`},
		{name: "null price", payload: `{"prices": [[1700000000000, null]]}`},
		{name: "string price", payload: `{"prices": [[1700000000000, "1.0"]]}`},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := ParseMarketChart(strings.NewReader(tt.payload))
			suite.True(errors.HasCode(err, errors.ErrCodeMarketDataParseFailed), "%v", err)
		})
	}
}

func (suite *CoinGeckoTestSuite) TestEmptyPrices() {
	series, err := ParseMarketChart(strings.NewReader(`{"prices": []}`))
	suite.NoError(err)
	suite.Empty(series)
}

func (suite *CoinGeckoTestSuite) TestDataSource() {
	dir := suite.T().TempDir()
	path := filepath.Join(dir, "bitcoin.json")
	suite.Require().NoError(writeTestFile(path, marketChartJSON))

	ds, err := Open(path, logger.NewNopLogger())
	suite.Require().NoError(err)
	suite.IsType(&CoinGeckoDataSource{}, ds)

	count, err := ds.Count(optional.None[time.Time](), optional.None[time.Time]())
	suite.NoError(err)
	suite.Equal(3, count)

	series, err := ds.ReadSeries(optional.Some(time.UnixMilli(1700000060000)), optional.None[time.Time]())
	suite.NoError(err)
	suite.Equal([]float64{36980.0, 37012.5}, series.Prices())

	count, err = ds.Count(optional.None[time.Time](), optional.Some(time.UnixMilli(1700000000000)))
	suite.NoError(err)
	suite.Equal(1, count)

	suite.NoError(ds.Close())
}

func (suite *CoinGeckoTestSuite) TestMissingFile() {
	_, err := Open(filepath.Join(suite.T().TempDir(), "missing.json"), logger.NewNopLogger())
	suite.True(errors.HasCode(err, errors.ErrCodeDataNotFound))
}

func writeTestFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}
