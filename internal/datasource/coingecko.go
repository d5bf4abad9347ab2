package datasource

import (
	"encoding/json"
	"io"
	"os"
	"sort"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"go.uber.org/zap"
)

// marketChart is the CoinGecko /coins/{id}/market_chart payload.
// Only the prices are used; market caps and volumes are ignored.
type marketChart struct {
	Prices [][]*float64 `json:"prices"`
}

// ParseMarketChart decodes a CoinGecko market_chart document into a price series.
// Samples are stably sorted by timestamp so equal timestamps keep their file order.
func ParseMarketChart(r io.Reader) (types.PriceSeries, error) {
	var chart marketChart

	if err := json.NewDecoder(r).Decode(&chart); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataParseFailed, "failed to decode market chart", err)
	}

	if chart.Prices == nil {
		return nil, errors.New(errors.ErrCodeMarketDataParseFailed, "market chart has no prices field")
	}

	series := make(types.PriceSeries, 0, len(chart.Prices))

	for i, point := range chart.Prices {
		if len(point) != 2 || point[0] == nil || point[1] == nil {
			return nil, errors.Newf(errors.ErrCodeMarketDataParseFailed, "price point %d must be [timestamp, price]", i)
		}

		series = append(series, types.PriceSample{
			Timestamp: int64(*point[0]),
			Price:     *point[1],
		})
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Timestamp < series[j].Timestamp
	})

	if err := series.Validate(); err != nil {
		return nil, err
	}

	return series, nil
}

// CoinGeckoDataSource serves a market_chart JSON file from memory.
type CoinGeckoDataSource struct {
	series types.PriceSeries
	logger *logger.Logger
}

// NewCoinGeckoDataSource creates an empty CoinGecko data source.
func NewCoinGeckoDataSource(logger *logger.Logger) DataSource {
	return &CoinGeckoDataSource{
		logger: logger,
	}
}

// Initialize implements DataSource.
func (c *CoinGeckoDataSource) Initialize(path string) error {
	c.logger.Debug("Initializing CoinGecko data source", zap.String("path", path))

	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeDataNotFound, err, "failed to open price file %s", path)
	}
	defer file.Close()

	series, err := ParseMarketChart(file)
	if err != nil {
		return err
	}

	c.series = series

	return nil
}

// ReadSeries implements DataSource.
func (c *CoinGeckoDataSource) ReadSeries(start optional.Option[time.Time], end optional.Option[time.Time]) (types.PriceSeries, error) {
	series := make(types.PriceSeries, 0, len(c.series))

	for _, sample := range c.series {
		if inRange(sample.Timestamp, start, end) {
			series = append(series, sample)
		}
	}

	return series, nil
}

// Count implements DataSource.
func (c *CoinGeckoDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	count := 0

	for _, sample := range c.series {
		if inRange(sample.Timestamp, start, end) {
			count++
		}
	}

	return count, nil
}

// Close implements DataSource.
func (c *CoinGeckoDataSource) Close() error {
	c.series = nil

	return nil
}
