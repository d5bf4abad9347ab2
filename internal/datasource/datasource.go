package datasource

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"go.uber.org/zap"
)

// Format identifies the on-disk layout of a price file.
type Format string

const (
	FormatCoinGecko Format = "coingecko"
	FormatCSV       Format = "csv"
	FormatParquet   Format = "parquet"
)

// DataSource loads an ordered price series from a local file.
type DataSource interface {
	// Initialize loads the file at path
	Initialize(path string) error
	// ReadSeries returns the samples within [start, end], sorted ascending by timestamp
	ReadSeries(start optional.Option[time.Time], end optional.Option[time.Time]) (types.PriceSeries, error)
	// Count returns the number of samples within [start, end]
	Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// Close closes the data source and releases any resources
	Close() error
}

// DetectFormat picks the file format from the path extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatCoinGecko, nil
	case ".csv":
		return FormatCSV, nil
	case ".parquet":
		return FormatParquet, nil
	default:
		return "", errors.Newf(errors.ErrCodeUnsupportedFormat, "unsupported price file %q: expected .json, .csv or .parquet", path)
	}
}

// Open creates the data source matching the file extension and initializes it with path.
func Open(path string, logger *logger.Logger) (DataSource, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	logger.Debug("Opening price data source", zap.String("path", path), zap.String("format", string(format)))

	var ds DataSource

	switch format {
	case FormatCoinGecko:
		ds = NewCoinGeckoDataSource(logger)
	default:
		ds, err = NewDataSource(":memory:", logger)
		if err != nil {
			return nil, err
		}
	}

	if err := ds.Initialize(path); err != nil {
		_ = ds.Close()

		return nil, err
	}

	return ds, nil
}

// inRange reports whether timestamp (epoch millis) lies within the optional bounds.
func inRange(timestamp int64, start optional.Option[time.Time], end optional.Option[time.Time]) bool {
	if start.IsSome() && timestamp < start.Unwrap().UnixMilli() {
		return false
	}

	if end.IsSome() && timestamp > end.Unwrap().UnixMilli() {
		return false
	}

	return true
}
