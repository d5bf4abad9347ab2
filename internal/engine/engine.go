// Package engine runs the configured indicators over price series and
// collects the outcome of each indicator into a report.
package engine

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/datasource"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/types"
)

// Lifecycle callback types for batch runs.
// Callbacks are never invoked concurrently with each other.

// OnBatchStartCallback is called once before any series is computed.
// Returning an error aborts the batch.
type OnBatchStartCallback func(total int) error

// OnReportCallback is called each time a series has been computed.
// index is the position of the series in the batch input.
type OnReportCallback func(index int, report types.IndicatorReport)

// LifecycleCallbacks holds all lifecycle callback functions for batch runs.
// All fields are pointers - nil means no callback will be invoked.
type LifecycleCallbacks struct {
	OnBatchStart *OnBatchStartCallback
	OnReport     *OnReportCallback
}

// DataSourceFactory opens an initialized data source for a price file.
type DataSourceFactory func(path string, logger *logger.Logger) (datasource.DataSource, error)

// Input is one price series to compute a report for.
type Input struct {
	// Symbol labels the report
	Symbol string
	// Source records where the series came from
	Source string
	// Series is the price series, oldest first
	Series types.PriceSeries
}

// Engine computes indicator reports.
type Engine interface {
	// Compute runs every enabled indicator over one series. Indicators that
	// reject the series are recorded in the report's Errors instead of failing the call.
	Compute(input Input) types.IndicatorReport
	// ComputeFile loads the price file at path and computes its report.
	ComputeFile(path string, symbol string) (types.IndicatorReport, error)
	// ComputeBatch computes reports for many series concurrently.
	// Reports are returned in input order.
	ComputeBatch(ctx context.Context, inputs []Input, callbacks LifecycleCallbacks) ([]types.IndicatorReport, error)
	// ComputeFiles loads and computes many price files concurrently.
	// Reports are returned in path order.
	ComputeFiles(ctx context.Context, paths []string, symbol string, callbacks LifecycleCallbacks) ([]types.IndicatorReport, error)
	// SetTimeRange restricts the samples read from price files.
	SetTimeRange(start optional.Option[time.Time], end optional.Option[time.Time])
	// SetDataSourceFactory replaces how price files are opened.
	SetDataSourceFactory(factory DataSourceFactory)
	// Indicators returns the enabled indicators in report order.
	Indicators() []types.IndicatorType
}
