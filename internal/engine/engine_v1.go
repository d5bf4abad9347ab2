package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/config"
	"github.com/rxtech-lab/argo-indicators/internal/datasource"
	"github.com/rxtech-lab/argo-indicators/internal/indicator"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// EngineV1 is the default Engine. It shares one indicator registry across all
// workers; indicators are only read during computation.
type EngineV1 struct {
	registry   indicator.IndicatorRegistry
	indicators []types.IndicatorType
	workers    int
	start      optional.Option[time.Time]
	end        optional.Option[time.Time]
	openSource DataSourceFactory
	logger     *logger.Logger
	callbackMu sync.Mutex
}

// NewEngine creates an engine from a validated configuration. The RSI and EMA
// periods of the default registry are taken from the configuration.
func NewEngine(cfg *config.Config, logger *logger.Logger) (Engine, error) {
	registry := indicator.NewDefaultRegistry()

	periods := map[types.IndicatorType]int{
		types.IndicatorTypeRSI: cfg.RSIPeriod,
		types.IndicatorTypeEMA: cfg.EMAPeriod,
	}

	for name, period := range periods {
		ind, err := registry.GetIndicator(name)
		if err != nil {
			return nil, err
		}

		if err := ind.Config(period); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to configure %s", name)
		}
	}

	return NewEngineWithRegistry(registry, cfg.EnabledIndicators(), cfg.Workers, logger), nil
}

// NewEngineWithRegistry creates an engine that computes the given indicators
// from registry, running at most workers series at once.
func NewEngineWithRegistry(registry indicator.IndicatorRegistry, indicators []types.IndicatorType, workers int, logger *logger.Logger) Engine {
	if workers < 1 {
		workers = 1
	}

	return &EngineV1{
		registry:   registry,
		indicators: indicators,
		workers:    workers,
		start:      optional.None[time.Time](),
		end:        optional.None[time.Time](),
		openSource: datasource.Open,
		logger:     logger,
	}
}

// SetTimeRange implements Engine.
func (e *EngineV1) SetTimeRange(start optional.Option[time.Time], end optional.Option[time.Time]) {
	e.start = start
	e.end = end
}

// SetDataSourceFactory implements Engine.
func (e *EngineV1) SetDataSourceFactory(factory DataSourceFactory) {
	e.openSource = factory
}

// Indicators implements Engine.
func (e *EngineV1) Indicators() []types.IndicatorType {
	return e.indicators
}

// Compute implements Engine.
func (e *EngineV1) Compute(input Input) types.IndicatorReport {
	series := input.Series

	report := types.IndicatorReport{
		ID:      uuid.New().String(),
		Symbol:  input.Symbol,
		Source:  input.Source,
		Samples: len(series),
		Results: make(map[types.IndicatorType]types.IndicatorResult, len(e.indicators)),
		Errors:  make(map[types.IndicatorType]error),
	}

	if len(series) > 0 {
		report.Start = series.First().Time()
		report.End = series.Last().Time()
	}

	if !series.IsSorted() {
		e.logger.Warn("Price series is not sorted by timestamp, indicator values may be meaningless",
			zap.String("source", input.Source))
	}

	for _, name := range e.indicators {
		ind, err := e.registry.GetIndicator(name)
		if err != nil {
			report.Errors[name] = err

			continue
		}

		result, err := ind.Calculate(series)
		if err != nil {
			e.logger.Debug("Indicator rejected series",
				zap.String("indicator", string(name)),
				zap.String("source", input.Source),
				zap.Int("samples", len(series)),
				zap.Error(err))

			report.Errors[name] = err

			continue
		}

		report.Results[name] = result
	}

	e.logger.Info("Computed indicator report",
		zap.String("id", report.ID),
		zap.String("symbol", report.Symbol),
		zap.String("source", report.Source),
		zap.Int("samples", report.Samples),
		zap.Int("computed", len(report.Results)),
		zap.Int("failed", len(report.Errors)))

	return report
}

// ComputeFile implements Engine.
func (e *EngineV1) ComputeFile(path string, symbol string) (types.IndicatorReport, error) {
	series, err := e.load(path)
	if err != nil {
		return types.IndicatorReport{}, err
	}

	return e.Compute(Input{Symbol: symbol, Source: path, Series: series}), nil
}

// ComputeBatch implements Engine.
func (e *EngineV1) ComputeBatch(ctx context.Context, inputs []Input, callbacks LifecycleCallbacks) ([]types.IndicatorReport, error) {
	return e.runBatch(ctx, len(inputs), callbacks, func(i int) (types.IndicatorReport, error) {
		return e.Compute(inputs[i]), nil
	})
}

// ComputeFiles implements Engine.
func (e *EngineV1) ComputeFiles(ctx context.Context, paths []string, symbol string, callbacks LifecycleCallbacks) ([]types.IndicatorReport, error) {
	return e.runBatch(ctx, len(paths), callbacks, func(i int) (types.IndicatorReport, error) {
		return e.ComputeFile(paths[i], symbol)
	})
}

func (e *EngineV1) runBatch(
	ctx context.Context,
	total int,
	callbacks LifecycleCallbacks,
	compute func(i int) (types.IndicatorReport, error),
) ([]types.IndicatorReport, error) {
	if callbacks.OnBatchStart != nil {
		if err := (*callbacks.OnBatchStart)(total); err != nil {
			return nil, err
		}
	}

	e.logger.Debug("Starting batch", zap.Int("total", total), zap.Int("workers", e.workers))

	reports := make([]types.IndicatorReport, total)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.workers)

	for i := 0; i < total; i++ {
		if groupCtx.Err() != nil {
			break
		}

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			report, err := compute(i)
			if err != nil {
				return err
			}

			reports[i] = report

			if callbacks.OnReport != nil {
				e.callbackMu.Lock()
				(*callbacks.OnReport)(i, report)
				e.callbackMu.Unlock()
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeBatchCancelled, "batch cancelled", ctx.Err())
		}

		return nil, err
	}

	// the parent context may have been cancelled after the last worker finished scheduling
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBatchCancelled, "batch cancelled", err)
	}

	return reports, nil
}

func (e *EngineV1) load(path string) (types.PriceSeries, error) {
	ds, err := e.openSource(path, e.logger)
	if err != nil {
		return nil, errors.Wrapf(errors.GetCode(err), err, "failed to open %s", path)
	}
	defer ds.Close()

	count, err := ds.Count(e.start, e.end)
	if err != nil {
		return nil, errors.Wrapf(errors.GetCode(err), err, "failed to count samples in %s", path)
	}

	if count == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no price samples in %s for the requested range", path)
	}

	e.logger.Debug("Reading price series", zap.String("path", path), zap.Int("samples", count))

	series, err := ds.ReadSeries(e.start, e.end)
	if err != nil {
		return nil, errors.Wrapf(errors.GetCode(err), err, "failed to read %s", path)
	}

	if len(series) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no price samples in %s for the requested range", path)
	}

	return series, nil
}
