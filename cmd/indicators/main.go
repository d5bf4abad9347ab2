package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/config"
	"github.com/rxtech-lab/argo-indicators/internal/engine"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/report"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/internal/version"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	schemaFileName       = "indicators-config.json"
	sampleConfigFileName = "indicators-config.yaml"
)

// runFlags are shared by compute and batch. Each one overrides the matching config field when set.
func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML run configuration",
		},
		&cli.StringFlag{
			Name:    "symbol",
			Aliases: []string{"s"},
			Usage:   "Asset symbol shown in the report, e.g. BTC",
		},
		&cli.IntFlag{
			Name:  "rsi-period",
			Usage: "RSI look-back in price changes",
		},
		&cli.IntFlag{
			Name:  "ema-period",
			Usage: "EMA period, the multiplier is 2/(period+1)",
		},
		&cli.StringSliceFlag{
			Name:    "indicators",
			Aliases: []string{"i"},
			Usage:   fmt.Sprintf("Indicators to compute (default all of %v)", types.AllIndicatorTypes()),
		},
		&cli.IntFlag{
			Name:  "precision",
			Usage: "Decimals to round report values to",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Report format: json or yaml",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write the report to this file instead of stdout",
		},
		&cli.TimestampFlag{
			Name:  "start",
			Usage: "Ignore samples before this time (`YYYY-MM-DD` or RFC3339)",
			Config: cli.TimestampConfig{
				Layouts: []string{"2006-01-02", time.RFC3339},
			},
		},
		&cli.TimestampFlag{
			Name:  "end",
			Usage: "Ignore samples after this time (`YYYY-MM-DD` or RFC3339)",
			Config: cli.TimestampConfig{
				Layouts: []string{"2006-01-02", time.RFC3339},
			},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn or error",
		},
	}
}

// loadConfig reads the configuration file and applies flag overrides.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("symbol") {
		cfg.Symbol = cmd.String("symbol")
	}

	if cmd.IsSet("rsi-period") {
		cfg.RSIPeriod = int(cmd.Int("rsi-period"))
	}

	if cmd.IsSet("ema-period") {
		cfg.EMAPeriod = int(cmd.Int("ema-period"))
	}

	if cmd.IsSet("indicators") {
		cfg.Indicators = nil
		for _, name := range cmd.StringSlice("indicators") {
			cfg.Indicators = append(cfg.Indicators, types.IndicatorType(name))
		}
	}

	if cmd.IsSet("precision") {
		cfg.Precision = int(cmd.Int("precision"))
	}

	if cmd.IsSet("format") {
		cfg.Format = cmd.String("format")
	}

	if cmd.IsSet("workers") {
		cfg.Workers = int(cmd.Int("workers"))
	}

	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setup builds the logger and engine for a run.
func setup(cmd *cli.Command) (*config.Config, *logger.Logger, engine.Engine, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := logger.NewLoggerWithLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to create logger", err)
	}

	eng, err := engine.NewEngine(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}

	start := optional.None[time.Time]()
	if cmd.IsSet("start") {
		start = optional.Some(cmd.Timestamp("start"))
	}

	end := optional.None[time.Time]()
	if cmd.IsSet("end") {
		end = optional.Some(cmd.Timestamp("end"))
	}

	eng.SetTimeRange(start, end)

	return cfg, log, eng, nil
}

func writeOutput(cmd *cli.Command, stdout io.Writer, format string, value any) error {
	if output := cmd.String("output"); output != "" {
		return report.WriteFile(output, format, value)
	}

	return report.Write(stdout, format, value)
}

func computeAction(stdout io.Writer) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() != 1 {
			return errors.New(errors.ErrCodeMissingParameter, "compute expects exactly one price file")
		}

		cfg, log, eng, err := setup(cmd)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		path := cmd.Args().First()

		result, err := eng.ComputeFile(path, cfg.Symbol)
		if err != nil {
			log.Error("Failed to compute indicators", zap.String("path", path), zap.Error(err))

			return err
		}

		return writeOutput(cmd, stdout, cfg.Format, report.NewDocument(result, cfg.Precision))
	}
}

func batchAction(stdout, stderr io.Writer) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		paths, err := expandPaths(cmd.Args().Slice())
		if err != nil {
			return err
		}

		cfg, log, eng, err := setup(cmd)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		var bar *progressbar.ProgressBar

		onStart := engine.OnBatchStartCallback(func(total int) error {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("Computing indicators"),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWriter(stderr),
			)

			return nil
		})
		onReport := engine.OnReportCallback(func(_ int, _ types.IndicatorReport) {
			_ = bar.Add(1)
		})

		reports, err := eng.ComputeFiles(ctx, paths, cfg.Symbol, engine.LifecycleCallbacks{
			OnBatchStart: &onStart,
			OnReport:     &onReport,
		})
		if bar != nil {
			_ = bar.Finish()
		}

		if err != nil {
			log.Error("Batch failed", zap.Int("files", len(paths)), zap.Error(err))

			return err
		}

		return writeOutput(cmd, stdout, cfg.Format, report.NewDocuments(reports, cfg.Precision))
	}
}

// expandPaths resolves glob patterns into a sorted list of unique files.
func expandPaths(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, errors.New(errors.ErrCodeMissingParameter, "batch expects at least one price file or glob pattern")
	}

	var paths []string

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "invalid glob pattern %q", pattern)
		}

		if len(matches) == 0 {
			return nil, errors.Newf(errors.ErrCodeDataNotFound, "no files match %q", pattern)
		}

		paths = append(paths, matches...)
	}

	slices.Sort(paths)

	return slices.Compact(paths), nil
}

func schemaAction(stdout io.Writer) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		schemaJSON, err := config.Schema()
		if err != nil {
			return errors.Wrap(errors.ErrCodeUnknown, "failed to generate schema", err)
		}

		dir := cmd.String("output")
		if dir == "" {
			_, err := fmt.Fprintln(stdout, schemaJSON)

			return err
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to create directory %s", dir)
		}

		schemaPath := filepath.Join(dir, schemaFileName)
		if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0o644); err != nil {
			return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to write schema to %s", schemaPath)
		}

		// write sample config to file if it doesn't exist
		sampleConfigPath := filepath.Join(dir, sampleConfigFileName)
		if _, err := os.Stat(sampleConfigPath); os.IsNotExist(err) {
			cfg, err := config.Default()
			if err != nil {
				return err
			}

			cfg.Version = version.GetVersion()

			yamlBytes, err := yaml.Marshal(cfg)
			if err != nil {
				return errors.Wrap(errors.ErrCodeUnknown, "failed to marshal sample config", err)
			}

			yamlBytes = append([]byte("# yaml-language-server: $schema="+schemaFileName+"\n"), yamlBytes...)

			if err := os.WriteFile(sampleConfigPath, yamlBytes, 0o644); err != nil {
				return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to write sample config to %s", sampleConfigPath)
			}
		}

		_, err = fmt.Fprintf(stdout, "Schema written to %s\n", schemaPath)

		return err
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "indicators",
		Usage: "Compute technical indicators over price series",
		Commands: []*cli.Command{
			{
				Name:      "compute",
				Usage:     "Compute the indicator report of one price file (.json CoinGecko market chart, .csv or .parquet)",
				ArgsUsage: "<price-file>",
				Flags:     runFlags(),
				Action:    computeAction(stdout),
			},
			{
				Name:      "batch",
				Usage:     "Compute indicator reports for many price files concurrently",
				ArgsUsage: "<glob>...",
				Flags: append(runFlags(), &cli.IntFlag{
					Name:    "workers",
					Aliases: []string{"w"},
					Usage:   "Number of files computed at once",
				}),
				Action: batchAction(stdout, stderr),
			},
			{
				Name:  "schema",
				Usage: "Print the configuration JSON schema, or write it with a sample config into a directory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Directory to write the schema and sample config to",
					},
				},
				Action: schemaAction(stdout),
			},
			{
				Name:  "version",
				Usage: "Print the version",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					_, err := fmt.Fprintln(stdout, version.GetVersion())

					return err
				},
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout, os.Stderr).Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
