package datasource

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"go.uber.org/zap"
)

const (
	priceView       = "price_samples"
	timestampColumn = `"timestamp"`
	priceColumn     = "price"
)

// DuckDBDataSource reads CSV and Parquet price files through an in-process DuckDB.
// Files must carry a timestamp column (epoch millis) and a price column.
type DuckDBDataSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDataSource creates a new DuckDB data source instance with the specified database path.
// The path parameter specifies the DuckDB database file location, usually ":memory:".
// This is distinct from Initialize() which loads the price file into the database.
func NewDataSource(path string, logger *logger.Logger) (DataSource, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	return &DuckDBDataSource{
		db:     db,
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize implements DataSource.
func (d *DuckDBDataSource) Initialize(path string) error {
	d.logger.Debug("Initializing DuckDB data source", zap.String("path", path))

	format, err := DetectFormat(path)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err != nil {
		return errors.Wrapf(errors.ErrCodeDataNotFound, err, "price file %s is not readable", path)
	}

	var reader string

	switch format {
	case FormatCSV:
		reader = "read_csv_auto"
	case FormatParquet:
		reader = "read_parquet"
	default:
		return errors.Newf(errors.ErrCodeUnsupportedFormat, "duckdb cannot read %s files", format)
	}

	// First drop the view if it exists
	_, err = d.db.Exec(fmt.Sprintf(`DROP VIEW IF EXISTS %s;`, priceView))
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to drop existing view", err)
	}

	// Squirrel doesn't support CREATE VIEW
	query := fmt.Sprintf(`
		CREATE VIEW %s AS
		SELECT CAST(%s AS BIGINT) AS %s, CAST(%s AS DOUBLE) AS %s
		FROM %s('%s');
	`, priceView, timestampColumn, timestampColumn, priceColumn, priceColumn, reader, escapeLiteral(path))

	_, err = d.db.Exec(query)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to load price file %s", path)
	}

	return nil
}

// ReadSeries implements DataSource.
func (d *DuckDBDataSource) ReadSeries(start optional.Option[time.Time], end optional.Option[time.Time]) (types.PriceSeries, error) {
	query, args, err := d.filter(d.sq.Select(timestampColumn, priceColumn), start, end).
		OrderBy(timestampColumn + " ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	d.logger.Debug("Reading price series", zap.String("query", query))

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query price samples", err)
	}
	defer rows.Close()

	var series types.PriceSeries

	for rows.Next() {
		var sample types.PriceSample

		if err := rows.Scan(&sample.Timestamp, &sample.Price); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan price sample", err)
		}

		series = append(series, sample)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to iterate price samples", err)
	}

	if err := series.Validate(); err != nil {
		return nil, err
	}

	return series, nil
}

// Count implements DataSource.
func (d *DuckDBDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	query, args, err := d.filter(d.sq.Select("COUNT(*)"), start, end).ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	var count int

	if err := d.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count price samples", err)
	}

	return count, nil
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	return d.db.Close()
}

func (d *DuckDBDataSource) filter(builder squirrel.SelectBuilder, start optional.Option[time.Time], end optional.Option[time.Time]) squirrel.SelectBuilder {
	builder = builder.From(priceView)

	if start.IsSome() {
		builder = builder.Where(squirrel.GtOrEq{timestampColumn: start.Unwrap().UnixMilli()})
	}

	if end.IsSome() {
		builder = builder.Where(squirrel.LtOrEq{timestampColumn: end.Unwrap().UnixMilli()})
	}

	return builder
}

func escapeLiteral(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}
