package storage

import (
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/lib/pq"

	"product-visualizer/models"
	"product-visualizer/utils"
)

// PostgresSource loads the cleaned product table from PostgreSQL.
type PostgresSource struct {
	db    *sql.DB
	table string
}

// NewPostgresSource opens a connection to PostgreSQL and waits for it to
// accept queries, retrying with back-off.
func NewPostgresSource(dsn, table string, maxRetries int, logger *utils.Logger) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{
		MaxAttempts: maxRetries,
		BaseDelay:   time.Second,
		Logger:      logger,
	}
	if err := retry.Do("postgres ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	return &PostgresSource{db: db, table: table}, nil
}

// Load selects every known product column that exists in the table.
// An empty table yields ErrNoData.
func (ps *PostgresSource) Load() (dataframe.DataFrame, error) {
	present, err := ps.columns()
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	cols := selectColumns(present)
	rows, err := ps.db.Query(selectQuery(ps.table, cols))
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("postgres: fetch products: %w", err)
	}
	defer rows.Close()

	b := newFrameBuilder(cols)
	for rows.Next() {
		if err := b.scan(rows); err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("postgres: scan row: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("postgres: iterate rows: %w", err)
	}
	if b.rows == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("postgres: table %s is empty: %w", ps.table, ErrNoData)
	}

	return normaliseFrame(b.frame())
}

func (ps *PostgresSource) Close() error {
	return ps.db.Close()
}

// columnsQuery lists the table's columns in the session's current schema only.
const columnsQuery = `SELECT column_name FROM information_schema.columns
WHERE table_name = $1 AND table_schema = current_schema()`

func (ps *PostgresSource) columns() (map[string]bool, error) {
	rows, err := ps.db.Query(columnsQuery, ps.table)
	if err != nil {
		return nil, fmt.Errorf("postgres: list columns of %s: %w", ps.table, err)
	}
	defer rows.Close()

	present := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("postgres: scan column name: %w", err)
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(present) == 0 {
		return nil, fmt.Errorf("postgres: table %s not found: %w", ps.table, ErrNoData)
	}
	return present, nil
}

// selectColumns keeps the known product columns present in the table, in a
// fixed order. category_source is only read when category is absent.
func selectColumns(present map[string]bool) []string {
	candidates := []string{models.ColProductName, models.ColCategory}
	if !present[models.ColCategory] {
		candidates[1] = models.ColCategorySource
	}
	candidates = append(candidates, models.NumericColumns...)

	var cols []string
	for _, c := range candidates {
		if present[c] {
			cols = append(cols, c)
		}
	}
	return cols
}

func selectQuery(table string, cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = pq.QuoteIdentifier(c)
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), pq.QuoteIdentifier(table))
}

// frameBuilder accumulates scanned rows column by column.
type frameBuilder struct {
	cols    []string
	numeric []bool
	text    [][]string
	floats  [][]float64
	rows    int
}

func newFrameBuilder(cols []string) *frameBuilder {
	b := &frameBuilder{
		cols:    cols,
		numeric: make([]bool, len(cols)),
		text:    make([][]string, len(cols)),
		floats:  make([][]float64, len(cols)),
	}
	types := columnTypes()
	for i, c := range cols {
		b.numeric[i] = types[c] == series.Float
	}
	return b
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (b *frameBuilder) scan(r rowScanner) error {
	dest := make([]any, len(b.cols))
	nums := make([]sql.NullFloat64, len(b.cols))
	strs := make([]sql.NullString, len(b.cols))
	for i := range b.cols {
		if b.numeric[i] {
			dest[i] = &nums[i]
		} else {
			dest[i] = &strs[i]
		}
	}
	if err := r.Scan(dest...); err != nil {
		return err
	}

	for i := range b.cols {
		if b.numeric[i] {
			v := math.NaN()
			if nums[i].Valid {
				v = nums[i].Float64
			}
			b.floats[i] = append(b.floats[i], v)
		} else {
			b.text[i] = append(b.text[i], strs[i].String)
		}
	}
	b.rows++
	return nil
}

func (b *frameBuilder) frame() dataframe.DataFrame {
	cols := make([]series.Series, len(b.cols))
	for i, name := range b.cols {
		if b.numeric[i] {
			cols[i] = series.New(b.floats[i], series.Float, name)
		} else {
			cols[i] = series.New(b.text[i], series.String, name)
		}
	}
	return dataframe.New(cols...)
}
