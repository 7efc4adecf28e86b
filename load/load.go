// Package load writes the canonical dataset into the silver PostgreSQL
// table in batches and runs the post-load validation queries.
package load

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/Yagoas/SinistrosPRF/dataset"
	"github.com/Yagoas/SinistrosPRF/transform"
)

// Mode selects the load strategy.
type Mode string

const (
	// ModeAuto appends when the table already has rows, truncates first
	// otherwise.
	ModeAuto Mode = "auto"
	// ModeTruncate empties the table before loading.
	ModeTruncate Mode = "truncate"
	// ModeAppend adds to the existing rows.
	ModeAppend Mode = "append"
	// ModeReplace is an alias of truncate-then-append.
	ModeReplace Mode = "replace"
)

// BatchSize is the number of rows written per transaction.
const BatchSize = 10000

// Loader writes canonical rows into schema.table.
type Loader struct {
	db     *sqlx.DB
	schema string
	table  string
	log    zerolog.Logger
}

// NewLoader creates a Loader for the default silver table.
func NewLoader(db *sqlx.DB, log zerolog.Logger) *Loader {
	return &Loader{
		db:     db,
		schema: "sinistros",
		table:  "tb_sinistros_silver",
		log:    log,
	}
}

// Load writes the dataset using the requested mode. The target table must
// already exist; a missing table is a structural error.
func (l *Loader) Load(ds *dataset.Dataset, mode Mode) error {
	if ds == nil || ds.Len() == 0 {
		l.log.Warn().Msg("Empty dataset, nothing to load")
		return nil
	}

	exists, err := l.tableExists()
	if err != nil {
		return fmt.Errorf("failed to check target table: %w", err)
	}
	if !exists {
		return fmt.Errorf("table %s.%s does not exist, run the silver schema script first", l.schema, l.table)
	}

	if mode == ModeAuto {
		count, err := l.rowCount()
		if err != nil {
			return fmt.Errorf("failed to count existing rows: %w", err)
		}
		if count > 0 {
			mode = ModeAppend
			l.log.Info().Int64("existing", count).Msg("Auto mode resolved to append")
		} else {
			mode = ModeTruncate
			l.log.Info().Msg("Auto mode resolved to truncate")
		}
	}

	if mode == ModeTruncate || mode == ModeReplace {
		if err := l.Truncate(); err != nil {
			return err
		}
	}

	return l.insertBatches(ds)
}

// Truncate empties the silver table and resets its identity sequence.
func (l *Loader) Truncate() error {
	stmt := fmt.Sprintf("TRUNCATE TABLE %s.%s RESTART IDENTITY", l.schema, l.table)
	if _, err := l.db.Exec(stmt); err != nil {
		return fmt.Errorf("failed to truncate %s.%s: %w", l.schema, l.table, err)
	}
	l.log.Info().Str("table", l.table).Msg("Table truncated")
	return nil
}

// insertBatches streams the dataset into the table, one COPY per batch.
func (l *Loader) insertBatches(ds *dataset.Dataset) error {
	total := ds.Len()
	batches := (total + BatchSize - 1) / BatchSize
	l.log.Info().
		Int("rows", total).
		Int("batches", batches).
		Int("batch_size", BatchSize).
		Msg("Starting batched load")

	columns := transform.RequiredColumns
	cols := make([][]dataset.Value, len(columns))
	for i, name := range columns {
		cols[i] = ds.Column(name)
		if cols[i] == nil {
			return fmt.Errorf("dataset is missing canonical column %s", name)
		}
	}

	inserted := 0
	for start := 0; start < total; start += BatchSize {
		end := start + BatchSize
		if end > total {
			end = total
		}
		if err := l.copyBatch(columns, cols, start, end); err != nil {
			return fmt.Errorf("failed to load batch at row %d: %w", start, err)
		}
		inserted += end - start

		batchNum := start/BatchSize + 1
		if batchNum%10 == 0 || end == total {
			l.log.Info().
				Int("inserted", inserted).
				Int("total", total).
				Int("batch", batchNum).
				Msg("Load progress")
		}
	}

	l.log.Info().Int("rows", inserted).Msg("Load completed")
	return nil
}

func (l *Loader) copyBatch(columns []string, cols [][]dataset.Value, start, end int) error {
	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(pq.CopyInSchema(l.schema, l.table, columns...))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare copy: %w", err)
	}

	args := make([]interface{}, len(columns))
	for row := start; row < end; row++ {
		for i := range columns {
			args[i] = driverValue(cols[i][row])
		}
		if _, err := stmt.Exec(args...); err != nil {
			stmt.Close()
			tx.Rollback()
			return fmt.Errorf("failed to buffer row %d: %w", row, err)
		}
	}

	if _, err := stmt.Exec(); err != nil {
		stmt.Close()
		tx.Rollback()
		return fmt.Errorf("failed to flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to close copy: %w", err)
	}
	return tx.Commit()
}

// driverValue converts a cell to its database representation. Nulls map
// to NULL; temporal kinds use their canonical textual form, which
// PostgreSQL parses natively for date, time and timestamp columns.
func driverValue(v dataset.Value) interface{} {
	if v.IsNull() {
		return nil
	}
	if i, ok := v.Int(); ok {
		return i
	}
	if v.Kind() == dataset.KindFloat {
		f, _ := v.Float()
		return f
	}
	return v.Text()
}

func (l *Loader) tableExists() (bool, error) {
	var exists bool
	err := l.db.Get(&exists, `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = $1 AND table_name = $2
		)`, l.schema, l.table)
	return exists, err
}

func (l *Loader) rowCount() (int64, error) {
	var count int64
	err := l.db.Get(&count, fmt.Sprintf("SELECT COUNT(*) FROM %s.%s", l.schema, l.table))
	return count, err
}
