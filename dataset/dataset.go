package dataset

import (
	"fmt"
	"strings"
)

// Dataset is a column-oriented in-memory table of nullable scalars. All
// columns have the same length. A Dataset is owned by one caller at a
// time; operations mutate in place unless documented otherwise.
type Dataset struct {
	columns []string
	data    map[string][]Value
	rows    int
}

// New creates an empty Dataset with no columns.
func New() *Dataset {
	return &Dataset{data: make(map[string][]Value)}
}

// FromRecords builds a Dataset from a header row and string records, one
// Value per cell. Records shorter than the header are padded with null.
func FromRecords(header []string, records [][]string) *Dataset {
	ds := New()
	for _, name := range header {
		ds.columns = append(ds.columns, name)
		ds.data[name] = make([]Value, 0, len(records))
	}
	for _, rec := range records {
		for i, name := range header {
			if i < len(rec) {
				ds.data[name] = append(ds.data[name], String(rec[i]))
			} else {
				ds.data[name] = append(ds.data[name], Null())
			}
		}
	}
	ds.rows = len(records)
	return ds
}

// Len returns the number of rows.
func (ds *Dataset) Len() int {
	return ds.rows
}

// NumColumns returns the number of columns.
func (ds *Dataset) NumColumns() int {
	return len(ds.columns)
}

// Columns returns the ordered column names.
func (ds *Dataset) Columns() []string {
	out := make([]string, len(ds.columns))
	copy(out, ds.columns)
	return out
}

// Has reports whether the named column exists.
func (ds *Dataset) Has(name string) bool {
	_, ok := ds.data[name]
	return ok
}

// Column returns the values of the named column, or nil when absent.
func (ds *Dataset) Column(name string) []Value {
	return ds.data[name]
}

// SetColumn replaces or creates the named column. The values slice must
// match the row count unless the table is empty of columns.
func (ds *Dataset) SetColumn(name string, values []Value) error {
	if len(ds.columns) > 0 && len(values) != ds.rows {
		return fmt.Errorf("column %s has %d values, table has %d rows", name, len(values), ds.rows)
	}
	if !ds.Has(name) {
		ds.columns = append(ds.columns, name)
	}
	ds.data[name] = values
	ds.rows = len(values)
	return nil
}

// Apply maps fn over every value of the named column in place. Absent
// columns are a no-op.
func (ds *Dataset) Apply(name string, fn func(Value) Value) {
	col, ok := ds.data[name]
	if !ok {
		return
	}
	for i, v := range col {
		col[i] = fn(v)
	}
}

// Drop removes the named columns when present and returns how many were
// actually removed.
func (ds *Dataset) Drop(names ...string) int {
	dropped := 0
	for _, name := range names {
		if !ds.Has(name) {
			continue
		}
		delete(ds.data, name)
		for i, c := range ds.columns {
			if c == name {
				ds.columns = append(ds.columns[:i], ds.columns[i+1:]...)
				break
			}
		}
		dropped++
	}
	return dropped
}

// Rename applies a source→target column rename map. Absent sources are
// skipped; column order is preserved.
func (ds *Dataset) Rename(mapping map[string]string) int {
	renamed := 0
	for i, name := range ds.columns {
		target, ok := mapping[name]
		if !ok || target == name {
			continue
		}
		ds.columns[i] = target
		ds.data[target] = ds.data[name]
		delete(ds.data, name)
		renamed++
	}
	return renamed
}

// Select returns a new Dataset holding exactly the requested columns in
// the requested order. Absent columns are created all-null. Selecting the
// same list twice yields an identical table.
func (ds *Dataset) Select(names []string) *Dataset {
	out := New()
	out.rows = ds.rows
	for _, name := range names {
		src, ok := ds.data[name]
		col := make([]Value, ds.rows)
		if ok {
			copy(col, src)
		}
		out.columns = append(out.columns, name)
		out.data[name] = col
	}
	return out
}

// Append concatenates other below ds, taking the union of columns. Cells
// missing from either side become null. Column order is ds's columns
// followed by other's new ones.
func (ds *Dataset) Append(other *Dataset) {
	for _, name := range other.columns {
		if !ds.Has(name) {
			ds.columns = append(ds.columns, name)
			ds.data[name] = make([]Value, ds.rows)
		}
	}
	for _, name := range ds.columns {
		src := other.data[name]
		if src == nil {
			src = make([]Value, other.rows)
		}
		ds.data[name] = append(ds.data[name], src...)
	}
	ds.rows += other.rows
}

// Row renders row i as canonical text cells in column order.
func (ds *Dataset) Row(i int) []string {
	out := make([]string, len(ds.columns))
	for j, name := range ds.columns {
		out[j] = ds.data[name][i].Text()
	}
	return out
}

// rowKey encodes row i so that two rows equal in every field produce the
// same key. The kind byte keeps e.g. null and empty string distinct.
func (ds *Dataset) rowKey(i int) string {
	var b strings.Builder
	for _, name := range ds.columns {
		v := ds.data[name][i]
		b.WriteByte(byte('0' + v.kind))
		b.WriteString(v.Text())
		b.WriteByte(0x1f)
	}
	return b.String()
}

// Deduplicate removes rows that are exact duplicates of an earlier row in
// every column and returns the number removed. The first occurrence wins.
func (ds *Dataset) Deduplicate() int {
	seen := make(map[string]struct{}, ds.rows)
	keep := make([]int, 0, ds.rows)
	for i := 0; i < ds.rows; i++ {
		key := ds.rowKey(i)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, i)
	}
	removed := ds.rows - len(keep)
	if removed == 0 {
		return 0
	}
	for _, name := range ds.columns {
		col := ds.data[name]
		next := make([]Value, len(keep))
		for j, idx := range keep {
			next[j] = col[idx]
		}
		ds.data[name] = next
	}
	ds.rows = len(keep)
	return removed
}
