package table

import (
	"fmt"
	"sort"

	"github.com/spf13/cast"
)

// Row maps a column name to a cell value. Values are kept as whatever the
// caller provided (string, float64, int64, bool, time.Time, nil); codecs
// coerce on the way in and out.
type Row map[string]any

// Table is an ordered collection of rows with named columns. Column order is
// fixed at construction (or first sight for inferred columns) and row order
// is append order.
type Table struct {
	columns []string
	rows    []Row
}

// New creates an empty table with the given column order.
func New(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{columns: cols}
}

// FromRows builds a table from rows, inferring the column set in first-seen
// order.
func FromRows(rows []Row) *Table {
	t := New()
	for _, r := range rows {
		t.Append(r)
	}
	return t
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// IsEmpty reports whether the table holds no rows.
func (t *Table) IsEmpty() bool {
	return len(t.rows) == 0
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.columns {
		if c == name {
			return true
		}
	}
	return false
}

// Append adds a row. Columns the table has not seen before are appended to
// the column order, sorted, so that inferred column order is deterministic.
func (t *Table) Append(row Row) {
	var unseen []string
	for col := range row {
		if !t.HasColumn(col) {
			unseen = append(unseen, col)
		}
	}
	if len(unseen) > 0 {
		sort.Strings(unseen)
		t.columns = append(t.columns, unseen...)
	}
	r := make(Row, len(row))
	for k, v := range row {
		r[k] = v
	}
	t.rows = append(t.rows, r)
}

// Row returns the i-th row. The returned map is the table's own; callers
// must not mutate it.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Rows returns all rows in order.
func (t *Table) Rows() []Row {
	return t.rows
}

// Column returns the values of a column in row order.
func (t *Table) Column(name string) ([]any, error) {
	if !t.HasColumn(name) {
		return nil, fmt.Errorf("table has no column %q", name)
	}
	values := make([]any, len(t.rows))
	for i, r := range t.rows {
		values[i] = r[name]
	}
	return values, nil
}

// Float64Column returns a column coerced to float64.
func (t *Table) Float64Column(name string) ([]float64, error) {
	raw, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(raw))
	for i, v := range raw {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", name, i, err)
		}
		values[i] = f
	}
	return values, nil
}

// StringColumn returns a column coerced to string.
func (t *Table) StringColumn(name string) ([]string, error) {
	raw, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	values := make([]string, len(raw))
	for i, v := range raw {
		values[i] = FormatValue(v)
	}
	return values, nil
}

// AddColumn appends a column with one value per existing row.
func (t *Table) AddColumn(name string, values []any) error {
	if t.HasColumn(name) {
		return fmt.Errorf("table already has column %q", name)
	}
	if len(values) != len(t.rows) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(t.rows))
	}
	t.columns = append(t.columns, name)
	for i := range t.rows {
		t.rows[i][name] = values[i]
	}
	return nil
}

// Slice returns a new table holding rows [i, j). The rows are shared with
// the receiver.
func (t *Table) Slice(i, j int) *Table {
	s := New(t.columns...)
	s.rows = t.rows[i:j]
	return s
}

// Concat appends the rows of other. The column sets must match; column order
// may differ.
func (t *Table) Concat(other *Table) error {
	if len(t.columns) != len(other.columns) {
		return fmt.Errorf("cannot concat: %d columns vs %d", len(t.columns), len(other.columns))
	}
	for _, c := range other.columns {
		if !t.HasColumn(c) {
			return fmt.Errorf("cannot concat: column %q not in receiver", c)
		}
	}
	t.rows = append(t.rows, other.rows...)
	return nil
}

// Equal reports whether two tables hold the same values. Column order is
// ignored; values compare by their formatted representation, so int64(1) and
// "1" are considered equal.
func (t *Table) Equal(other *Table) bool {
	if len(t.columns) != len(other.columns) || len(t.rows) != len(other.rows) {
		return false
	}
	for _, c := range t.columns {
		if !other.HasColumn(c) {
			return false
		}
	}
	for i := range t.rows {
		for _, c := range t.columns {
			if FormatValue(t.rows[i][c]) != FormatValue(other.rows[i][c]) {
				return false
			}
		}
	}
	return true
}
