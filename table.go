package tabstats

import (
	"fmt"
	"strconv"
	"time"
)

// Table is an immutable, validated snapshot of one loaded source.
// It is produced only by Store's load path; queries and chart builders
// never modify it.
type Table struct {
	kind    TableKind
	header  header
	records []Record
	// dates holds the pre-parsed date column for the catalog, parallel
	// to records. dateOK[i] is false when the cell did not parse.
	dates  []time.Time
	dateOK []bool
}

// Kind returns which of the three sources the table holds.
func (t *Table) Kind() TableKind {
	return t.kind
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.records)
}

// Columns returns a copy of the column names in file order.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.header))
	copy(cols, t.header)
	return cols
}

// HasColumn reports whether the table schema names the column.
func (t *Table) HasColumn(name string) bool {
	return t.header.contains(name)
}

// RowSet returns a view over all rows of the table, in file order.
func (t *Table) RowSet() *RowSet {
	return &RowSet{
		header:  t.header,
		records: t.records,
		numeric: t.numericColumns(),
	}
}

// numericColumns returns the set of columns compared by numeric value.
func (t *Table) numericColumns() map[string]bool {
	if t.kind == TableTab {
		return numericTabColumns
	}
	return nil
}

// column returns all cells of the named column in row order.
func (t *Table) column(name string) ([]string, error) {
	idx := t.header.index(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q in %s table", ErrUnknownColumn, name, t.kind)
	}
	values := make([]string, len(t.records))
	for i, rec := range t.records {
		values[i] = rec[idx]
	}
	return values, nil
}

// RowSet is an ordered, read-only subsequence of rows sharing one header.
// Filters return a new RowSet and never modify the receiver.
type RowSet struct {
	header  header
	records []Record
	numeric map[string]bool
}

// Len returns the number of rows.
func (rs *RowSet) Len() int {
	return len(rs.records)
}

// Columns returns a copy of the column names in file order.
func (rs *RowSet) Columns() []string {
	cols := make([]string, len(rs.header))
	copy(cols, rs.header)
	return cols
}

// Rows returns the rows in original table order. The returned records
// must not be modified.
func (rs *RowSet) Rows() []Record {
	return rs.records
}

// Filter returns the rows where every criterion column's cell equals the
// given value (logical AND). Declared-numeric columns compare by numeric
// value, all others by exact string equality. It fails with ErrUnknownColumn
// before any filtering when a criterion names a column outside the schema.
func (rs *RowSet) Filter(criteria map[string]string) (*RowSet, error) {
	for col := range criteria {
		if !rs.header.contains(col) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, col)
		}
	}

	matched := make([]Record, 0, len(rs.records))
	for _, rec := range rs.records {
		if rs.matches(rec, criteria) {
			matched = append(matched, rec)
		}
	}
	return &RowSet{header: rs.header, records: matched, numeric: rs.numeric}, nil
}

// matches reports whether a record satisfies all criteria.
func (rs *RowSet) matches(rec Record, criteria map[string]string) bool {
	for col, want := range criteria {
		cell := rec[rs.header.index(col)]
		if rs.numeric[col] && cellEqualsNumeric(cell, want) {
			continue
		}
		if cell != want {
			return false
		}
	}
	return true
}

// cellEqualsNumeric compares two cells as numbers. It reports false when
// either side does not coerce, falling back to string equality.
func cellEqualsNumeric(cell, want string) bool {
	a, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return false
	}
	b, err := strconv.ParseFloat(want, 64)
	if err != nil {
		return false
	}
	return a == b
}
