package db

import (
	"github.com/sqlgate/sqlgate/dberr"
)

// TableRow holds the payloads of exactly one result row. It owns its
// values and references the column descriptor set shared by every row
// of the same query.
type TableRow struct {
	values  []any
	columns []TableColumnRef
}

// IsEmpty reports whether the row has no columns.
func (r *TableRow) IsEmpty() bool {
	return len(r.columns) == 0
}

// ColumnCount gives the number of columns without building an
// intermediate slice.
func (r *TableRow) ColumnCount() int {
	return len(r.columns)
}

// Columns gives a snapshot of the row's column descriptors. The
// snapshot's lifetime is independent of the row.
func (r *TableRow) Columns() []TableColumnRef {
	out := make([]TableColumnRef, len(r.columns))
	copy(out, r.columns)
	return out
}

// ColumnWithName looks a column up by name.
func (r *TableRow) ColumnWithName(name string) (TableColumnRef, error) {
	for _, col := range r.columns {
		if col.name == name {
			return col, nil
		}
	}
	return TableColumnRef{}, dberr.Newf(dberr.ColumnNotFound, "no column named %q", name)
}

// ColumnWithOrdinal looks a column up by its zero-based position.
func (r *TableRow) ColumnWithOrdinal(ordinal int) (TableColumnRef, error) {
	if ordinal < 0 || ordinal >= len(r.columns) {
		return TableColumnRef{}, dberr.Newf(dberr.ColumnIndexOutOfBounds, "ordinal %d outside 0..%d", ordinal, len(r.columns)-1)
	}
	return r.columns[ordinal], nil
}

// value fetches the raw driver payload for a column.
func (r *TableRow) value(column TableColumnRef) (any, error) {
	if column.ordinal < 0 || column.ordinal >= len(r.values) {
		return nil, dberr.Newf(dberr.ColumnIndexOutOfBounds, "ordinal %d outside 0..%d", column.ordinal, len(r.values)-1)
	}
	return r.values[column.ordinal], nil
}
