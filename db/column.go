package db

import "github.com/sqlgate/sqlgate/types"

// TableColumnRef describes one result column: its ordinal position,
// its name, and its generalized logical type. Rows produced by the
// same query share one immutable descriptor set, so a TableColumnRef
// is a small value that is copied freely and never mutated.
type TableColumnRef struct {
	ordinal int
	name    string
	ctype   types.ColumnType
}

// Ordinal gives the zero-based position of the column in its row.
func (c TableColumnRef) Ordinal() int {
	return c.ordinal
}

// Name gives the column name as reported by the query.
func (c TableColumnRef) Name() string {
	return c.name
}

// Type gives the generalized logical column type.
func (c TableColumnRef) Type() types.ColumnType {
	return c.ctype
}
