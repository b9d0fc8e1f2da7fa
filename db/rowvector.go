package db

import "github.com/sqlgate/sqlgate/dberr"

// TableRowVector is an ordered batch of rows, produced by draining a
// cursor. It owns every row inside it.
type TableRowVector struct {
	rows []*TableRow
}

// Size gives the number of rows.
func (v *TableRowVector) Size() int {
	return len(v.rows)
}

// Get gives the row at index. The row stays owned by the vector.
func (v *TableRowVector) Get(index int) (*TableRow, error) {
	if index < 0 || index >= len(v.rows) {
		return nil, dberr.Newf(dberr.RowIndexOutOfBounds, "index %d outside 0..%d", index, len(v.rows)-1)
	}
	return v.rows[index], nil
}
