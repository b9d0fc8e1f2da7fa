package db

import (
	"database/sql"
	"time"

	"github.com/sqlgate/sqlgate/dberr"
)

// Cursor iterates over the rows of one returning query, in result-set
// order. It owns the in-flight fetch state; once exhausted or failed
// it is terminal and never reusable.
type Cursor struct {
	rows    *sql.Rows
	columns []TableColumnRef // shared by every row from this query
	done    bool
}

// Next yields the next row, or a no-more-rows condition (distinct from
// a general error) once the result set is exhausted. A transport or
// driver failure mid-stream surfaces its specific condition and leaves
// the cursor terminal.
func (c *Cursor) Next() (*TableRow, error) {
	if c.done {
		return nil, dberr.New(dberr.NoMoreRows, "cursor is exhausted")
	}
	if !c.rows.Next() {
		c.done = true
		err := c.rows.Err()
		c.rows.Close()
		if err != nil {
			return nil, dberr.FromDriver(err)
		}
		return nil, dberr.New(dberr.NoMoreRows, "cursor is exhausted")
	}
	values, err := scanRow(c.rows, len(c.columns))
	if err != nil {
		c.done = true
		c.rows.Close()
		return nil, dberr.FromDriver(err)
	}
	return &TableRow{values: values, columns: c.columns}, nil
}

// Rest drains every remaining row into a vector and leaves the cursor
// terminal. A cursor that is already exhausted yields an empty vector,
// not an error.
func (c *Cursor) Rest() (*TableRowVector, error) {
	vec := &TableRowVector{}
	for {
		row, err := c.Next()
		if err != nil {
			if dberr.Is(err, dberr.NoMoreRows) {
				return vec, nil
			}
			return nil, err
		}
		vec.rows = append(vec.rows, row)
	}
}

// Close releases the cursor's fetch state early. Safe on a terminal
// cursor.
func (c *Cursor) Close() {
	if !c.done {
		c.done = true
		c.rows.Close()
	}
}

// scanRow pulls the current row's values out of the driver. Byte
// slices are copied: drivers may reuse their buffers on the next
// advance, and a TableRow owns its payloads.
func scanRow(rows *sql.Rows, n int) ([]any, error) {
	values := make([]any, n)
	dests := make([]any, n)
	for i := range values {
		dests[i] = &values[i]
	}
	if err := rows.Scan(dests...); err != nil {
		return nil, err
	}
	for i, v := range values {
		switch v := v.(type) {
		case []byte:
			values[i] = append([]byte(nil), v...)
		case time.Time:
			values[i] = v
		}
	}
	return values, nil
}
