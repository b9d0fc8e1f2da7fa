package db

import (
	"github.com/sqlgate/sqlgate/dberr"
)

// Executor dispatches queries over a live Connection. It is a
// lightweight handle: valid only while its parent connection stays
// Connected, and never an owner of it.
type Executor struct {
	conn *Connection
}

// Execute runs a non-returning query and reports the number of rows
// affected. The placeholder vector (which may be nil) is consumed by
// this call regardless of outcome and must not be reused.
func (e *Executor) Execute(query string, args *PlaceholderArgumentVector) (uint64, error) {
	vals, err := args.take()
	if err != nil {
		return 0, err
	}
	if !e.conn.IsConnected() {
		return 0, dberr.New(dberr.NotConnected, "connection is not connected")
	}
	res, err := e.conn.pool.Exec(rewritePlaceholders(query, e.conn.settings.DatabaseType), vals...)
	if err != nil {
		return 0, dberr.FromDriver(err)
	}
	affected, err := res.RowsAffected()
	if err != nil || affected < 0 {
		// Some drivers cannot report a count for DDL; that is not a
		// query failure.
		return 0, nil
	}
	return uint64(affected), nil
}

// FetchOne runs a returning query and yields exactly its first row,
// or a row-not-found condition when the result set is empty. The
// placeholder vector (which may be nil) is consumed by this call.
func (e *Executor) FetchOne(query string, args *PlaceholderArgumentVector) (*TableRow, error) {
	cursor, err := e.Cursor(query, args)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()
	row, err := cursor.Next()
	if err != nil {
		if dberr.Is(err, dberr.NoMoreRows) {
			return nil, dberr.New(dberr.RowNotFound, "query returned no rows")
		}
		return nil, err
	}
	return row, nil
}

// FetchAll runs a returning query and materializes every row. An empty
// result set yields an empty vector, not an error. The placeholder
// vector (which may be nil) is consumed by this call.
func (e *Executor) FetchAll(query string, args *PlaceholderArgumentVector) (*TableRowVector, error) {
	cursor, err := e.Cursor(query, args)
	if err != nil {
		return nil, err
	}
	return cursor.Rest()
}

// Cursor starts a returning query and hands back a streaming iterator
// over its rows. The placeholder vector (which may be nil) is consumed
// by this call regardless of outcome; a failed cursor creation leaves
// no usable cursor behind.
func (e *Executor) Cursor(query string, args *PlaceholderArgumentVector) (*Cursor, error) {
	vals, err := args.take()
	if err != nil {
		return nil, err
	}
	if !e.conn.IsConnected() {
		return nil, dberr.New(dberr.NotConnected, "connection is not connected")
	}
	dialect := e.conn.settings.DatabaseType
	rows, err := e.conn.pool.Query(rewritePlaceholders(query, dialect), vals...)
	if err != nil {
		return nil, dberr.FromDriver(err)
	}
	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		rows.Close()
		return nil, dberr.FromDriver(err)
	}
	columns := make([]TableColumnRef, len(columnTypes))
	for i, ct := range columnTypes {
		columns[i] = TableColumnRef{
			ordinal: i,
			name:    ct.Name(),
			ctype:   columnTypeFor(dialect, ct),
		}
	}
	return &Cursor{rows: rows, columns: columns}, nil
}
