package db

import (
	"database/sql"

	"github.com/sqlgate/sqlgate/dberr"
)

// Connection is a single client connection to an arbitrary SQL
// database. It starts Disconnected; Connect opens the underlying pool
// according to the Settings the connection was built with.
//
// A Connection exclusively owns its Settings and its pool. Executors
// and Cursors created from it are bound to it but never own it;
// releasing the Connection while they are still in use is a caller
// ordering error the engine does not guard against.
type Connection struct {
	settings *Settings
	pool     *sql.DB
}

// NewConnection builds a disconnected connection, taking ownership of
// settings. The caller must not mutate or release settings
// independently afterward; Settings() is the sanctioned view.
func NewConnection(settings *Settings) *Connection {
	return &Connection{settings: settings}
}

// IsConnected reports whether the connection is in the Connected state.
func (c *Connection) IsConnected() bool {
	return c.pool != nil
}

// Settings exposes the connection's settings. The returned value is
// still owned by the connection.
func (c *Connection) Settings() *Settings {
	return c.settings
}

// Connect opens the pool described by the settings and verifies it
// with a ping. Connecting an already-Connected connection is a no-op
// returning success. On failure the connection stays Disconnected and
// the error carries a configuration, IO, TLS, or protocol code.
func (c *Connection) Connect() error {
	if c.pool != nil {
		return nil
	}
	driver, err := c.settings.driverName()
	if err != nil {
		return err
	}
	dsn, err := c.settings.dsn()
	if err != nil {
		return err
	}
	pool, err := sql.Open(driver, dsn)
	if err != nil {
		return dberr.New(dberr.ConfigurationError, err.Error())
	}
	if err := pool.Ping(); err != nil {
		pool.Close()
		return dberr.FromDriver(err)
	}
	c.pool = pool
	return nil
}

// Disconnect closes the pool. It is idempotent: disconnecting a
// Disconnected connection is a no-op returning success. Cursors still
// open on this connection are on borrowed time: the pool lets them
// finish draining but hands out nothing new, and any dispatch after
// this fails with a not-connected condition.
func (c *Connection) Disconnect() error {
	if c.pool == nil {
		return nil
	}
	err := c.pool.Close()
	c.pool = nil
	return dberr.FromDriver(err)
}

// Reconnect cycles the connection using the same settings.
func (c *Connection) Reconnect() error {
	if err := c.Disconnect(); err != nil {
		return err
	}
	return c.Connect()
}

// Executor creates a query-dispatch handle bound to this connection.
// Fails with a not-connected condition while Disconnected.
func (c *Connection) Executor() (*Executor, error) {
	if c.pool == nil {
		return nil, dberr.New(dberr.NotConnected, "connection is not connected")
	}
	return &Executor{conn: c}, nil
}

// ExecuteQuery runs a non-returning query through a default executor.
// See Executor.Execute for the argument consumption contract.
func (c *Connection) ExecuteQuery(query string, args *PlaceholderArgumentVector) (uint64, error) {
	ex := Executor{conn: c}
	return ex.Execute(query, args)
}

// FetchQuery creates a cursor over a returning query through a default
// executor. See Executor.Cursor for the argument consumption contract.
func (c *Connection) FetchQuery(query string, args *PlaceholderArgumentVector) (*Cursor, error) {
	ex := Executor{conn: c}
	return ex.Cursor(query, args)
}
