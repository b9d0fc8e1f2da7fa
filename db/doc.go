// Package db is the data-access engine: connection lifecycle over a
// database/sql pool, query dispatch, streaming cursors, the row/column
// result model, the typed decode engine, and placeholder binding.
//
// # Usage
//
//	settings := db.NewSettings()
//	settings.DatabaseType = types.Postgres
//	settings.Hostname = "localhost"
//	settings.Port = 5432
//
//	conn := db.NewConnection(settings)
//	if err := conn.Connect(); err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Disconnect()
//
//	cursor, err := conn.FetchQuery("SELECT id, name FROM users", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for {
//	    row, err := cursor.Next()
//	    if dberr.Is(err, dberr.NoMoreRows) {
//	        break
//	    }
//	    // decode columns out of row
//	}
//
// # Ownership
//
// Resources form a strict tree: a Connection owns its Settings and the
// underlying pool; Executors are bound to, but do not own, a
// Connection; Cursors are bound to the Connection that produced them.
// A single Connection, Executor, or Cursor value is not safe for
// simultaneous use from multiple goroutines; callers serialize access
// per handle. Every operation blocks until its round trip completes.
package db
