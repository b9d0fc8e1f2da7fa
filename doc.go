// Package sqlgate provides a cross-database SQL client engine.
//
// sqlgate wraps MySQL, PostgreSQL, and embedded DuckDB behind one
// connection, query, and result model, designed so the whole surface
// can also be driven from other languages through the C bindings.
//
// # Quick Start
//
// Connect to a server and run queries:
//
//	settings := db.NewSettings()
//	settings.Username = "app"
//	settings.Password = "secret"
//	settings.DatabaseName = "orders"
//
//	conn := sqlgate.Open(settings)
//	if err := conn.Connect(); err != nil {
//		log.Fatal(err)
//	}
//	defer conn.Disconnect()
//
//	affected, _ := conn.ExecuteQuery("UPDATE orders SET shipped = true WHERE id = ?", args)
//
//	cursor, _ := conn.FetchQuery("SELECT id, total FROM orders", nil)
//	for {
//		row, err := cursor.Next()
//		if dberr.Is(err, dberr.NoMoreRows) {
//			break
//		}
//		// decode row values
//	}
//
// # Packages
//
// The engine is split into:
//   - types: database, column, and native value enumerations
//   - dberr: the closed error taxonomy every failure maps onto
//   - db: connections, executors, cursors, rows, and the decode engine
//   - bindings: the exported C boundary over all of the above
package sqlgate
