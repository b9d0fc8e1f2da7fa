package sqlgate

import (
	"github.com/sqlgate/sqlgate/db"
)

// Open builds a disconnected connection from settings, taking
// ownership of them. Call Connect on the result to reach the server.
func Open(settings *db.Settings) *db.Connection {
	return db.NewConnection(settings)
}

// OpenDefault builds a disconnected connection with default settings:
// MySQL on localhost:3306.
func OpenDefault() *db.Connection {
	return db.NewConnection(db.NewSettings())
}
