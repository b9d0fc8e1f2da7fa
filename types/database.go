package types

// DatabaseType selects the SQL flavor a connection targets.
type DatabaseType int32

const (
	MySQL DatabaseType = iota
	Postgres
	// DuckDB is an embedded dialect: hostname and port are ignored and
	// the database name is a file path (empty for in-memory).
	DuckDB
)

func (t DatabaseType) String() string {
	switch t {
	case MySQL:
		return "MySQL"
	case Postgres:
		return "Postgres"
	case DuckDB:
		return "DuckDB"
	default:
		return "Unknown"
	}
}

// Valid reports whether t is a member of the closed enumeration.
func (t DatabaseType) Valid() bool {
	return t >= MySQL && t <= DuckDB
}
