package db

import (
	"database/sql"
	"strconv"
	"strings"

	"github.com/sqlgate/sqlgate/types"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// rewritePlaceholders converts `?` placeholders to the dialect's
// native form. MySQL and DuckDB take `?` directly; Postgres wants
// $1..$n. Question marks inside quoted literals are left alone.
func rewritePlaceholders(query string, dialect types.DatabaseType) string {
	if dialect != types.Postgres || !strings.ContainsRune(query, '?') {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	arg := 0
	var quote rune
	for _, r := range query {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			b.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
			b.WriteRune(r)
		case r == '?':
			arg++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(arg))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// columnTypeFor maps a driver-reported column type name onto the
// generalized taxonomy. Each driver spells types its own way; unknown
// spellings come back as types.Unknown rather than a guess.
func columnTypeFor(dialect types.DatabaseType, ct *sql.ColumnType) types.ColumnType {
	name := strings.ToUpper(ct.DatabaseTypeName())
	// DECIMAL(10,2) and friends carry their arguments in the name.
	if i := strings.IndexByte(name, '('); i > 0 {
		name = name[:i]
	}

	switch name {
	case "BOOL", "BOOLEAN":
		return types.Boolean
	case "TINYINT":
		return types.TinyInt
	case "UNSIGNED TINYINT", "UTINYINT":
		return types.TinyIntUnsigned
	case "SMALLINT", "INT2":
		return types.SmallInt
	case "UNSIGNED SMALLINT", "USMALLINT":
		return types.SmallIntUnsigned
	case "MEDIUMINT":
		return types.MediumInt
	case "UNSIGNED MEDIUMINT":
		return types.MediumIntUnsigned
	case "INT", "INTEGER", "INT4":
		return types.Int
	case "UNSIGNED INT", "UINTEGER":
		return types.IntUnsigned
	case "BIGINT", "INT8":
		return types.BigInt
	case "UNSIGNED BIGINT", "UBIGINT":
		return types.BigIntUnsigned
	case "ENUM":
		return types.Enum
	case "DATE":
		return types.Date
	case "TIME":
		return types.Time
	case "DATETIME":
		return types.DateTime
	case "TIMESTAMP", "TIMESTAMPTZ":
		return types.Timestamp
	case "CHAR", "BPCHAR":
		return types.Char
	case "VARCHAR", "TEXT", "NVARCHAR", "JSON":
		return types.VarChar
	case "FLOAT", "FLOAT4":
		return types.Float
	case "DOUBLE", "FLOAT8", "REAL":
		return types.Double
	case "DECIMAL", "NUMERIC":
		return types.Decimal
	case "TINYBLOB":
		return types.TinyBlob
	case "MEDIUMBLOB":
		return types.MediumBlob
	case "BLOB", "BYTEA":
		return types.Blob
	case "LONGBLOB":
		return types.LongBlob
	case "BINARY", "VARBINARY":
		return types.Binary
	default:
		return types.Unknown
	}
}
